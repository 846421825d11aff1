package social

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
)

// fakeGraph backs both store interfaces with in-memory edge sets so toggle
// semantics can be exercised without a database.
type fakeGraph struct {
	mu sync.Mutex

	followers map[bson.ObjectID]map[bson.ObjectID]bool // target -> actors
	following map[bson.ObjectID]map[bson.ObjectID]bool // actor -> targets
	likes     map[bson.ObjectID]map[bson.ObjectID]bool // article -> users

	followCounts map[bson.ObjectID][2]int // userID -> {followers, following}
	likeCounts   map[bson.ObjectID]int    // articleID -> likes
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		followers:    map[bson.ObjectID]map[bson.ObjectID]bool{},
		following:    map[bson.ObjectID]map[bson.ObjectID]bool{},
		likes:        map[bson.ObjectID]map[bson.ObjectID]bool{},
		followCounts: map[bson.ObjectID][2]int{},
		likeCounts:   map[bson.ObjectID]int{},
	}
}

func (g *fakeGraph) IsFollowing(_ context.Context, actor, target bson.ObjectID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.followers[target][actor], nil
}

func (g *fakeGraph) AddFollow(_ context.Context, actor, target bson.ObjectID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.followers[target] == nil {
		g.followers[target] = map[bson.ObjectID]bool{}
	}
	if g.following[actor] == nil {
		g.following[actor] = map[bson.ObjectID]bool{}
	}
	g.followers[target][actor] = true
	g.following[actor][target] = true
	return nil
}

func (g *fakeGraph) RemoveFollow(_ context.Context, actor, target bson.ObjectID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.followers[target], actor)
	delete(g.following[actor], target)
	return nil
}

func (g *fakeGraph) RecountFollows(_ context.Context, userID bson.ObjectID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.followCounts[userID] = [2]int{len(g.followers[userID]), len(g.following[userID])}
	return nil
}

func (g *fakeGraph) IsLiked(_ context.Context, articleID, userID bson.ObjectID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.likes[articleID][userID], nil
}

func (g *fakeGraph) AddLike(_ context.Context, articleID, userID bson.ObjectID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.likes[articleID] == nil {
		g.likes[articleID] = map[bson.ObjectID]bool{}
	}
	g.likes[articleID][userID] = true
	return nil
}

func (g *fakeGraph) RemoveLike(_ context.Context, articleID, userID bson.ObjectID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.likes[articleID], userID)
	return nil
}

func (g *fakeGraph) RecountLikes(_ context.Context, articleID bson.ObjectID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.likeCounts[articleID] = len(g.likes[articleID])
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService() (*Service, *fakeGraph) {
	g := newFakeGraph()
	return NewService(g, g, quietLogger()), g
}

func TestToggleFollowFlipsBothSides(t *testing.T) {
	svc, g := newTestService()
	actor, target := bson.NewObjectID(), bson.NewObjectID()
	ctx := context.Background()

	state, err := svc.ToggleFollow(ctx, actor, target)
	require.NoError(t, err)
	assert.Equal(t, StateAdded, state)
	assert.True(t, g.followers[target][actor])
	assert.True(t, g.following[actor][target])
	assert.Equal(t, [2]int{1, 0}, g.followCounts[target])
	assert.Equal(t, [2]int{0, 1}, g.followCounts[actor])

	state, err = svc.ToggleFollow(ctx, actor, target)
	require.NoError(t, err)
	assert.Equal(t, StateRemoved, state)
	assert.False(t, g.followers[target][actor])
	assert.False(t, g.following[actor][target])
	assert.Equal(t, [2]int{0, 0}, g.followCounts[target])
	assert.Equal(t, [2]int{0, 0}, g.followCounts[actor])
}

func TestToggleParity(t *testing.T) {
	svc, g := newTestService()
	actor, target := bson.NewObjectID(), bson.NewObjectID()
	ctx := context.Background()

	// Even number of toggles returns to the original state.
	for i := 0; i < 6; i++ {
		_, err := svc.ToggleFollow(ctx, actor, target)
		require.NoError(t, err)
	}
	assert.False(t, g.followers[target][actor])
	assert.Equal(t, [2]int{0, 0}, g.followCounts[target])

	// Odd flips it exactly once net.
	for i := 0; i < 5; i++ {
		_, err := svc.ToggleFollow(ctx, actor, target)
		require.NoError(t, err)
	}
	assert.True(t, g.followers[target][actor])
	assert.Equal(t, [2]int{1, 0}, g.followCounts[target])
}

func TestSelfFollowRejected(t *testing.T) {
	svc, g := newTestService()
	id := bson.NewObjectID()

	_, err := svc.ToggleFollow(context.Background(), id, id)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Empty(t, g.followers[id])
	assert.Empty(t, g.following[id])
}

func TestToggleLike(t *testing.T) {
	svc, g := newTestService()
	article := bson.NewObjectID()
	u1, u2 := bson.NewObjectID(), bson.NewObjectID()
	ctx := context.Background()

	state, err := svc.ToggleLike(ctx, u1, article)
	require.NoError(t, err)
	assert.Equal(t, StateAdded, state)
	assert.Equal(t, 1, g.likeCounts[article])

	state, err = svc.ToggleLike(ctx, u2, article)
	require.NoError(t, err)
	assert.Equal(t, StateAdded, state)
	assert.Equal(t, 2, g.likeCounts[article])

	// u1 unlikes; u2's like remains.
	state, err = svc.ToggleLike(ctx, u1, article)
	require.NoError(t, err)
	assert.Equal(t, StateRemoved, state)
	assert.Equal(t, 1, g.likeCounts[article])
	assert.False(t, g.likes[article][u1])
	assert.True(t, g.likes[article][u2])
}

func TestLikeCounterMatchesMembership(t *testing.T) {
	svc, g := newTestService()
	article := bson.NewObjectID()
	ctx := context.Background()

	users := make([]bson.ObjectID, 7)
	for i := range users {
		users[i] = bson.NewObjectID()
		_, err := svc.ToggleLike(ctx, users[i], article)
		require.NoError(t, err)
	}
	// A couple of unlikes.
	for _, u := range users[:3] {
		_, err := svc.ToggleLike(ctx, u, article)
		require.NoError(t, err)
	}

	assert.Equal(t, len(g.likes[article]), g.likeCounts[article])
	assert.Equal(t, 4, g.likeCounts[article])
}

func TestSameActorTogglesSerialized(t *testing.T) {
	svc, g := newTestService()
	actor, target := bson.NewObjectID(), bson.NewObjectID()
	ctx := context.Background()

	const n = 100 // even, so the final state must be "not following"
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ToggleFollow(ctx, actor, target)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, g.followers[target][actor])
	assert.Equal(t, [2]int{0, 0}, g.followCounts[target])
	assert.Equal(t, [2]int{0, 0}, g.followCounts[actor])
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	km := newKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%3))
			for j := 0; j < 50; j++ {
				km.Lock(key)
				km.Unlock(key)
			}
		}(i)
	}
	wg.Wait()

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
