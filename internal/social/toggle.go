// Package social implements the symmetric add/remove operations on the social
// graph edges: follow/unfollow between users and like/unlike on articles.
package social

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
)

// State is the membership result of a toggle.
type State string

const (
	StateAdded   State = "added"
	StateRemoved State = "removed"
)

// FollowStore is the storage surface the follow toggle needs.
type FollowStore interface {
	IsFollowing(ctx context.Context, actor, target bson.ObjectID) (bool, error)
	AddFollow(ctx context.Context, actor, target bson.ObjectID) error
	RemoveFollow(ctx context.Context, actor, target bson.ObjectID) error
	RecountFollows(ctx context.Context, userID bson.ObjectID) error
}

// LikeStore is the storage surface the like toggle needs.
type LikeStore interface {
	IsLiked(ctx context.Context, articleID, userID bson.ObjectID) (bool, error)
	AddLike(ctx context.Context, articleID, userID bson.ObjectID) error
	RemoveLike(ctx context.Context, articleID, userID bson.ObjectID) error
	RecountLikes(ctx context.Context, articleID bson.ObjectID) error
}

type Service struct {
	follows FollowStore
	likes   LikeStore
	log     *logrus.Logger

	// Serializes toggles per (actor, target, kind) so a double-submitted
	// request cannot double-add or double-remove. Distinct actors on the same
	// target are not ordered; the recounts converge their counters.
	pairs *keyedMutex
}

func NewService(follows FollowStore, likes LikeStore, log *logrus.Logger) *Service {
	return &Service{
		follows: follows,
		likes:   likes,
		log:     log,
		pairs:   newKeyedMutex(),
	}
}

// ToggleFollow flips whether actor follows target and maintains both users'
// derived counts. Following yourself is rejected before anything is touched.
func (s *Service) ToggleFollow(ctx context.Context, actor, target bson.ObjectID) (State, error) {
	if actor == target {
		return "", apperr.Forbidden("you cannot follow yourself")
	}

	key := "follow:" + actor.Hex() + ":" + target.Hex()
	s.pairs.Lock(key)
	defer s.pairs.Unlock(key)

	following, err := s.follows.IsFollowing(ctx, actor, target)
	if err != nil {
		return "", err
	}

	state := StateAdded
	if following {
		state = StateRemoved
		err = s.follows.RemoveFollow(ctx, actor, target)
	} else {
		err = s.follows.AddFollow(ctx, actor, target)
	}
	if err != nil {
		return "", err
	}

	for _, id := range []bson.ObjectID{actor, target} {
		if rerr := s.follows.RecountFollows(ctx, id); rerr != nil {
			// The edge write stands; the stale counter is reconciled by the
			// next toggle or the admin recount.
			s.log.WithError(rerr).WithField("user_id", id.Hex()).
				Warn("follow recount failed, counter stale until reconciled")
		}
	}
	return state, nil
}

// ToggleLike flips whether user likes the article and re-derives the article's
// like counter from the like rows.
func (s *Service) ToggleLike(ctx context.Context, actor, articleID bson.ObjectID) (State, error) {
	key := "like:" + actor.Hex() + ":" + articleID.Hex()
	s.pairs.Lock(key)
	defer s.pairs.Unlock(key)

	liked, err := s.likes.IsLiked(ctx, articleID, actor)
	if err != nil {
		return "", err
	}

	state := StateAdded
	if liked {
		state = StateRemoved
		err = s.likes.RemoveLike(ctx, articleID, actor)
	} else {
		err = s.likes.AddLike(ctx, articleID, actor)
	}
	if err != nil {
		return "", err
	}

	if rerr := s.likes.RecountLikes(ctx, articleID); rerr != nil {
		s.log.WithError(rerr).WithField("article_id", articleID.Hex()).
			Warn("like recount failed, counter stale until reconciled")
	}
	return state, nil
}
