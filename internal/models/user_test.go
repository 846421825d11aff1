package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "foo@bar.com", NormalizeEmail("Foo@Bar.com"))
	assert.Equal(t, "foo@bar.com", NormalizeEmail("  foo@bar.com "))
	assert.Equal(t, "foo@bar.com", NormalizeEmail("FOO@BAR.COM"))
}

func TestUserProfileMarshalsInline(t *testing.T) {
	profile := UserProfile{
		User: User{
			ID:       bson.NewObjectID(),
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Role:     RoleUser,
		},
		Articles:      []Article{},
		Bookmarks:     []Article{},
		NoOfArticles:  0,
		NoOfBookmarks: 0,
		NoOfComments:  3,
	}

	raw, err := json.Marshal(profile)
	require.NoError(t, err)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))

	// Account fields stay top-level next to the expansions.
	assert.Equal(t, "Jane Doe", out["fullName"])
	assert.Contains(t, out, "articles")
	assert.Contains(t, out, "bookmarks")
	assert.Equal(t, float64(3), out["noOfComments"])
	assert.NotContains(t, out, "user")
}
