package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhitelistBuild(t *testing.T) {
	body := map[string]any{
		"fullName": "Jane Doe",
		"bio":      "writes about games",
		// Must never survive into the patch.
		"role":           "admin",
		"followersCount": 9999,
		"passwordHash":   "sneaky",
	}

	set := UserMutable.Build(body)

	assert.Equal(t, "Jane Doe", set["full_name"])
	assert.Equal(t, "writes about games", set["bio"])
	assert.NotContains(t, set, "role")
	assert.NotContains(t, set, "followersCount")
	assert.NotContains(t, set, "followers_count")
	assert.NotContains(t, set, "passwordHash")
	assert.Len(t, set, 2)
}

func TestWhitelistBuildEmptyBody(t *testing.T) {
	assert.Empty(t, ArticleMutable.Build(map[string]any{}))
	assert.Empty(t, CommentMutable.Build(map[string]any{"unrelated": 1}))
}

func TestNormalizeCategory(t *testing.T) {
	cat, err := NormalizeCategory("games")
	assert.NoError(t, err)
	assert.Equal(t, "GAMES", cat)

	cat, err = NormalizeCategory("  Education ")
	assert.NoError(t, err)
	assert.Equal(t, "EDUCATION", cat)

	_, err = NormalizeCategory("COOKING")
	assert.Error(t, err)
}
