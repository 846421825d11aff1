package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const BookmarksCollection = "bookmarks"

type Bookmark struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Article      bson.ObjectID `json:"article" bson:"article"`
	BookmarkedBy bson.ObjectID `json:"bookmarkedBy" bson:"bookmarked_by"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`

	// Filled on single-bookmark reads, never stored.
	ArticleData *Article `json:"articleData,omitempty" bson:"-"`
}
