package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const LikesCollection = "likes"

// Like rows are the authoritative record for the article like counters; a
// unique (article, liked_by) index keeps one row per pair.
type Like struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Article   bson.ObjectID `json:"article" bson:"article"`
	LikedBy   bson.ObjectID `json:"likedBy" bson:"liked_by"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
