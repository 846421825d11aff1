package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const CommentsCollection = "comments"

type Comment struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Article   bson.ObjectID `json:"article" bson:"article"`
	CommentBy bson.ObjectID `json:"commentBy" bson:"comment_by"`
	Comment   string        `json:"comment" bson:"comment"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

var CommentMutable = Whitelist{
	"comment": "comment",
}
