package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const ArticlesCollection = "articles"

// Categories an article can be published under.
var ArticleCategories = []string{
	"ENTERTAINMENT",
	"INTERNET",
	"GAMES",
	"SOCIETY",
	"WOMAN",
	"EDUCATION",
}

// NormalizeCategory upper-cases the submitted category and checks it against
// the closed set.
func NormalizeCategory(raw string) (string, error) {
	cat := strings.ToUpper(strings.TrimSpace(raw))
	for _, c := range ArticleCategories {
		if cat == c {
			return cat, nil
		}
	}
	return "", fmt.Errorf("category '%s' is not available, should be one of: %s",
		raw, strings.Join(ArticleCategories, ", "))
}

type Article struct {
	ID       bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title    string        `json:"title" bson:"title"`
	Category string        `json:"category" bson:"category"`
	Body     string        `json:"body" bson:"body"`
	Photo    string        `json:"photo,omitempty" bson:"photo,omitempty"`
	PhotoID  string        `json:"-" bson:"photo_id,omitempty"`
	Author   bson.ObjectID `json:"author" bson:"author"`

	LikedBy      []bson.ObjectID `json:"likedBy" bson:"liked_by"`
	NoOfLikes    int64           `json:"noOfLikes" bson:"no_of_likes"`
	NoOfComments int64           `json:"noOfComments" bson:"no_of_comments"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`

	// Filled on single-article reads, never stored.
	Comments []Comment `json:"comments,omitempty" bson:"-"`
}

// NewArticle builds a fresh article with zeroed counters and empty edge set.
func NewArticle(author bson.ObjectID, title, category, body string) *Article {
	now := time.Now().UTC()
	return &Article{
		ID:        bson.NewObjectID(),
		Title:     title,
		Category:  category,
		Body:      body,
		Author:    author,
		LikedBy:   []bson.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var ArticleMutable = Whitelist{
	"title":    "title",
	"category": "category",
	"body":     "body",
}
