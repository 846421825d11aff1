package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

type Bookmarks struct {
	*Store[models.Bookmark]
	col *mongo.Collection
}

func NewBookmarks(db *mongo.Database) *Bookmarks {
	col := db.Collection(models.BookmarksCollection)
	return &Bookmarks{
		Store: NewStore[models.Bookmark](col, "bookmark"),
		col:   col,
	}
}

func (r *Bookmarks) Create(ctx context.Context, articleID, userID bson.ObjectID) (*models.Bookmark, error) {
	doc := &models.Bookmark{
		ID:           bson.NewObjectID(),
		Article:      articleID,
		BookmarkedBy: userID,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.Insert(ctx, doc); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.Conflict("you already bookmarked this article")
		}
		return nil, err
	}
	return doc, nil
}

// ArticlesBookmarkedBy resolves a user's bookmarks to the saved articles,
// newest bookmark first.
func (r *Bookmarks) ArticlesBookmarkedBy(ctx context.Context, userID bson.ObjectID) ([]models.Article, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bookmarked_by": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         models.ArticlesCollection,
			"localField":   "article",
			"foreignField": "_id",
			"as":           "article_doc",
		}}},
		{{Key: "$unwind", Value: "$article_doc"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$article_doc"}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Article{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByArticle removes every bookmark of a deleted article.
func (r *Bookmarks) DeleteByArticle(ctx context.Context, articleID bson.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"article": articleID})
	return err
}
