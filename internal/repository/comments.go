package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogapi/internal/models"
)

type Comments struct {
	*Store[models.Comment]
	col *mongo.Collection
}

func NewComments(db *mongo.Database) *Comments {
	col := db.Collection(models.CommentsCollection)
	return &Comments{
		Store: NewStore[models.Comment](col, "comment"),
		col:   col,
	}
}

func (r *Comments) Create(ctx context.Context, articleID, userID bson.ObjectID, text string) (*models.Comment, error) {
	now := time.Now().UTC()
	doc := &models.Comment{
		ID:        bson.NewObjectID(),
		Article:   articleID,
		CommentBy: userID,
		Comment:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// RecentByArticle fetches the newest comments of one article, used to expand
// single-article reads.
func (r *Comments) RecentByArticle(ctx context.Context, articleID bson.ObjectID, limit int64) ([]models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"article": articleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByUser counts the comments one user has posted.
func (r *Comments) CountByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"comment_by": userID})
}

// DeleteByArticle removes every comment of a deleted article.
func (r *Comments) DeleteByArticle(ctx context.Context, articleID bson.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"article": articleID})
	return err
}
