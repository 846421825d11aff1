package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogapi/internal/models"
)

type Articles struct {
	*Store[models.Article]
	col *mongo.Collection
}

func NewArticles(db *mongo.Database) *Articles {
	col := db.Collection(models.ArticlesCollection)
	return &Articles{
		Store: NewStore[models.Article](col, "article"),
		col:   col,
	}
}

// ByAuthor lists a user's articles, newest first.
func (r *Articles) ByAuthor(ctx context.Context, authorID bson.ObjectID) ([]models.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"author": authorID}, opts)
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

// TrendingThisWeek returns the ten most liked articles published in the last
// seven days.
func (r *Articles) TrendingThisWeek(ctx context.Context) ([]models.Article, error) {
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": weekAgo}}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "no_of_likes", Value: -1},
			{Key: "created_at", Value: -1},
		}}},
		{{Key: "$limit", Value: 10}},
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
