package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogapi/internal/models"
)

// EnsureIndexes creates the uniqueness and lookup indexes at startup. The
// unique pair indexes are what make likes and bookmarks one-per-(article,user).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(models.UsersCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection(models.LikesCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "article", Value: 1},
				{Key: "liked_by", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_article_user"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection(models.BookmarksCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "article", Value: 1},
				{Key: "bookmarked_by", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_article_user"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection(models.CommentsCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "article", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("article_created"),
		},
	)
	return err
}
