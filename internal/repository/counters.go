package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blogapi/internal/models"
)

// Recounter owns every denormalized counter in the system. Each recount
// derives the value from the authoritative child rows and writes it with $set,
// including an explicit 0 when no children remain, so invoking it any number
// of times converges on the correct value.
//
// Recounts run as explicit post-write triggers on the child write paths. If a
// recount fails after a successful child write, the write stands; callers log
// the id and the admin recount endpoint re-runs it on demand.
type Recounter struct {
	users    *mongo.Collection
	articles *mongo.Collection
	comments *mongo.Collection
	likes    *mongo.Collection
}

func NewRecounter(db *mongo.Database) *Recounter {
	return &Recounter{
		users:    db.Collection(models.UsersCollection),
		articles: db.Collection(models.ArticlesCollection),
		comments: db.Collection(models.CommentsCollection),
		likes:    db.Collection(models.LikesCollection),
	}
}

// RecountComments sets the article's no_of_comments to the live comment count.
func (r *Recounter) RecountComments(ctx context.Context, articleID bson.ObjectID) error {
	n, err := r.comments.CountDocuments(ctx, bson.M{"article": articleID})
	if err != nil {
		return err
	}
	_, err = r.articles.UpdateOne(ctx,
		bson.M{"_id": articleID},
		bson.M{"$set": bson.M{"no_of_comments": n}},
	)
	return err
}

// RecountLikes sets the article's no_of_likes to the live like-row count.
func (r *Recounter) RecountLikes(ctx context.Context, articleID bson.ObjectID) error {
	n, err := r.likes.CountDocuments(ctx, bson.M{"article": articleID})
	if err != nil {
		return err
	}
	_, err = r.articles.UpdateOne(ctx,
		bson.M{"_id": articleID},
		bson.M{"$set": bson.M{"no_of_likes": n}},
	)
	return err
}

// RecountFollows derives both follow counters from the edge set sizes with an
// aggregation-pipeline update, so concurrent toggles converge.
func (r *Recounter) RecountFollows(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"followers_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$followers", bson.A{}}}},
				"following_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$following", bson.A{}}}},
			}}},
		},
	)
	return err
}

// RecountArticle reconciles every counter on one article; used by the admin
// recount endpoint when a post-write recount was reported failed.
func (r *Recounter) RecountArticle(ctx context.Context, articleID bson.ObjectID) error {
	if err := r.RecountComments(ctx, articleID); err != nil {
		return err
	}
	return r.RecountLikes(ctx, articleID)
}
