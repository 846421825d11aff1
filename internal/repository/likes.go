package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// Likes keeps the like rows and the denormalized liked_by set on the article
// in step; the counter is always re-derived from the rows.
type Likes struct {
	*Store[models.Like]
	col      *mongo.Collection
	articles *mongo.Collection
	rec      *Recounter
}

func NewLikes(db *mongo.Database, rec *Recounter) *Likes {
	col := db.Collection(models.LikesCollection)
	return &Likes{
		Store:    NewStore[models.Like](col, "like"),
		col:      col,
		articles: db.Collection(models.ArticlesCollection),
		rec:      rec,
	}
}

func (r *Likes) IsLiked(ctx context.Context, articleID, userID bson.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"article": articleID, "liked_by": userID})
	return n > 0, err
}

func (r *Likes) AddLike(ctx context.Context, articleID, userID bson.ObjectID) error {
	doc := models.Like{
		ID:        bson.NewObjectID(),
		Article:   articleID,
		LikedBy:   userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.Insert(ctx, doc); err != nil {
		// The unique (article, liked_by) index absorbs a racing duplicate;
		// membership is already what the caller wanted.
		if apperr.KindOf(err) != apperr.KindConflict {
			return err
		}
	}
	_, err := r.articles.UpdateOne(ctx,
		bson.M{"_id": articleID},
		bson.M{"$addToSet": bson.M{"liked_by": userID}},
	)
	return err
}

func (r *Likes) RemoveLike(ctx context.Context, articleID, userID bson.ObjectID) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"article": articleID, "liked_by": userID}); err != nil {
		return err
	}
	_, err := r.articles.UpdateOne(ctx,
		bson.M{"_id": articleID},
		bson.M{"$pull": bson.M{"liked_by": userID}},
	)
	return err
}

func (r *Likes) RecountLikes(ctx context.Context, articleID bson.ObjectID) error {
	return r.rec.RecountLikes(ctx, articleID)
}

// ArticlesLikedBy resolves a user's like rows to the liked articles, newest
// like first.
func (r *Likes) ArticlesLikedBy(ctx context.Context, userID bson.ObjectID) ([]models.Article, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"liked_by": userID}}},
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

// DeleteByArticle removes every like row of a deleted article.
func (r *Likes) DeleteByArticle(ctx context.Context, articleID bson.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"article": articleID})
	return err
}
