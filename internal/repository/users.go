package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// Users reads exclude deactivated accounts by default; deactivation is a soft
// delete.
type Users struct {
	*Store[models.User]
	col *mongo.Collection
	rec *Recounter
}

func NewUsers(db *mongo.Database, rec *Recounter) *Users {
	col := db.Collection(models.UsersCollection)
	return &Users{
		Store: NewStore[models.User](col, "user").
			WithBaseFilter(bson.M{"active": bson.M{"$ne": false}}),
		col: col,
		rec: rec,
	}
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{
		"email":  email,
		"active": bson.M{"$ne": false},
	}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Deactivate soft-deletes the account; default reads stop returning it.
func (r *Users) Deactivate(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user with id '%s' not found", id.Hex())
	}
	return nil
}

func (r *Users) SetPassword(ctx context.Context, id bson.ObjectID, hash string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()}},
	)
	return err
}

// IsFollowing reports whether actor is in target's follower set.
func (r *Users) IsFollowing(ctx context.Context, actor, target bson.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": target, "followers": actor})
	return n > 0, err
}

// AddFollow records the edge on both sides: target gains a follower, actor
// gains a following entry.
func (r *Users) AddFollow(ctx context.Context, actor, target bson.ObjectID) error {
	if _, err := r.col.UpdateOne(ctx,
		bson.M{"_id": target},
		bson.M{"$addToSet": bson.M{"followers": actor}},
	); err != nil {
		return err
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": actor},
		bson.M{"$addToSet": bson.M{"following": target}},
	)
	return err
}

func (r *Users) RemoveFollow(ctx context.Context, actor, target bson.ObjectID) error {
	if _, err := r.col.UpdateOne(ctx,
		bson.M{"_id": target},
		bson.M{"$pull": bson.M{"followers": actor}},
	); err != nil {
		return err
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": actor},
		bson.M{"$pull": bson.M{"following": target}},
	)
	return err
}

func (r *Users) RecountFollows(ctx context.Context, userID bson.ObjectID) error {
	return r.rec.RecountFollows(ctx, userID)
}

// followEdgeIDs projects one edge set off a user document.
func (r *Users) followEdgeIDs(ctx context.Context, userID bson.ObjectID, field string) ([]bson.ObjectID, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$project", Value: bson.M{field: 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound("user with id '%s' not found", userID.Hex())
	}

	raw, _ := rows[0][field].(bson.A)
	ids := make([]bson.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(bson.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Followers resolves the follower edge set to user summaries.
func (r *Users) Followers(ctx context.Context, userID bson.ObjectID) ([]models.UserSummary, error) {
	ids, err := r.followEdgeIDs(ctx, userID, "followers")
	if err != nil {
		return nil, err
	}
	return r.summaries(ctx, ids)
}

// Following resolves the following edge set to user summaries.
func (r *Users) Following(ctx context.Context, userID bson.ObjectID) ([]models.UserSummary, error) {
	ids, err := r.followEdgeIDs(ctx, userID, "following")
	if err != nil {
		return nil, err
	}
	return r.summaries(ctx, ids)
}

func (r *Users) summaries(ctx context.Context, ids []bson.ObjectID) ([]models.UserSummary, error) {
	if len(ids) == 0 {
		return []models.UserSummary{}, nil
	}
	opts := options.Find().SetProjection(bson.D{
		{Key: "full_name", Value: 1},
		{Key: "photo", Value: 1},
		{Key: "headline", Value: 1},
	})
	cur, err := r.col.Find(ctx, bson.M{
		"_id":    bson.M{"$in": ids},
		"active": bson.M{"$ne": false},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.UserSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
