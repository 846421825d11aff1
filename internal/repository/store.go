package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogapi/internal/apperr"
	"blogapi/internal/query"
)

// Store is the generic CRUD surface over one collection. Per-entity
// repositories embed it and add their own reads and triggers.
type Store[T any] struct {
	col  *mongo.Collection
	kind string
	// base is merged into every read filter, e.g. the active flag on users.
	base bson.M
}

func NewStore[T any](col *mongo.Collection, kind string) *Store[T] {
	return &Store[T]{col: col, kind: kind}
}

// WithBaseFilter returns a store whose reads always include the given filter.
func (s *Store[T]) WithBaseFilter(base bson.M) *Store[T] {
	clone := *s
	clone.base = base
	return &clone
}

func (s *Store[T]) Collection() *mongo.Collection { return s.col }

func (s *Store[T]) merged(filter bson.M) bson.M {
	if len(s.base) == 0 {
		return filter
	}
	out := bson.M{}
	for k, v := range s.base {
		out[k] = v
	}
	for k, v := range filter {
		out[k] = v
	}
	return out
}

// Find runs the composed list read and also returns the total match count for
// pagination metadata.
func (s *Store[T]) Find(ctx context.Context, q query.Features) (items []T, total int64, err error) {
	filter := s.merged(q.Filter)

	total, err = s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items = []T{}
	if err = cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := s.col.FindOne(ctx, s.merged(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("%s not found", s.kind)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	var doc T
	err := s.col.FindOne(ctx, s.merged(bson.M{"_id": id})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("%s with id '%s' not found", s.kind, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store[T]) Insert(ctx context.Context, doc any) (bson.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		if isDuplicate(err) {
			return bson.NilObjectID, apperr.Conflict("%s already exists", s.kind)
		}
		return bson.NilObjectID, err
	}
	id, _ := res.InsertedID.(bson.ObjectID)
	return id, nil
}

// UpdateByID applies a $set patch and returns the updated document.
func (s *Store[T]) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*T, error) {
	set["updated_at"] = time.Now().UTC()

	var doc T
	err := s.col.FindOneAndUpdate(
		ctx,
		s.merged(bson.M{"_id": id}),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("%s with id '%s' not found", s.kind, id.Hex())
	}
	if err != nil {
		if isDuplicate(err) {
			return nil, apperr.Conflict("%s already exists", s.kind)
		}
		return nil, err
	}
	return &doc, nil
}

func (s *Store[T]) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("%s with id '%s' not found", s.kind, id.Hex())
	}
	return nil
}

func (s *Store[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.col.CountDocuments(ctx, s.merged(filter))
}

func isDuplicate(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}
