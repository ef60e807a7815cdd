package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// recordStore is the create/read/update/delete surface shared by every
// collection. T is the stored document type; its _id is an ObjectID exposed
// as a hex string.
type recordStore[T any] struct {
	col  *mongo.Collection
	kind string
}

func newRecordStore[T any](db *mongo.Database, collection, kind string) *recordStore[T] {
	return &recordStore[T]{col: db.Collection(collection), kind: kind}
}

func (s *recordStore[T]) create(ctx context.Context, doc *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert %s: unexpected id type %T", s.kind, res.InsertedID)
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *recordStore[T]) findByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFound(s.kind)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *recordStore[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(s.kind)
		}
		return nil, fmt.Errorf("find %s: %w", s.kind, err)
	}
	return &doc, nil
}

// findAll returns every document matching filter, newest first.
func (s *recordStore[T]) findAll(ctx context.Context, filter bson.M) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.kind, err)
		}
		docs = append(docs, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return docs, nil
}

// update applies set with $set and returns the document after the change.
func (s *recordStore[T]) update(ctx context.Context, id string, set bson.M) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFound(s.kind)
	}
	if len(set) == 0 {
		return s.findByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(s.kind)
		}
		return nil, err
	}
	return &doc, nil
}

// delete removes the document and returns it as it was.
func (s *recordStore[T]) delete(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFound(s.kind)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(s.kind)
		}
		return nil, fmt.Errorf("delete %s: %w", s.kind, err)
	}
	return &doc, nil
}

// toSetDocument marshals v through its bson tags and drops the keys in
// exclude, producing the body of a $set update.
func toSetDocument(v any, exclude ...string) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	delete(set, "_id")
	for _, key := range exclude {
		delete(set, key)
	}
	return set, nil
}

func bsonKey(field string) bson.D {
	return bson.D{{Key: field, Value: 1}}
}
