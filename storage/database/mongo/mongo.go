// Package mongorepos implements the repositories on mongodb, one collection per entity.
package mongorepos

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smashclub/backend/core"
)

var fieldRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// natural is the insertion order of documents.
var natural = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, sort bson.D) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	cur, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	docs := make([]T, 0)
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id string, notFound error) (T, error) {
	var doc T
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return doc, notFound
		}
		return doc, err
	}
	return doc, nil
}

func replaceByID(ctx context.Context, coll *mongo.Collection, id string, doc interface{}, notFound error) error {
	res, err := coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func deleteByIDs(ctx context.Context, coll *mongo.Collection, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := coll.DeleteMany(ctx, inIDs("_id", ids))
	return err
}

// inIDs matches the documents whose key is one of ids.
func inIDs(key string, ids []string) bson.D {
	return bson.D{{Key: key, Value: bson.D{{Key: "$in", Value: ids}}}}
}

// sortBy maps ordering fields to document keys. Invalid fields are dropped.
func sortBy(ordering []core.DBOrdering, fallback bson.D) bson.D {
	sort := make(bson.D, 0, len(ordering))
	for _, ord := range ordering {
		field := core.SnakeCase(ord.Field)
		if !fieldRegex.MatchString(field) {
			continue
		}
		if field == "id" {
			field = "_id"
		}
		direction := -1
		if ord.Ascending {
			direction = 1
		}
		sort = append(sort, bson.E{Key: field, Value: direction})
	}
	if len(sort) == 0 {
		return fallback
	}
	return sort
}

// filter accumulates AND-ed conditions.
type filter bson.D

func (f *filter) eq(key string, val string) {
	if val != "" {
		*f = append(*f, bson.E{Key: key, Value: val})
	}
}

func (f *filter) dateRange(key string, from, to time.Time) {
	rng := bson.D{}
	if !from.IsZero() {
		rng = append(rng, bson.E{Key: "$gte", Value: from.UTC()})
	}
	if !to.IsZero() {
		rng = append(rng, bson.E{Key: "$lte", Value: to.UTC()})
	}
	if len(rng) > 0 {
		*f = append(*f, bson.E{Key: key, Value: rng})
	}
}

func (f filter) doc() bson.D {
	if f == nil {
		return bson.D{}
	}
	return bson.D(f)
}
