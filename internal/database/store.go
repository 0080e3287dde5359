package database

import (
	"context"

	"go-fleet/pkg/filter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore executes abstract filter expressions against MongoDB. Report
// generation talks to this facade instead of the driver so its query logic can
// be exercised against fakes.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(mongodb *MongodbDB) *MongoStore {
	return &MongoStore{db: mongodb.DB}
}

func (s *MongoStore) Find(ctx context.Context, collection string, f filter.Node) ([]map[string]any, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter.ToBSON(f))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []map[string]any
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, f filter.Node) (map[string]any, error) {
	var doc map[string]any
	err := s.db.Collection(collection).FindOne(ctx, filter.ToBSON(f)).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *MongoStore) Count(ctx context.Context, collection string, f filter.Node) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, filter.ToBSON(f))
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (s *MongoStore) DeleteByIDs(ctx context.Context, collection string, ids []string) (int64, error) {
	// Ids are hex ObjectIDs in practice, but historical records occasionally
	// carry plain string _id values, so both forms are matched.
	keys := make([]any, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			keys = append(keys, oid)
		} else {
			keys = append(keys, id)
		}
	}
	if len(keys) == 0 {
		return 0, nil
	}
	res, err := s.db.Collection(collection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) ListCollections(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}
