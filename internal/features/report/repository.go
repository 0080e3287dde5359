package report

import (
	"context"
	"time"

	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DescriptorRepository persists report metadata records. No business logic
// lives here beyond what the retention manager needs.
type DescriptorRepository interface {
	Save(ctx context.Context, descriptor *Descriptor) (string, error)
	ListFor(ctx context.Context, userID string) ([]Descriptor, error)
	FindByID(ctx context.Context, id string) (*Descriptor, error)
	CountFor(ctx context.Context, userID string) (int64, error)
	FindOldest(ctx context.Context, userID string, limit int64) ([]Descriptor, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	DistinctUserIDs(ctx context.Context) ([]string, error)
}

type DescriptorRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDescriptorRepository(mongodb *database.MongodbDB) DescriptorRepository {
	return &DescriptorRepositoryImpl{
		Collection: mongodb.DB.Collection("reports"),
	}
}

func (r *DescriptorRepositoryImpl) Save(ctx context.Context, descriptor *Descriptor) (string, error) {
	if descriptor.ID.IsZero() {
		descriptor.ID = primitive.NewObjectID()
	}
	descriptor.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, descriptor)
	if err != nil {
		return "", err
	}
	return descriptor.ID.Hex(), nil
}

func (r *DescriptorRepositoryImpl) ListFor(ctx context.Context, userID string) ([]Descriptor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var descriptors []Descriptor
	if err := cursor.All(ctx, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

func (r *DescriptorRepositoryImpl) FindByID(ctx context.Context, id string) (*Descriptor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var descriptor Descriptor
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&descriptor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &descriptor, nil
}

func (r *DescriptorRepositoryImpl) CountFor(ctx context.Context, userID string) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *DescriptorRepositoryImpl) FindOldest(ctx context.Context, userID string, limit int64) ([]Descriptor, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var descriptors []Descriptor
	if err := cursor.All(ctx, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

func (r *DescriptorRepositoryImpl) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}
	res, err := r.Collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *DescriptorRepositoryImpl) DistinctUserIDs(ctx context.Context) ([]string, error) {
	values, err := r.Collection.Distinct(ctx, "user_id", bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
