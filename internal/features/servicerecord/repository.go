package servicerecord

import (
	"context"
	"time"

	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServiceRecordRepository interface {
	Create(ctx context.Context, record *ServiceRecord) error
	FindByID(ctx context.Context, id string) (*ServiceRecord, error)
	List(ctx context.Context, filter bson.M, limit int64) ([]ServiceRecord, error)
	Delete(ctx context.Context, id string) error
}

type ServiceRecordRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewServiceRecordRepository(mongodb *database.MongodbDB) ServiceRecordRepository {
	return &ServiceRecordRepositoryImpl{
		Collection: mongodb.DB.Collection("services"),
	}
}

func (r *ServiceRecordRepositoryImpl) Create(ctx context.Context, record *ServiceRecord) error {
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	if record.Fecha.IsZero() {
		record.Fecha = record.CreatedAt
	}
	_, err := r.Collection.InsertOne(ctx, record)
	return err
}

func (r *ServiceRecordRepositoryImpl) FindByID(ctx context.Context, id string) (*ServiceRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var record ServiceRecord
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ServiceRecordRepositoryImpl) List(ctx context.Context, filter bson.M, limit int64) ([]ServiceRecord, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []ServiceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ServiceRecordRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
