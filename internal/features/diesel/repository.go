package diesel

import (
	"context"
	"time"

	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DieselRepository interface {
	Create(ctx context.Context, record *DieselRecord) error
	CreateMany(ctx context.Context, records []DieselRecord) (int, error)
	FindByID(ctx context.Context, id string) (*DieselRecord, error)
	List(ctx context.Context, filter bson.M, limit int64) ([]DieselRecord, error)
	Delete(ctx context.Context, id string) error
}

type DieselRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDieselRepository(mongodb *database.MongodbDB) DieselRepository {
	return &DieselRepositoryImpl{
		Collection: mongodb.DB.Collection("diesel_records"),
	}
}

func (r *DieselRepositoryImpl) Create(ctx context.Context, record *DieselRecord) error {
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	if record.Fecha.IsZero() {
		record.Fecha = record.CreatedAt
	}
	_, err := r.Collection.InsertOne(ctx, record)
	return err
}

func (r *DieselRepositoryImpl) CreateMany(ctx context.Context, records []DieselRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(records))
	now := time.Now()
	for i := range records {
		records[i].ID = primitive.NewObjectID()
		if records[i].CreatedAt.IsZero() {
			records[i].CreatedAt = now
		}
		docs = append(docs, records[i])
	}
	res, err := r.Collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *DieselRepositoryImpl) FindByID(ctx context.Context, id string) (*DieselRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var record DieselRecord
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *DieselRepositoryImpl) List(ctx context.Context, filter bson.M, limit int64) ([]DieselRecord, error) {
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

	var records []DieselRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *DieselRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
