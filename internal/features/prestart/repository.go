package prestart

import (
	"context"
	"time"

	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PrestartRepository interface {
	Create(ctx context.Context, prestart *Prestart) error
	FindByID(ctx context.Context, id string) (*Prestart, error)
	List(ctx context.Context, filter bson.M, limit int64) ([]Prestart, error)
	Delete(ctx context.Context, id string) error
}

type PrestartRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPrestartRepository(mongodb *database.MongodbDB) PrestartRepository {
	return &PrestartRepositoryImpl{
		Collection: mongodb.DB.Collection("prestart"),
	}
}

func (r *PrestartRepositoryImpl) Create(ctx context.Context, prestart *Prestart) error {
	prestart.ID = primitive.NewObjectID()
	prestart.CreatedAt = time.Now()
	if prestart.Fecha.IsZero() {
		prestart.Fecha = prestart.CreatedAt
	}
	_, err := r.Collection.InsertOne(ctx, prestart)
	return err
}

func (r *PrestartRepositoryImpl) FindByID(ctx context.Context, id string) (*Prestart, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var prestart Prestart
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&prestart); err != nil {
		return nil, err
	}
	return &prestart, nil
}

func (r *PrestartRepositoryImpl) List(ctx context.Context, filter bson.M, limit int64) ([]Prestart, error) {
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

	var prestarts []Prestart
	if err := cursor.All(ctx, &prestarts); err != nil {
		return nil, err
	}
	return prestarts, nil
}

func (r *PrestartRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
