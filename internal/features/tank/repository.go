package tank

import (
	"context"
	"fmt"
	"time"

	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TankRepository interface {
	Create(ctx context.Context, tank *Tank) error
	FindByID(ctx context.Context, id string) (*Tank, error)
	List(ctx context.Context, filter bson.M) ([]Tank, error)
	AdjustLevel(ctx context.Context, id string, delta float64) error
	Delete(ctx context.Context, id string) error
}

type TankRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTankRepository(mongodb *database.MongodbDB) TankRepository {
	return &TankRepositoryImpl{
		Collection: mongodb.DB.Collection("tanks"),
	}
}

func (r *TankRepositoryImpl) Create(ctx context.Context, tank *Tank) error {
	tank.ID = primitive.NewObjectID()
	tank.CreatedAt = time.Now()
	tank.UpdatedAt = tank.CreatedAt
	_, err := r.Collection.InsertOne(ctx, tank)
	return err
}

func (r *TankRepositoryImpl) FindByID(ctx context.Context, id string) (*Tank, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var tank Tank
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&tank); err != nil {
		return nil, err
	}
	return &tank, nil
}

func (r *TankRepositoryImpl) List(ctx context.Context, filter bson.M) ([]Tank, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tanks []Tank
	if err := cursor.All(ctx, &tanks); err != nil {
		return nil, err
	}
	return tanks, nil
}

// AdjustLevel applies a signed delta to currentLevel. The guard against
// draining below zero runs server-side so two dispatches racing on the
// same tank cannot both succeed past empty.
func (r *TankRepositoryImpl) AdjustLevel(ctx context.Context, id string, delta float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["currentLevel"] = bson.M{"$gte": -delta}
	}

	res, err := r.Collection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"currentLevel": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tank %s not found or has insufficient fuel", id)
	}
	return nil
}

func (r *TankRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
