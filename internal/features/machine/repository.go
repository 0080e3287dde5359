package machine

import (
	"context"
	"time"

	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MachineRepository interface {
	Create(ctx context.Context, machine *Machine) error
	FindByID(ctx context.Context, id string) (*Machine, error)
	List(ctx context.Context, filter bson.M) ([]Machine, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type MachineRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMachineRepository(mongodb *database.MongodbDB) MachineRepository {
	return &MachineRepositoryImpl{
		Collection: mongodb.DB.Collection("machines"),
	}
}

func (r *MachineRepositoryImpl) Create(ctx context.Context, machine *Machine) error {
	machine.ID = primitive.NewObjectID()
	machine.CreatedAt = time.Now()
	machine.UpdatedAt = machine.CreatedAt
	_, err := r.Collection.InsertOne(ctx, machine)
	return err
}

func (r *MachineRepositoryImpl) FindByID(ctx context.Context, id string) (*Machine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var machine Machine
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&machine); err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *MachineRepositoryImpl) List(ctx context.Context, filter bson.M) ([]Machine, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var machines []Machine
	if err := cursor.All(ctx, &machines); err != nil {
		return nil, err
	}
	return machines, nil
}

func (r *MachineRepositoryImpl) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updatedAt"] = time.Now()
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	return err
}

func (r *MachineRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
