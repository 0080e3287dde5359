package organization

import (
	"context"
	"time"

	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id string) (*Organization, error)
	List(ctx context.Context) ([]Organization, error)
	Update(ctx context.Context, id string, org *Organization) error
	Delete(ctx context.Context, id string) error
}

type OrganizationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOrganizationRepository(mongodb *database.MongodbDB) OrganizationRepository {
	return &OrganizationRepositoryImpl{
		Collection: mongodb.DB.Collection("organizations"),
	}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *Organization) error {
	org.ID = primitive.NewObjectID()
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	if org.Status == "" {
		org.Status = "active"
	}
	_, err := r.Collection.InsertOne(ctx, org)
	return err
}

func (r *OrganizationRepositoryImpl) FindByID(ctx context.Context, id string) (*Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var org Organization
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepositoryImpl) List(ctx context.Context) ([]Organization, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orgs []Organization
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *OrganizationRepositoryImpl) Update(ctx context.Context, id string, org *Organization) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	org.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":       org.Name,
		"workplaces": org.Workplaces,
		"status":     org.Status,
		"updatedAt":  org.UpdatedAt,
	}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *OrganizationRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
