package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an operator, site administrator or super admin. WorkplaceName groups
// users (and their machines) into a site within an organization.
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"-" bson:"password"`
	Role           string             `json:"role" bson:"role"` // USER, ADMIN, SUPER_ADMIN
	OrganizationID string             `json:"organization_id" bson:"organization_id"`
	WorkplaceName  string             `json:"workplace_name" bson:"workplace_name"`
	CredentialID   string             `json:"credential_id,omitempty" bson:"credential_id,omitempty"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}
