package machine

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Machine documents keep the owner reference loose on purpose: older
// records carry the owner hex id in createdBy, newer ones in userId, and
// shared fleet machines are tagged with workplaceName instead.
type Machine struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MachineID     string             `json:"machineId" bson:"machineId,omitempty"`
	Model         string             `json:"model" bson:"model"`
	Brand         string             `json:"brand" bson:"brand,omitempty"`
	Serial        string             `json:"serial" bson:"serial,omitempty"`
	UserID        string             `json:"userId,omitempty" bson:"userId,omitempty"`
	CreatedBy     string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	WorkplaceName string             `json:"workplaceName,omitempty" bson:"workplaceName,omitempty"`
	CurrentHours  float64            `json:"currentHours" bson:"currentHours"`
	LastServiceAt *time.Time         `json:"lastServiceAt,omitempty" bson:"lastServiceAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
