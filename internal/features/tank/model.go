package tank

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tank struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Capacity      float64            `json:"capacity" bson:"capacity"`
	CurrentLevel  float64            `json:"currentLevel" bson:"currentLevel"`
	WorkplaceName string             `json:"workplaceName,omitempty" bson:"workplaceName,omitempty"`
	UserID        string             `json:"userId,omitempty" bson:"userId,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
