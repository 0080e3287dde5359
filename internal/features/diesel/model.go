package diesel

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DieselRecord is the one collection that kept strict typing through the
// mobile client rewrites: machine and user references are real ObjectIDs,
// and shared-tablet entries carry the operator credential in credentialId.
type DieselRecord struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Fecha        time.Time           `json:"fecha" bson:"fecha"`
	MaquinaID    primitive.ObjectID  `json:"maquinaId" bson:"maquinaId"`
	TanqueID     *primitive.ObjectID `json:"tanqueId,omitempty" bson:"tanqueId,omitempty"`
	UserID       primitive.ObjectID  `json:"userId" bson:"userId"`
	CredentialID string              `json:"credentialId,omitempty" bson:"credentialId,omitempty"`
	Litros       float64             `json:"litros" bson:"litros"`
	Horometro    float64             `json:"horometro,omitempty" bson:"horometro,omitempty"`
	Operador     string              `json:"operador,omitempty" bson:"operador,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
}
