package prestart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prestart checks arrive from two generations of the mobile client. The
// current one writes flat documents with fecha as a BSON date; the legacy
// one nested everything under datos and stored fecha as an ISO string.
// Legacy documents are kept as-is, so Datos stays schemaless.
type Prestart struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Fecha        time.Time          `json:"fecha" bson:"fecha,omitempty"`
	MachineID    string             `json:"machineId,omitempty" bson:"machineId,omitempty"`
	MaquinaID    string             `json:"maquinaId,omitempty" bson:"maquinaId,omitempty"`
	UserID       string             `json:"userId" bson:"userId"`
	Operador     string             `json:"operador,omitempty" bson:"operador,omitempty"`
	HorasMaquina float64            `json:"horasMaquina,omitempty" bson:"horasMaquina,omitempty"`
	Checklist    map[string]bool    `json:"checklist,omitempty" bson:"checklist,omitempty"`
	Observacion  string             `json:"observaciones,omitempty" bson:"observaciones,omitempty"`
	Estado       string             `json:"estado,omitempty" bson:"estado,omitempty"`
	Datos        map[string]any     `json:"datos,omitempty" bson:"datos,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
