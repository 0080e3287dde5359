package servicerecord

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Fecha         time.Time          `json:"fecha" bson:"fecha,omitempty"`
	TipoService   string             `json:"tipoService" bson:"tipoService"`
	MachineID     string             `json:"machineId,omitempty" bson:"machineId,omitempty"`
	MaquinaID     string             `json:"maquinaId,omitempty" bson:"maquinaId,omitempty"`
	UserID        string             `json:"userId" bson:"userId"`
	Technician    string             `json:"tecnico,omitempty" bson:"tecnico,omitempty"`
	HorasActuales float64            `json:"horasActuales,omitempty" bson:"horasActuales,omitempty"`
	Repuestos     []string           `json:"repuestos,omitempty" bson:"repuestos,omitempty"`
	Costo         float64            `json:"costo,omitempty" bson:"costo,omitempty"`
	Observacion   string             `json:"observaciones,omitempty" bson:"observaciones,omitempty"`
	Datos         map[string]any     `json:"datos,omitempty" bson:"datos,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
