package report

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity describes the caller, mapped from JWT claims at the controller
// boundary so the core stays independent of the token format.
type Identity struct {
	UserID         string
	Role           string
	OrganizationID string
	CredentialID   string
}

// Member is a user row resolved through the directory collaborator.
type Member struct {
	ID           string
	Name         string
	Email        string
	Workplace    string
	CredentialID string
}

// GenerateRequest mirrors the /api/reports/generate body. Workplace values
// "", "all" and "organizational" all mean "no workplace restriction".
type GenerateRequest struct {
	Type             string `json:"type"`
	FromDate         string `json:"fromDate"`
	ToDate           string `json:"toDate"`
	DateRange        string `json:"dateRange"` // week|month|quarter|year, used only without explicit dates
	MachineID        string `json:"machineId"`
	Workplace        string `json:"workplace"`
	Category         string `json:"category"` // all|prestart|machine|diesel, organizational reports only
	OrganizationID   string `json:"organizationId"`
	Format           string `json:"format"`
	IsOrganizational bool   `json:"isOrganizational"`
}

// Descriptor is the persisted metadata record for a generated report. It is
// immutable once written; only the retention manager deletes them.
type Descriptor struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	DateFrom    *time.Time         `json:"date_from,omitempty" bson:"date_from,omitempty"`
	DateTo      *time.Time         `json:"date_to,omitempty" bson:"date_to,omitempty"`
	MachineID   string             `json:"machine_id,omitempty" bson:"machine_id,omitempty"`
	Workplace   string             `json:"workplace,omitempty" bson:"workplace,omitempty"`
	Format      string             `json:"format" bson:"format"`
	RecordCount int                `json:"record_count" bson:"record_count"`
	Query       string             `json:"query" bson:"query"` // serialized filter, for reproducibility
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// FlatRecord is a flattened document: dot-joined path keys, scalar values.
type FlatRecord map[string]any

// PerUserRow is one line of an organizational generic report.
type PerUserRow struct {
	UserID        string     `json:"userId"`
	UserName      string     `json:"userName"`
	Workplace     string     `json:"workplace"`
	PrestartCount int        `json:"prestartCount"`
	MachineCount  int        `json:"machineCount"`
	DieselCount   int        `json:"dieselCount"`
	LastActivity  *time.Time `json:"lastActivity"`
}

// OrgSummary aggregates an organizational generic report across all users.
type OrgSummary struct {
	TotalUsers    int `json:"totalUsers"`
	TotalPrestart int `json:"totalPrestart"`
	TotalMachines int `json:"totalMachines"`
	TotalDiesel   int `json:"totalDiesel"`
}

// GenerateResponse is the structured result of a generation call. Failures
// carry Success=false and Error; they are not transport errors.
type GenerateResponse struct {
	Success    bool        `json:"success"`
	ReportID   string      `json:"reportId,omitempty"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Summary    *OrgSummary `json:"summary,omitempty"`
	DataLength int         `json:"dataLength,omitempty"`
	Error      string      `json:"error,omitempty"`
}
