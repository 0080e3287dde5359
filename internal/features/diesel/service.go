package diesel

import (
	"context"
	"fmt"
	"time"

	"go-fleet/internal/connectors"
	"go-fleet/internal/features/machine"
	"go-fleet/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ImportResult struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type DieselService interface {
	CreateRecord(ctx context.Context, claims *utils.UserClaims, record *DieselRecord) error
	ListRecords(ctx context.Context, claims *utils.UserClaims, machineID string, limit int64) ([]DieselRecord, error)
	ImportLegacy(ctx context.Context, claims *utils.UserClaims, since time.Time) (*ImportResult, error)
}

type DieselServiceImpl struct {
	DieselRepo  DieselRepository
	MachineRepo machine.MachineRepository
	LegacyFuel  *connectors.LegacyFuelSource
	Log         *zap.Logger
}

func NewDieselService(dieselRepo DieselRepository, machineRepo machine.MachineRepository, legacyFuel *connectors.LegacyFuelSource, log *zap.Logger) DieselService {
	return &DieselServiceImpl{
		DieselRepo:  dieselRepo,
		MachineRepo: machineRepo,
		LegacyFuel:  legacyFuel,
		Log:         log,
	}
}

func (s *DieselServiceImpl) CreateRecord(ctx context.Context, claims *utils.UserClaims, record *DieselRecord) error {
	if record.MaquinaID.IsZero() {
		return fmt.Errorf("maquinaId is required")
	}
	if record.Litros <= 0 {
		return fmt.Errorf("litros must be positive")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id in claims: %w", err)
	}
	record.UserID = userID
	if record.CredentialID == "" {
		record.CredentialID = claims.CredentialID
	}
	return s.DieselRepo.Create(ctx, record)
}

func (s *DieselServiceImpl) ListRecords(ctx context.Context, claims *utils.UserClaims, machineID string, limit int64) ([]DieselRecord, error) {
	filter := bson.M{}
	if claims.Role == utils.RoleUser {
		if claims.CredentialID != "" {
			filter["credentialId"] = claims.CredentialID
		} else if oid, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			filter["userId"] = oid
		}
	}
	if machineID != "" {
		oid, err := primitive.ObjectIDFromHex(machineID)
		if err != nil {
			return nil, fmt.Errorf("invalid machine id: %w", err)
		}
		filter["maquinaId"] = oid
	}
	return s.DieselRepo.List(ctx, filter, limit)
}

// ImportLegacy pulls dispatch rows from the old depot Postgres system and
// stores them as diesel records. Rows whose machine code is unknown are
// skipped and logged, not failed, so a retired machine cannot wedge the
// whole import.
func (s *DieselServiceImpl) ImportLegacy(ctx context.Context, claims *utils.UserClaims, since time.Time) (*ImportResult, error) {
	if s.LegacyFuel == nil {
		return nil, fmt.Errorf("legacy fuel source is not configured")
	}

	rows, err := s.LegacyFuel.FetchSince(ctx, since, 0)
	if err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in claims: %w", err)
	}

	result := &ImportResult{Fetched: len(rows)}
	var records []DieselRecord
	for _, row := range rows {
		machines, err := s.MachineRepo.List(ctx, bson.M{"machineId": row.MachineCode})
		if err != nil {
			return nil, err
		}
		if len(machines) == 0 {
			s.Log.Warn("skipping legacy fuel row for unknown machine",
				zap.String("machineCode", row.MachineCode),
				zap.Time("dispensedAt", row.DispensedAt))
			result.Skipped++
			continue
		}

		records = append(records, DieselRecord{
			Fecha:     row.DispensedAt,
			MaquinaID: machines[0].ID,
			UserID:    userID,
			Litros:    row.Liters,
			Horometro: row.HourMeter,
			Operador:  row.Operator,
		})
	}

	inserted, err := s.DieselRepo.CreateMany(ctx, records)
	if err != nil {
		return nil, err
	}
	result.Imported = inserted

	s.Log.Info("legacy fuel import finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}
