package machine

import (
	"context"
	"fmt"
	"time"

	"go-fleet/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type MachineService interface {
	CreateMachine(ctx context.Context, claims *utils.UserClaims, machine *Machine) error
	GetMachine(ctx context.Context, id string) (*Machine, error)
	ListMachines(ctx context.Context, claims *utils.UserClaims, workplace string) ([]Machine, error)
	UpdateHours(ctx context.Context, id string, hours float64) error
	RecordService(ctx context.Context, id string, servicedAt time.Time) error
	DeleteMachine(ctx context.Context, id string) error
}

type MachineServiceImpl struct {
	MachineRepo MachineRepository
}

func NewMachineService(machineRepo MachineRepository) MachineService {
	return &MachineServiceImpl{MachineRepo: machineRepo}
}

func (s *MachineServiceImpl) CreateMachine(ctx context.Context, claims *utils.UserClaims, machine *Machine) error {
	if machine.Model == "" {
		return fmt.Errorf("model is required")
	}
	machine.CreatedBy = claims.UserID
	if machine.UserID == "" && machine.WorkplaceName == "" {
		machine.UserID = claims.UserID
	}
	return s.MachineRepo.Create(ctx, machine)
}

func (s *MachineServiceImpl) GetMachine(ctx context.Context, id string) (*Machine, error) {
	return s.MachineRepo.FindByID(ctx, id)
}

func (s *MachineServiceImpl) ListMachines(ctx context.Context, claims *utils.UserClaims, workplace string) ([]Machine, error) {
	filter := bson.M{}
	switch {
	case workplace != "":
		filter["workplaceName"] = workplace
	case claims.Role == utils.RoleUser:
		filter["$or"] = []bson.M{
			{"userId": claims.UserID},
			{"createdBy": claims.UserID},
		}
	}
	return s.MachineRepo.List(ctx, filter)
}

func (s *MachineServiceImpl) UpdateHours(ctx context.Context, id string, hours float64) error {
	machine, err := s.MachineRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if hours < machine.CurrentHours {
		return fmt.Errorf("hour meter cannot go backwards: %v < %v", hours, machine.CurrentHours)
	}
	return s.MachineRepo.Update(ctx, id, bson.M{"currentHours": hours})
}

func (s *MachineServiceImpl) RecordService(ctx context.Context, id string, servicedAt time.Time) error {
	return s.MachineRepo.Update(ctx, id, bson.M{"lastServiceAt": servicedAt})
}

func (s *MachineServiceImpl) DeleteMachine(ctx context.Context, id string) error {
	return s.MachineRepo.Delete(ctx, id)
}
