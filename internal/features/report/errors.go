package report

import (
	"errors"
	"fmt"
)

var (
	ErrMissingReportType = errors.New("Report type is required")
	ErrInvalidReportType = errors.New("Invalid report type")
)

// EmptyWorkplaceError signals that an admin named a workplace with no
// resolvable users. It is a "no data, known reason" condition, surfaced as a
// success=false response rather than a server failure.
type EmptyWorkplaceError struct {
	Workplace string
}

func (e *EmptyWorkplaceError) Error() string {
	return fmt.Sprintf("no users found in workplace '%s'", e.Workplace)
}

type MachineNotFoundError struct {
	MachineID string
}

func (e *MachineNotFoundError) Error() string {
	return fmt.Sprintf("machine '%s' not found", e.MachineID)
}

type MachineNotInWorkplaceError struct {
	MachineID string
	Workplace string
}

func (e *MachineNotInWorkplaceError) Error() string {
	return fmt.Sprintf("machine '%s' does not belong to workplace '%s'", e.MachineID, e.Workplace)
}

type UnsupportedOrganizationalTypeError struct {
	Type string
}

func (e *UnsupportedOrganizationalTypeError) Error() string {
	return fmt.Sprintf("unsupported organizational report type '%s'", e.Type)
}
