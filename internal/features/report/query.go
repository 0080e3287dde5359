package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go-fleet/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Type -> collection mapping. "service" and "services" are synonyms for the
// same target.
var reportCollections = map[string]string{
	"prestart": "prestart",
	"service":  "services",
	"services": "services",
	"machine":  "machines",
	"diesel":   "diesel_records",
}

// String-encoded ISO dates in historical prestart rows.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type QueryBuilder struct {
	store DocumentStore
	log   *zap.Logger
}

func NewQueryBuilder(store DocumentStore, log *zap.Logger) *QueryBuilder {
	return &QueryBuilder{store: store, log: log}
}

// Build produces the target collection and filter expression for a report.
// Date bounds are normalized to start-of-day/end-of-day. When both a
// workplace and a machine are specified, the machine must belong to that
// workplace before any query runs.
func (b *QueryBuilder) Build(ctx context.Context, reportType string, scope *Scope, dateFrom, dateTo *time.Time, machineID string) (string, filter.Node, error) {
	collection, ok := reportCollections[reportType]
	if !ok {
		return "", nil, ErrInvalidReportType
	}

	parts := []filter.Node{ownerClause(reportType, scope)}

	if clause := dateClause(reportType, dateFrom, dateTo); clause != nil {
		parts = append(parts, clause)
	}

	if machineID != "" {
		if scope.Workplace != "" {
			if err := b.validateMachineWorkplace(ctx, machineID, scope); err != nil {
				return "", nil, err
			}
		}
		parts = append(parts, machineClause(reportType, machineID))
	}

	// The date clause is itself an OR of field variants, so the combination
	// needs an explicit AND grouping; a flat merge would let the OR absorb
	// the owner clause.
	node := filter.NewAnd(parts...)
	b.log.Debug("built report query",
		zap.String("collection", collection),
		zap.String("filter", filter.MarshalJSON(node)))
	return collection, node, nil
}

func ownerClause(reportType string, scope *Scope) filter.Node {
	if reportType == "diesel" {
		// Fuel records attribute single-user ownership by credential and
		// store user references as typed ObjectIDs. This schema quirk is
		// load-bearing; do not normalize it.
		if !scope.IsOrganizational && len(scope.OwnerIDs) == 1 && scope.CredentialID != "" {
			return filter.Eq{Field: "credentialId", Value: scope.CredentialID}
		}
		if len(scope.OwnerIDs) == 1 {
			return filter.Eq{Field: "userId", Value: toStoredID(scope.OwnerIDs[0])}
		}
		values := make([]any, 0, len(scope.OwnerIDs))
		for _, id := range scope.OwnerIDs {
			values = append(values, toStoredID(id))
		}
		return filter.In{Field: "userId", Values: values}
	}

	if len(scope.OwnerIDs) == 1 {
		return filter.Eq{Field: "userId", Value: scope.OwnerIDs[0]}
	}
	values := make([]any, 0, len(scope.OwnerIDs))
	for _, id := range scope.OwnerIDs {
		values = append(values, id)
	}
	return filter.In{Field: "userId", Values: values}
}

func dateClause(reportType string, from, to *time.Time) filter.Node {
	if from == nil && to == nil {
		return nil
	}

	var fromVal, toVal, fromStr, toStr any
	if from != nil {
		f := startOfDay(*from)
		fromVal = f
		fromStr = f.UTC().Format(isoMillis)
	}
	if to != nil {
		t := endOfDay(*to)
		toVal = t
		toStr = t.UTC().Format(isoMillis)
	}

	switch reportType {
	case "prestart":
		// Historical prestart rows stored the same logical date as a BSON
		// date under fecha, as the creation timestamp, or as an ISO string.
		return filter.Or{Nodes: []filter.Node{
			filter.Range{Field: "fecha", From: fromVal, To: toVal},
			filter.Range{Field: "createdAt", From: fromVal, To: toVal},
			filter.Range{Field: "fecha", From: fromStr, To: toStr},
		}}
	case "service", "services":
		return filter.Or{Nodes: []filter.Node{
			filter.Range{Field: "fecha", From: fromVal, To: toVal},
			filter.Range{Field: "createdAt", From: fromVal, To: toVal},
		}}
	case "machine":
		return filter.Range{Field: "createdAt", From: fromVal, To: toVal}
	case "diesel":
		return filter.Range{Field: "fecha", From: fromVal, To: toVal}
	default:
		return nil
	}
}

func machineClause(reportType, machineID string) filter.Node {
	switch reportType {
	case "diesel":
		return filter.Eq{Field: "maquinaId", Value: toStoredID(machineID)}
	case "prestart", "service", "services":
		return filter.Or{Nodes: []filter.Node{
			filter.Eq{Field: "machineId", Value: machineID},
			filter.Eq{Field: "maquinaId", Value: machineID},
			filter.Eq{Field: "datos.machineId", Value: machineID},
		}}
	default:
		return filter.Or{Nodes: []filter.Node{
			filter.Eq{Field: "machineId", Value: machineID},
			filter.Eq{Field: "maquinaId", Value: machineID},
		}}
	}
}

func (b *QueryBuilder) validateMachineWorkplace(ctx context.Context, machineID string, scope *Scope) error {
	doc, err := b.store.FindOne(ctx, "machines", filter.Eq{Field: "_id", Value: toStoredID(machineID)})
	if err != nil {
		return err
	}
	if doc == nil {
		return &MachineNotFoundError{MachineID: machineID}
	}

	owner, ok := resolvePaths(doc, machineOwnerCandidates)
	if !ok {
		return &MachineNotInWorkplaceError{MachineID: machineID, Workplace: scope.Workplace}
	}
	ownerID := idString(owner)
	// The workplaceName variant identifies the site directly instead of an
	// owning user.
	if ownerID == scope.Workplace || slices.Contains(scope.OwnerIDs, ownerID) {
		return nil
	}
	return &MachineNotInWorkplaceError{MachineID: machineID, Workplace: scope.Workplace}
}

// toStoredID converts a hex id to the driver's ObjectID where the collection
// is known to store typed references; non-hex ids pass through unchanged.
func toStoredID(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case primitive.ObjectID:
		return t.Hex()
	default:
		return fmt.Sprint(v)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
