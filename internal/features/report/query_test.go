package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-fleet/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestBuilder(store *fakeStore) *QueryBuilder {
	if store == nil {
		store = &fakeStore{}
	}
	return NewQueryBuilder(store, zap.NewNop())
}

func TestBuildInvalidType(t *testing.T) {
	builder := newTestBuilder(nil)
	_, _, err := builder.Build(context.Background(), "bogus", &Scope{OwnerIDs: []string{"u1"}}, nil, nil, "")
	if !errors.Is(err, ErrInvalidReportType) {
		t.Fatalf("expected ErrInvalidReportType, got %v", err)
	}
}

func TestBuildCollections(t *testing.T) {
	builder := newTestBuilder(nil)
	scope := &Scope{OwnerIDs: []string{"u1"}}

	tests := []struct {
		reportType string
		want       string
	}{
		{"prestart", "prestart"},
		{"service", "services"},
		{"services", "services"},
		{"machine", "machines"},
		{"diesel", "diesel_records"},
	}
	for _, tt := range tests {
		collection, _, err := builder.Build(context.Background(), tt.reportType, scope, nil, nil, "")
		if err != nil {
			t.Fatalf("Build(%s) error = %v", tt.reportType, err)
		}
		if collection != tt.want {
			t.Errorf("Build(%s) collection = %s, want %s", tt.reportType, collection, tt.want)
		}
	}
}

func TestDieselOwnerClause(t *testing.T) {
	hexID := primitive.NewObjectID().Hex()

	tests := []struct {
		name  string
		scope *Scope
		check func(t *testing.T, node filter.Node)
	}{
		{
			name:  "Single User With Credential",
			scope: &Scope{OwnerIDs: []string{hexID}, CredentialID: "NQ-0041"},
			check: func(t *testing.T, node filter.Node) {
				eq, ok := node.(filter.Eq)
				if !ok {
					t.Fatalf("expected Eq, got %T", node)
				}
				if eq.Field != "credentialId" || eq.Value != "NQ-0041" {
					t.Errorf("expected credentialId equality, got %+v", eq)
				}
			},
		},
		{
			name:  "Single User Without Credential Uses Typed ID",
			scope: &Scope{OwnerIDs: []string{hexID}},
			check: func(t *testing.T, node filter.Node) {
				eq, ok := node.(filter.Eq)
				if !ok {
					t.Fatalf("expected Eq, got %T", node)
				}
				if eq.Field != "userId" {
					t.Errorf("expected userId field, got %s", eq.Field)
				}
				oid, ok := eq.Value.(primitive.ObjectID)
				if !ok {
					t.Fatalf("expected ObjectID value, got %T", eq.Value)
				}
				if oid.Hex() != hexID {
					t.Errorf("ObjectID = %s, want %s", oid.Hex(), hexID)
				}
			},
		},
		{
			name: "Organizational Single Member Stays On UserId",
			// The executor narrows organizational scopes to one member at a
			// time; credential matching must not kick in for those.
			scope: &Scope{OwnerIDs: []string{hexID}, CredentialID: "NQ-0041", IsOrganizational: true},
			check: func(t *testing.T, node filter.Node) {
				eq, ok := node.(filter.Eq)
				if !ok {
					t.Fatalf("expected Eq, got %T", node)
				}
				if eq.Field != "userId" {
					t.Errorf("expected userId field, got %s", eq.Field)
				}
			},
		},
		{
			name:  "Multiple Owners Use In",
			scope: &Scope{OwnerIDs: []string{hexID, "not-hex"}, IsOrganizational: true},
			check: func(t *testing.T, node filter.Node) {
				in, ok := node.(filter.In)
				if !ok {
					t.Fatalf("expected In, got %T", node)
				}
				if in.Field != "userId" || len(in.Values) != 2 {
					t.Errorf("unexpected in clause %+v", in)
				}
				if _, ok := in.Values[0].(primitive.ObjectID); !ok {
					t.Errorf("hex ids should be stored as ObjectIDs, got %T", in.Values[0])
				}
				if in.Values[1] != "not-hex" {
					t.Errorf("non-hex ids must pass through, got %v", in.Values[1])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ownerClause("diesel", tt.scope))
		})
	}
}

func TestDateClauseNormalization(t *testing.T) {
	from := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	to := time.Date(2024, 5, 12, 9, 15, 0, 0, time.UTC)

	node := dateClause("diesel", &from, &to)
	rng, ok := node.(filter.Range)
	if !ok {
		t.Fatalf("expected Range, got %T", node)
	}

	gotFrom := rng.From.(time.Time)
	if gotFrom.Hour() != 0 || gotFrom.Minute() != 0 || gotFrom.Second() != 0 {
		t.Errorf("from not normalized to start of day: %v", gotFrom)
	}
	if gotFrom.Day() != 10 {
		t.Errorf("from day changed: %v", gotFrom)
	}

	gotTo := rng.To.(time.Time)
	if gotTo.Hour() != 23 || gotTo.Minute() != 59 || gotTo.Second() != 59 {
		t.Errorf("to not normalized to end of day: %v", gotTo)
	}
}

func TestPrestartDateClauseVariants(t *testing.T) {
	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	node := dateClause("prestart", &from, nil)
	or, ok := node.(filter.Or)
	if !ok {
		t.Fatalf("expected Or, got %T", node)
	}
	if len(or.Nodes) != 3 {
		t.Fatalf("expected 3 date variants, got %d", len(or.Nodes))
	}

	// Third variant matches legacy ISO string encoding.
	strRange := or.Nodes[2].(filter.Range)
	if strRange.Field != "fecha" {
		t.Errorf("string variant field = %s, want fecha", strRange.Field)
	}
	if _, ok := strRange.From.(string); !ok {
		t.Errorf("string variant bound should be a string, got %T", strRange.From)
	}
}

func TestBuildExplicitAndGrouping(t *testing.T) {
	builder := newTestBuilder(nil)
	scope := &Scope{OwnerIDs: []string{"u1"}}
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, node, err := builder.Build(context.Background(), "prestart", scope, &from, nil, "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	and, ok := node.(filter.And)
	if !ok {
		t.Fatalf("owner and date clauses must be AND-grouped, got %T", node)
	}
	if len(and.Nodes) != 2 {
		t.Fatalf("expected 2 grouped clauses, got %d", len(and.Nodes))
	}
	if _, ok := and.Nodes[0].(filter.Eq); !ok {
		t.Errorf("first clause should be the owner equality, got %T", and.Nodes[0])
	}
	if _, ok := and.Nodes[1].(filter.Or); !ok {
		t.Errorf("second clause should be the date OR, got %T", and.Nodes[1])
	}
}

func TestBuildOwnerOnlyIsFlat(t *testing.T) {
	builder := newTestBuilder(nil)
	scope := &Scope{OwnerIDs: []string{"u1"}}

	_, node, err := builder.Build(context.Background(), "prestart", scope, nil, nil, "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := node.(filter.Eq); !ok {
		t.Errorf("single clause should not be wrapped in And, got %T", node)
	}
}

func TestMachineClauseVariants(t *testing.T) {
	if _, ok := machineClause("diesel", primitive.NewObjectID().Hex()).(filter.Eq); !ok {
		t.Error("diesel machine clause should be a typed equality")
	}

	or, ok := machineClause("prestart", "m1").(filter.Or)
	if !ok {
		t.Fatal("prestart machine clause should be an Or")
	}
	if len(or.Nodes) != 3 {
		t.Errorf("prestart machine clause should probe 3 fields, got %d", len(or.Nodes))
	}
}

func TestValidateMachineWorkplace(t *testing.T) {
	machineOID := primitive.NewObjectID()
	scope := &Scope{OwnerIDs: []string{"u1"}, Workplace: "North Quarry"}

	tests := []struct {
		name       string
		machineDoc map[string]any
		wantErr    any
	}{
		{
			name:       "Machine Missing",
			machineDoc: nil,
			wantErr:    &MachineNotFoundError{},
		},
		{
			name:       "Owned By Scope Member",
			machineDoc: map[string]any{"_id": machineOID, "userId": "u1"},
		},
		{
			name:       "Workplace Name Match",
			machineDoc: map[string]any{"_id": machineOID, "workplaceName": "North Quarry"},
		},
		{
			name:       "Wrong Workplace",
			machineDoc: map[string]any{"_id": machineOID, "workplaceName": "South Depot"},
			wantErr:    &MachineNotInWorkplaceError{},
		},
		{
			name:       "No Owner Fields At All",
			machineDoc: map[string]any{"_id": machineOID, "model": "320D"},
			wantErr:    &MachineNotInWorkplaceError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{docs: map[string][]map[string]any{}}
			if tt.machineDoc != nil {
				store.docs["machines"] = []map[string]any{tt.machineDoc}
			}
			builder := newTestBuilder(store)

			_, _, err := builder.Build(context.Background(), "prestart", scope, nil, nil, machineOID.Hex())

			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("Build() error = %v, want nil", err)
				}
			case *MachineNotFoundError:
				var e *MachineNotFoundError
				if !errors.As(err, &e) {
					t.Fatalf("expected MachineNotFoundError, got %v", err)
				}
			case *MachineNotInWorkplaceError:
				var e *MachineNotInWorkplaceError
				if !errors.As(err, &e) {
					t.Fatalf("expected MachineNotInWorkplaceError, got %v", err)
				}
			default:
				t.Fatalf("unhandled want %T", want)
			}
		})
	}
}

func TestBuildSkipsValidationWithoutWorkplace(t *testing.T) {
	// No workplace restriction: the machine filter applies without a lookup.
	store := &fakeStore{}
	builder := newTestBuilder(store)
	scope := &Scope{OwnerIDs: []string{"u1"}}

	_, node, err := builder.Build(context.Background(), "prestart", scope, nil, nil, "m1")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("no machine lookup expected, got %d store calls", len(store.calls))
	}
	if _, ok := node.(filter.And); !ok {
		t.Errorf("owner and machine clauses should be AND-grouped, got %T", node)
	}
}
