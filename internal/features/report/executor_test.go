package report

import (
	"context"
	"testing"
	"time"

	"go-fleet/pkg/filter"

	"go.uber.org/zap"
)

// ownerOf digs the single-user owner id out of a per-user aggregation filter.
func ownerOf(t *testing.T, node filter.Node) string {
	t.Helper()
	switch v := node.(type) {
	case filter.Eq:
		return idString(v.Value)
	case filter.And:
		return ownerOf(t, v.Nodes[0])
	default:
		t.Fatalf("unexpected filter shape %T", node)
		return ""
	}
}

func TestExecuteOrganizational(t *testing.T) {
	members := []Member{
		{ID: "u1", Name: "Pedro", Workplace: "North Quarry"},
		{ID: "u2", Name: "Lucia", Workplace: "South Depot"},
		{ID: "u3", Name: "Idle", Workplace: "South Depot"},
	}

	older := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

	activity := map[string]map[string][]map[string]any{
		"u1": {
			"prestart":       {{"createdAt": older}},
			"diesel_records": {{"createdAt": newer}},
		},
		"u2": {
			"prestart": {{"createdAt": older}, {"createdAt": older.Add(time.Hour)}},
			"machines": {{"createdAt": older}},
		},
		// u3 has no records at all.
	}

	store := &fakeStore{}
	store.findFunc = func(collection string, f filter.Node) ([]map[string]any, error) {
		owner := ownerOf(t, f)
		return activity[owner][collection], nil
	}

	executor := NewExecutor(store, zap.NewNop())
	rows, summary, err := executor.ExecuteOrganizational(context.Background(), members, "all", nil, nil)
	if err != nil {
		t.Fatalf("ExecuteOrganizational() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("every member gets a row, got %d", len(rows))
	}

	// Most recent activity first, the inactive user last.
	if rows[0].UserID != "u1" || rows[1].UserID != "u2" || rows[2].UserID != "u3" {
		t.Errorf("unexpected order: %s, %s, %s", rows[0].UserID, rows[1].UserID, rows[2].UserID)
	}
	if rows[2].LastActivity != nil {
		t.Errorf("inactive user should have nil last activity, got %v", rows[2].LastActivity)
	}
	if rows[0].LastActivity == nil || !rows[0].LastActivity.Equal(newer) {
		t.Errorf("last activity should be the max across categories, got %v", rows[0].LastActivity)
	}

	if rows[1].PrestartCount != 2 || rows[1].MachineCount != 1 || rows[1].DieselCount != 0 {
		t.Errorf("unexpected counts for u2: %+v", rows[1])
	}

	if summary.TotalUsers != 3 || summary.TotalPrestart != 3 || summary.TotalMachines != 1 || summary.TotalDiesel != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestExecuteOrganizationalStableTies(t *testing.T) {
	members := []Member{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	same := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{}
	store.findFunc = func(collection string, f filter.Node) ([]map[string]any, error) {
		if collection != "prestart" {
			return nil, nil
		}
		return []map[string]any{{"createdAt": same}}, nil
	}

	executor := NewExecutor(store, zap.NewNop())
	rows, _, err := executor.ExecuteOrganizational(context.Background(), members, "prestart", nil, nil)
	if err != nil {
		t.Fatalf("ExecuteOrganizational() error = %v", err)
	}

	// Equal timestamps keep directory order.
	for i, want := range []string{"a", "b", "c"} {
		if rows[i].UserID != want {
			t.Errorf("row %d = %s, want %s", i, rows[i].UserID, want)
		}
	}
}

func TestExecuteOrganizationalCategoryFilter(t *testing.T) {
	store := &fakeStore{}
	var queried []string
	store.findFunc = func(collection string, f filter.Node) ([]map[string]any, error) {
		queried = append(queried, collection)
		return nil, nil
	}

	executor := NewExecutor(store, zap.NewNop())
	if _, _, err := executor.ExecuteOrganizational(context.Background(), []Member{{ID: "u1"}}, "diesel", nil, nil); err != nil {
		t.Fatalf("ExecuteOrganizational() error = %v", err)
	}

	if len(queried) != 1 || queried[0] != "diesel_records" {
		t.Errorf("category filter should restrict queries, got %v", queried)
	}
}

func TestExecuteOrganizationalSpecific(t *testing.T) {
	members := []Member{
		{ID: "u1", Name: "Pedro", Workplace: "North Quarry"},
		{ID: "u2", Name: "Lucia", Workplace: ""},
	}
	store := &fakeStore{docs: map[string][]map[string]any{
		"prestart": {
			{"userId": "u1", "estado": "ok"},
			{"userId": "u2", "estado": "ok"},
			{"userId": "ghost", "estado": "ok"},
			{"estado": "no owner"},
		},
	}}

	executor := NewExecutor(store, zap.NewNop())
	records, err := executor.ExecuteOrganizationalSpecific(context.Background(), members, "prestart", filter.All{})
	if err != nil {
		t.Fatalf("ExecuteOrganizationalSpecific() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	if records[0]["userName"] != "Pedro" || records[0]["workplaceName"] != "North Quarry" {
		t.Errorf("member rows should be enriched, got %v", records[0])
	}
	if records[1]["userName"] != "Lucia" || records[1]["workplaceName"] != "N/A" {
		t.Errorf("empty workplace should fall back to N/A, got %v", records[1])
	}
	if records[2]["userName"] != "Unknown" || records[2]["workplaceName"] != "N/A" {
		t.Errorf("unknown owner should get placeholders, got %v", records[2])
	}
	if records[3]["userName"] != "Unknown" {
		t.Errorf("ownerless row should get placeholders, got %v", records[3])
	}
}

func TestExecuteFlattensRows(t *testing.T) {
	store := &fakeStore{docs: map[string][]map[string]any{
		"prestart": {
			{"datos": map[string]any{"fecha": "2024-05-01"}, "obs": nil},
		},
	}}

	executor := NewExecutor(store, zap.NewNop())
	records, err := executor.Execute(context.Background(), "prestart", filter.All{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["datos.fecha"] != "2024-05-01" {
		t.Errorf("nested fields should be flattened, got %v", records[0])
	}
	if records[0]["obs"] != "" {
		t.Errorf("nil should flatten to empty string, got %v", records[0]["obs"])
	}
}
