package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-fleet/internal/config"
	"go-fleet/pkg/filter"
	"go-fleet/pkg/utils"

	"go.uber.org/zap"
)

func newTestService(store *fakeStore, directory *fakeDirectory, repo *fakeDescriptorRepo) ReportService {
	if store == nil {
		store = &fakeStore{}
	}
	if directory == nil {
		directory = &fakeDirectory{}
	}
	if repo == nil {
		repo = &fakeDescriptorRepo{}
	}
	cfg := &config.Config{RetentionCap: 10}
	return NewReportService(store, directory, repo, cfg, zap.NewNop())
}

func TestGenerateTypeValidation(t *testing.T) {
	service := newTestService(nil, nil, nil)
	identity := Identity{UserID: "u1", Role: utils.RoleUser}

	_, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "  "})
	if !errors.Is(err, ErrMissingReportType) {
		t.Errorf("blank type: got %v, want ErrMissingReportType", err)
	}

	_, err = service.Generate(context.Background(), identity, GenerateRequest{Type: "bogus"})
	if !errors.Is(err, ErrInvalidReportType) {
		t.Errorf("unknown type: got %v, want ErrInvalidReportType", err)
	}

	_, err = service.Generate(context.Background(), identity, GenerateRequest{Type: "org-bogus"})
	var unsupported *UnsupportedOrganizationalTypeError
	if !errors.As(err, &unsupported) {
		t.Errorf("unknown org type: got %v, want UnsupportedOrganizationalTypeError", err)
	}
}

func TestGeneratePersonalDiesel(t *testing.T) {
	store := &fakeStore{docs: map[string][]map[string]any{
		"diesel_records": {
			{"litros": 120.5, "credentialId": "NQ-0041"},
			{"litros": 80.0, "credentialId": "NQ-0041"},
		},
	}}
	repo := &fakeDescriptorRepo{}
	service := newTestService(store, nil, repo)

	identity := Identity{UserID: "u1", Role: utils.RoleUser, CredentialID: "NQ-0041"}
	resp, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "diesel"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !resp.Success || resp.ReportID == "" {
		t.Errorf("unexpected response %+v", resp)
	}
	records, ok := resp.Data.([]FlatRecord)
	if !ok || len(records) != 2 {
		t.Fatalf("expected 2 inline records, got %T %v", resp.Data, resp.Data)
	}

	// The query must restrict to the caller's credential.
	if len(store.calls) != 1 {
		t.Fatalf("expected 1 store query, got %d", len(store.calls))
	}
	call := store.calls[0]
	if call.collection != "diesel_records" {
		t.Errorf("collection = %s, want diesel_records", call.collection)
	}
	eq, ok := call.filter.(filter.Eq)
	if !ok || eq.Field != "credentialId" || eq.Value != "NQ-0041" {
		t.Errorf("filter = %+v, want credentialId equality", call.filter)
	}

	// A descriptor was persisted for the caller.
	descriptors, _ := repo.ListFor(context.Background(), "u1")
	if len(descriptors) != 1 {
		t.Fatalf("expected 1 descriptor, got %d", len(descriptors))
	}
	if descriptors[0].Type != "diesel" || descriptors[0].RecordCount != 2 || descriptors[0].Status != "completed" {
		t.Errorf("unexpected descriptor %+v", descriptors[0])
	}
}

func TestGenerateDieselWithDatesAndMachine(t *testing.T) {
	store := &fakeStore{docs: map[string][]map[string]any{
		"diesel_records": {{"litros": 120.5, "credentialId": "NQ-0041"}},
	}}
	service := newTestService(store, nil, nil)

	identity := Identity{UserID: "u1", Role: utils.RoleUser, CredentialID: "NQ-0041"}
	req := GenerateRequest{
		Type:      "diesel",
		FromDate:  "2024-05-01",
		ToDate:    "2024-05-31",
		MachineID: "M-77",
	}
	if _, err := service.Generate(context.Background(), identity, req); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(store.calls) != 1 {
		t.Fatalf("expected 1 store query, got %d", len(store.calls))
	}
	and, ok := store.calls[0].filter.(filter.And)
	if !ok || len(and.Nodes) != 3 {
		t.Fatalf("expected owner AND date AND machine, got %+v", store.calls[0].filter)
	}

	owner, ok := and.Nodes[0].(filter.Eq)
	if !ok || owner.Field != "credentialId" || owner.Value != "NQ-0041" {
		t.Errorf("owner clause = %+v, want credentialId equality", and.Nodes[0])
	}

	dates, ok := and.Nodes[1].(filter.Range)
	if !ok || dates.Field != "fecha" {
		t.Fatalf("date clause = %+v, want fecha range", and.Nodes[1])
	}
	from := dates.From.(time.Time)
	if from.Day() != 1 || from.Hour() != 0 {
		t.Errorf("from not normalized to start of day: %v", from)
	}
	to := dates.To.(time.Time)
	if to.Day() != 31 || to.Hour() != 23 {
		t.Errorf("to not normalized to end of day: %v", to)
	}

	machine, ok := and.Nodes[2].(filter.Eq)
	if !ok || machine.Field != "maquinaId" || machine.Value != "M-77" {
		t.Errorf("machine clause = %+v, want maquinaId equality", and.Nodes[2])
	}
}

func TestGenerateUserOrganizationalAggregatesSelf(t *testing.T) {
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{docs: map[string][]map[string]any{
		"prestart": {{"userId": "u1", "createdAt": created}},
	}}
	repo := &fakeDescriptorRepo{}
	service := newTestService(store, nil, repo)

	// A regular user asking for the organizational aggregate gets a single
	// row covering their own activity, never a silently empty report.
	identity := Identity{UserID: "u1", Role: utils.RoleUser, CredentialID: "NQ-0041"}
	resp, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "organizational"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(store.calls) == 0 {
		t.Fatal("expected per-category queries to run")
	}

	rows, ok := resp.Data.([]PerUserRow)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one self row, got %T %v", resp.Data, resp.Data)
	}
	if rows[0].UserID != "u1" {
		t.Errorf("row user = %s, want u1", rows[0].UserID)
	}
	if rows[0].PrestartCount != 1 {
		t.Errorf("prestart count = %d, want 1", rows[0].PrestartCount)
	}
	if rows[0].LastActivity == nil || !rows[0].LastActivity.Equal(created) {
		t.Errorf("last activity = %v, want %v", rows[0].LastActivity, created)
	}
	if resp.Summary == nil || resp.Summary.TotalUsers != 1 || resp.Summary.TotalPrestart != 1 {
		t.Errorf("unexpected summary %+v", resp.Summary)
	}

	descriptors, _ := repo.ListFor(context.Background(), "u1")
	if len(descriptors) != 1 || descriptors[0].RecordCount != 1 {
		t.Fatalf("unexpected descriptors %+v", descriptors)
	}
}

func TestGenerateNormalizesServicesAlias(t *testing.T) {
	store := &fakeStore{docs: map[string][]map[string]any{"services": {}}}
	repo := &fakeDescriptorRepo{}
	service := newTestService(store, nil, repo)

	identity := Identity{UserID: "u1", Role: utils.RoleUser}
	if _, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "services"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if store.calls[0].collection != "services" {
		t.Errorf("collection = %s, want services", store.calls[0].collection)
	}
	descriptors, _ := repo.ListFor(context.Background(), "u1")
	if descriptors[0].Type != "service" {
		t.Errorf("descriptor type = %s, want the normalized singular", descriptors[0].Type)
	}
}

func TestGenerateOrganizationalGeneric(t *testing.T) {
	directory := &fakeDirectory{members: []Member{
		{ID: "u1", Name: "Pedro", Workplace: "North Quarry"},
		{ID: "u2", Name: "Lucia", Workplace: "South Depot"},
	}}
	store := &fakeStore{}
	repo := &fakeDescriptorRepo{}
	service := newTestService(store, directory, repo)

	identity := Identity{UserID: "admin", Role: utils.RoleAdmin, OrganizationID: "org1"}
	resp, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "organizational", Category: "all"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	rows, ok := resp.Data.([]PerUserRow)
	if !ok || len(rows) != 2 {
		t.Fatalf("expected per-user rows, got %T", resp.Data)
	}
	if resp.Summary == nil || resp.Summary.TotalUsers != 2 {
		t.Errorf("unexpected summary %+v", resp.Summary)
	}

	descriptors, _ := repo.ListFor(context.Background(), "admin")
	if len(descriptors) != 1 || descriptors[0].Type != "organizational" {
		t.Fatalf("unexpected descriptors %+v", descriptors)
	}
	if descriptors[0].RecordCount != 2 {
		t.Errorf("record count = %d, want rows count", descriptors[0].RecordCount)
	}
}

func TestGenerateOrganizationalSpecificOmitsInlineData(t *testing.T) {
	directory := &fakeDirectory{members: []Member{{ID: "u1", Name: "Pedro"}}}
	store := &fakeStore{docs: map[string][]map[string]any{
		"prestart": {{"userId": "u1"}, {"userId": "u1"}},
	}}
	service := newTestService(store, directory, &fakeDescriptorRepo{})

	identity := Identity{UserID: "admin", Role: utils.RoleAdmin, OrganizationID: "org1"}
	resp, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "prestart"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if resp.Data != nil {
		t.Errorf("organizational specific reports should not inline data, got %v", resp.Data)
	}
	if resp.DataLength != 2 {
		t.Errorf("DataLength = %d, want 2", resp.DataLength)
	}
}

func TestGenerateEmptyWorkplaceDoesNotPersist(t *testing.T) {
	directory := &fakeDirectory{members: []Member{{ID: "u1", Workplace: "South Depot"}}}
	repo := &fakeDescriptorRepo{}
	service := newTestService(nil, directory, repo)

	identity := Identity{UserID: "admin", Role: utils.RoleAdmin, OrganizationID: "org1"}
	_, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "prestart", Workplace: "Ghost Site"})

	var emptyErr *EmptyWorkplaceError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyWorkplaceError, got %v", err)
	}
	if len(repo.descriptors) != 0 {
		t.Error("failed generations must not persist descriptors")
	}
}

func TestGenerateEnforcesRetentionBeforeSave(t *testing.T) {
	store := &fakeStore{docs: map[string][]map[string]any{"diesel_records": {}}}
	repo := &fakeDescriptorRepo{}
	seedDescriptors(repo, "u1", 10)
	service := newTestService(store, nil, repo)

	identity := Identity{UserID: "u1", Role: utils.RoleUser}
	if _, err := service.Generate(context.Background(), identity, GenerateRequest{Type: "diesel"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// 10 existing, cap 10: one pruned, then the new one lands at exactly 10.
	count, _ := repo.CountFor(context.Background(), "u1")
	if count != 10 {
		t.Errorf("descriptors after generation = %d, want 10", count)
	}

	var sawDelete, sawSave bool
	for _, op := range repo.ops {
		if op == "delete" {
			if sawSave {
				t.Error("pruning must happen before the new descriptor is saved")
			}
			sawDelete = true
		}
		if op == "save" {
			sawSave = true
		}
	}
	if !sawDelete || !sawSave {
		t.Errorf("expected both delete and save, ops = %v", repo.ops)
	}
}

func TestResolveDates(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Explicit Dates Win Over Range", func(t *testing.T) {
		req := GenerateRequest{FromDate: "2024-05-01", ToDate: "2024-05-31", DateRange: "year"}
		from, to, err := resolveDates(req, now)
		if err != nil {
			t.Fatalf("resolveDates() error = %v", err)
		}
		if from == nil || from.Month() != time.May || from.Day() != 1 {
			t.Errorf("from = %v", from)
		}
		if to == nil || to.Day() != 31 {
			t.Errorf("to = %v", to)
		}
	})

	t.Run("RFC3339 Accepted", func(t *testing.T) {
		req := GenerateRequest{FromDate: "2024-05-01T10:30:00Z"}
		from, _, err := resolveDates(req, now)
		if err != nil || from == nil {
			t.Fatalf("resolveDates() = %v, %v", from, err)
		}
	})

	t.Run("Invalid Date Rejected", func(t *testing.T) {
		if _, _, err := resolveDates(GenerateRequest{FromDate: "05/01/2024"}, now); err == nil {
			t.Error("expected error for unsupported layout")
		}
	})

	t.Run("Named Ranges", func(t *testing.T) {
		ranges := map[string]time.Time{
			"week":    now.AddDate(0, 0, -7),
			"month":   now.AddDate(0, -1, 0),
			"quarter": now.AddDate(0, -3, 0),
			"year":    now.AddDate(-1, 0, 0),
		}
		for name, wantStart := range ranges {
			from, to, err := resolveDates(GenerateRequest{DateRange: name}, now)
			if err != nil {
				t.Fatalf("resolveDates(%s) error = %v", name, err)
			}
			if from == nil || !from.Equal(wantStart) {
				t.Errorf("%s from = %v, want %v", name, from, wantStart)
			}
			if to == nil || !to.Equal(now) {
				t.Errorf("%s to = %v, want now", name, to)
			}
		}
	})

	t.Run("No Dates Means Unbounded", func(t *testing.T) {
		from, to, err := resolveDates(GenerateRequest{}, now)
		if err != nil || from != nil || to != nil {
			t.Errorf("resolveDates() = %v, %v, %v; want nil bounds", from, to, err)
		}
	})
}

func TestDownloadOwnership(t *testing.T) {
	store := &fakeStore{docs: map[string][]map[string]any{
		"diesel_records": {{"litros": 120.5, "userId": "u1"}},
	}}
	repo := &fakeDescriptorRepo{}
	service := newTestService(store, nil, repo)

	owner := Identity{UserID: "u1", Role: utils.RoleUser}
	resp, err := service.Generate(context.Background(), owner, GenerateRequest{Type: "diesel"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// The owner can download their report.
	data, filename, err := service.Download(context.Background(), owner, resp.ReportID, "csv")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if len(data) == 0 || filename == "" {
		t.Error("expected CSV payload and filename")
	}

	// Another regular user cannot.
	other := Identity{UserID: "u2", Role: utils.RoleUser}
	if _, _, err := service.Download(context.Background(), other, resp.ReportID, "csv"); err == nil {
		t.Error("foreign user download should fail")
	}

	// An admin can.
	admin := Identity{UserID: "boss", Role: utils.RoleAdmin}
	if _, _, err := service.Download(context.Background(), admin, resp.ReportID, "csv"); err != nil {
		t.Errorf("admin download failed: %v", err)
	}
}

func TestDeleteDescriptorOwnership(t *testing.T) {
	repo := &fakeDescriptorRepo{}
	seedDescriptors(repo, "u1", 1)
	id := repo.descriptors[0].ID.Hex()
	service := newTestService(nil, nil, repo)

	if err := service.DeleteDescriptor(context.Background(), Identity{UserID: "u2", Role: utils.RoleUser}, id); err == nil {
		t.Error("foreign user delete should fail")
	}
	if err := service.DeleteDescriptor(context.Background(), Identity{UserID: "u1", Role: utils.RoleUser}, id); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if len(repo.descriptors) != 0 {
		t.Error("descriptor should be gone")
	}
}
