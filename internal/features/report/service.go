package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-fleet/internal/config"
	"go-fleet/pkg/filter"
	"go-fleet/pkg/utils"

	"go.uber.org/zap"
)

type ReportService interface {
	Generate(ctx context.Context, identity Identity, req GenerateRequest) (*GenerateResponse, error)
	ListDescriptors(ctx context.Context, identity Identity) ([]Descriptor, error)
	Download(ctx context.Context, identity Identity, id, format string) ([]byte, string, error)
	DeleteDescriptor(ctx context.Context, identity Identity, id string) error
	EnforceRetention(ctx context.Context, userID string)
	AllDescriptorOwners(ctx context.Context) ([]string, error)
}

type ReportServiceImpl struct {
	Descriptors DescriptorRepository
	Scope       *ScopeResolver
	Builder     *QueryBuilder
	Exec        *Executor
	Retention   *RetentionManager
	Log         *zap.Logger
}

func NewReportService(store DocumentStore, directory UserDirectory, descriptors DescriptorRepository, cfg *config.Config, log *zap.Logger) ReportService {
	return &ReportServiceImpl{
		Descriptors: descriptors,
		Scope:       NewScopeResolver(directory, log),
		Builder:     NewQueryBuilder(store, log),
		Exec:        NewExecutor(store, log),
		Retention:   NewRetentionManager(descriptors, cfg.RetentionCap, log),
		Log:         log,
	}
}

// runResult is the outcome of executing a report, before persistence.
type runResult struct {
	Type      string
	Category  string
	DateFrom  *time.Time
	DateTo    *time.Time
	MachineID string
	Workplace string
	Records   []FlatRecord
	Rows      []PerUserRow
	Summary   *OrgSummary
	Query     string
	Org       bool
}

func (s *ReportServiceImpl) Generate(ctx context.Context, identity Identity, req GenerateRequest) (*GenerateResponse, error) {
	result, err := s.run(ctx, identity, req)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = "json"
	}

	descriptor := &Descriptor{
		Type:      result.Type,
		Category:  result.Category,
		UserID:    identity.UserID,
		DateFrom:  result.DateFrom,
		DateTo:    result.DateTo,
		MachineID: result.MachineID,
		Workplace: result.Workplace,
		Format:    format,
		Query:     result.Query,
		Status:    "completed",
	}

	switch {
	case result.Rows != nil:
		descriptor.RecordCount = len(result.Rows)
	default:
		descriptor.RecordCount = len(result.Records)
	}

	// Prune before insert so the new descriptor lands within the cap.
	// Pruning failures are logged inside Enforce and never block generation.
	s.Retention.Enforce(ctx, identity.UserID)

	reportID, err := s.Descriptors.Save(ctx, descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to save report descriptor: %w", err)
	}

	s.Log.Info("report generated",
		zap.String("userId", identity.UserID),
		zap.String("reportId", reportID),
		zap.String("type", result.Type),
		zap.Int("recordCount", descriptor.RecordCount))

	if result.Rows != nil {
		return &GenerateResponse{
			Success:  true,
			ReportID: reportID,
			Message:  "Organizational report generated successfully",
			Data:     result.Rows,
			Summary:  result.Summary,
		}, nil
	}
	if result.Org {
		// Organizational specific-type reports can be large; rows are
		// retrievable through the download endpoint instead of inline.
		return &GenerateResponse{
			Success:    true,
			ReportID:   reportID,
			Message:    "Report generated successfully",
			DataLength: len(result.Records),
		}, nil
	}
	return &GenerateResponse{
		Success:  true,
		ReportID: reportID,
		Message:  "Report generated successfully",
		Data:     result.Records,
	}, nil
}

func (s *ReportServiceImpl) run(ctx context.Context, identity Identity, req GenerateRequest) (*runResult, error) {
	reportType := strings.TrimSpace(req.Type)
	if reportType == "" {
		return nil, ErrMissingReportType
	}

	forceOrg := false
	if strings.HasPrefix(reportType, "org-") {
		reportType = strings.TrimPrefix(reportType, "org-")
		forceOrg = true
	}
	if reportType == "services" {
		reportType = "service"
	}

	if reportType != "organizational" {
		if _, ok := reportCollections[reportType]; !ok {
			if forceOrg {
				return nil, &UnsupportedOrganizationalTypeError{Type: req.Type}
			}
			return nil, ErrInvalidReportType
		}
	}

	req.IsOrganizational = req.IsOrganizational || forceOrg

	dateFrom, dateTo, err := resolveDates(req, time.Now())
	if err != nil {
		return nil, err
	}

	scope, err := s.Scope.Resolve(ctx, identity, req)
	if err != nil {
		return nil, err
	}

	result := &runResult{
		Type:      reportType,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		MachineID: req.MachineID,
		Workplace: scope.Workplace,
	}

	if reportType == "organizational" {
		rows, summary, err := s.Exec.ExecuteOrganizational(ctx, scope.Members, req.Category, dateFrom, dateTo)
		if err != nil {
			return nil, err
		}
		result.Category = req.Category
		result.Rows = rows
		result.Summary = summary
		result.Org = true
		return result, nil
	}

	collection, node, err := s.Builder.Build(ctx, reportType, scope, dateFrom, dateTo, req.MachineID)
	if err != nil {
		return nil, err
	}
	result.Query = filter.MarshalJSON(node)

	if scope.IsOrganizational {
		records, err := s.Exec.ExecuteOrganizationalSpecific(ctx, scope.Members, collection, node)
		if err != nil {
			return nil, err
		}
		result.Records = records
		result.Org = true
		return result, nil
	}

	records, err := s.Exec.Execute(ctx, collection, node)
	if err != nil {
		return nil, err
	}
	result.Records = records
	return result, nil
}

func (s *ReportServiceImpl) ListDescriptors(ctx context.Context, identity Identity) ([]Descriptor, error) {
	return s.Descriptors.ListFor(ctx, identity.UserID)
}

// Download re-executes a stored report from its descriptor parameters and
// renders the rows as CSV or Excel.
func (s *ReportServiceImpl) Download(ctx context.Context, identity Identity, id, format string) ([]byte, string, error) {
	descriptor, err := s.Descriptors.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if descriptor == nil {
		return nil, "", fmt.Errorf("report '%s' not found", id)
	}
	if descriptor.UserID != identity.UserID && identity.Role == utils.RoleUser {
		return nil, "", fmt.Errorf("report '%s' not found", id)
	}

	req := GenerateRequest{
		Type:      descriptor.Type,
		Category:  descriptor.Category,
		MachineID: descriptor.MachineID,
		Workplace: descriptor.Workplace,
	}
	if descriptor.Workplace == "" && descriptor.Type == "organizational" {
		req.IsOrganizational = true
	}
	if descriptor.DateFrom != nil {
		req.FromDate = descriptor.DateFrom.Format("2006-01-02")
	}
	if descriptor.DateTo != nil {
		req.ToDate = descriptor.DateTo.Format("2006-01-02")
	}

	result, err := s.run(ctx, identity, req)
	if err != nil {
		return nil, "", err
	}

	records := result.Records
	if result.Rows != nil {
		records = perUserRowsToRecords(result.Rows)
	}

	filename := fmt.Sprintf("%s_report_%s", result.Type, time.Now().Format("20060102_150405"))
	switch format {
	case "xlsx", "excel":
		return ExportExcel(records, filename)
	default:
		data, err := ExportCSV(records)
		return data, filename + ".csv", err
	}
}

func (s *ReportServiceImpl) DeleteDescriptor(ctx context.Context, identity Identity, id string) error {
	descriptor, err := s.Descriptors.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if descriptor == nil {
		return fmt.Errorf("report '%s' not found", id)
	}
	if descriptor.UserID != identity.UserID && identity.Role == utils.RoleUser {
		return fmt.Errorf("report '%s' not found", id)
	}
	_, err = s.Descriptors.DeleteByIDs(ctx, []string{id})
	return err
}

// EnforceRetention re-applies the descriptor cap for one user. Used by the
// housekeeping sweep.
func (s *ReportServiceImpl) EnforceRetention(ctx context.Context, userID string) {
	s.Retention.Enforce(ctx, userID)
}

func (s *ReportServiceImpl) AllDescriptorOwners(ctx context.Context) ([]string, error) {
	return s.Descriptors.DistinctUserIDs(ctx)
}

// resolveDates returns the inclusive calendar bounds of the report. Explicit
// dates win; the named dateRange shortcut applies only when both are absent.
func resolveDates(req GenerateRequest, now time.Time) (*time.Time, *time.Time, error) {
	parse := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, value); err == nil {
				return &t, nil
			}
		}
		return nil, fmt.Errorf("invalid date '%s'", value)
	}

	from, err := parse(req.FromDate)
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(req.ToDate)
	if err != nil {
		return nil, nil, err
	}
	if from != nil || to != nil {
		return from, to, nil
	}

	var start time.Time
	switch req.DateRange {
	case "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "quarter":
		start = now.AddDate(0, -3, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	default:
		return nil, nil, nil
	}
	return &start, &now, nil
}

func perUserRowsToRecords(rows []PerUserRow) []FlatRecord {
	records := make([]FlatRecord, 0, len(rows))
	for _, row := range rows {
		record := FlatRecord{
			"userId":        row.UserID,
			"userName":      row.UserName,
			"workplace":     row.Workplace,
			"prestartCount": row.PrestartCount,
			"machineCount":  row.MachineCount,
			"dieselCount":   row.DieselCount,
		}
		if row.LastActivity != nil {
			record["lastActivity"] = *row.LastActivity
		} else {
			record["lastActivity"] = ""
		}
		records = append(records, record)
	}
	return records
}
