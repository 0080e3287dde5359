package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-fleet/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Bound on concurrent per-user aggregation queries.
const orgReportWorkers = 8

// Sub-collections an organizational generic report can aggregate.
var categoryCollections = map[string]string{
	"prestart": "prestart",
	"machine":  "machines",
	"diesel":   "diesel_records",
}

type Executor struct {
	store DocumentStore
	log   *zap.Logger
}

func NewExecutor(store DocumentStore, log *zap.Logger) *Executor {
	return &Executor{store: store, log: log}
}

// Execute runs a personal report: find everything matching, flatten each row.
func (e *Executor) Execute(ctx context.Context, collection string, f filter.Node) ([]FlatRecord, error) {
	docs, err := e.store.Find(ctx, collection, f)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		// Diagnostic fallback: an empty result against a misnamed collection
		// looks identical to genuinely-no-data, so list what actually exists.
		if names, listErr := e.store.ListCollections(ctx); listErr == nil {
			e.log.Debug("report query returned no documents",
				zap.String("collection", collection),
				zap.Strings("availableCollections", names))
		}
	}

	records := make([]FlatRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, Flatten(doc))
	}
	return records, nil
}

// ExecuteOrganizational aggregates per user: record counts per sub-collection
// plus the most recent activity. Users with zero matching records still get a
// row. The per-user queries are independent and run on a bounded worker pool;
// results are collected before sorting so the documented ordering holds.
func (e *Executor) ExecuteOrganizational(ctx context.Context, members []Member, category string, dateFrom, dateTo *time.Time) ([]PerUserRow, *OrgSummary, error) {
	included := includedCategories(category)
	rows := make([]PerUserRow, len(members))

	var wg sync.WaitGroup
	sem := make(chan struct{}, orgReportWorkers)
	for i, member := range members {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, member Member) {
			defer wg.Done()
			defer func() { <-sem }()
			rows[i] = e.aggregateUser(ctx, member, included, dateFrom, dateTo)
		}(i, member)
	}
	wg.Wait()

	// Most recent activity first, users with none last. The sort is stable
	// so ties keep directory order.
	sort.SliceStable(rows, func(a, b int) bool {
		left, right := rows[a].LastActivity, rows[b].LastActivity
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.After(*right)
	})

	summary := &OrgSummary{TotalUsers: len(members)}
	for _, row := range rows {
		summary.TotalPrestart += row.PrestartCount
		summary.TotalMachines += row.MachineCount
		summary.TotalDiesel += row.DieselCount
	}
	return rows, summary, nil
}

func (e *Executor) aggregateUser(ctx context.Context, member Member, categories []string, dateFrom, dateTo *time.Time) PerUserRow {
	row := PerUserRow{
		UserID:    member.ID,
		UserName:  member.Name,
		Workplace: member.Workplace,
	}

	// Single-member scope; kept organizational so owner matching stays on
	// userId rather than switching to credential equality.
	userScope := &Scope{OwnerIDs: []string{member.ID}, IsOrganizational: true}

	for _, category := range categories {
		reportType := category
		collection := categoryCollections[category]

		parts := []filter.Node{ownerClause(reportType, userScope)}
		if clause := dateClause(reportType, dateFrom, dateTo); clause != nil {
			parts = append(parts, clause)
		}

		docs, err := e.store.Find(ctx, collection, filter.NewAnd(parts...))
		if err != nil {
			e.log.Warn("per-user aggregation query failed",
				zap.String("userId", member.ID),
				zap.String("collection", collection),
				zap.Error(err))
			continue
		}

		switch category {
		case "prestart":
			row.PrestartCount = len(docs)
		case "machine":
			row.MachineCount = len(docs)
		case "diesel":
			row.DieselCount = len(docs)
		}

		for _, doc := range docs {
			if created, ok := asTime(doc["createdAt"]); ok {
				if row.LastActivity == nil || created.After(*row.LastActivity) {
					t := created
					row.LastActivity = &t
				}
			}
		}
	}
	return row
}

// ExecuteOrganizationalSpecific runs one collection-wide query over the full
// owner set, then denormalizes userName/workplaceName onto each row from the
// member list. Rows whose owner cannot be resolved get placeholder labels
// instead of failing the report.
func (e *Executor) ExecuteOrganizationalSpecific(ctx context.Context, members []Member, collection string, f filter.Node) ([]FlatRecord, error) {
	docs, err := e.store.Find(ctx, collection, f)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	records := make([]FlatRecord, 0, len(docs))
	for _, doc := range docs {
		userName, workplaceName := "Unknown", "N/A"
		if owner, ok := ResolveField(doc, FieldOwner); ok {
			if member, found := byID[idString(owner)]; found {
				userName = member.Name
				if member.Workplace != "" {
					workplaceName = member.Workplace
				}
			}
		}
		record := Flatten(doc)
		record["userName"] = userName
		record["workplaceName"] = workplaceName
		records = append(records, record)
	}
	return records, nil
}

func includedCategories(category string) []string {
	switch category {
	case "prestart", "machine", "diesel":
		return []string{category}
	default: // "all", "" and anything unrecognized aggregate everything
		return []string{"prestart", "machine", "diesel"}
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
