package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// LegacyFuelRow is one dispatch line from the old depot Postgres system.
type LegacyFuelRow struct {
	MachineCode string
	Operator    string
	Liters      float64
	HourMeter   float64
	DispensedAt time.Time
}

// LegacyFuelSource reads fuel dispatch history from the Postgres database
// that ran the depots before everything moved to Mongo. It is only wired
// when LEGACY_FUEL_DSN is set.
type LegacyFuelSource struct {
	db *sql.DB
}

func NewLegacyFuelSource(dsn string) (*LegacyFuelSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open legacy fuel db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping legacy fuel db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(time.Minute)
	return &LegacyFuelSource{db: db}, nil
}

// FetchSince returns dispatch rows recorded after the given cutoff,
// oldest first so imports can resume from the last imported timestamp.
func (s *LegacyFuelSource) FetchSince(ctx context.Context, since time.Time, limit int) ([]LegacyFuelRow, error) {
	if limit <= 0 {
		limit = 500
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT machine_code, operator_name, liters, hour_meter, dispensed_at
		FROM fuel_dispatch
		WHERE dispensed_at > $1
		ORDER BY dispensed_at ASC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query fuel_dispatch: %w", err)
	}
	defer rows.Close()

	var out []LegacyFuelRow
	for rows.Next() {
		var row LegacyFuelRow
		var operator sql.NullString
		var hourMeter sql.NullFloat64
		if err := rows.Scan(&row.MachineCode, &operator, &row.Liters, &hourMeter, &row.DispensedAt); err != nil {
			return nil, fmt.Errorf("scan fuel_dispatch row: %w", err)
		}
		row.Operator = operator.String
		row.HourMeter = hourMeter.Float64
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *LegacyFuelSource) Close() error {
	return s.db.Close()
}
