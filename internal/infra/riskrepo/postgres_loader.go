package riskrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/safeland/internal/domain/risk"
)

// Schema is the table the loader reads. Locations are matched case-insensitively.
const Schema = `
CREATE TABLE IF NOT EXISTS curated_risk (
	location       TEXT PRIMARY KEY,
	flood_risk     DOUBLE PRECISION NOT NULL,
	landslide_risk DOUBLE PRECISION NOT NULL,
	description    TEXT NOT NULL,
	source         TEXT,
	lat            DOUBLE PRECISION,
	lon            DOUBLE PRECISION,
	last_updated   DATE
)`

// Row is one curated_risk record.
type Row struct {
	Location      string     `db:"location"`
	FloodRisk     float64    `db:"flood_risk"`
	LandslideRisk float64    `db:"landslide_risk"`
	Description   string     `db:"description"`
	Source        *string    `db:"source"`
	Lat           *float64   `db:"lat"`
	Lon           *float64   `db:"lon"`
	LastUpdated   *time.Time `db:"last_updated"`
}

// PostgresLoader reads the curated table once at startup.
type PostgresLoader struct {
	pool *pgxpool.Pool
}

// NewPostgresLoader constructs the loader.
func NewPostgresLoader(pool *pgxpool.Pool) *PostgresLoader {
	return &PostgresLoader{pool: pool}
}

// Load returns every curated record keyed by normalized location.
func (l *PostgresLoader) Load(ctx context.Context) (risk.Table, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT location, flood_risk, landslide_risk, description, source, lat, lon, last_updated
		FROM curated_risk
	`)
	if err != nil {
		return nil, fmt.Errorf("query curated risk: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[Row])
	if err != nil {
		return nil, fmt.Errorf("scan curated risk: %w", err)
	}
	return ToTable(records), nil
}

// ToTable normalizes keys and clamps scores to the risk scale at one decimal.
// Sources other than the two known labels are reported as the risk database.
func ToTable(rows []Row) risk.Table {
	table := make(risk.Table, len(rows))
	for _, row := range rows {
		key := risk.NormalizeKey(row.Location)
		if key == "" {
			continue
		}
		record := risk.Record{
			FloodRisk:     risk.Round1(risk.Clamp(row.FloodRisk)),
			LandslideRisk: risk.Round1(risk.Clamp(row.LandslideRisk)),
			Description:   row.Description,
			Source:        risk.SourceDatabase,
		}
		if row.Source != nil && *row.Source == risk.SourceDynamic {
			record.Source = risk.SourceDynamic
		}
		if row.Lat != nil && row.Lon != nil {
			record.Coordinates = &risk.Coordinates{Lat: *row.Lat, Lon: *row.Lon}
		}
		if row.LastUpdated != nil {
			record.LastUpdated = row.LastUpdated.Format(time.DateOnly)
		}
		table[key] = record
	}
	return table
}
