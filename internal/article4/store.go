package article4

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store wraps the locally replicated postcode district table.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS article4_postcodes(
		id SERIAL PRIMARY KEY,
		district TEXT NOT NULL UNIQUE,
		in_article4 BOOLEAN NOT NULL,
		area_name TEXT NOT NULL DEFAULT '',
		council TEXT NOT NULL DEFAULT '',
		confidence DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed creating article4_postcodes table: %w", err)
	}

	return nil
}

// SelectDistrict reads the row for a postcode district. Returns
// nil when the district is not replicated locally.
func (s *Store) SelectDistrict(ctx context.Context, district string) (*Entity, error) {
	e := Entity{District: district}
	err := e.SelectWhereDistrict(ctx, s.DB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (s *Store) UpsertDistrict(ctx context.Context, e *Entity) error {
	return e.Insert(ctx, s.DB)
}

// Stats summarizes the table for the health endpoint:
// row count and the fraction of rows at or above the
// reconciler's acceptance threshold.
type Stats struct {
	Count          int     `json:"count"`
	ConfidenceRate float64 `json:"confidence_rate"`
}

func (s *Store) SelectStats(ctx context.Context) (Stats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(AVG(CASE WHEN confidence >= $1 THEN 1.0 ELSE 0.0 END), 0)
		FROM article4_postcodes`

	var stats Stats
	err := s.DB.QueryRowContext(ctx, query, TargetThreshold).Scan(&stats.Count, &stats.ConfidenceRate)
	if err != nil {
		return Stats{}, fmt.Errorf("failed selecting article4_postcodes stats: %w", err)
	}

	return stats, nil
}
