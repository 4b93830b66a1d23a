package article4

import (
	"context"
	"database/sql"
	"time"

	"github.com/propscout/hmo-app/internal/area"
)

// Entity is one row of the locally replicated postcode district
// lookup table. Rows carry their own confidence: districts
// replicated from authoritative council data score high, ones
// inferred from coarse sources score low.
type Entity struct {
	ID         int
	District   string
	InArticle4 bool
	AreaName   string
	Council    string
	Confidence float64
	UpdatedAt  time.Time
}

func (e *Entity) scan(scanFunc func(...any) error) error {
	return scanFunc(
		&e.ID,
		&e.District,
		&e.InArticle4,
		&e.AreaName,
		&e.Council,
		&e.Confidence,
		&e.UpdatedAt,
	)
}

func (e *Entity) SelectWhereDistrict(ctx context.Context, db *sql.DB) error {
	query := `
		SELECT id, district, in_article4, area_name, council, confidence, updated_at
		FROM article4_postcodes
		WHERE district = $1`

	return e.scan(db.QueryRowContext(ctx, query, e.District).Scan)
}

func (e *Entity) Insert(ctx context.Context, db *sql.DB) error {
	query := `
		INSERT INTO article4_postcodes(district, in_article4, area_name, council, confidence, updated_at)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (district) DO UPDATE
		SET in_article4 = $2, area_name = $3, council = $4, confidence = $5, updated_at = $6
		RETURNING id`

	e.UpdatedAt = time.Now().UTC()

	return db.QueryRowContext(ctx, query,
		e.District,
		e.InArticle4,
		e.AreaName,
		e.Council,
		e.Confidence,
		e.UpdatedAt,
	).Scan(&e.ID)
}

// CheckResult maps the row into the reconciler's common result
// shape.
func (e *Entity) CheckResult(postcode string) CheckResult {
	areas := []area.MatchedArea{}
	if e.InArticle4 {
		areas = append(areas, area.MatchedArea{
			Name:         e.AreaName,
			Council:      e.Council,
			Reference:    e.District,
			Restrictions: []string{"HMO conversions"},
			Confidence:   e.Confidence,
		})
	}

	return CheckResult{
		InArticle4: e.InArticle4,
		Areas:      areas,
		Confidence: e.Confidence,
		Source:     SourceDatabase,
		Postcode:   postcode,
	}
}
