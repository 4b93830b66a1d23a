package area

import (
	"time"

	"github.com/propscout/hmo-app/internal/geometry"
	"github.com/propscout/hmo-app/internal/planning"
)

// Status is the lifecycle state of an Article 4 direction,
// derived from its optional start and end dates.
type Status string

const (
	StatusActive  Status = "Active"
	StatusPending Status = "Pending"
	StatusExpired Status = "Expired"
)

// Area is a named Article 4 direction area held in memory and in
// the cache file. Approximate marks the city-wide stand-in
// polygons that cover a city center rather than tracing the real
// boundary; results derived from them must say so.
type Area struct {
	Name         string                `json:"name"`
	Council      string                `json:"council"`
	Reference    string                `json:"reference"`
	Description  string                `json:"description,omitempty"`
	Status       Status                `json:"status"`
	Restrictions []string              `json:"restrictions"`
	Approximate  bool                  `json:"approximate"`
	Geometry     geometry.MultiPolygon `json:"geometry"`
}

// statusAt derives the lifecycle state from the feed's optional
// start and end dates.
func statusAt(now time.Time, start, end *time.Time) Status {
	if start != nil && start.After(now) {
		return StatusPending
	}
	if end != nil && end.Before(now) {
		return StatusExpired
	}
	return StatusActive
}

func fromFeed(a planning.Area, now time.Time) Area {
	return Area{
		Name:         a.Name,
		Council:      a.Council,
		Reference:    a.Reference,
		Description:  a.Description,
		Status:       statusAt(now, a.StartDate, a.EndDate),
		Restrictions: []string{"HMO conversions"},
		Geometry:     a.Geometry,
	}
}

// MatchedArea is the subset of Area fields returned to callers
// for a polygon hit, with a per-match confidence.
type MatchedArea struct {
	Name         string   `json:"name"`
	Council      string   `json:"council"`
	Reference    string   `json:"reference"`
	Restrictions []string `json:"restrictions"`
	Approximate  bool     `json:"approximate"`
	Confidence   float64  `json:"confidence"`
}
