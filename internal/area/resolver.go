package area

import (
	"github.com/propscout/hmo-app/internal/geocode"
	"github.com/propscout/hmo-app/internal/geometry"
	"github.com/rs/zerolog"
)

// Confidence bases keyed to the geocode accuracy that produced
// the point being tested. The city-wide stand-in polygons are
// crude but known reliable, so a hit on one earns a boost.
const (
	ConfidenceExact    = 0.90
	ConfidencePartial  = 0.80
	ConfidenceDistrict = 0.70
	ConfidenceCity     = 0.60

	citywideBoost = 0.15
)

// ConfidenceFor returns the base confidence for a geocode
// accuracy grade.
func ConfidenceFor(accuracy geocode.Accuracy) float64 {
	switch accuracy {
	case geocode.AccuracyExact:
		return ConfidenceExact
	case geocode.AccuracyPartial:
		return ConfidencePartial
	case geocode.AccuracyDistrict:
		return ConfidenceDistrict
	default:
		return ConfidenceCity
	}
}

// Resolver answers which areas contain a coordinate. The scan is
// linear over the collection; the unique polygon set is hundreds
// of areas, not millions, so no spatial index is kept.
type Resolver struct {
	Logger zerolog.Logger
}

// FindContaining tests the point against every area and returns
// the matches with per-match confidence. Areas with malformed
// geometry are skipped and logged; one bad polygon never aborts
// the scan of the rest.
func (r *Resolver) FindContaining(lat, lon float64, accuracy geocode.Accuracy, areas []Area) []MatchedArea {
	point := geometry.NewPoint(lon, lat)
	base := ConfidenceFor(accuracy)

	matches := []MatchedArea{}
	for _, a := range areas {
		if !a.Geometry.Valid() {
			r.Logger.Warn().
				Str("reference", a.Reference).
				Msg("skipping area with malformed geometry")
			continue
		}

		if !a.Geometry.Contains(point) {
			continue
		}

		confidence := base
		if a.Approximate {
			confidence += citywideBoost
		}
		if confidence > 1 {
			confidence = 1
		}

		matches = append(matches, MatchedArea{
			Name:         a.Name,
			Council:      a.Council,
			Reference:    a.Reference,
			Restrictions: a.Restrictions,
			Approximate:  a.Approximate,
			Confidence:   confidence,
		})
	}

	return matches
}
