package geocode

import (
	"context"

	"github.com/rs/zerolog"
)

// Service resolves a free text UK postcode or partial postcode to
// a coordinate by trying progressively coarser strategies. A nil
// result means every strategy came up empty; callers must treat
// that as "unknown location", never as "not restricted".
type Service struct {
	Strategies []Strategy
	Logger     zerolog.Logger
}

// New builds a Service with the standard strategy order: full
// postcode lookup, outcode lookup, static district table, then
// country constrained free text search.
func New(postcodes *PostcodesClient, nominatim *NominatimClient, logger zerolog.Logger) *Service {
	return &Service{
		Strategies: []Strategy{
			&exactStrategy{client: postcodes},
			&outcodeStrategy{client: postcodes},
			&districtStrategy{},
			&freeTextStrategy{client: nominatim},
		},
		Logger: logger,
	}
}

// Geocode runs the strategy chain over the normalized input.
// First non-nil result wins. A strategy error is logged and falls
// through to the next strategy.
func (s *Service) Geocode(ctx context.Context, postcode string) *Result {
	normalized := Normalize(postcode)
	if normalized == "" {
		return nil
	}

	for _, strategy := range s.Strategies {
		if !strategy.Match(normalized) {
			continue
		}

		result, err := strategy.Attempt(ctx, normalized)
		if err != nil {
			s.Logger.Warn().
				Err(err).
				Str("strategy", strategy.Name()).
				Str("postcode", normalized).
				Msg("geocode strategy failed")
			continue
		}
		if result != nil {
			return result
		}
	}

	return nil
}
