package listings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/propscout/hmo-app/internal/app"
	"github.com/propscout/hmo-app/internal/article4"
	"github.com/rs/zerolog"
)

// Service serves cached property listings with investment
// metrics. Imports resolve each listing's Article 4 flag through
// the reconciler once, at write time.
type Service struct {
	Store  *Store
	Checks *article4.Service
	Logger zerolog.Logger
}

func New(store *Store, checks *article4.Service, logger zerolog.Logger) *Service {
	return &Service{
		Store:  store,
		Checks: checks,
		Logger: logger,
	}
}

// Search returns listings for a city, filtered by bedrooms and
// price, with investment metrics attached.
func (s *Service) Search(ctx context.Context, params SearchParams) ([]Listing, error) {
	if params.City == "" {
		return nil, &app.ServerResponseError{
			Err:        errors.New("empty city"),
			Msg:        "Must provide a city",
			StatusCode: http.StatusBadRequest,
		}
	}

	collection, err := s.Store.Select(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed searching listings (city=%q): %w", params.City, err)
	}

	for i := range collection {
		collection[i].AddInvestmentMetrics()
	}

	return collection, nil
}

// ImportFailure records one listing that could not be written.
type ImportFailure struct {
	PropertyURL string `json:"property_url"`
	Err         error  `json:"-"`
}

// ImportResult states what an import wrote and what failed.
type ImportResult struct {
	TotalWrites int             `json:"total_writes"`
	Fails       []ImportFailure `json:"fails"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Import writes a batch of listings. Each listing's postcode is
// checked against the reconciler to set its Article 4 flag; a
// failed check leaves the flag false rather than failing the
// import.
func (s *Service) Import(ctx context.Context, batch []Listing) ImportResult {
	result := ImportResult{
		Fails:     []ImportFailure{},
		CreatedAt: time.Now().UTC(),
	}

	for i := range batch {
		l := batch[i]

		if l.Postcode != "" {
			check := s.Checks.CheckStatus(ctx, l.Postcode)
			if check.Source != article4.SourceError && check.Source != article4.SourceUnknown {
				l.InArticle4 = check.InArticle4
			}
		}

		if err := s.Store.Insert(ctx, &l); err != nil {
			s.Logger.Warn().
				Err(err).
				Str("property_url", l.PropertyURL).
				Msg("failed importing listing")
			result.Fails = append(result.Fails, ImportFailure{PropertyURL: l.PropertyURL, Err: err})
			continue
		}

		result.TotalWrites++
	}

	return result
}
