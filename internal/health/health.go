package health

import (
	"context"
	"net/http"
	"time"

	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/article4"
	"github.com/rs/zerolog"
)

// DatabaseHealth reports the local postcode table.
type DatabaseHealth struct {
	Available      bool    `json:"available"`
	Count          int     `json:"count"`
	ConfidenceRate float64 `json:"confidence_rate"`
}

// GeographicHealth reports the polygon cache and the geocoding
// dependency.
type GeographicHealth struct {
	Available bool    `json:"available"`
	AgeHours  float64 `json:"age_hours"`
	AreaCount int     `json:"area_count"`
}

// SystemHealth is the operator-facing snapshot returned by
// GET /api/health.
type SystemHealth struct {
	APIConfigured     bool             `json:"api_configured"`
	Database          DatabaseHealth   `json:"database"`
	Geographic        GeographicHealth `json:"geographic"`
	OverallConfidence float64          `json:"overall_confidence"`
}

// Reporter aggregates source freshness and availability. Read
// only; its only side effects are short-timeout reachability
// pings.
type Reporter struct {
	APIConfigured bool
	Store         *article4.Store
	Areas         *area.Store
	PingURL       string
	HTTP          *http.Client
	Logger        zerolog.Logger
}

func NewReporter(apiConfigured bool, store *article4.Store, areas *area.Store, pingURL string, logger zerolog.Logger) *Reporter {
	return &Reporter{
		APIConfigured: apiConfigured,
		Store:         store,
		Areas:         areas,
		PingURL:       pingURL,
		HTTP:          &http.Client{Timeout: 3 * time.Second},
		Logger:        logger,
	}
}

// GetSystemHealth builds the snapshot. Each source degrades
// independently: an unreachable database zeroes its own section,
// not the report.
func (r *Reporter) GetSystemHealth(ctx context.Context) SystemHealth {
	health := SystemHealth{APIConfigured: r.APIConfigured}

	stats, err := r.Store.SelectStats(ctx)
	if err != nil {
		r.Logger.Warn().Err(err).Msg("database health check failed")
	} else {
		health.Database = DatabaseHealth{
			Available:      true,
			Count:          stats.Count,
			ConfidenceRate: stats.ConfidenceRate,
		}
	}

	info := r.Areas.GetCacheInfo()
	health.Geographic = GeographicHealth{
		Available: info.Count > 0,
		AgeHours:  info.AgeHours,
		AreaCount: info.Count,
	}

	health.OverallConfidence = overallConfidence(
		health.APIConfigured,
		health.Database.ConfidenceRate,
		cacheFreshness(info.AgeHours),
		r.pingGeocoder(ctx),
	)

	return health
}

// pingGeocoder probes the geocoding dependency with a short
// timeout. Any HTTP response counts as reachable.
func (r *Reporter) pingGeocoder(ctx context.Context) float64 {
	if r.PingURL == "" {
		return 0
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.PingURL, nil)
	if err != nil {
		return 0
	}

	res, err := r.HTTP.Do(req)
	if err != nil {
		r.Logger.Warn().Err(err).Msg("geocoder unreachable")
		return 0
	}
	res.Body.Close()

	return 1
}

// cacheFreshness grades the polygon cache age: full credit inside
// the TTL, half credit up to twice the TTL, nothing past that.
func cacheFreshness(ageHours float64) float64 {
	ttlHours := area.TTL.Hours()
	switch {
	case ageHours <= 0:
		return 0
	case ageHours <= ttlHours:
		return 1
	case ageHours <= 2*ttlHours:
		return 0.5
	default:
		return 0
	}
}

// overallConfidence blends the per-source signals. A configured
// official API pins the score high; otherwise the local table
// quality, cache freshness, and geocoder reachability are
// weighted 0.4/0.3/0.3.
func overallConfidence(apiConfigured bool, confidenceRate, freshness, reachability float64) float64 {
	if apiConfigured {
		return article4.ConfidenceOfficial
	}

	return 0.4*confidenceRate + 0.3*freshness + 0.3*reachability
}
