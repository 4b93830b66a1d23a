package article4

import (
	"context"
	"time"

	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/geocode"
	"github.com/propscout/hmo-app/internal/metrics"
	"github.com/propscout/hmo-app/internal/official"
	"github.com/propscout/hmo-app/internal/pool"
	"github.com/rs/zerolog"
)

// batchGroupSize is how many postcodes a batch check processes
// concurrently before moving to the next group.
const batchGroupSize = 10

// Service reconciles three Article 4 sources: the paid official
// API (authoritative), the locally replicated postcode district
// table, and the geocoder plus polygon resolver. Steps run
// strictly in that order within one check; a failed step logs and
// falls through, never surfacing to the caller.
type Service struct {
	Official *official.Client
	Store    *Store
	Geocoder *geocode.Service
	Areas    *area.Store
	Resolver *area.Resolver
	Cache    *ResultCache
	Pool     *pool.Pool
	Logger   zerolog.Logger
}

// CheckStatus resolves a postcode's Article 4 status. It never
// returns an error: any input, including the empty string,
// produces a well-formed CheckResult. Total failure yields the
// terminal Error result with confidence 0.
func (s *Service) CheckStatus(ctx context.Context, postcode string) (result CheckResult) {
	started := time.Now()
	normalized := geocode.Normalize(postcode)

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error().
				Interface("panic", r).
				Str("postcode", normalized).
				Msg("check panicked")
			result = ErrorResult(normalized)
		}
		result.ProcessingTimeMs = time.Since(started).Milliseconds()
		metrics.ChecksTotal.WithLabelValues(result.Source).Inc()
		metrics.CheckDurationMs.Observe(float64(result.ProcessingTimeMs))
	}()

	if normalized == "" {
		return ErrorResult(normalized)
	}

	if cached := s.Cache.Get(ctx, normalized); cached != nil {
		metrics.CacheHitsTotal.Inc()
		cached.Postcode = normalized
		return *cached
	}

	result = s.check(ctx, normalized)
	if result.Source != SourceError && result.Source != SourceUnknown {
		s.Cache.Set(ctx, normalized, result)
	}

	return result
}

func (s *Service) check(ctx context.Context, normalized string) CheckResult {
	// Step 1: official paid API. Success short-circuits the
	// chain at the fixed maximum confidence.
	if s.Official != nil && s.Official.Configured() {
		check, err := s.Official.CheckPostcode(ctx, normalized)
		if err == nil {
			return CheckResult{
				InArticle4: check.InArticle4,
				Areas:      check.Areas,
				Confidence: ConfidenceOfficial,
				Source:     SourceOfficial,
				Postcode:   normalized,
			}
		}
		s.Logger.Warn().
			Err(err).
			Str("postcode", normalized).
			Msg("official api step failed, falling through")
	}

	// Step 2: local postcode district table. Answers alone only
	// at or above the acceptance threshold; below it the row is
	// kept for blending with the geographic step.
	var partial *CheckResult
	if district := DistrictOf(normalized); district != "" && s.Store != nil {
		entity, err := s.Store.SelectDistrict(ctx, district)
		switch {
		case err != nil:
			s.Logger.Warn().
				Err(err).
				Str("district", district).
				Msg("database step failed, falling through")
		case entity != nil:
			row := entity.CheckResult(normalized)
			if row.Confidence >= TargetThreshold {
				return row
			}
			partial = &row
		}
	}

	// Step 3: geocode the postcode and scan the polygon set.
	geo := s.geographic(ctx, normalized)
	switch {
	case geo != nil && partial != nil:
		return Blend(*partial, *geo)
	case geo != nil:
		return *geo
	case partial != nil:
		return *partial
	}

	// Unknown location. Not restricted is NOT implied; the zero
	// confidence says so.
	result := ErrorResult(normalized)
	result.Source = SourceUnknown
	return result
}

func (s *Service) geographic(ctx context.Context, normalized string) *CheckResult {
	located := s.Geocoder.Geocode(ctx, normalized)
	if located == nil {
		return nil
	}
	metrics.GeocodeTotal.WithLabelValues(string(located.Accuracy)).Inc()

	matches := s.Resolver.FindContaining(located.Lat, located.Lon, located.Accuracy, s.Areas.GetAreas())

	confidence := area.ConfidenceFor(located.Accuracy)
	for _, m := range matches {
		if m.Confidence > confidence {
			confidence = m.Confidence
		}
	}

	return &CheckResult{
		InArticle4: len(matches) > 0,
		Areas:      matches,
		Confidence: confidence,
		Source:     SourceGeographic,
		Postcode:   normalized,
	}
}

// CheckBatch processes postcodes in fixed-size concurrent groups,
// waiting for every item in a group to settle before starting the
// next. The output always has the same length and order as the
// input; a malformed or failing item becomes its own Error result
// and never stalls the rest.
func (s *Service) CheckBatch(ctx context.Context, postcodes []string) []CheckResult {
	results := make([]CheckResult, len(postcodes))

	for start := 0; start < len(postcodes); start += batchGroupSize {
		end := start + batchGroupSize
		if end > len(postcodes) {
			end = len(postcodes)
		}

		jobs := make([]func(), 0, end-start)
		for i := start; i < end; i++ {
			i := i
			jobs = append(jobs, func() {
				pc := postcodes[i]
				if !ValidPostcode(geocode.Normalize(pc)) {
					results[i] = ErrorResult(geocode.Normalize(pc))
					return
				}
				results[i] = s.CheckStatus(ctx, pc)
			})
		}

		s.Pool.RunAll(jobs)
	}

	return results
}
