package area

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/propscout/hmo-app/internal/planning"
	"github.com/rs/zerolog"
)

// TTL is how long a persisted snapshot is trusted before the
// store refetches the feed.
const TTL = 24 * time.Hour

// Store holds the in-memory Article 4 area collection. The
// collection is replaced wholesale on each refresh; readers never
// see a half-populated slice because the swap happens only after
// a fully successful fetch.
type Store struct {
	Client    *planning.Client
	CachePath string
	Logger    zerolog.Logger

	mu          sync.RWMutex
	areas       []Area
	lastRefresh time.Time

	// test seam
	now func() time.Time
}

func NewStore(client *planning.Client, cachePath string, logger zerolog.Logger) *Store {
	return &Store{
		Client:    client,
		CachePath: cachePath,
		Logger:    logger,
		now:       time.Now,
	}
}

// Init primes the store. A fresh cache file is used as-is with no
// network call; a stale or missing one triggers a refresh. When
// the refresh fails but a stale file was loaded, the stale areas
// stay in service: availability is preferred over freshness.
func (s *Store) Init(ctx context.Context) error {
	cache, err := loadCacheFile(s.CachePath)
	if err == nil {
		s.swap(mergeCitywide(cache.Areas), cache.Timestamp)
		if cache.age(s.now()) <= TTL {
			s.Logger.Info().
				Int("areas", len(cache.Areas)).
				Time("timestamp", cache.Timestamp).
				Msg("article 4 cache loaded")
			return nil
		}
		s.Logger.Info().
			Float64("age_hours", cache.age(s.now()).Hours()).
			Msg("article 4 cache stale, refreshing")
	} else {
		s.Logger.Info().Err(err).Msg("no usable article 4 cache, refreshing")
	}

	if err := s.Refresh(ctx); err != nil {
		if s.Count() > 0 {
			s.Logger.Warn().Err(err).Msg("refresh failed, serving stale areas")
			return nil
		}
		return fmt.Errorf("failed to prime area store: %w", err)
	}

	return nil
}

// Refresh fetches the feed, drops features with unparseable or
// invalid geometry, merges the city-wide stand-ins, then swaps
// the collection and persists it. A failed fetch leaves the
// previous collection untouched.
func (s *Store) Refresh(ctx context.Context) error {
	result, err := s.Client.GetAreaCollection(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch area collection: %w", err)
	}

	for _, fail := range result.Fails {
		s.Logger.Warn().
			Err(fail.Err).
			Str("reference", fail.Reference).
			Msg("dropping area with unparseable geometry")
	}

	now := s.now()
	areas := []Area{}
	for _, feedArea := range result.Areas {
		if !feedArea.Geometry.Valid() {
			s.Logger.Warn().
				Str("reference", feedArea.Reference).
				Msg("dropping area with invalid geometry")
			continue
		}
		areas = append(areas, fromFeed(feedArea, now))
	}

	areas = mergeCitywide(areas)
	s.swap(areas, now)

	if err := writeCacheFile(s.CachePath, &cacheFile{
		Timestamp: now,
		Areas:     areas,
		Count:     len(areas),
	}); err != nil {
		// The in-memory collection is already live; losing the
		// snapshot only costs a refetch on next start.
		s.Logger.Error().Err(err).Msg("failed persisting area cache")
	}

	s.Logger.Info().Int("areas", len(areas)).Msg("article 4 areas refreshed")

	return nil
}

func (s *Store) swap(areas []Area, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = areas
	s.lastRefresh = at
}

// GetAreas returns the current collection. The returned slice is
// shared and must not be mutated.
func (s *Store) GetAreas() []Area {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.areas
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.areas)
}

// CacheInfo summarizes freshness for the health endpoint.
type CacheInfo struct {
	AgeHours    float64   `json:"age_hours"`
	Count       int       `json:"count"`
	LastRefresh time.Time `json:"last_refresh"`
}

func (s *Store) GetCacheInfo() CacheInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := CacheInfo{
		Count:       len(s.areas),
		LastRefresh: s.lastRefresh,
	}
	if !s.lastRefresh.IsZero() {
		info.AgeHours = s.now().Sub(s.lastRefresh).Hours()
	}

	return info
}
