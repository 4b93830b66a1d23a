package article4

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// resultTTL keeps cached verdicts fresher than the area feed
// refresh cadence.
const resultTTL = 12 * time.Hour

// ResultCache is an optional Redis cache in front of the fallback
// chain. A nil *ResultCache is valid and caches nothing; the
// service runs fine without Redis.
type ResultCache struct {
	Client *redis.Client
	Logger zerolog.Logger
}

func NewResultCache(addr string, logger zerolog.Logger) *ResultCache {
	if addr == "" {
		return nil
	}

	return &ResultCache{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		Logger: logger,
	}
}

func (c *ResultCache) key(postcode string) string {
	return "article4:check:" + postcode
}

// Get returns the cached result for a normalized postcode, or nil
// on miss. Cache errors degrade to a miss.
func (c *ResultCache) Get(ctx context.Context, postcode string) *CheckResult {
	if c == nil {
		return nil
	}

	data, err := c.Client.Get(ctx, c.key(postcode)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn().Err(err).Msg("result cache read failed")
		}
		return nil
	}

	var result CheckResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.Logger.Warn().Err(err).Msg("result cache held unparseable entry")
		return nil
	}

	return &result
}

func (c *ResultCache) Set(ctx context.Context, postcode string, result CheckResult) {
	if c == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := c.Client.Set(ctx, c.key(postcode), data, resultTTL).Err(); err != nil {
		c.Logger.Warn().Err(err).Msg("result cache write failed")
	}
}
