package area

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cacheFile is the on-disk snapshot of the in-memory collection.
// The format is internal to this package and may change freely.
type cacheFile struct {
	Timestamp time.Time `json:"timestamp"`
	Areas     []Area    `json:"areas"`
	Count     int       `json:"count"`
}

func (c *cacheFile) age(now time.Time) time.Duration {
	return now.Sub(c.Timestamp)
}

func loadCacheFile(path string) (*cacheFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading cache file: %w", err)
	}

	var cache cacheFile
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed unmarshalling cache file: %w", err)
	}

	return &cache, nil
}

// writeCacheFile persists the snapshot through a temp file rename
// so a crash mid-write never leaves a truncated cache behind.
func writeCacheFile(path string, cache *cacheFile) error {
	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed marshalling cache file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed creating cache dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed writing cache file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed replacing cache file: %w", err)
	}

	return nil
}
