package article4

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/geocode"
	"github.com/propscout/hmo-app/internal/official"
	"github.com/propscout/hmo-app/internal/planning"
	"github.com/propscout/hmo-app/internal/pool"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// fixedStrategy resolves every input to one coordinate, tracking
// whether it was attempted.
type fixedStrategy struct {
	lat, lon float64
	accuracy geocode.Accuracy
	called   bool
}

func (s *fixedStrategy) Name() string { return "fixed" }

func (s *fixedStrategy) Match(string) bool { return true }

func (s *fixedStrategy) Attempt(context.Context, string) (*geocode.Result, error) {
	s.called = true
	return &geocode.Result{Lat: s.lat, Lon: s.lon, Accuracy: s.accuracy, Source: "fixed"}, nil
}

// missStrategy matches everything and resolves nothing.
type missStrategy struct{}

func (s *missStrategy) Name() string { return "miss" }

func (s *missStrategy) Match(string) bool { return true }

func (s *missStrategy) Attempt(context.Context, string) (*geocode.Result, error) {
	return nil, nil
}

// emptyAreaStore never refreshed, so it holds no polygons at all.
func emptyAreaStore(t *testing.T) *area.Store {
	t.Helper()
	client := &planning.Client{FeedURL: "http://127.0.0.1:0/unreachable"}
	return area.NewStore(client, filepath.Join(t.TempDir(), "areas.json"), zerolog.Nop())
}

// citywideAreaStore refreshed from an empty feed, so it holds only
// the city-wide stand-in polygons.
func citywideAreaStore(t *testing.T) *area.Store {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	t.Cleanup(ts.Close)

	store := area.NewStore(&planning.Client{FeedURL: ts.URL}, filepath.Join(t.TempDir(), "areas.json"), zerolog.Nop())
	require.NoError(t, store.Refresh(context.Background()))

	return store
}

func testService(t *testing.T, strategies ...geocode.Strategy) *Service {
	t.Helper()

	return &Service{
		Geocoder: &geocode.Service{Strategies: strategies, Logger: zerolog.Nop()},
		Areas:    emptyAreaStore(t),
		Resolver: &area.Resolver{Logger: zerolog.Nop()},
		Logger:   zerolog.Nop(),
	}
}

func TestCheckStatusNeverErrors(t *testing.T) {
	svc := testService(t, &missStrategy{})

	inputs := []string{"", "   ", "!!!", "NOT A POSTCODE", "ZZ99 9ZZ", "\t\n"}
	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			result := svc.CheckStatus(context.Background(), input)

			assert.False(t, result.InArticle4)
			assert.Zero(t, result.Confidence)
			assert.NotNil(t, result.Areas)
			assert.Contains(t, []string{SourceError, SourceUnknown}, result.Source)
		})
	}
}

func TestCheckStatusRecoversFromPanic(t *testing.T) {
	// A nil geocoder makes the geographic step panic.
	svc := &Service{
		Resolver: &area.Resolver{Logger: zerolog.Nop()},
		Logger:   zerolog.Nop(),
	}

	result := svc.CheckStatus(context.Background(), "ZZ9 9ZZ")

	assert.Equal(t, SourceError, result.Source)
	assert.Zero(t, result.Confidence)
}

func TestCheckStatusOfficialShortCircuits(t *testing.T) {
	geocoder := &fixedStrategy{lat: 51.5010, lon: -0.1416, accuracy: geocode.AccuracyExact}
	svc := testService(t, geocoder)
	svc.Official = &official.Client{
		HTTP: doerFunc(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer key", req.Header.Get("Authorization"))
			return jsonResponse(http.StatusOK, `{
				"inArticle4": true,
				"areas": [{"name": "Camden Article 4", "council": "Camden Council", "reference": "art4-camden"}]
			}`), nil
		}),
		BaseURL: "http://api.test",
		APIKey:  "key",
	}

	result := svc.CheckStatus(context.Background(), "NW1 8QS")

	assert.True(t, result.InArticle4)
	assert.Equal(t, SourceOfficial, result.Source)
	assert.InDelta(t, ConfidenceOfficial, result.Confidence, 0.0001)
	require.Len(t, result.Areas, 1)
	assert.Equal(t, "Camden Article 4", result.Areas[0].Name)

	// The rest of the chain never ran.
	assert.False(t, geocoder.called)
}

func TestCheckStatusOfficialFailureFallsThrough(t *testing.T) {
	geocoder := &fixedStrategy{lat: 51.5010, lon: -0.1416, accuracy: geocode.AccuracyExact}
	svc := testService(t, geocoder)
	svc.Official = &official.Client{
		HTTP: doerFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusServiceUnavailable, `{}`), nil
		}),
		BaseURL: "http://api.test",
		APIKey:  "key",
	}

	result := svc.CheckStatus(context.Background(), "SW1A 1AA")

	assert.Equal(t, SourceGeographic, result.Source)
	assert.True(t, geocoder.called)
}

func TestCheckStatusGeographicClear(t *testing.T) {
	// Exact geocode, no polygon covers the point: a confident
	// negative, not an unknown.
	svc := testService(t, &fixedStrategy{lat: 51.5010, lon: -0.1416, accuracy: geocode.AccuracyExact})

	result := svc.CheckStatus(context.Background(), "sw1a 1aa")

	assert.False(t, result.InArticle4)
	assert.Equal(t, SourceGeographic, result.Source)
	assert.GreaterOrEqual(t, result.Confidence, 0.85)
	assert.Empty(t, result.Areas)
	assert.Equal(t, "SW1A 1AA", result.Postcode)
}

func TestCheckStatusCitywideMatch(t *testing.T) {
	svc := testService(t, &fixedStrategy{lat: 52.4796, lon: -1.9026, accuracy: geocode.AccuracyDistrict})
	svc.Areas = citywideAreaStore(t)

	result := svc.CheckStatus(context.Background(), "B1")

	assert.True(t, result.InArticle4)
	assert.Equal(t, SourceGeographic, result.Source)
	assert.InDelta(t, 0.85, result.Confidence, 0.0001)
	require.Len(t, result.Areas, 1)
	assert.Contains(t, result.Areas[0].Name, "Birmingham")
	assert.True(t, result.Areas[0].Approximate)
}

func TestCheckStatusUnknownLocation(t *testing.T) {
	svc := testService(t, &missStrategy{})

	result := svc.CheckStatus(context.Background(), "ZZ99 9ZZ")

	// Unlocatable never means unrestricted.
	assert.False(t, result.InArticle4)
	assert.Equal(t, SourceUnknown, result.Source)
	assert.Zero(t, result.Confidence)
}

func TestCheckBatch(t *testing.T) {
	svc := testService(t, &fixedStrategy{lat: 51.5010, lon: -0.1416, accuracy: geocode.AccuracyExact})
	svc.Pool = pool.New(5, 100)
	svc.Pool.Start()

	postcodes := make([]string, 25)
	for i := range postcodes {
		postcodes[i] = fmt.Sprintf("M%d 1AE", i+1)
	}
	postcodes[3] = "XXXX"
	postcodes[12] = "12345"
	postcodes[24] = ""

	results := svc.CheckBatch(context.Background(), postcodes)

	require.Len(t, results, 25)

	errored := 0
	for i, result := range results {
		switch i {
		case 3, 12, 24:
			assert.Equal(t, SourceError, result.Source, "index %d", i)
			assert.Zero(t, result.Confidence)
			errored++
		default:
			assert.Equal(t, SourceGeographic, result.Source, "index %d", i)
			assert.Equal(t, fmt.Sprintf("M%d 1AE", i+1), result.Postcode)
		}
	}
	assert.Equal(t, 3, errored)
}
