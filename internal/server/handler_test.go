package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/article4"
	"github.com/propscout/hmo-app/internal/geocode"
	"github.com/propscout/hmo-app/internal/planning"
	"github.com/propscout/hmo-app/internal/pool"
)

// centralLondonStrategy pins every lookup to Westminster.
type centralLondonStrategy struct{}

func (s *centralLondonStrategy) Name() string { return "fixed" }

func (s *centralLondonStrategy) Match(string) bool { return true }

func (s *centralLondonStrategy) Attempt(context.Context, string) (*geocode.Result, error) {
	return &geocode.Result{Lat: 51.5010, Lon: -0.1416, Accuracy: geocode.AccuracyExact, Source: "fixed"}, nil
}

func testHandler(t *testing.T) *Handler {
	t.Helper()

	areas := area.NewStore(
		&planning.Client{FeedURL: "http://127.0.0.1:0/unreachable"},
		filepath.Join(t.TempDir(), "areas.json"),
		zerolog.Nop(),
	)

	workerPool := pool.New(2, 50)
	workerPool.Start()

	h := NewHandler(zerolog.Nop())
	h.checks = &article4.Service{
		Geocoder: &geocode.Service{
			Strategies: []geocode.Strategy{&centralLondonStrategy{}},
			Logger:     zerolog.Nop(),
		},
		Areas:    areas,
		Resolver: &area.Resolver{Logger: zerolog.Nop()},
		Pool:     workerPool,
		Logger:   zerolog.Nop(),
	}
	h.areas = areas

	return h
}

func TestHandleCheck(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/check?postcode=SW1A+1AA", nil)
	w := httptest.NewRecorder()
	h.HandleCheck()(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body checkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.InArticle4)
	assert.Equal(t, article4.SourceGeographic, body.Source)
	assert.Equal(t, "SW1A 1AA", body.Postcode)
	assert.GreaterOrEqual(t, body.Confidence, 0.85)
}

func TestHandleCheckInvalidPostcode(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/check?postcode=12345", nil)
	w := httptest.NewRecorder()
	h.HandleCheck()(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid postcode", body.ErrorMsg)
}

func TestHandleBatchCheck(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/check/batch",
		strings.NewReader(`{"postcodes": ["SW1A 1AA", "garbage", "B1"]}`))
	w := httptest.NewRecorder()
	h.HandleBatchCheck()(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []checkResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 3)
	assert.True(t, body.Results[0].Success)
	assert.False(t, body.Results[1].Success)
	assert.True(t, body.Results[2].Success)
}

func TestHandleBatchCheckInvalidBody(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/check/batch", strings.NewReader(`not json`))
	w := httptest.NewRecorder()
	h.HandleBatchCheck()(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestID(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value("request_id").(string)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	RequestID(next).ServeHTTP(w, r)

	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, w.Header().Get("X-Request-ID"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	codes := []int{}
	for i := 0; i < 4; i++ {
		r := httptest.NewRequest(http.MethodGet, "/api/check", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		rl.Limit(next).ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])

	// A different client IP gets its own allowance.
	r := httptest.NewRequest(http.MethodGet, "/api/check", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
