package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/propscout/hmo-app/internal/article4"
)

func TestCacheFreshness(t *testing.T) {
	assert.Equal(t, 0.0, cacheFreshness(0))
	assert.Equal(t, 0.0, cacheFreshness(-1))
	assert.Equal(t, 1.0, cacheFreshness(1))
	assert.Equal(t, 1.0, cacheFreshness(24))
	assert.Equal(t, 0.5, cacheFreshness(25))
	assert.Equal(t, 0.5, cacheFreshness(48))
	assert.Equal(t, 0.0, cacheFreshness(49))
}

func TestOverallConfidence(t *testing.T) {
	// A configured official API pins the score.
	assert.Equal(t, article4.ConfidenceOfficial, overallConfidence(true, 0, 0, 0))

	assert.InDelta(t, 1.0, overallConfidence(false, 1, 1, 1), 0.0001)
	assert.InDelta(t, 0.0, overallConfidence(false, 0, 0, 0), 0.0001)
	assert.InDelta(t, 0.4, overallConfidence(false, 1, 0, 0), 0.0001)
	assert.InDelta(t, 0.6, overallConfidence(false, 0, 1, 1), 0.0001)
}

func TestPingGeocoder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Even an error status proves the host is reachable.
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	reporter := &Reporter{
		PingURL: ts.URL,
		HTTP:    &http.Client{Timeout: time.Second},
		Logger:  zerolog.Nop(),
	}
	assert.Equal(t, 1.0, reporter.pingGeocoder(context.Background()))

	reporter.PingURL = ""
	assert.Equal(t, 0.0, reporter.pingGeocoder(context.Background()))

	reporter.PingURL = "http://127.0.0.1:0/unreachable"
	assert.Equal(t, 0.0, reporter.pingGeocoder(context.Background()))
}
