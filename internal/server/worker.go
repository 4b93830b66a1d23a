package server

import (
	"context"
	"time"

	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/metrics"
	"github.com/rs/zerolog"
)

// worker re-triggers the area store refresh on a fixed cadence.
// Nothing waits on it: a failed refresh logs and leaves the
// current in-memory areas serving, in-flight requests keep using
// the old collection until the new one is swapped in.
type worker struct {
	areas  *area.Store
	logger zerolog.Logger
	d      time.Duration
	killCh <-chan struct{}
}

func (w *worker) start() {
	ticker := time.NewTicker(w.d)

	for {
		select {
		case <-ticker.C:
			w.refreshAreas(context.Background())
		case <-w.killCh:
			ticker.Stop()
			return
		}
	}
}

func (w *worker) refreshAreas(ctx context.Context) {
	if err := w.areas.Refresh(ctx); err != nil {
		metrics.AreaRefreshTotal.WithLabelValues("fail").Inc()
		w.logger.Warn().Err(err).Msg("scheduled area refresh failed, keeping current areas")
		return
	}

	metrics.AreaRefreshTotal.WithLabelValues("ok").Inc()
}
