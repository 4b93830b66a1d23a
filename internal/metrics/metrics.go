package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "article4_checks_total",
		Help: "Total Article 4 checks by result source",
	}, []string{"source"})
	CheckDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "article4_check_duration_ms",
		Help:    "Article 4 check duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "article4_result_cache_hits_total",
		Help: "Total check result cache hits",
	})
	AreaRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "article4_area_refresh_total",
		Help: "Total area feed refreshes by outcome",
	}, []string{"outcome"})
	GeocodeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "article4_geocode_total",
		Help: "Total geocode attempts by accuracy of the winning strategy",
	}, []string{"accuracy"})
)

func init() {
	prometheus.MustRegister(
		ChecksTotal,
		CheckDurationMs,
		CacheHitsTotal,
		AreaRefreshTotal,
		GeocodeTotal,
	)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
