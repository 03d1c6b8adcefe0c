package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Conversions counts finished conversions; outcome is "success" or an error kind.
	Conversions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "castify_conversions_total",
		Help: "Link-to-cast conversions by outcome (success or error kind).",
	}, []string{"outcome"})

	// StageDuration observes fetch, extract and publish latency.
	StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "castify_stage_duration_seconds",
		Help:    "Time spent in each pipeline stage.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
	}, []string{"stage"})

	// HTTPRequests counts served requests by matched route pattern.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "castify_http_requests_total",
		Help: "HTTP requests served, by route pattern, method and status.",
	}, []string{"path", "method", "status"})
)

func init() {
	prometheus.MustRegister(Conversions)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(HTTPRequests)
}

// ObserveStage records the time elapsed since start for the named stage.
func ObserveStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
