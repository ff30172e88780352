package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scribe",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Transcript processing requests received over REST.",
	})
	requestsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scribe",
		Subsystem: "api",
		Name:      "requests_failed_total",
		Help:      "Transcript processing requests that ended in an error response.",
	})
	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scribe",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Wall time of one transcript pipeline run over REST.",
		Buckets:   prometheus.DefBuckets,
	})
)

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
