package prediction

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	predictions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "compass",
		Subsystem: "prediction",
		Name:      "requests_total",
		Help:      "Energy rate predictions by backend and outcome.",
	}, []string{"backend", "status"})

	predictionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "compass",
		Subsystem: "prediction",
		Name:      "duration_seconds",
		Help:      "Latency of a single energy rate prediction.",
		Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
	}, []string{"backend"})

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "compass",
		Subsystem: "prediction",
		Name:      "cache_lookups_total",
		Help:      "Prediction cache lookups by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(predictions, predictionDuration, cacheLookups)
}

func observePrediction(backend string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	predictions.WithLabelValues(backend, status).Inc()
	predictionDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}
