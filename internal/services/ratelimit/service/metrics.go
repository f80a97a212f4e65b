package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	decisions *prometheus.CounterVec
	fallbacks prometheus.Counter
	duration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apiwarden",
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Limiter decisions by endpoint class and outcome",
		}, []string{"class", "decision"}),
		fallbacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "apiwarden",
			Subsystem: "ratelimit",
			Name:      "store_fallbacks_total",
			Help:      "Checks served by the in-memory store because redis failed",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "apiwarden",
			Subsystem: "ratelimit",
			Name:      "check_duration_seconds",
			Help:      "Wall time of limiter checks including store round trips",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
