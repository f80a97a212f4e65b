package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	recorded   *prometheus.CounterVec
	violations *prometheus.CounterVec
	sinkErrors prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		recorded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apiwarden",
			Subsystem: "compliance",
			Name:      "requests_recorded_total",
			Help:      "Requests observed by the monitor, by outcome",
		}, []string{"method", "outcome"}),
		violations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apiwarden",
			Subsystem: "compliance",
			Name:      "violations_total",
			Help:      "Contract violations detected, by severity",
		}, []string{"severity"}),
		sinkErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "apiwarden",
			Subsystem: "compliance",
			Name:      "sink_errors_total",
			Help:      "Metric sink writes that failed and were dropped",
		}),
	}
}
