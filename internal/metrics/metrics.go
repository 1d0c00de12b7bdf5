package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AlertsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hodlalpha",
		Subsystem: "api",
		Name:      "alerts_created_total",
		Help:      "The total number of alerts created through the ingest API",
	})

	RefreshCycles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hodlalpha",
		Subsystem: "collector",
		Name:      "refresh_cycles_total",
		Help:      "The total number of price refresh cycles started",
	})

	RefreshFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hodlalpha",
		Subsystem: "collector",
		Name:      "refresh_failures_total",
		Help:      "The total number of price refresh cycles that failed",
	})
)

func init() {
	prometheus.MustRegister(AlertsCreated, RefreshCycles, RefreshFailures)
}
