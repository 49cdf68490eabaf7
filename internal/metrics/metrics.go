// Package metrics exposes Prometheus counters for the storage tiers.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
)

var (
	registry = prometheus.NewRegistry()

	// Fallbacks counts reads and writes where the primary tier failed and the
	// secondary tier was used instead.
	Fallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "store",
		Name:      "fallbacks_total",
		Help:      "Operations served by the secondary store after the primary failed.",
	}, []string{"op", "tier"})

	// Writes counts write attempts per tier and outcome.
	Writes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: constants.AppName,
		Subsystem: "store",
		Name:      "writes_total",
		Help:      "Write attempts per storage tier.",
	}, []string{"tier", "result"})
)

func init() {
	registry.MustRegister(Fallbacks, Writes)
	registry.MustRegister(collectors.NewGoCollector())
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func RecordFallback(op, tier string) {
	Fallbacks.WithLabelValues(op, tier).Inc()
}

func RecordWrite(tier string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	Writes.WithLabelValues(tier, result).Inc()
}
