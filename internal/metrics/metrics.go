// Package metrics provides Prometheus instrumentation for the contest engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ContestsCreated counts contests created since process start.
	ContestsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevatetm_contests_created_total",
		Help: "Total number of contests created",
	})

	// ContestsFinished counts finished contests, partitioned by how they ended.
	ContestsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elevatetm_contests_finished_total",
		Help: "Total number of contests finished",
	}, []string{"outcome"})

	// RoundsResolved counts fully processed rounds.
	RoundsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevatetm_rounds_resolved_total",
		Help: "Total number of rounds resolved",
	})

	// RoundResolutionDuration tracks how long the processing phase takes,
	// dominated by the opponent decision call.
	RoundResolutionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "elevatetm_round_resolution_seconds",
		Help:    "Round processing duration in seconds",
		Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30},
	})

	// ProviderFallbacks counts rounds where the heuristic answered because
	// the primary decision provider failed.
	ProviderFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevatetm_provider_fallbacks_total",
		Help: "Opponent decisions served by the heuristic fallback",
	})

	// TimeoutSweeps counts rounds auto-confirmed by the deadline sweeper.
	TimeoutSweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elevatetm_timeout_sweeps_total",
		Help: "Rounds auto-confirmed after the confirm deadline passed",
	})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "elevatetm_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
