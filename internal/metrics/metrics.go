// Package metrics collects and exposes Prometheus metrics for the join
// request lifecycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the service layer uses to record domain events.
type Recorder interface {
	RecordJoinRequestCreated()
	RecordDecision(decision string)
	RecordRemoval()
	RecordConflict(reason string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	registry    *prometheus.Registry
	joinCreated prometheus.Counter
	decisions   *prometheus.CounterVec
	removals    prometheus.Counter
	conflicts   *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		joinCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campuspool_join_requests_created_total",
			Help: "Total join requests created or recycled back to pending.",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspool_join_decisions_total",
			Help: "Total owner decisions on join requests, by outcome.",
		}, []string{"decision"}),
		removals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campuspool_passenger_removals_total",
			Help: "Total approved passengers removed by owners.",
		}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspool_conflicts_total",
			Help: "Total state or capacity conflicts surfaced to callers, by reason.",
		}, []string{"reason"}),
	}

	c.registry.MustRegister(c.joinCreated, c.decisions, c.removals, c.conflicts)
	return c
}

func (c *Collector) RecordJoinRequestCreated() {
	c.joinCreated.Inc()
}

func (c *Collector) RecordDecision(decision string) {
	c.decisions.WithLabelValues(decision).Inc()
}

func (c *Collector) RecordRemoval() {
	c.removals.Inc()
}

func (c *Collector) RecordConflict(reason string) {
	c.conflicts.WithLabelValues(reason).Inc()
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Conflict reasons used as label values.
const (
	ConflictCarpoolFull      = "carpool_full"
	ConflictNotPending       = "not_pending"
	ConflictAlreadyRequested = "already_requested"
	ConflictSelfJoin         = "self_join"
)

// NopRecorder discards every event. Used in tests.
type NopRecorder struct{}

func (NopRecorder) RecordJoinRequestCreated() {}
func (NopRecorder) RecordDecision(string)     {}
func (NopRecorder) RecordRemoval()            {}
func (NopRecorder) RecordConflict(string)     {}
