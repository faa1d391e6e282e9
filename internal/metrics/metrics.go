// Package metrics implements a jsaction.Recorder backed by
// prometheus/client_golang, grounded on the bubblyui teacher-adjacent
// example's push-counter + MustRegister-at-construction pattern
// (pkg/bubbly/monitoring/prometheus.go in the reference pack).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder implements jsaction.Recorder. All metrics are prefixed
// "jsaction_".
type Recorder struct {
	dispatched *prometheus.CounterVec
	queueDepth prometheus.Gauge
	containers *prometheus.GaugeVec
}

// New creates a Recorder and registers its metrics with reg. Panics on
// duplicate registration, matching the fail-fast construction-time
// registration style used elsewhere in the pack.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jsaction_dispatched_total",
			Help: "Total Event Records produced, partitioned by semantic event type and kind.",
		}, []string{"event_type", "kind"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jsaction_queue_depth",
			Help: "Number of Event Records currently held in the pre-dispatcher queue.",
		}),
		containers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "jsaction_containers",
			Help: "Registered containers, partitioned by active/nested.",
		}, []string{"state"}),
	}
	reg.MustRegister(r.dispatched, r.queueDepth, r.containers)
	return r
}

// RecordDispatch implements jsaction.Recorder. kind is "global", "matched",
// or "unmatched"; queued records are counted as "matched".
func (r *Recorder) RecordDispatch(semanticType string, global, matched bool) {
	kind := "matched"
	switch {
	case global:
		kind = "global"
	case !matched:
		kind = "unmatched"
	}
	r.dispatched.WithLabelValues(semanticType, kind).Inc()
}

// RecordQueueDepth implements jsaction.Recorder.
func (r *Recorder) RecordQueueDepth(depth int) {
	r.queueDepth.Set(float64(depth))
}

// RecordContainers implements jsaction.Recorder.
func (r *Recorder) RecordContainers(active, nested int) {
	r.containers.WithLabelValues("active").Set(float64(active))
	r.containers.WithLabelValues("nested").Set(float64(nested))
}
