// Package promtrace implements a gpu.Tracer that exports
// timespans and pipeline-statistics counters as Prometheus
// metrics.
package promtrace

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kestrelui/core/gpu/query"
)

// Tracer is a gpu.Tracer backed by a prometheus.Registerer. All
// timespans share one histogram vector, registered in New, with
// each record's label as a label value; every gpu.Counter* label
// gets a gauge, since pipeline-statistics values are per-frame samples
// rather than monotonically increasing totals.
type Tracer struct {
	reg prometheus.Registerer

	spans   *prometheus.HistogramVec
	gauges  map[string]prometheus.Gauge
}

// New creates a Tracer that registers its metrics with reg. If
// reg is nil, prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) *Tracer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	t := &Tracer{
		reg: reg,
		spans: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gpu",
			Name:      "timeline_seconds",
			Help:      "Duration of labeled GPU command spans, in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 2, 16),
		}, []string{"label"}),
		gauges: make(map[string]prometheus.Gauge),
	}
	reg.MustRegister(t.spans)
	return t
}

// TraceSpans reports every timespan record's duration, in
// seconds, to the timeline histogram under its own label.
func (t *Tracer) TraceSpans(records []query.Record) {
	for _, r := range records {
		if r.End < r.Begin {
			continue
		}
		t.spans.WithLabelValues(r.Label).Observe(float64(r.End-r.Begin) / 1e9)
	}
}

// TraceCounter reports a single pipeline-statistics sample as a
// gauge under label, registering the gauge on first use.
func (t *Tracer) TraceCounter(label string, value int64) {
	g, ok := t.gauges[label]
	if !ok {
		g = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gpu",
			Name:      sanitize(label),
			Help:      "GPU pipeline statistics counter " + label + ".",
		})
		t.reg.MustRegister(g)
		t.gauges[label] = g
	}
	g.Set(float64(value))
}

// sanitize strips the "gpu." prefix shared by every label, since
// it is already expressed as the metric namespace.
func sanitize(label string) string {
	const prefix = "gpu."
	if len(label) > len(prefix) && label[:len(prefix)] == prefix {
		return label[len(prefix):]
	}
	return label
}
