package promtrace

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/kestrelui/core/gpu"
	"github.com/kestrelui/core/gpu/query"
)

func TestTraceSpansObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr := New(reg)

	tr.TraceSpans([]query.Record{
		{Label: gpu.Timeline, Begin: 1_000_000, End: 5_000_000},
	})

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "gpu_timeline_seconds" {
			found = true
			if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
				t.Fatalf("sample count = %d, want 1", got)
			}
		}
	}
	if !found {
		t.Fatal("gpu_timeline_seconds histogram not registered")
	}
}

func TestTraceCounterRegistersGaugeOnFirstUse(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr := New(reg)

	tr.TraceCounter(gpu.CounterFragmentShaderInvocations, 42)
	tr.TraceCounter(gpu.CounterFragmentShaderInvocations, 43)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var got *dto.MetricFamily
	for _, mf := range mfs {
		if mf.GetName() == "gpu_fragment_shader_invocations" {
			got = mf
		}
	}
	if got == nil {
		t.Fatal("gpu_fragment_shader_invocations gauge not registered")
	}
	if v := got.GetMetric()[0].GetGauge().GetValue(); v != 43 {
		t.Fatalf("gauge value = %v, want 43 (last write wins)", v)
	}
}

func TestTraceSpansSkipsInvertedRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr := New(reg)

	tr.TraceSpans([]query.Record{{Label: "bad", Begin: 10, End: 5}})

	mfs, _ := reg.Gather()
	for _, mf := range mfs {
		if mf.GetName() == "gpu_timeline_seconds" {
			for _, m := range mf.GetMetric() {
				if m.GetHistogram().GetSampleCount() != 0 {
					t.Fatal("inverted record was observed")
				}
			}
		}
	}
}
