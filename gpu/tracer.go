package gpu

import "github.com/kestrelui/core/gpu/query"

// Timeline is the label used for the GPU timeline's own
// timespan trace event.
const Timeline = "gpu.timeline"

// Pipeline statistics counter labels. BeginFrame reports all six
// for each statistics sample it reads back.
const (
	CounterInputAssemblyVertices     = "gpu.input_assembly_vertices"
	CounterVertexShaderInvocations   = "gpu.vertex_shader_invocations"
	CounterClippingInvocations       = "gpu.clipping_invocations"
	CounterClippingPrimitives        = "gpu.clipping_primitives"
	CounterFragmentShaderInvocations = "gpu.fragment_shader_invocations"
	CounterComputeShaderInvocations  = "gpu.compute_shader_invocations"
)

// Tracer is the trace sink collaborator: BeginFrame hands it the
// timestamp spans and pipeline statistics read back from the
// queries recorded when the same ring slot was last used.
type Tracer interface {
	// TraceSpans reports every timespan read back this frame;
	// each record carries the label its span was begun with.
	TraceSpans(records []query.Record)

	// TraceCounter reports a single pipeline-statistics
	// counter value under one of the Counter* labels.
	TraceCounter(label string, value int64)
}
