package driver

import "errors"

// ErrQueryUnsupported means that the driver and/or device do
// not support the requested query type.
var ErrQueryUnsupported = errors.New("query type not supported")

// GPUQuery is the interface that a GPU may implement to
// create timestamp and pipeline statistics query pools.
// A GPU that does not implement this interface, or whose
// New* methods return ErrQueryUnsupported, cannot be used to
// gather GPU-side trace spans.
type GPUQuery interface {
	// NewTimestampQuery creates a pool of n GPU timestamps.
	NewTimestampQuery(n int) (TimestampQuery, error)

	// NewStatisticsQuery creates a pool of n pipeline
	// statistics slots.
	NewStatisticsQuery(n int) (StatisticsQuery, error)
}

// Query is the interface that defines a pool of GPU queries.
// Queries are written during command recording and read back
// once the command buffer that wrote them has completed
// execution.
type Query interface {
	Destroyer

	// Len returns the number of slots in the pool.
	Len() int
}

// TimestampQuery is a pool of GPU timestamps, used to measure
// the duration of a labeled span of commands.
type TimestampQuery interface {
	Query

	// Result reads back the timestamp written at the given
	// slot, in nanoseconds. It must only be called after the
	// command buffer that wrote the slot has completed
	// execution.
	Result(slot int) (uint64, error)
}

// Statistics holds the result of a StatisticsQuery.
type Statistics struct {
	InputAssemblyVertices   uint64
	InputAssemblyPrimitives uint64
	VertexShaderInvocations uint64
	ClippingInvocations     uint64
	ClippingPrimitives      uint64
	FragmentShaderInvocations uint64
	ComputeShaderInvocations  uint64
}

// StatisticsQuery is a pool of GPU pipeline statistics, used
// to count per-stage invocations across a labeled span of
// commands.
type StatisticsQuery interface {
	Query

	// Result reads back the statistics written at the given
	// slot. It must only be called after the command buffer
	// that wrote the slot has completed execution.
	Result(slot int) (Statistics, error)
}

// CmdBufferTrace is the interface that a CmdBuffer may
// implement to support timestamp and pipeline statistics
// queries, which fall outside the core recording surface.
// Clear and blit commands are in CmdBufferBlit.
//
// Not every driver backend can support every query type, so
// callers must be prepared for NewTimestampQuery/
// NewStatisticsQuery on GPU to fail with ErrQueryUnsupported.
type CmdBufferTrace interface {
	// WriteTimestamp writes the current GPU time to the given
	// slot of q. It can be called at any point between Begin
	// and End, including inside a render pass.
	WriteTimestamp(q TimestampQuery, slot int)

	// ResetTimestampQuery makes the given range of slots in q
	// available for a new WriteTimestamp call. It must be
	// called before slots are reused.
	// It must only be called during data transfer (i.e.,
	// between BeginBlit and EndBlit).
	ResetTimestampQuery(q TimestampQuery, first, count int)

	// BeginStatistics begins accumulating pipeline statistics
	// into the given slot of q. It must be paired with a call
	// to EndStatistics using the same slot, with no nested
	// calls to BeginStatistics in between.
	BeginStatistics(q StatisticsQuery, slot int)

	// EndStatistics ends the statistics span started by the
	// matching BeginStatistics call.
	EndStatistics(q StatisticsQuery, slot int)
}

// GPUIdle is the interface that a GPU may implement to
// support blocking until all submitted work has completed.
type GPUIdle interface {
	// WaitIdle blocks until every batch previously submitted
	// via Commit has finished execution.
	WaitIdle() error
}

// BufferMap is the interface that a Buffer may implement to
// expose an explicit map/unmap/flush lifecycle around its
// host-visible memory, in addition to the always-available
// Bytes method.
// Map and Unmap need not be paired one-to-one with CPU
// writes; Flush is what makes prior writes to the mapped
// range visible to the GPU.
type BufferMap interface {
	// Map returns the same slice as Bytes. It exists to mark
	// the beginning of a CPU write that will later need a
	// matching Flush.
	Map() []byte

	// Unmap marks the end of CPU access to the mapped range.
	// It does not by itself make writes visible to the GPU.
	Unmap()

	// Flush makes writes performed in [off, off+size) visible
	// to subsequent GPU access.
	Flush(off, size int64)
}

// CmdBufferBlit is the interface that a CmdBuffer may
// implement to support additional transfer operations beyond
// CopyBuffer/CopyImage/CopyBufToImg/CopyImgToBuf/Fill.
type CmdBufferBlit interface {
	// ClearColorImage clears a color image to a uniform
	// value. It must only be called during data transfer.
	ClearColorImage(img Image, layer, level, layerCount, levelCount int, value [4]float32)

	// ClearDepthStencilImage clears a depth/stencil image to
	// a uniform value. It must only be called during data
	// transfer.
	ClearDepthStencilImage(img Image, layer, level, layerCount, levelCount int, depth float32, stencil uint32)

	// BlitImage copies a region of src to a region of dst,
	// scaling and/or converting formats as needed.
	// It must only be called during data transfer.
	BlitImage(dst Image, dstOff Off3D, dstSize Dim3D, dstLayer, dstLevel int, src Image, srcOff Off3D, srcSize Dim3D, srcLayer, srcLevel int, filter Filter)
}

// SwapchainImager is the interface that a Swapchain may
// implement to expose the underlying Image backing the view at
// a given index, for use with commands such as CmdBufferBlit
// that operate on an Image rather than an ImageView.
type SwapchainImager interface {
	// Image returns the Image backing Views()[index].
	Image(index int) Image
}
