// Package gpu implements the GPU resource coordinator: the
// frame ring that sequences command buffer recording, deferred
// resource release, pre-frame descriptor updates, staging
// uploads, and trace query readback across a bounded number of
// frames in flight.
package gpu

import (
	"errors"

	"github.com/kestrelui/core/driver"
	"github.com/kestrelui/core/gpu/fbset"
	"github.com/kestrelui/core/gpu/query"
	"github.com/kestrelui/core/gpu/respool"
	"github.com/kestrelui/core/gpu/taskqueue"
	"github.com/kestrelui/core/gpu/upload"
)

// errNotBegun is returned by SubmitFrame if called without a
// matching prior BeginFrame.
var errNotBegun = errors.New("gpu: SubmitFrame called without a matching BeginFrame")

type ringSlot struct {
	cb       driver.CmdBuffer
	released []driver.Destroyer
	upload   upload.Ring
	queries  *query.Set
}

// FrameContext describes the state of the frame currently being
// recorded.
type FrameContext struct {
	// RingIndex is Current mod the ring's buffering depth.
	RingIndex int

	// Current is the id of the frame being recorded.
	Current FrameId

	// Tail is the id of the oldest frame whose ring slot is
	// still considered in flight: objects released on any
	// frame < Tail are guaranteed safe to have been destroyed
	// already.
	Tail FrameId

	// Encoder is the command buffer recording this frame's
	// commands. It is valid between BeginFrame and the matching
	// SubmitFrame.
	Encoder driver.CmdBuffer
}

// Coordinator is the GPU resource coordinator. It owns the
// bindless texture/sampler slot table (respool.Pool), the
// framebuffer set (fbset.Set), the pre-frame task queue, and a
// ring of per-frame command buffers, staging upload rings, and
// query sets sized to the configured buffering depth.
//
// A Coordinator is not safe for concurrent use by multiple
// goroutines, except where a method's doc comment says
// otherwise (whatever respool/taskqueue methods it exposes
// transitively).
type Coordinator struct {
	gpu driver.GPU
	cfg Config

	q    taskqueue.Queue
	pool *respool.Pool
	fbs  *fbset.Set

	ring    []ringSlot
	frameID FrameId
	began   bool
}

// New creates a Coordinator backed by g, with the given
// configuration (zero fields fall back to DefaultConfig's
// values, and Buffering is clamped to [1, MaxBuffering]).
//
// It allocates the frame ring's command buffers and query
// sets, creates the default bindless textures and the main
// framebuffer target, and submits one synchronous command
// buffer to upload the default textures' pixel data before
// returning.
func New(g driver.GPU, cfg Config) (*Coordinator, error) {
	if cfg.Buffering <= 0 {
		cfg.Buffering = dflBuffering
	}
	if cfg.Buffering > MaxBuffering {
		cfg.Buffering = MaxBuffering
	}
	if cfg.QuerySlots <= 0 {
		cfg.QuerySlots = dflQuerySlots
	}
	if cfg.MainWidth <= 0 {
		cfg.MainWidth = dflMainWidth
	}
	if cfg.MainHeight <= 0 {
		cfg.MainHeight = dflMainHeight
	}

	c := &Coordinator{gpu: g, cfg: cfg}

	pool, err := respool.New(g, &c.q)
	if err != nil {
		return nil, err
	}
	c.pool = pool

	fbs, err := fbset.New(g, pool, cfg.MainWidth, cfg.MainHeight)
	if err != nil {
		pool.Close()
		return nil, err
	}
	c.fbs = fbs

	gq, _ := g.(driver.GPUQuery)
	c.ring = make([]ringSlot, cfg.Buffering)
	for i := range c.ring {
		cb, err := g.NewCmdBuffer()
		if err != nil {
			c.closePartial(i)
			return nil, err
		}
		set, err := query.New(gq, cfg.QuerySlots)
		if err != nil {
			cb.Destroy()
			c.closePartial(i)
			return nil, err
		}
		c.ring[i].cb = cb
		c.ring[i].queries = set
	}

	if err := c.uploadDefaults(); err != nil {
		c.closePartial(len(c.ring))
		return nil, err
	}

	return c, nil
}

func (c *Coordinator) closePartial(n int) {
	for i := 0; i < n && i < len(c.ring); i++ {
		if c.ring[i].cb != nil {
			c.ring[i].cb.Destroy()
		}
	}
	c.fbs.Close()
	c.pool.Close()
}

// uploadDefaults stages and submits the default textures'
// pixel data on a throwaway command buffer, synchronously,
// before the frame ring starts turning.
func (c *Coordinator) uploadDefaults() error {
	var ring upload.Ring
	err := c.pool.UploadDefaults(func(data []byte, commit func(cb driver.CmdBuffer, staging driver.Buffer, off int64)) {
		ring.Stage(data, commit)
	})
	if err != nil {
		return err
	}

	cb, err := c.gpu.NewCmdBuffer()
	if err != nil {
		return err
	}
	defer cb.Destroy()

	if err := cb.Begin(); err != nil {
		return err
	}
	cb.BeginBlit(false)
	if err := ring.Flush(c.gpu, cb, nil); err != nil {
		return err
	}
	cb.EndBlit()
	if err := cb.End(); err != nil {
		return err
	}

	ch := make(chan error, 1)
	c.gpu.Commit([]driver.CmdBuffer{cb}, ch)
	if err := <-ch; err != nil {
		return err
	}
	ring.Free(nil)
	c.q.Run()
	return nil
}

// Pool returns the bindless texture/sampler slot table.
func (c *Coordinator) Pool() *respool.Pool { return c.pool }

// Framebuffers returns the main and scratch render target set.
func (c *Coordinator) Framebuffers() *fbset.Set { return c.fbs }

// Release schedules d for destruction once the current frame's
// ring slot is reused, i.e. no sooner than Buffering frames
// from now. It takes no lock, so it is not safe for concurrent
// use; like the other Coordinator methods it belongs on the
// goroutine that drives the frames, between a
// BeginFrame/SubmitFrame pair so it lands in the right slot.
func (c *Coordinator) Release(d driver.Destroyer) {
	if d == nil {
		return
	}
	idx := int(c.frameID % FrameId(len(c.ring)))
	c.ring[idx].released = append(c.ring[idx].released, d)
}

// FrameContext describes the frame currently being recorded.
// It must only be called between BeginFrame and SubmitFrame.
func (c *Coordinator) FrameContext() FrameContext {
	idx := int(c.frameID % FrameId(len(c.ring)))
	tail := c.frameID - FrameId(len(c.ring)) + 1
	if tail < 0 {
		tail = 0
	}
	return FrameContext{
		RingIndex: idx,
		Current:   c.frameID,
		Tail:      tail,
		Encoder:   c.ring[idx].cb,
	}
}

// BeginFrame starts recording the next frame. In order, it:
//
//  1. destroys every object released into this ring slot
//     during the frame that last used it (guaranteed finished
//     executing, since a full ring rotation has passed);
//  2. runs every pending pre-frame task (descriptor slot
//     updates from respool, and any caller-enqueued task);
//  3. resets and begins the slot's command buffer;
//  4. flushes the slot's staging upload ring;
//  5. reads back the previous use of this slot's queries and
//     forwards them to cfg.Tracer, if set;
//  6. clears every framebuffer set target's color and depth
//     images.
//
// sc, if non-nil, is not otherwise used by BeginFrame; it is
// accepted so callers can pass the same value they will later
// pass to SubmitFrame.
func (c *Coordinator) BeginFrame(sc driver.Swapchain) error {
	idx := int(c.frameID % FrameId(len(c.ring)))
	slot := &c.ring[idx]

	for _, d := range slot.released {
		d.Destroy()
	}
	slot.released = slot.released[:0]

	c.q.Run()

	cb := slot.cb
	if err := cb.Reset(); err != nil {
		return err
	}
	if err := cb.Begin(); err != nil {
		return err
	}

	cb.BeginBlit(false)
	if err := slot.upload.Flush(c.gpu, cb, func(b driver.Buffer) { c.Release(b) }); err != nil {
		cb.EndBlit()
		return err
	}

	records, stats := slot.queries.Reset(cb)
	c.trace(records, stats)

	c.clearTargets(cb)
	cb.EndBlit()

	c.began = true
	return nil
}

func (c *Coordinator) trace(records []query.Record, stats []query.Stat) {
	if c.cfg.Tracer == nil {
		return
	}
	if len(records) > 0 {
		c.cfg.Tracer.TraceSpans(records)
	}
	for _, st := range stats {
		c.cfg.Tracer.TraceCounter(CounterInputAssemblyVertices, int64(st.InputAssemblyVertices))
		c.cfg.Tracer.TraceCounter(CounterVertexShaderInvocations, int64(st.VertexShaderInvocations))
		c.cfg.Tracer.TraceCounter(CounterClippingInvocations, int64(st.ClippingInvocations))
		c.cfg.Tracer.TraceCounter(CounterClippingPrimitives, int64(st.ClippingPrimitives))
		c.cfg.Tracer.TraceCounter(CounterFragmentShaderInvocations, int64(st.FragmentShaderInvocations))
		c.cfg.Tracer.TraceCounter(CounterComputeShaderInvocations, int64(st.ComputeShaderInvocations))
	}
}

func (c *Coordinator) clearTargets(cb driver.CmdBuffer) {
	blit, ok := cb.(driver.CmdBufferBlit)
	if !ok {
		return
	}
	for _, t := range c.fbs.AllTargets() {
		blit.ClearColorImage(t.ColorImage(), 0, 0, 1, 1, [4]float32{0, 0, 0, 0})
		blit.ClearDepthStencilImage(t.DepthImage(), 0, 0, 1, 1, 1, 0)
	}
}

// SubmitFrame acquires the next swapchain image (if sc is
// non-nil), blits the main framebuffer target's resolved color
// image into it with linear filtering (if both sc and the
// command buffer support the optional blit capability),
// presents it, ends the current frame's recording, and submits
// it.
//
// It is an error to call SubmitFrame without a matching prior
// BeginFrame.
func (c *Coordinator) SubmitFrame(sc driver.Swapchain) error {
	if !c.began {
		return errNotBegun
	}
	c.began = false

	idx := int(c.frameID % FrameId(len(c.ring)))
	cb := c.ring[idx].cb

	var scIdx int
	var scErr error
	if sc != nil {
		if scIdx, scErr = sc.Next(cb); scErr != nil {
			return scErr
		}
		if imager, ok := sc.(driver.SwapchainImager); ok {
			if blit, ok := cb.(driver.CmdBufferBlit); ok {
				dst := imager.Image(scIdx)
				main := c.fbs.Main()
				w, h := main.Width(), main.Height()
				cb.BeginBlit(false)
				blit.BlitImage(
					dst, driver.Off3D{}, driver.Dim3D{Width: w, Height: h, Depth: 1}, 0, 0,
					main.ResolveImage(), driver.Off3D{}, driver.Dim3D{Width: w, Height: h, Depth: 1}, 0, 0,
					driver.FLinear,
				)
				cb.EndBlit()
			}
		}
		if err := sc.Present(scIdx, cb); err != nil {
			return err
		}
	}

	if err := cb.End(); err != nil {
		return err
	}

	ch := make(chan error, 1)
	c.gpu.Commit([]driver.CmdBuffer{cb}, ch)
	if err := <-ch; err != nil {
		return err
	}

	c.frameID++
	return nil
}

// Shutdown waits for all submitted work to complete (if g
// supports driver.GPUIdle) and destroys every frame ring slot,
// the framebuffer set, and the bindless slot table. The
// Coordinator must not be used afterwards.
func (c *Coordinator) Shutdown() {
	if idler, ok := c.gpu.(driver.GPUIdle); ok {
		idler.WaitIdle()
	}
	for i := range c.ring {
		for _, d := range c.ring[i].released {
			d.Destroy()
		}
		c.ring[i].released = nil
		c.ring[i].cb.Destroy()
		if c.ring[i].queries != nil {
			c.ring[i].queries.Destroy()
		}
	}
	c.fbs.Close()
	c.pool.Close()
}
