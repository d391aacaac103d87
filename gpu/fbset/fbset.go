// Package fbset implements the GPU resource coordinator's
// framebuffer set: a main render target plus any number of
// named scratch render targets, each with resolved color and
// depth/stencil storage, exposed to shaders as bindless
// sampled textures.
package fbset

import (
	"errors"

	"github.com/kestrelui/core/driver"
	"github.com/kestrelui/core/gpu/respool"
)

// Samples is the fixed MSAA sample count used for every
// target's color and depth attachments.
const Samples = 4

// ColorFmt is the pixel format used for every target's color
// attachment and its resolved copy.
const ColorFmt = driver.RGBA16f

// DepthFmt is the pixel format used for every target's
// depth/stencil attachment.
const DepthFmt = driver.D32f

var errNoTarget = errors.New("fbset: no scratch target with that name")

// Target is a single render target: a multisampled color and
// depth/stencil image pair, a resolved single-sample color
// image sampled by later passes, and the Framebuf binding them
// to a render pass.
type Target struct {
	width, height int

	color   driver.Image
	colorV  driver.ImageView
	resolve driver.Image
	resolveV driver.ImageView
	depth   driver.Image
	depthV  driver.ImageView

	fb driver.Framebuf

	texID      respool.TextureId
	depthTexID respool.TextureId
}

// Width and Height report the target's current extent.
func (t *Target) Width() int  { return t.width }
func (t *Target) Height() int { return t.height }

// ResolveView returns the image view of the resolved,
// single-sample color image, suitable for use as a render
// pass attachment elsewhere or for direct inspection.
func (t *Target) ResolveView() driver.ImageView { return t.resolveV }

// ResolveImage returns the resolved, single-sample color
// image itself, for use with commands such as CmdBufferBlit
// that operate on an Image rather than an ImageView.
func (t *Target) ResolveImage() driver.Image { return t.resolve }

// TextureId returns the bindless texture id through which
// shaders sample the target's resolved color image.
func (t *Target) TextureId() respool.TextureId { return t.texID }

// DepthTextureId returns the bindless texture id through which
// shaders sample the target's depth image.
func (t *Target) DepthTextureId() respool.TextureId { return t.depthTexID }

// Framebuf returns the driver.Framebuf bound to this target's
// color/depth/resolve attachments.
func (t *Target) Framebuf() driver.Framebuf { return t.fb }

// ColorImage returns the multisampled color image, for use
// with clear/blit commands issued outside the render pass.
func (t *Target) ColorImage() driver.Image { return t.color }

// DepthImage returns the multisampled depth image, for use
// with clear commands issued outside the render pass.
func (t *Target) DepthImage() driver.Image { return t.depth }

// Set is a render pass plus a main target and any number of
// named scratch targets, all sharing the same pass layout.
type Set struct {
	gpu  driver.GPU
	pool *respool.Pool
	pass driver.RenderPass

	main    *Target
	scratch map[string]*Target

	stale []driver.Destroyer
}

// New creates a Set using a render pass with one MSAA color
// attachment (resolved to ColorFmt) and one depth attachment
// (DepthFmt), and creates the main target at width x height.
func New(g driver.GPU, pool *respool.Pool, width, height int) (*Set, error) {
	pass, err := g.NewRenderPass(
		[]driver.Attachment{
			{Format: ColorFmt, Samples: Samples, Load: [2]driver.LoadOp{driver.LClear}, Store: [2]driver.StoreOp{driver.SDontCare}},
			{Format: DepthFmt, Samples: Samples, Load: [2]driver.LoadOp{driver.LClear}, Store: [2]driver.StoreOp{driver.SDontCare}},
			{Format: ColorFmt, Samples: 1, Load: [2]driver.LoadOp{driver.LDontCare}, Store: [2]driver.StoreOp{driver.SStore}},
		},
		[]driver.Subpass{{Color: []int{0}, DS: 1, MSR: []int{2}}},
	)
	if err != nil {
		return nil, err
	}
	s := &Set{gpu: g, pool: pool, pass: pass, scratch: make(map[string]*Target)}
	main, err := s.newTarget(width, height)
	if err != nil {
		pass.Destroy()
		return nil, err
	}
	s.main = main
	return s, nil
}

func (s *Set) newTarget(width, height int) (*Target, error) {
	color, err := s.gpu.NewImage(ColorFmt, driver.Dim3D{Width: width, Height: height, Depth: 1}, 1, 1, Samples, driver.URenderTarget)
	if err != nil {
		return nil, err
	}
	colorV, err := color.NewView(driver.IView2DMS, 0, 1, 0, 1)
	if err != nil {
		color.Destroy()
		return nil, err
	}
	depth, err := s.gpu.NewImage(DepthFmt, driver.Dim3D{Width: width, Height: height, Depth: 1}, 1, 1, Samples, driver.URenderTarget|driver.UShaderSample)
	if err != nil {
		color.Destroy()
		return nil, err
	}
	depthV, err := depth.NewView(driver.IView2DMS, 0, 1, 0, 1)
	if err != nil {
		color.Destroy()
		depth.Destroy()
		return nil, err
	}
	resolve, err := s.gpu.NewImage(ColorFmt, driver.Dim3D{Width: width, Height: height, Depth: 1}, 1, 1, 1, driver.URenderTarget|driver.UShaderSample)
	if err != nil {
		color.Destroy()
		depth.Destroy()
		return nil, err
	}
	resolveV, err := resolve.NewView(driver.IView2D, 0, 1, 0, 1)
	if err != nil {
		color.Destroy()
		depth.Destroy()
		resolve.Destroy()
		return nil, err
	}
	fb, err := s.pass.NewFB([]driver.ImageView{colorV, depthV, resolveV}, width, height, 1)
	if err != nil {
		color.Destroy()
		depth.Destroy()
		resolve.Destroy()
		return nil, err
	}
	texID, err := s.pool.AllocTexture(resolveV, resolve)
	if err != nil {
		fb.Destroy()
		color.Destroy()
		depth.Destroy()
		resolve.Destroy()
		return nil, err
	}
	// No aspect-selecting view exists in this driver surface
	// (NewView has no depth/stencil-only parameter), so the
	// same multisample view used by the render pass is bound
	// directly as the sampled depth texture.
	depthTexID, err := s.pool.AllocTexture(depthV, depth)
	if err != nil {
		s.pool.ReleaseTexture(texID, func(driver.Destroyer) {})
		fb.Destroy()
		color.Destroy()
		depth.Destroy()
		resolve.Destroy()
		return nil, err
	}
	return &Target{
		width: width, height: height,
		color: color, colorV: colorV,
		resolve: resolve, resolveV: resolveV,
		depth: depth, depthV: depthV,
		fb:         fb,
		texID:      texID,
		depthTexID: depthTexID,
	}, nil
}

// destroyables lists every driver object owned directly by t.
// It does not release t.texID/t.depthTexID from the pool's slot
// table first; the caller destroys the underlying image/view
// pair here, which is sufficient since nothing re-reads a
// stale slot before the pool itself reassigns it.
func (t *Target) destroyables() []driver.Destroyer {
	return []driver.Destroyer{t.fb, t.colorV, t.color, t.depthV, t.depth, t.resolveV, t.resolve}
}

// Main returns the main render target.
func (s *Set) Main() *Target { return s.main }

// Scratch returns the named scratch target, or (nil, false) if
// none exists by that name.
func (s *Set) Scratch(name string) (*Target, bool) {
	t, ok := s.scratch[name]
	return t, ok
}

// AllTargets returns the main target followed by every current
// scratch target, in unspecified order.
func (s *Set) AllTargets() []*Target {
	ts := make([]*Target, 0, 1+len(s.scratch))
	ts = append(ts, s.main)
	for _, t := range s.scratch {
		ts = append(ts, t)
	}
	return ts
}

// CreateScratch creates (or recreates, if one by that name
// already exists) a scratch target at width x height. The
// previous target, if any, is marked stale and destroyed by a
// subsequent IdleReclaim rather than immediately, so in-flight
// frames that still reference it remain valid.
func (s *Set) CreateScratch(name string, width, height int) (*Target, error) {
	t, err := s.newTarget(width, height)
	if err != nil {
		return nil, err
	}
	if old, ok := s.scratch[name]; ok {
		s.stale = append(s.stale, old.destroyables()...)
	}
	s.scratch[name] = t
	return t, nil
}

// RemoveScratch marks the named scratch target stale, to be
// destroyed by the next IdleReclaim, and removes it from the
// set.
func (s *Set) RemoveScratch(name string) error {
	t, ok := s.scratch[name]
	if !ok {
		return errNoTarget
	}
	s.stale = append(s.stale, t.destroyables()...)
	delete(s.scratch, name)
	return nil
}

// Resize recreates the main target at the new extent, marking
// the previous one stale. It is a no-op if width and height
// already match the main target's extent.
func (s *Set) Resize(width, height int) error {
	if s.main.width == width && s.main.height == height {
		return nil
	}
	t, err := s.newTarget(width, height)
	if err != nil {
		return err
	}
	s.stale = append(s.stale, s.main.destroyables()...)
	s.main = t
	return nil
}

// IdleReclaim destroys every target superseded by CreateScratch
// or Resize since the previous call. It must only be called
// once the GPU has gone idle (driver.GPUIdle.WaitIdle), so that
// no in-flight command buffer still references the destroyed
// images.
func (s *Set) IdleReclaim() {
	for _, d := range s.stale {
		d.Destroy()
	}
	s.stale = s.stale[:0]
}

// Close destroys the render pass, the main target, every
// scratch target, and any pending stale targets. The caller
// must ensure the GPU is idle first.
func (s *Set) Close() {
	s.IdleReclaim()
	for _, d := range s.main.destroyables() {
		d.Destroy()
	}
	for _, t := range s.scratch {
		for _, d := range t.destroyables() {
			d.Destroy()
		}
	}
	s.pass.Destroy()
}
