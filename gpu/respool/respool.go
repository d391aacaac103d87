// Package respool implements the GPU resource coordinator's
// bindless texture and sampler slot tables: fixed-capacity
// descriptor heaps indexed by small integer ids, with
// allocation tracked by a bitmap and updates applied on the
// main thread at the start of the next frame.
package respool

import (
	"errors"

	"github.com/kestrelui/core/driver"
	"github.com/kestrelui/core/gpu/taskqueue"
	"github.com/kestrelui/core/internal/bitm"
)

// ErrPoolExhausted is returned when a slot table has no free
// id left to allocate.
var ErrPoolExhausted = errors.New("respool: slot table exhausted")

// TextureId identifies a slot in the bindless texture
// descriptor array. The zero value is not a valid id.
type TextureId uint16

// SamplerId identifies a slot in the bindless sampler
// descriptor array. The zero value is not a valid id.
type SamplerId uint16

// NoTexture is the sentinel TextureId returned on allocation
// failure.
const NoTexture TextureId = 0

// NoSampler is the sentinel SamplerId returned on allocation
// failure.
const NoSampler SamplerId = 0

// textureCap is the fixed size of the bindless texture array.
// It is baked into the DescHeap's Descriptor.Len at creation
// time: a DescHeap's descriptor layout cannot be resized after
// New, so growing this would mean recreating the heap (and
// every DescTable bound to it) from scratch.
const textureCap = 4096

// samplerCap is the fixed size of the bindless sampler array.
const samplerCap = 256

// Default texture ids, fixed at low indices so that shaders
// can refer to them without a lookup.
const (
	_ TextureId = iota
	White
	Black
	Transparent
	Alpha
	Red
	Green
	Blue
	Magenta
	Cyan
	Yellow

	nDefaultTexture = iota - 1
)

var defaultColor = map[TextureId][4]byte{
	White:       {0xff, 0xff, 0xff, 0xff},
	Black:       {0x00, 0x00, 0x00, 0xff},
	Transparent: {0x00, 0x00, 0x00, 0x00},
	Alpha:       {0xff, 0xff, 0xff, 0x00},
	Red:         {0xff, 0x00, 0x00, 0xff},
	Green:       {0x00, 0xff, 0x00, 0xff},
	Blue:        {0x00, 0x00, 0xff, 0xff},
	Magenta:     {0xff, 0x00, 0xff, 0xff},
	Cyan:        {0x00, 0xff, 0xff, 0xff},
	Yellow:      {0xff, 0xff, 0x00, 0xff},
}

// Pool is a bindless texture and sampler slot table. The
// descriptor heaps are created once, with room for textureCap
// and samplerCap slots respectively, and a single copy (no
// per-frame ring of descriptor state: writes are synchronized
// by running them through q at the start of the frame that
// will observe them, rather than by maintaining N copies).
type Pool struct {
	gpu driver.GPU
	q   *taskqueue.Queue

	texHeap  driver.DescHeap
	texBits  bitm.Bitm[uint32]
	texViews []driver.ImageView
	texImgs  []driver.Image

	splrHeap  driver.DescHeap
	splrBits  bitm.Bitm[uint32]
	splrCache map[driver.Sampling]SamplerId
	splrs     []driver.Sampler
}

// New creates a Pool backed by g, deferring descriptor updates
// through q, and reserves the default texture ids. Call
// UploadDefaults afterwards to populate their pixel data.
func New(g driver.GPU, q *taskqueue.Queue) (*Pool, error) {
	texHeap, err := g.NewDescHeap([]driver.Descriptor{{Type: driver.DTexture, Nr: 0, Len: textureCap}})
	if err != nil {
		return nil, err
	}
	if err := texHeap.New(1); err != nil {
		texHeap.Destroy()
		return nil, err
	}
	splrHeap, err := g.NewDescHeap([]driver.Descriptor{{Type: driver.DSampler, Nr: 0, Len: samplerCap}})
	if err != nil {
		texHeap.Destroy()
		return nil, err
	}
	if err := splrHeap.New(1); err != nil {
		texHeap.Destroy()
		splrHeap.Destroy()
		return nil, err
	}

	p := &Pool{
		gpu:       g,
		q:         q,
		texHeap:   texHeap,
		splrHeap:  splrHeap,
		splrCache: make(map[driver.Sampling]SamplerId),
		texViews:  make([]driver.ImageView, textureCap),
		texImgs:   make([]driver.Image, textureCap),
		splrs:     make([]driver.Sampler, samplerCap),
	}
	p.texBits.Grow(textureCap / 32)
	p.splrBits.Grow(samplerCap / 32)

	// Reserve id 0 (NoTexture/NoSampler) and the contiguous
	// default texture range.
	for i := 0; i <= nDefaultTexture; i++ {
		p.texBits.Set(i)
	}
	p.splrBits.Set(0)

	return p, nil
}

// UploadDefaults stages the 1x1-pixel data for every default
// texture and records the copy commands that populate them,
// via stageFn (ordinarily gpu/upload.Ring.Stage). It must be
// called once, before the first frame that uses any default
// texture id is submitted, and its recorded copies must run on
// a command buffer before that frame's draw commands.
func (p *Pool) UploadDefaults(stageFn func(data []byte, commit func(cb driver.CmdBuffer, staging driver.Buffer, off int64))) error {
	for id := TextureId(1); id <= nDefaultTexture; id++ {
		color := defaultColor[id]
		img, err := p.gpu.NewImage(driver.RGBA8un, driver.Dim3D{Width: 1, Height: 1, Depth: 1}, 1, 1, 1, driver.UShaderSample)
		if err != nil {
			return err
		}
		view, err := img.NewView(driver.IView2D, 0, 1, 0, 1)
		if err != nil {
			return err
		}
		p.texImgs[id] = img
		p.bindTexture(id, view)

		pixel := []byte{color[0], color[1], color[2], color[3]}
		dstImg := img
		stageFn(pixel, func(cb driver.CmdBuffer, staging driver.Buffer, off int64) {
			cb.CopyBufToImg(&driver.BufImgCopy{
				Buf:    staging,
				BufOff: off,
				Img:    dstImg,
				Layer:  0,
				Level:  0,
				Size:   driver.Dim3D{Width: 1, Height: 1, Depth: 1},
			})
		})
	}
	return nil
}

// AllocTexture allocates a texture slot for iv and enqueues the
// descriptor update on q; the returned id is valid for use in
// shaders starting from the next call to q.Run (ordinarily the
// next frame's start).
func (p *Pool) AllocTexture(iv driver.ImageView, img driver.Image) (TextureId, error) {
	idx, ok := p.texBits.Search()
	if !ok {
		return NoTexture, ErrPoolExhausted
	}
	p.texBits.Set(idx)
	id := TextureId(idx)
	p.texImgs[idx] = img
	p.bindTexture(id, iv)
	return id, nil
}

func (p *Pool) bindTexture(id TextureId, iv driver.ImageView) {
	idx := int(id)
	p.texViews[idx] = iv
	p.q.Enqueue(func() {
		p.texHeap.SetImage(0, 0, idx, []driver.ImageView{iv})
	})
}

// ReleaseTexture frees id's slot and destroys its view and
// image. The id must not have been returned for a default
// texture. Destruction is deferred through free so the caller
// can delay it until the releasing frame's in-flight work has
// completed.
func (p *Pool) ReleaseTexture(id TextureId, free func(driver.Destroyer)) {
	idx := int(id)
	if idx <= nDefaultTexture {
		return
	}
	view := p.texViews[idx]
	img := p.texImgs[idx]
	p.texViews[idx] = nil
	p.texImgs[idx] = nil
	p.q.Enqueue(func() {
		p.texBits.Unset(idx)
	})
	if view != nil {
		free(view)
	}
	if img != nil {
		free(img)
	}
}

// AllocSampler returns the SamplerId for spln, creating and
// binding a new Sampler only if no slot already uses an
// equivalent Sampling state.
func (p *Pool) AllocSampler(spln driver.Sampling) (SamplerId, error) {
	if id, ok := p.splrCache[spln]; ok {
		return id, nil
	}
	idx, ok := p.splrBits.Search()
	if !ok {
		return NoSampler, ErrPoolExhausted
	}
	s, err := p.gpu.NewSampler(&spln)
	if err != nil {
		return NoSampler, err
	}
	p.splrBits.Set(idx)
	p.splrs[idx] = s
	id := SamplerId(idx)
	p.splrCache[spln] = id
	p.q.Enqueue(func() {
		p.splrHeap.SetSampler(0, 0, idx, []driver.Sampler{s})
	})
	return id, nil
}

// TextureHeap returns the descriptor heap backing texture ids,
// for binding into a driver.DescTable.
func (p *Pool) TextureHeap() driver.DescHeap { return p.texHeap }

// SamplerHeap returns the descriptor heap backing sampler ids,
// for binding into a driver.DescTable.
func (p *Pool) SamplerHeap() driver.DescHeap { return p.splrHeap }

// Close destroys every allocated texture, sampler, and both
// descriptor heaps. The caller must ensure no in-flight command
// buffer still references these resources.
func (p *Pool) Close() {
	for _, v := range p.texViews {
		if v != nil {
			v.Destroy()
		}
	}
	for _, im := range p.texImgs {
		if im != nil {
			im.Destroy()
		}
	}
	for _, s := range p.splrs {
		if s != nil {
			s.Destroy()
		}
	}
	p.texHeap.Destroy()
	p.splrHeap.Destroy()
}
