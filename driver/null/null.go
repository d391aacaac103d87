// Package null implements an in-memory driver.Driver with no
// external dependency on a real GPU, window system or
// graphics API. It exists so that packages built atop
// driver.GPU can be exercised in tests without linking
// against a platform-specific backend.
package null

import (
	"sync/atomic"

	"github.com/kestrelui/core/driver"
)

func init() {
	driver.Register(drv{})
}

type drv struct{}

func (drv) Name() string { return "null" }

func (drv) Open() (driver.GPU, error) {
	return &gpu{}, nil
}

func (drv) Close() {}

// gpu is a software driver.GPU with no device behind it. Most
// commands are no-ops; CopyBuffer and Fill update the bytes of
// host-visible buffers. Operations report success, except that
// NewBuffer panics on a non-positive size.
type gpu struct {
	limits driver.Limits
}

func (g *gpu) Driver() driver.Driver { return drv{} }

func (g *gpu) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	for _, c := range cb {
		if nc, ok := c.(*cmdBuffer); ok {
			nc.recording = false
		}
	}
	ch <- nil
}

func (g *gpu) WaitIdle() error { return nil }

func (g *gpu) NewCmdBuffer() (driver.CmdBuffer, error) {
	return &cmdBuffer{}, nil
}

func (g *gpu) NewRenderPass(att []driver.Attachment, sub []driver.Subpass) (driver.RenderPass, error) {
	rp := &renderPass{att: append([]driver.Attachment(nil), att...)}
	return rp, nil
}

func (g *gpu) NewShaderCode(data []byte) (driver.ShaderCode, error) {
	return &shaderCode{data: append([]byte(nil), data...)}, nil
}

func (g *gpu) NewDescHeap(ds []driver.Descriptor) (driver.DescHeap, error) {
	return &descHeap{desc: append([]driver.Descriptor(nil), ds...)}, nil
}

func (g *gpu) NewDescTable(dh []driver.DescHeap) (driver.DescTable, error) {
	return &descTable{heaps: append([]driver.DescHeap(nil), dh...)}, nil
}

func (g *gpu) NewPipeline(state any) (driver.Pipeline, error) {
	return &pipeline{state: state}, nil
}

func (g *gpu) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	if size <= 0 {
		panic("null: NewBuffer called with size <= 0")
	}
	b := &buffer{visible: visible, usage: usg}
	if visible {
		b.data = make([]byte, size)
	} else {
		b.cap = size
	}
	return b, nil
}

func (g *gpu) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	return &image{pf: pf, size: size, layers: layers, levels: levels, samples: samples, usage: usg}, nil
}

func (g *gpu) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	var s driver.Sampling
	if spln != nil {
		s = *spln
	}
	return &sampler{param: s}, nil
}

func (g *gpu) NewTimestampQuery(n int) (driver.TimestampQuery, error) {
	return &timestampQuery{results: make([]uint64, n)}, nil
}

func (g *gpu) NewStatisticsQuery(n int) (driver.StatisticsQuery, error) {
	return &statisticsQuery{results: make([]driver.Statistics, n)}, nil
}

func (g *gpu) Limits() driver.Limits {
	return driver.Limits{
		MaxImage1D:   16384,
		MaxImage2D:   16384,
		MaxImageCube: 16384,
		MaxImage3D:   2048,
		MaxLayers:    2048,
	}
}

var nextHandle atomic.Uint64

func handle() uint64 { return nextHandle.Add(1) }
