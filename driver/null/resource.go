package null

import "github.com/kestrelui/core/driver"

type buffer struct {
	data    []byte
	cap     int64
	visible bool
	usage   driver.Usage
	mapped  bool
}

func (b *buffer) Destroy() {}

func (b *buffer) Visible() bool { return b.visible }

func (b *buffer) Bytes() []byte {
	if !b.visible {
		return nil
	}
	return b.data
}

func (b *buffer) Cap() int64 {
	if b.visible {
		return int64(len(b.data))
	}
	return b.cap
}

func (b *buffer) Map() []byte {
	b.mapped = true
	return b.Bytes()
}

func (b *buffer) Unmap() { b.mapped = false }

func (b *buffer) Flush(off, size int64) {}

type image struct {
	pf      driver.PixelFmt
	size    driver.Dim3D
	layers  int
	levels  int
	samples int
	usage   driver.Usage
}

func (i *image) Destroy() {}

func (i *image) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	return &imageView{img: i, typ: typ, layer: layer, layers: layers, level: level, levels: levels}, nil
}

type imageView struct {
	img                        *image
	typ                        driver.ViewType
	layer, layers, level, levels int
}

func (v *imageView) Destroy() {}

type sampler struct{ param driver.Sampling }

func (s *sampler) Destroy() {}

type shaderCode struct{ data []byte }

func (s *shaderCode) Destroy() {}

type descHeap struct {
	desc  []driver.Descriptor
	count int
}

func (h *descHeap) Destroy() {}

func (h *descHeap) New(n int) error {
	h.count = n
	return nil
}

func (h *descHeap) SetBuffer(cpy, nr, start int, buf []driver.Buffer, off, size []int64) {}
func (h *descHeap) SetImage(cpy, nr, start int, iv []driver.ImageView)                    {}
func (h *descHeap) SetSampler(cpy, nr, start int, splr []driver.Sampler)                  {}

func (h *descHeap) Count() int { return h.count }

type descTable struct{ heaps []driver.DescHeap }

func (t *descTable) Destroy() {}

type pipeline struct{ state any }

func (p *pipeline) Destroy() {}

type renderPass struct{ att []driver.Attachment }

func (r *renderPass) Destroy() {}

func (r *renderPass) NewFB(iv []driver.ImageView, width, height, layers int) (driver.Framebuf, error) {
	return &framebuf{pass: r, views: append([]driver.ImageView(nil), iv...), width: width, height: height, layers: layers}, nil
}

type framebuf struct {
	pass                *renderPass
	views               []driver.ImageView
	width, height, layers int
}

func (f *framebuf) Destroy() {}

type timestampQuery struct{ results []uint64 }

func (q *timestampQuery) Destroy() {}
func (q *timestampQuery) Len() int { return len(q.results) }

func (q *timestampQuery) Result(slot int) (uint64, error) {
	return q.results[slot], nil
}

type statisticsQuery struct{ results []driver.Statistics }

func (q *statisticsQuery) Destroy() {}
func (q *statisticsQuery) Len() int { return len(q.results) }

func (q *statisticsQuery) Result(slot int) (driver.Statistics, error) {
	return q.results[slot], nil
}
