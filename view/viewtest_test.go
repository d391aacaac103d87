package view

import "github.com/kestrelui/core/wsi"

// stubView is a minimal, reusable View implementation for tests: it
// adds a fixed list of children on every Tick and otherwise
// passes extents/centers/z-keys straight through.
type stubView struct {
	id       Identity
	children []View
	state    State
	extent   Vec2 // fitted extent to report; zero means "use proposed"
	ticked   int
}

func (v *stubView) Identity() *Identity { return &v.id }

func (v *stubView) Tick(ctx *Context, events Events, b *Builder) State {
	v.ticked++
	for _, c := range v.children {
		b.Add(c)
	}
	return v.state
}

func (v *stubView) Size(extent Vec2, children []Vec2) {
	for i := range children {
		children[i] = extent
	}
}

func (v *stubView) Fit(extent Vec2, children []Vec2, centers []Vec2) Layout {
	for i := range centers {
		centers[i] = Vec2{}
	}
	e := extent
	if v.extent != (Vec2{}) {
		e = v.extent
	}
	return Layout{Extent: e, ViewportExtent: e, ViewportZoom: 1}
}

func (v *stubView) ZIndex(inherited int, children []int) int {
	for i := range children {
		children[i] = inherited
	}
	return inherited
}

func (v *stubView) Layer(inherited int, children []int) int {
	for i := range children {
		children[i] = inherited
	}
	return inherited
}

func (v *stubView) Render(canvas Canvas, region Region) {}

// recCanvas is a no-op Canvas that just counts calls.
type recCanvas struct{ n int }

func (c *recCanvas) RRect(RRectParams)       { c.n++ }
func (c *recCanvas) BRect(RectParams)        { c.n++ }
func (c *recCanvas) Squircle(SquircleParams) { c.n++ }
func (c *recCanvas) Circle(CircleParams)     { c.n++ }
func (c *recCanvas) Image(ImageParams)       { c.n++ }

func newInput(extent Vec2) *Input {
	return &Input{
		Extent:   extent,
		Keyboard: Keyboard{Keys: map[wsi.Key]KeyState{}},
	}
}
