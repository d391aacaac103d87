package main

import (
	"github.com/kestrelui/core/view"
)

// panelView is the demo root: a single fixed-size rectangle, drawn in
// a fixed blue equal to DefaultTheme's Primary color (the theme passed
// to Tick is not read), that counts how many frames it has
// been ticked. It has no children and participates in neither focus
// nor pointer dispatch.
type panelView struct {
	id    view.Identity
	ticks int
}

func (v *panelView) Identity() *view.Identity { return &v.id }

func (v *panelView) Tick(ctx *view.Context, events view.Events, b *view.Builder) view.State {
	v.ticks++
	return view.State{}
}

func (v *panelView) Size(extent view.Vec2, children []view.Vec2) {}

func (v *panelView) Fit(extent view.Vec2, children, centers []view.Vec2) view.Layout {
	return view.Layout{Extent: extent, ViewportExtent: extent, ViewportZoom: 1}
}

func (v *panelView) ZIndex(inherited int, children []int) int { return inherited }
func (v *panelView) Layer(inherited int, children []int) int  { return inherited }

func (v *panelView) Render(canvas view.Canvas, region view.Region) {
	canvas.BRect(view.RectParams{
		Center: region.Canvas.Center,
		Extent: region.Canvas.Extent,
		Color:  view.Color{R: 0.2, G: 0.4, B: 0.9, A: 1},
		Clip:   region.Clip,
	})
}
