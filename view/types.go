// Package view implements the retained-mode UI core: a per-frame
// rebuilt, flattened view tree with layout, stacking, clipping,
// visibility culling, render dispatch, hit-testing, focus navigation
// and event composition.
//
// The tree is discarded and rebuilt every frame. Nothing here assumes
// a threaded UI, an animation timeline, or cross-frame scene caching.
package view

import "github.com/kestrelui/core/xform"

// Vec2 is a 2D point or extent in parent-local, viewport, or canvas
// space depending on context.
type Vec2 = xform.Vec2

// Rect is an axis-aligned rectangle described by its center and
// extent (half-size on each axis is Extent/2... by convention here
// Extent is the full width/height, matching extent[i] in the tree).
type Rect struct {
	Center Vec2
	Extent Vec2
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	dx := absf(r.Center.X - o.Center.X)
	dy := absf(r.Center.Y - o.Center.Y)
	return dx < (r.Extent.X+o.Extent.X)/2 && dy < (r.Extent.Y+o.Extent.Y)/2
}

// Contains reports whether p lies within r.
func (r Rect) Contains(p Vec2) bool {
	dx := absf(p.X - r.Center.X)
	dy := absf(p.Y - r.Center.Y)
	return dx <= r.Extent.X/2 && dy <= r.Extent.Y/2
}

// Intersect returns the rectangle intersection of r and o. On an axis
// where they do not overlap, the result has zero extent on that axis,
// placed at the larger of the two rectangles' minimum edges.
func (r Rect) Intersect(o Rect) Rect {
	rMinX, rMaxX := r.Center.X-r.Extent.X/2, r.Center.X+r.Extent.X/2
	rMinY, rMaxY := r.Center.Y-r.Extent.Y/2, r.Center.Y+r.Extent.Y/2
	oMinX, oMaxX := o.Center.X-o.Extent.X/2, o.Center.X+o.Extent.X/2
	oMinY, oMaxY := o.Center.Y-o.Extent.Y/2, o.Center.Y+o.Extent.Y/2
	minX, maxX := maxf(rMinX, oMinX), minf(rMaxX, oMaxX)
	minY, maxY := maxf(rMinY, oMinY), minf(rMaxY, oMaxY)
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return Rect{
		Center: Vec2{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Extent: Vec2{X: maxX - minX, Y: maxY - minY},
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// ViewId is a monotonically increasing identity token assigned to a
// view on first mount and stable across frames. Ids are never reused
// within a process lifetime.
type ViewId uint64

// NoView is the sentinel ViewId indicating "unmounted" or
// "unresolved".
const NoView ViewId = 0

// MaxViews bounds the number of views a single frame's tree may hold.
// The dense index type is a plain int, but the core enforces this
// ceiling and panics if it is exceeded,
// matching the 16-bit dense index assumed by the source this was
// distilled from.
const MaxViews = 65535

// noParent and noViewport are the sentinel values for parent[i] and
// viewport[i] at the root.
const (
	noParent   = -1
	noViewport = -1
)

// Range is a contiguous, disjoint index range into the tree's
// parallel arrays: [Begin, Begin+Span).
type Range struct {
	Begin int
	Span  int
}

// Identity is the pair of mutable fields the core owns on every view:
// a stable id assigned at first mount, and a "hot" bit marking the
// view eligible for event delivery on the next frame. A view embeds
// this struct and returns a pointer to it from Identity().
type Identity struct {
	ID  ViewId
	Hot bool
}

// TextInputDesc describes a view's text-input participation, set when
// the view declares itself an input target in its State.
type TextInputDesc struct {
	Multiline bool
	TabInput  bool
}

// State is returned by View.Tick and captures everything the core
// needs to place the view in the tree: its desired tab order,
// visibility/interaction capability flags, viewport/fixed-positioning
// declarations, and one-shot signals (GrabFocus, DeferClose).
type State struct {
	// TabIdx is the view's desired tab order. A negative value means
	// "unset": the core substitutes the running depth-first visit
	// counter as the default.
	TabIdx int

	Hidden     bool
	Pointable  bool
	Clickable  bool
	Scrollable bool
	Draggable  bool
	Droppable  bool
	Focusable  bool

	Viewport bool
	Fixed    bool

	Input *TextInputDesc

	GrabFocus  bool
	DeferClose bool
}

// Layout is returned by View.Fit: the view's own fitted extent, and —
// if it declared itself a viewport in State — its inner viewport
// transform.
type Layout struct {
	Extent Vec2

	ViewportExtent Vec2
	ViewportCenter Vec2
	ViewportZoom   float32

	// FixedCenter overrides center[i] with a viewport-absolute
	// position when non-nil.
	FixedCenter *Vec2
}

// Region is passed to View.Render: the view's rectangle in its
// parent-local (viewport) space, its canvas-space rectangle, and the
// canvas-space clip rectangle in effect.
type Region struct {
	Local  Rect
	Canvas Rect
	Clip   Rect
}

// View is the polymorphic capability set every node in the tree
// implements. The core never downcasts a View; it only calls these
// methods and reads/writes the Identity it returns.
type View interface {
	// Identity returns a pointer to the view's core-owned identity
	// fields. It must never return nil and must always return the
	// same pointer for a given receiver.
	Identity() *Identity

	// Tick is invoked once per frame in depth-first order. events
	// carries this view's drained cross-frame events. b accumulates
	// this view's children; Tick may call b.Add any number of times.
	Tick(ctx *Context, events Events, b *Builder) State

	// Size hands each child a proposed allocation, given the extent
	// this view itself was allocated. children is pre-sized to this
	// view's child count and must be written in place.
	Size(extent Vec2, children []Vec2)

	// Fit is called bottom-up: children holds each child's already-
	// fitted extent. Fit writes each child's center in place and
	// returns this view's own fitted Layout.
	Fit(extent Vec2, children []Vec2, centers []Vec2) Layout

	// ZIndex propagates a stacking key top-down: children is this
	// view's children's z-index slots, written in place. It returns
	// this view's own resolved z-index.
	ZIndex(inherited int, children []int) int

	// Layer propagates a stacking layer top-down, same shape as
	// ZIndex.
	Layer(inherited int, children []int) int

	// Render draws the view's own content. The core has already
	// resolved clipping and visibility; Render is not invoked for
	// hidden views.
	Render(canvas Canvas, region Region)
}

// Context is the per-tick dependency bundle passed to View.Tick.
type Context struct {
	Input *Input
	Theme *Theme
}

// Builder accumulates a view's children during Tick. It is only
// valid for the duration of the Tick call that received it.
type Builder struct {
	tree   *ViewTree
	parent int
}

// Add appends v as the next child of the view currently being ticked.
func (b *Builder) Add(v View) {
	b.tree.appendChild(v, b.parent)
}
