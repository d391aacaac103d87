package view

import (
	"fmt"

	"github.com/kestrelui/core/internal/bitvec"
	"github.com/kestrelui/core/xform"
)

// ViewTree holds one frame's flattened view tree: parallel arrays
// indexed by a dense index i ∈ [0, N), with parent[i] < i for every
// non-root i and children[i] a contiguous, disjoint range. The arrays
// are cleared and repopulated from scratch every frame; nothing here
// persists the tree shape across frames — only the ViewId assigned to
// each view object (which the object itself owns) survives a rebuild.
//
// The zero value is not ready for use; call New.
type ViewTree struct {
	views    []View
	depth    []int
	parent   []int
	children []Range
	tabIdx   []int
	viewport []int
	ids      []ViewId

	hidden, pointable, clickable, scrollable bitvec.V[uint64]
	draggable, droppable, focusable          bitvec.V[uint64]
	tabInput, isViewport, fixed              bitvec.V[uint64]

	input []*TextInputDesc

	extent, center                             []Vec2
	viewportExtent, viewportCenter             []Vec2
	viewportZoom                               []float32
	fixedCenter                                []Vec2
	zIdx, layer                                []int
	canvasXfm, canvasInvXfm                     []xform.Affine2D
	canvasCenter, canvasExtent                  []Vec2
	clipRect                                    []Rect

	zOrd, focusOrd, focusIdx []int

	// cross-frame state
	nextID     ViewId
	events     *eventQueue
	hit        hitState
	focus      focusState
	focusGrab  int // dense index recorded during build, or -1
	deferClose bool

	// reused scratch slice, to avoid per-frame heap churn.
	stackCache []int

	n int // number of live nodes this frame
}

// New creates an empty ViewTree ready for its first Build.
func New() *ViewTree {
	t := &ViewTree{
		nextID: 1, // 0 is NoView
		events: newEventQueue(),
	}
	return t
}

// Len returns the number of views in the current frame's tree.
func (t *ViewTree) Len() int { return t.n }

// Node is a read-only summary of one dense index's post-Tick state,
// exported for snapshotting (see the snapshot subpackage) and for
// diagnostics; it is not used by the tick pipeline itself.
type Node struct {
	ID       ViewId
	Parent   int
	Depth    int
	ZIndex   int
	Layer    int
	Hidden   bool
	Center   Vec2
	Extent   Vec2
}

// Snapshot returns one Node per live index in the current frame's
// tree, in dense-index order (parent[i] < i for every non-root i, so
// a reader can reconstruct the tree by walking the slice once).
func (t *ViewTree) Snapshot() []Node {
	nodes := make([]Node, t.n)
	for i := 0; i < t.n; i++ {
		nodes[i] = Node{
			ID:     t.ids[i],
			Parent: t.parent[i],
			Depth:  t.depth[i],
			ZIndex: t.zIdx[i],
			Layer:  t.layer[i],
			Hidden: t.hidden.IsSet(i),
			Center: t.canvasCenter[i],
			Extent: t.canvasExtent[i],
		}
	}
	return nodes
}

func (t *ViewTree) scratchStack() []int { return t.stackCache[:0] }

// reset truncates every array to length 0, keeping backing storage,
// and clears the capability bit sets.
func (t *ViewTree) reset() {
	t.views = t.views[:0]
	t.depth = t.depth[:0]
	t.parent = t.parent[:0]
	t.children = t.children[:0]
	t.tabIdx = t.tabIdx[:0]
	t.viewport = t.viewport[:0]
	t.ids = t.ids[:0]
	t.input = t.input[:0]
	t.extent = t.extent[:0]
	t.center = t.center[:0]
	t.viewportExtent = t.viewportExtent[:0]
	t.viewportCenter = t.viewportCenter[:0]
	t.viewportZoom = t.viewportZoom[:0]
	t.fixedCenter = t.fixedCenter[:0]
	t.zIdx = t.zIdx[:0]
	t.layer = t.layer[:0]
	t.canvasXfm = t.canvasXfm[:0]
	t.canvasInvXfm = t.canvasInvXfm[:0]
	t.canvasCenter = t.canvasCenter[:0]
	t.canvasExtent = t.canvasExtent[:0]
	t.clipRect = t.clipRect[:0]
	t.zOrd = t.zOrd[:0]
	t.focusOrd = t.focusOrd[:0]
	t.focusIdx = t.focusIdx[:0]
	t.n = 0
	t.focusGrab = -1
	t.deferClose = false
	for _, v := range [](*bitvec.V[uint64]){
		&t.hidden, &t.pointable, &t.clickable, &t.scrollable,
		&t.draggable, &t.droppable, &t.focusable,
		&t.tabInput, &t.isViewport, &t.fixed,
	} {
		v.Clear()
	}
}

func (t *ViewTree) ensureBit(v *bitvec.V[uint64], i int) {
	for v.Len() <= i {
		v.Grow(1)
	}
}

func (t *ViewTree) setFlag(v *bitvec.V[uint64], i int, on bool) {
	t.ensureBit(v, i)
	if on {
		v.Set(i)
	}
}

// push allocates a dense index for v and records its static tree
// shape (depth, parent, viewport ancestor). It returns the new index.
func (t *ViewTree) push(v View, depth, parent, viewport int) int {
	i := t.n
	if i >= MaxViews {
		panic(fmt.Sprintf("view: tree exceeds MaxViews (%d)", MaxViews))
	}
	t.views = append(t.views, v)
	t.depth = append(t.depth, depth)
	t.parent = append(t.parent, parent)
	t.children = append(t.children, Range{})
	t.tabIdx = append(t.tabIdx, 0)
	t.viewport = append(t.viewport, viewport)
	t.ids = append(t.ids, NoView)
	t.input = append(t.input, nil)
	t.extent = append(t.extent, Vec2{})
	t.center = append(t.center, Vec2{})
	t.viewportExtent = append(t.viewportExtent, Vec2{})
	t.viewportCenter = append(t.viewportCenter, Vec2{})
	t.viewportZoom = append(t.viewportZoom, 1)
	t.fixedCenter = append(t.fixedCenter, Vec2{})
	t.zIdx = append(t.zIdx, 0)
	t.layer = append(t.layer, 0)
	t.canvasXfm = append(t.canvasXfm, xform.Identity())
	t.canvasInvXfm = append(t.canvasInvXfm, xform.Identity())
	t.canvasCenter = append(t.canvasCenter, Vec2{})
	t.canvasExtent = append(t.canvasExtent, Vec2{})
	t.clipRect = append(t.clipRect, Rect{})
	t.n++
	return i
}

// appendChild is called by Builder.Add while parent is being ticked.
// It only allocates the index and records shape; the child's own Tick
// happens later, when the build traversal pops it from the work
// stack, preserving depth-first visitation order. The viewport
// ancestor recorded here is provisional: parent's own State (which may
// declare it a viewport) is not known until its Tick call returns, so
// Build backpatches viewport[child] to parent once state.Viewport is
// known.
func (t *ViewTree) appendChild(v View, parent int) int {
	depth := t.depth[parent] + 1
	return t.push(v, depth, parent, t.viewport[parent])
}

// Build rebuilds the tree from root, invoking Tick depth-first. ctx is
// passed to every Tick call unchanged.
func (t *ViewTree) Build(root View, ctx *Context) {
	t.reset()
	rootIdx := t.push(root, 0, noParent, noViewport)
	stack := append(t.scratchStack(), rootIdx)
	tabCounter := 0
	for len(stack) > 0 {
		last := len(stack) - 1
		i := stack[last]
		stack = stack[:last]

		v := t.views[i]
		id := v.Identity()
		var events Events
		if id.ID == NoView {
			id.ID = t.nextID
			t.nextID++
			events |= Mount
		}
		p := t.events.drain(id.ID)
		events |= p.bits
		id.Hot = false
		t.ids[i] = id.ID

		b := &Builder{tree: t, parent: i}
		childBegin := t.n
		state := v.Tick(ctx, events, b)
		childSpan := t.n - childBegin
		t.children[i] = Range{Begin: childBegin, Span: childSpan}

		tab := state.TabIdx
		if tab < 0 {
			tab = tabCounter
		}
		t.tabIdx[i] = tab
		tabCounter++

		t.setFlag(&t.hidden, i, state.Hidden)
		t.setFlag(&t.pointable, i, state.Pointable)
		t.setFlag(&t.clickable, i, state.Clickable)
		t.setFlag(&t.scrollable, i, state.Scrollable)
		t.setFlag(&t.draggable, i, state.Draggable)
		t.setFlag(&t.droppable, i, state.Droppable)
		t.setFlag(&t.focusable, i, state.Focusable)
		t.setFlag(&t.isViewport, i, state.Viewport)
		t.setFlag(&t.fixed, i, state.Fixed)
		if state.Viewport {
			for c := childBegin; c < childBegin+childSpan; c++ {
				t.viewport[c] = i
			}
		}
		if state.Input != nil {
			t.setFlag(&t.tabInput, i, state.Input.TabInput)
			t.input[i] = state.Input
		}

		if state.GrabFocus && !state.Hidden && state.Focusable {
			t.focusGrab = i // last writer wins
		}
		if state.DeferClose {
			t.deferClose = true
		}

		for c := childBegin + childSpan - 1; c >= childBegin; c-- {
			stack = append(stack, c)
		}
	}
	t.stackCache = stack[:0]
}
