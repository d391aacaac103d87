package view

import "github.com/kestrelui/core/xform"

// layout runs the three-phase pass of §4.3 over the tree just built by
// Build, given the root's allotted viewport extent (normally the
// window/input extent).
func (t *ViewTree) layout(rootExtent Vec2) {
	if t.n == 0 {
		return
	}
	t.sizeDown(rootExtent)
	t.fitUp()
	t.composeCanvas()
}

// sizeDown is Phase A: top-down size distribution in ascending index
// order, i.e. parents before children (guaranteed by parent[i] < i).
func (t *ViewTree) sizeDown(rootExtent Vec2) {
	t.extent[0] = rootExtent
	for i := 0; i < t.n; i++ {
		r := t.children[i]
		if r.Span == 0 {
			continue
		}
		kids := t.extent[r.Begin : r.Begin+r.Span]
		t.views[i].Size(t.extent[i], kids)
	}
}

// fitUp is Phase B: bottom-up fit in descending index order, i.e.
// children before parents.
func (t *ViewTree) fitUp() {
	for i := t.n - 1; i >= 0; i-- {
		r := t.children[i]
		var kidExtents, kidCenters []Vec2
		if r.Span > 0 {
			kidExtents = t.extent[r.Begin : r.Begin+r.Span]
			kidCenters = t.center[r.Begin : r.Begin+r.Span]
		}
		lay := t.views[i].Fit(t.extent[i], kidExtents, kidCenters)
		t.extent[i] = lay.Extent
		if t.isViewport.Len() > i && t.isViewport.IsSet(i) {
			t.viewportExtent[i] = lay.ViewportExtent
			t.viewportCenter[i] = lay.ViewportCenter
			zoom := lay.ViewportZoom
			if zoom == 0 {
				zoom = 1
			}
			t.viewportZoom[i] = zoom
		}
		if lay.FixedCenter != nil {
			t.fixedCenter[i] = *lay.FixedCenter
		} else {
			t.fixedCenter[i] = t.center[i]
		}
	}
}

// composeCanvas is Phase C: accumulate the parent-viewport -> canvas
// affine transform and derive canvas-space center/extent/clip.
func (t *ViewTree) composeCanvas() {
	t.canvasXfm[0] = xform.Identity()
	t.canvasInvXfm[0] = xform.Identity()
	t.canvasCenter[0] = Vec2{}
	t.canvasExtent[0] = t.extent[0]
	t.clipRect[0] = Rect{Center: Vec2{}, Extent: t.extent[0]}

	for i := 1; i < t.n; i++ {
		vp := t.viewport[i]
		isVp := t.isViewport.Len() > i && t.isViewport.IsSet(i)

		var parentXfm xform.Affine2D
		if vp == noViewport {
			parentXfm = xform.Identity()
		} else {
			parentXfm = t.canvasXfm[vp]
		}

		if isVp {
			var xfm xform.Affine2D
			xfm.Compose(&parentXfm, t.fixedCenter[i], t.viewportZoom[i], t.viewportCenter[i])
			t.canvasXfm[i] = xfm
			var inv xform.Affine2D
			inv.Invert(&xfm)
			t.canvasInvXfm[i] = inv
		} else {
			t.canvasXfm[i] = parentXfm
			t.canvasInvXfm[i] = t.canvasInvXfm[vpOr(vp, i)]
		}

		t.canvasCenter[i] = parentXfm.Apply(t.fixedCenter[i])
		t.canvasExtent[i] = parentXfm.ApplyExtent(t.extent[i])

		var parentClip Rect
		if vp == noViewport {
			parentClip = t.clipRect[0]
		} else {
			parentClip = t.clipRect[vp]
		}
		if isVp {
			self := Rect{Center: t.canvasCenter[i], Extent: t.canvasExtent[i]}
			t.clipRect[i] = self.Intersect(parentClip)
		} else {
			t.clipRect[i] = parentClip
		}
	}
}

// vpOr returns vp if it is a valid index, else the root (0), used when
// a non-viewport's enclosing viewport is the root itself.
func vpOr(vp, self int) int {
	if vp == noViewport {
		return 0
	}
	return vp
}
