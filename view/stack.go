package view

import "sort"

// stack runs §4.4's stacking and visibility passes: z_idx/layer
// propagation, a stable z_ord permutation, and hidden-inheritance.
func (t *ViewTree) stack() {
	if t.n == 0 {
		return
	}
	t.zIdx[0] = 0
	t.layer[0] = 0
	for i := 0; i < t.n; i++ {
		r := t.children[i]
		var zKids, lKids []int
		if r.Span > 0 {
			zKids = t.zIdx[r.Begin : r.Begin+r.Span]
			lKids = t.layer[r.Begin : r.Begin+r.Span]
		}
		t.zIdx[i] = t.views[i].ZIndex(t.zIdx[i], zKids)
		t.layer[i] = t.views[i].Layer(t.layer[i], lKids)
	}

	if cap(t.zOrd) < t.n {
		t.zOrd = make([]int, t.n)
	} else {
		t.zOrd = t.zOrd[:t.n]
	}
	for i := range t.zOrd {
		t.zOrd[i] = i
	}
	sort.SliceStable(t.zOrd, func(a, b int) bool {
		x, y := t.zOrd[a], t.zOrd[b]
		if t.layer[x] != t.layer[y] {
			return t.layer[x] < t.layer[y]
		}
		if t.zIdx[x] != t.zIdx[y] {
			return t.zIdx[x] < t.zIdx[y]
		}
		return t.depth[x] < t.depth[y]
	})

	t.visibility()
}

// visibility implements the hidden-inheritance and clip-culling DFS of
// §4.4. Indices are visited in ascending order, which is safe because
// hidden[i] depends only on hidden[parent[i]] (already computed) and
// clip[viewport[i]] (a Phase-C result computed once per frame).
func (t *ViewTree) visibility() {
	for i := 0; i < t.n; i++ {
		h := t.hidden.Len() > i && t.hidden.IsSet(i)
		if i > 0 {
			p := t.parent[i]
			if t.hidden.Len() > p && t.hidden.IsSet(p) {
				h = true
			}
		}
		if !h {
			vp := t.viewport[i]
			var clip Rect
			if vp == noViewport {
				clip = t.clipRect[0]
			} else {
				clip = t.clipRect[vp]
			}
			self := Rect{Center: t.canvasCenter[i], Extent: t.canvasExtent[i]}
			if !clip.Overlaps(self) {
				h = true
			}
		}
		t.setFlag(&t.hidden, i, h)
	}
}

// render iterates z_ord back-to-front and dispatches Render on every
// non-hidden view.
func (t *ViewTree) render(canvas Canvas) {
	for _, i := range t.zOrd {
		if t.hidden.Len() > i && t.hidden.IsSet(i) {
			continue
		}
		region := Region{
			Local:  Rect{Center: t.center[i], Extent: t.extent[i]},
			Canvas: Rect{Center: t.canvasCenter[i], Extent: t.canvasExtent[i]},
			Clip:   t.clipRect[i],
		}
		t.views[i].Render(canvas, region)
	}
}
