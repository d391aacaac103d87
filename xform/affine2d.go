// Package xform defines the 2D affine transform used to compose
// viewport coordinate systems during layout.
package xform

// Vec2 is a 2D point or extent in canvas space.
type Vec2 struct {
	X, Y float32
}

// Add sets v to contain l + r.
func (v *Vec2) Add(l, r *Vec2) { v.X, v.Y = l.X+r.X, l.Y+r.Y }

// Sub sets v to contain l - r.
func (v *Vec2) Sub(l, r *Vec2) { v.X, v.Y = l.X-r.X, l.Y-r.Y }

// Scale sets v to contain w scaled component-wise by s.
func (v *Vec2) Scale(s float32, w *Vec2) { v.X, v.Y = w.X*s, w.Y*s }

// Affine2D is a uniform similarity transform: a scale followed by a
// translation. Layout only ever composes transforms of the form
//
//	translate(a) · scale(s) · translate(-b)
//
// which always reduces to this shape (no shear, no rotation), so unlike
// linear.M3 a full 3x3 matrix is never needed.
type Affine2D struct {
	Offset Vec2
	Scale  float32
}

// Identity returns the identity transform.
func Identity() Affine2D { return Affine2D{Scale: 1} }

// Compose sets a to contain the transform
//
//	translate(center) · scale(zoom) · translate(-origin)
//
// applied after the parent transform p, i.e. a = p · translate(center) ·
// scale(zoom) · translate(-origin). This is the composition rule used
// by the layout pass to derive a viewport's canvas_xfm from its parent
// viewport's canvas_xfm.
func (a *Affine2D) Compose(p *Affine2D, center Vec2, zoom float32, origin Vec2) {
	// local = translate(center) · scale(zoom) · translate(-origin):
	// local(x) = zoom*(x - origin) + center
	s := zoom
	var off Vec2
	off.Scale(-zoom, &origin)
	off.Add(&off, &center)
	// a = p · local: a(x) = p.Scale*(s*x + off) + p.Offset
	a.Scale = p.Scale * s
	a.Offset.Scale(p.Scale, &off)
	a.Offset.Add(&a.Offset, &p.Offset)
}

// Apply transforms p by a, returning a.Scale*p + a.Offset.
func (a *Affine2D) Apply(p Vec2) Vec2 {
	var r Vec2
	r.Scale(a.Scale, &p)
	r.Add(&r, &a.Offset)
	return r
}

// ApplyExtent scales an extent by a's uniform scale factor, ignoring
// the translation (extents are not positions).
func (a *Affine2D) ApplyExtent(e Vec2) Vec2 {
	var r Vec2
	r.Scale(a.Scale, &e)
	return r
}

// Invert sets a to contain the inverse of n, using the closed form for
// a uniform scale+translate transform: if n(x) = n.Scale*x + n.Offset,
// then n^-1(x) = x/n.Scale - n.Offset/n.Scale.
func (a *Affine2D) Invert(n *Affine2D) {
	is := 1 / n.Scale
	a.Scale = is
	a.Offset.Scale(-is, &n.Offset)
}
