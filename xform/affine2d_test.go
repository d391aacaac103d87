package xform

import "testing"

func TestIdentity(t *testing.T) {
	id := Identity()
	if id.Scale != 1 {
		t.Fatalf("Identity.Scale:\nhave %v\nwant 1", id.Scale)
	}
	if id.Offset != (Vec2{}) {
		t.Fatalf("Identity.Offset:\nhave %v\nwant {0 0}", id.Offset)
	}
	p := Vec2{X: 3, Y: -5}
	if r := id.Apply(p); r != p {
		t.Fatalf("Identity.Apply:\nhave %v\nwant %v", r, p)
	}
}

func TestComposeRoot(t *testing.T) {
	var a Affine2D
	p := Identity()
	center := Vec2{X: 10, Y: 20}
	origin := Vec2{X: 2, Y: 3}
	a.Compose(&p, center, 2, origin)
	// a(x) = 2*(x - origin) + center
	want := Vec2{X: 2*(5-2) + 10, Y: 2*(5-3) + 20}
	have := a.Apply(Vec2{X: 5, Y: 5})
	if have != want {
		t.Fatalf("Compose.Apply:\nhave %v\nwant %v", have, want)
	}
}

func TestComposeNested(t *testing.T) {
	var parent, child Affine2D
	root := Identity()
	parent.Compose(&root, Vec2{X: 100, Y: 100}, 2, Vec2{})
	child.Compose(&parent, Vec2{}, 1, Vec2{})
	// child should equal parent since the nested compose is identity-local
	if child != parent {
		t.Fatalf("Compose (nested identity):\nhave %v\nwant %v", child, parent)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	var a, inv Affine2D
	p := Identity()
	a.Compose(&p, Vec2{X: 10, Y: -4}, 3, Vec2{X: 1, Y: 1})
	inv.Invert(&a)
	pt := Vec2{X: 7, Y: -2}
	transformed := a.Apply(pt)
	back := inv.Apply(transformed)
	const eps = 1e-4
	if absf(back.X-pt.X) > eps || absf(back.Y-pt.Y) > eps {
		t.Fatalf("Invert round-trip:\nhave %v\nwant %v", back, pt)
	}
}

func TestApplyExtentIgnoresOffset(t *testing.T) {
	a := Affine2D{Offset: Vec2{X: 50, Y: 50}, Scale: 2}
	e := Vec2{X: 4, Y: 6}
	want := Vec2{X: 8, Y: 12}
	if r := a.ApplyExtent(e); r != want {
		t.Fatalf("ApplyExtent:\nhave %v\nwant %v", r, want)
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
