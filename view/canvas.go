package view

// Canvas is the external collaborator that records primitive shape
// instances against clip rectangles. The ViewTree's render pass calls
// these methods in z-order; nothing more is assumed of an
// implementation.
type Canvas interface {
	RRect(RRectParams)
	BRect(RectParams)
	Squircle(SquircleParams)
	Circle(CircleParams)
	Image(ImageParams)
}

// RectParams describes an axis-aligned filled/bordered rectangle.
type RectParams struct {
	Center, Extent Vec2
	Color          Color
	BorderColor    Color
	BorderWidth    float32
	Clip           Rect
}

// RRectParams is RectParams plus per-corner radii.
type RRectParams struct {
	RectParams
	Radii [4]float32
}

// SquircleParams describes a superellipse shape.
type SquircleParams struct {
	RectParams
	Elasticity float32
}

// CircleParams describes a filled/bordered circle.
type CircleParams struct {
	Center      Vec2
	Radius      float32
	Color       Color
	BorderColor Color
	BorderWidth float32
	Clip        Rect
}

// ImageParams draws a bound texture slot over a rectangle.
type ImageParams struct {
	Center, Extent Vec2
	TextureId      uint32
	UVMin, UVMax   Vec2
	Tint           Color
	Clip           Rect
}
