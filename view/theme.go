package view

// Color is a straight-alpha RGBA color in [0,1].
type Color struct {
	R, G, B, A float32
}

// Theme is the process-wide, read-mostly palette and typography
// struct. One shared instance is initialized at engine start and
// passed to views via Context; a mutation made during a frame is
// observed starting the next frame.
type Theme struct {
	Background Color
	Surface    Color
	Primary    Color
	Error      Color
	Warning    Color
	Success    Color
	Active     Color
	Inactive   Color

	OnBackground Color
	OnSurface    Color
	OnPrimary    Color
	OnError      Color
	OnWarning    Color
	OnSuccess    Color
	OnActive     Color
	OnInactive   Color

	Focus     Color
	Highlight Color
	Caret     Color

	HeadFont   string
	BodyFont   string
	IconFont   string
	HeadSize   float32
	BodySize   float32
	LineHeight float32
}

// DefaultTheme returns a minimal light theme suitable as a starting
// point; real applications are expected to override it wholesale.
func DefaultTheme() Theme {
	white := Color{R: 1, G: 1, B: 1, A: 1}
	black := Color{A: 1}
	return Theme{
		Background:   white,
		Surface:      white,
		Primary:      Color{R: 0.2, G: 0.4, B: 0.9, A: 1},
		Error:        Color{R: 0.8, G: 0.1, B: 0.1, A: 1},
		Warning:      Color{R: 0.9, G: 0.6, B: 0.1, A: 1},
		Success:      Color{R: 0.1, G: 0.7, B: 0.2, A: 1},
		Active:       Color{R: 0.2, G: 0.4, B: 0.9, A: 1},
		Inactive:     Color{R: 0.6, G: 0.6, B: 0.6, A: 1},
		OnBackground: black,
		OnSurface:    black,
		OnPrimary:    white,
		OnError:      white,
		OnWarning:    black,
		OnSuccess:    white,
		OnActive:     white,
		OnInactive:   black,
		Focus:        Color{R: 0.2, G: 0.4, B: 0.9, A: 1},
		Highlight:    Color{R: 0.2, G: 0.4, B: 0.9, A: 0.3},
		Caret:        black,
		HeadFont:     "sans-serif",
		BodyFont:     "sans-serif",
		IconFont:     "icons",
		HeadSize:     20,
		BodySize:     14,
		LineHeight:   1.4,
	}
}
