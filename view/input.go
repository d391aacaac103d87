package view

import "github.com/kestrelui/core/wsi"

// MouseButton identifies one of a handful of tracked pointer buttons.
type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
	numMouseButtons
)

// ButtonState is the per-button edge/level state for one frame.
type ButtonState struct {
	Down, Up, Held bool
	ClickCount     int
}

// Mouse is the per-frame pointer state.
type Mouse struct {
	Position Vec2
	Focused  bool
	Wheel    Vec2
	Buttons  [numMouseButtons]ButtonState
	Scrolled bool
	AnyUp    bool
	AnyDown  bool
	AnyMoved bool
}

// Key identifies a keyboard key, as assigned by the wsi collaborator.
type Key = wsi.Key

// KeyState is the per-key edge/level state for one frame.
type KeyState struct {
	Down, Held, Up bool
}

// Modifiers is a bitfield of held modifier keys.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Keyboard is the per-frame keyboard state.
type Keyboard struct {
	Keys       map[Key]KeyState
	AnyUp      bool
	AnyDown    bool
	TextInput  []byte
	Modifiers  Modifiers
}

// DropPhase is the lifecycle stage of a drag-and-drop payload arriving
// from outside the process (e.g. the OS file manager).
type DropPhase int

const (
	DropNone DropPhase = iota
	DropBegin
	DropOver
	DropEnd
)

// DropContext is the per-frame external drop context.
type DropContext struct {
	Phase DropPhase
	Type  string
	Bytes []byte
}

// Input is the structure the run loop feeds into ViewTree.Tick once
// per frame.
type Input struct {
	Extent    Vec2
	Timestamp int64
	Mouse     Mouse
	Keyboard  Keyboard
	Drop      DropContext
	Closing   bool
}
