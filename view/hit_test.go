package view

import (
	"testing"

	"github.com/kestrelui/core/wsi"
)

// TestDragCancel covers scenario 4: pressing Esc while dragging emits
// DragEnd on the source with no Drop anywhere, and the hit state
// machine returns to None.
func TestDragCancel(t *testing.T) {
	a := &stubView{state: State{TabIdx: -1, Draggable: true}, extent: Vec2{X: 40, Y: 40}}
	root := &stubView{state: State{TabIdx: -1}, children: []View{a}}

	tree := New()
	canvas := &recCanvas{}
	theme := DefaultTheme()

	in := newInput(Vec2{X: 200, Y: 200})
	in.Mouse.Focused = true
	in.Mouse.Position = Vec2{}
	in.Mouse.Buttons[ButtonPrimary] = ButtonState{Held: true, Down: true}
	tree.Tick(in, &theme, root, canvas)

	if tree.hit.phase != hitDragStart {
		t.Fatalf("hit phase after press = %v, want hitDragStart", tree.hit.phase)
	}
	if tree.hit.src != a.id.ID {
		t.Fatalf("hit src = %d, want a's id %d", tree.hit.src, a.id.ID)
	}

	in2 := newInput(Vec2{X: 200, Y: 200})
	in2.Mouse.Focused = true
	in2.Mouse.Buttons[ButtonPrimary] = ButtonState{Held: true}
	in2.Keyboard.Keys[wsi.KeyEsc] = KeyState{Down: true, Held: true}
	tree.Tick(in2, &theme, root, canvas)

	if tree.hit.phase != hitNone {
		t.Fatalf("hit phase after Esc = %v, want hitNone", tree.hit.phase)
	}
	if tree.hit.src != NoView {
		t.Fatalf("hit src after cancel = %d, want NoView", tree.hit.src)
	}

	p, ok := tree.events.m[a.id.ID]
	if !ok {
		t.Fatalf("expected a queued event for a after drag cancel")
	}
	if !p.bits.Has(DragEnd) {
		t.Fatalf("expected DragEnd queued for a, got bits %v", p.bits)
	}
	if p.bits.Has(Drop) {
		t.Fatalf("did not expect Drop on cancel, got bits %v", p.bits)
	}
}
