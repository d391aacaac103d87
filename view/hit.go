package view

import "github.com/kestrelui/core/wsi"

// hitPhase is the tag of the cross-frame hit state machine's tagged
// union, per §4.5.
type hitPhase int

const (
	hitNone hitPhase = iota
	hitPoint
	hitDragStart
	hitDragUpdate
)

// hitState is the cross-frame state carried between frames. ViewId
// fields use the NoView sentinel for "absent"; they are resolved to
// dense indices at the start of each frame's step, with unresolved
// ids dropping the state back to None.
type hitState struct {
	phase hitPhase
	src   ViewId
	tgt   ViewId
}

func (t *ViewTree) idToIdx(id ViewId) int {
	if id == NoView {
		return -1
	}
	for i, v := range t.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (t *ViewTree) capable(set interface{ Len() int; IsSet(int) bool }, i int) bool {
	if i < 0 {
		return false
	}
	if t.hidden.Len() > i && t.hidden.IsSet(i) {
		return false
	}
	return set.Len() > i && set.IsSet(i)
}

// hitTest walks z_ord in reverse, returning the first non-hidden view
// whose canvas rectangle contains pos and whose own or ancestor chain
// satisfies pred ("bubble hit"). -1 if nothing matches.
func (t *ViewTree) hitTest(pos Vec2, pred func(i int) bool) int {
	for k := len(t.zOrd) - 1; k >= 0; k-- {
		i := t.zOrd[k]
		if t.hidden.Len() > i && t.hidden.IsSet(i) {
			continue
		}
		rect := Rect{Center: t.canvasCenter[i], Extent: t.canvasExtent[i]}
		if !rect.Contains(pos) {
			continue
		}
		for a := i; a != noParent; a = t.parent[a] {
			if pred(a) {
				return a
			}
		}
	}
	return -1
}

func (t *ViewTree) hitPointable(i int) bool { return t.capable(&t.pointable, i) }
func (t *ViewTree) hitClickable(i int) bool { return t.capable(&t.clickable, i) }
func (t *ViewTree) hitScrollable(i int) bool { return t.capable(&t.scrollable, i) }
func (t *ViewTree) hitDraggable(i int) bool { return t.capable(&t.draggable, i) }
func (t *ViewTree) hitDroppable(i int) bool { return t.capable(&t.droppable, i) }

func (t *ViewTree) dragOrClickable(i int) bool {
	return t.hitDraggable(i) || t.hitClickable(i)
}

// stepHit advances the cross-frame hit state machine by one frame per
// the transition table in §4.5, emitting events into the frame's event
// queue (delivered to views on their next Tick).
func (t *ViewTree) stepHit(in *Input) {
	if t.n == 0 {
		return
	}
	src := t.idToIdx(t.hit.src)
	tgt := t.idToIdx(t.hit.tgt)
	if t.hit.src != NoView && src < 0 {
		t.hit.phase = hitNone
	}
	if t.hit.tgt != NoView && tgt < 0 {
		if t.hit.phase == hitPoint {
			t.hit.phase = hitNone
		}
	}

	m := &in.Mouse
	esc := in.Keyboard.Keys[wsi.KeyEsc]
	escHeld := esc.Down || esc.Held

	switch t.hit.phase {
	case hitNone:
		if !m.Focused {
			return
		}
		switch {
		case m.Scrolled:
			i := t.hitTest(m.Position, t.hitScrollable)
			if i < 0 {
				return
			}
			wasNew := t.ids[i] != t.hit.tgt
			if wasNew {
				t.events.emit(t.ids[i], PointerIn)
			}
			t.events.emit(t.ids[i], PointerOver)
			center := t.viewportCenter[i]
			center.X -= m.Wheel.X
			center.Y -= m.Wheel.Y
			t.events.emitScroll(t.ids[i], center, t.viewportZoom[i])
			t.hit.phase, t.hit.tgt = hitPoint, t.ids[i]
		case m.Buttons[ButtonPrimary].Held:
			if i := t.hitTest(m.Position, t.dragOrClickable); i >= 0 {
				if t.hitDraggable(i) {
					t.events.emit(t.ids[i], DragStart)
					t.events.emit(t.ids[i], DragUpdate)
					t.hit.phase, t.hit.src, t.hit.tgt = hitDragStart, t.ids[i], NoView
				} else {
					t.events.emit(t.ids[i], PointerDown)
					t.hit.phase, t.hit.tgt = hitPoint, t.ids[i]
				}
			}
		default:
			i := t.hitTest(m.Position, t.hitPointable)
			if i < 0 {
				return
			}
			bits := PointerOver
			if t.ids[i] != t.hit.tgt {
				bits |= PointerIn
			}
			if m.AnyUp {
				bits |= PointerUp
			}
			t.events.emitHit(t.ids[i], bits, m.Position)
			t.hit.phase, t.hit.tgt = hitPoint, t.ids[i]
		}

	case hitPoint:
		if !m.Focused {
			t.hit.phase, t.hit.tgt = hitNone, NoView
		}

	case hitDragStart:
		switch {
		case !m.Focused || escHeld:
			t.events.emit(t.hit.src, DragEnd)
			t.hit.phase, t.hit.src, t.hit.tgt = hitNone, NoView, NoView
		case !m.Buttons[ButtonPrimary].Held:
			t.events.emit(t.hit.src, DragEnd)
			if i := t.hitTest(m.Position, t.hitDroppable); i >= 0 {
				t.events.emit(t.ids[i], DragIn)
				t.events.emit(t.ids[i], DragOver)
				t.events.emit(t.ids[i], Drop)
			}
			t.hit.phase, t.hit.src, t.hit.tgt = hitNone, NoView, NoView
		default:
			t.events.emit(t.hit.src, DragUpdate)
			newTgt := -1
			if i := t.hitTest(m.Position, t.hitDroppable); i >= 0 {
				newTgt = i
				t.events.emit(t.ids[i], DragIn)
				t.events.emit(t.ids[i], DragOver)
			}
			t.hit.phase = hitDragUpdate
			if newTgt >= 0 {
				t.hit.tgt = t.ids[newTgt]
			} else {
				t.hit.tgt = NoView
			}
		}

	case hitDragUpdate:
		switch {
		case !m.Focused || escHeld:
			t.events.emit(t.hit.src, DragEnd)
			t.hit.phase, t.hit.src, t.hit.tgt = hitNone, NoView, NoView
		case !m.Buttons[ButtonPrimary].Held:
			t.events.emit(t.hit.src, DragEnd)
			if tgt >= 0 {
				t.events.emit(t.hit.tgt, Drop)
			}
			t.hit.phase, t.hit.src, t.hit.tgt = hitNone, NoView, NoView
		default:
			t.events.emit(t.hit.src, DragUpdate)
			newTgt := -1
			if i := t.hitTest(m.Position, t.hitDroppable); i >= 0 {
				newTgt = i
			}
			if (newTgt < 0 && tgt >= 0) || (newTgt >= 0 && t.ids[newTgt] != t.hit.tgt) {
				if tgt >= 0 {
					t.events.emit(t.hit.tgt, DragOut)
				}
				if newTgt >= 0 {
					t.events.emit(t.ids[newTgt], DragIn)
					t.events.emit(t.ids[newTgt], DragOver)
				}
			} else if newTgt >= 0 {
				t.events.emit(t.ids[newTgt], DragOver)
			}
			if newTgt >= 0 {
				t.hit.tgt = t.ids[newTgt]
			} else {
				t.hit.tgt = NoView
			}
		}
	}
}
