package view

import "github.com/kestrelui/core/wsi"

// focusState is the cross-frame focus target, resolved to a dense
// index at the start of each frame's step per §4.6.
type focusState struct {
	tgt    ViewId
	active bool
}

// stepFocus advances the cross-frame focus state machine by one frame.
func (t *ViewTree) stepFocus(in *Input) {
	if t.n == 0 {
		return
	}
	idx := t.idToIdx(t.focus.tgt)
	if t.focus.tgt == NoView || idx < 0 {
		idx = 0
	}
	wasActive := t.focus.active

	if t.focusGrab >= 0 {
		idx = t.focusGrab
		t.scrollIntoView(idx)
	} else {
		tab := in.Keyboard.Keys[wsi.KeyTab]
		shift := in.Keyboard.Modifiers&ModShift != 0
		acceptsTab := t.input[idx] != nil && t.input[idx].TabInput
		if tab.Down && !acceptsTab {
			if shift {
				idx = t.navigateFocus(idx, -1)
			} else {
				idx = t.navigateFocus(idx, 1)
			}
		}
	}

	active := idx >= 0 && t.focusable_(idx)
	newID := NoView
	if idx >= 0 {
		newID = t.ids[idx]
	}

	if wasActive && (!active || newID != t.focus.tgt) {
		t.events.emit(t.focus.tgt, FocusOut)
	}
	if active && (!wasActive || newID != t.focus.tgt) {
		t.events.emit(newID, FocusIn)
	}

	if active {
		t.events.emit(newID, FocusOver)
		if in.Keyboard.AnyDown {
			t.events.emit(newID, KeyDown)
		}
		if in.Keyboard.AnyUp {
			t.events.emit(newID, KeyUp)
		}
		if len(in.Keyboard.TextInput) > 0 {
			t.events.emit(newID, TextInput)
		}
	}

	t.focus.tgt = newID
	t.focus.active = active
}

// scrollIntoView walks the viewport chain enclosing idx, emitting
// Scroll on each ancestor viewport so it brings idx into view.
func (t *ViewTree) scrollIntoView(idx int) {
	for vp := t.viewport[idx]; vp != noViewport; vp = t.viewport[vp] {
		t.events.emitScroll(t.ids[vp], t.fixedCenter[idx], t.viewportZoom[vp])
	}
}
