package view

// Tick runs one full frame: rebuild the tree from root, resolve focus
// order, lay out, stack and cull, render, then step the hit and focus
// state machines so their emitted events reach views on the next call.
// It returns whether the run loop should keep going (false means the
// window should close).
func (t *ViewTree) Tick(input *Input, theme *Theme, root View, canvas Canvas) bool {
	ctx := &Context{Input: input, Theme: theme}
	t.Build(root, ctx)
	t.buildFocusOrder()
	t.layout(input.Extent)
	t.stack()
	t.render(canvas)
	t.stepHit(input)
	t.stepFocus(input)

	if input.Closing && !t.deferClose {
		return false
	}
	return true
}
