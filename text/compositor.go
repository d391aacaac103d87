package text

// EditRecord describes one reversible edit: either an insertion or an
// erasure of Num codepoints at Pos in the live buffer. The codepoints
// themselves are held in the compositor's history ring so that Undo
// can replay them through the Insert/Erase callbacks.
type EditRecord struct {
	Pos      int64
	Num      int
	IsInsert bool
}

// InsertFunc inserts codepoints at index in the caller's buffer.
type InsertFunc func(index int64, codepoints []rune)

// EraseFunc erases span codepoints starting at offset in the caller's
// buffer.
type EraseFunc func(offset, span int64)

// Clipboard is the collaborator accessed in response to Cut/Copy/Paste.
type Clipboard interface {
	Get() []rune
	Set([]rune)
}

// DefaultWordSymbols are the delimiters bounding a "word" for
// Hit{Word}/Select{Word} when a Compositor does not override them.
var DefaultWordSymbols = []rune{' ', '\t'}

// DefaultLineSymbols are the paragraph separators bounding a "line"
// for Hit{Line}/Select{Line} when a Compositor does not override them.
var DefaultLineSymbols = []rune{'\n', ' '}

// Args carries the data a small subset of commands need beyond the
// live text and the cursor: InputText's payload, a pre-resolved
// codepoint position for Hit*/Drag (shaping is out of scope, so the
// caller resolves screen position to codepoint index), and the line
// count for Up/Down/PageUp/PageDown (treating "page" as a larger line
// delta, the same mechanism as a single line).
type Args struct {
	InputText []rune
	HitPos    int64
	Lines     int
}

// Compositor is a stack-based text editing state machine: a cursor, a
// power-of-two ring of edit records, and a power-of-two ring buffer of
// the codepoints those records reference. It never mutates the
// caller's text buffer; every edit — including undo/redo replay —
// goes through the Insert/Erase callbacks passed to Dispatch.
type Compositor struct {
	Cursor TextCursor

	WordSymbols []rune
	LineSymbols []rune

	histCap int
	histLen int

	recs     []EditRecord
	recData  [][]rune // parallel to recs; content snapshot for each live record
	recHead  int
	recCount int
	current  int // undo position: records [0, current) within the live window are applied
}

// New creates a Compositor with the given history and record ring
// capacities, both of which must be powers of two.
func New(bufCodepoints, numRecords int) *Compositor {
	if bufCodepoints <= 0 || numRecords <= 0 || !isPow2(bufCodepoints) || !isPow2(numRecords) {
		panic("text: capacities must be positive powers of two")
	}
	return &Compositor{
		WordSymbols: append([]rune(nil), DefaultWordSymbols...),
		LineSymbols: append([]rune(nil), DefaultLineSymbols...),
		histCap:     bufCodepoints,
		recs:        make([]EditRecord, numRecords),
		recData:     make([][]rune, numRecords),
	}
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

// Reset clears the cursor, the record ring, and the history ring,
// restoring the default word/line symbol sets.
func (c *Compositor) Reset() {
	c.Cursor = TextCursor{}
	c.histLen = 0
	c.recHead, c.recCount, c.current = 0, 0, 0
	for i := range c.recData {
		c.recData[i] = nil
	}
	c.WordSymbols = append([]rune(nil), DefaultWordSymbols...)
	c.LineSymbols = append([]rune(nil), DefaultLineSymbols...)
}

// popRecords discards n records from the undo window, oldest first,
// along with the content bytes they held in the history ring.
func (c *Compositor) popRecords(n int) {
	for i := 0; i < n && c.recCount > 0; i++ {
		r := c.recs[c.recHead]
		c.histLen -= r.Num
		c.recData[c.recHead] = nil
		c.recHead = (c.recHead + 1) & (len(c.recs) - 1)
		c.recCount--
		if c.current > 0 {
			c.current--
		}
	}
}

// appendRecord pushes a new edit record, evicting the redo tail (any
// records beyond the current undo position) and then evicting the
// oldest records until both ring capacities admit the new content.
func (c *Compositor) appendRecord(pos int64, content []rune, isInsert bool) {
	// Invalidate the redo tail: a fresh edit discards anything past
	// the current undo position. The tail sits at
	// recHead+current .. recHead+recCount in the ring.
	for c.recCount > c.current {
		c.recCount--
		idx := (c.recHead + c.recCount) & (len(c.recs) - 1)
		c.histLen -= c.recs[idx].Num
		c.recData[idx] = nil
	}
	for c.recCount == len(c.recs) {
		c.popRecords(1)
	}
	for c.histLen+len(content) > c.histCap && c.recCount > 0 {
		c.popRecords(1)
	}
	idx := (c.recHead + c.recCount) & (len(c.recs) - 1)
	c.recs[idx] = EditRecord{Pos: pos, Num: len(content), IsInsert: isInsert}
	c.recData[idx] = append([]rune(nil), content...)
	c.recCount++
	c.current = c.recCount
	c.histLen += len(content)
}

func (c *Compositor) recAt(i int) (EditRecord, []rune) {
	idx := (c.recHead + i) & (len(c.recs) - 1)
	return c.recs[idx], c.recData[idx]
}

// Undo reverts the most recently applied record, if any.
func (c *Compositor) Undo(insert InsertFunc, erase EraseFunc) {
	if c.current == 0 {
		return
	}
	c.current--
	rec, data := c.recAt(c.current)
	if rec.IsInsert {
		erase(rec.Pos, int64(rec.Num))
	} else {
		insert(rec.Pos, data)
	}
}

// Redo reapplies the next undone record, if any.
func (c *Compositor) Redo(insert InsertFunc, erase EraseFunc) {
	if c.current >= c.recCount {
		return
	}
	rec, data := c.recAt(c.current)
	if rec.IsInsert {
		insert(rec.Pos, data)
	} else {
		erase(rec.Pos, int64(rec.Num))
	}
	c.current++
}

// deleteSelection erases the current selection, if non-empty,
// recording the inverse.
func (c *Compositor) deleteSelection(text []rune, erase EraseFunc) bool {
	if c.Cursor.IsEmpty() {
		return false
	}
	off, span := c.Cursor.Slice(int64(len(text)))
	if span == 0 {
		return false
	}
	content := append([]rune(nil), text[off:off+span]...)
	erase(off, span)
	c.appendRecord(off, content, false)
	c.Cursor = TextCursor{First: off, Last: off}
	return true
}

// InputText inserts input at the cursor, first deleting any selection.
func (c *Compositor) InputText(text []rune, input []rune, insert InsertFunc, erase EraseFunc) {
	c.deleteSelection(text, erase)
	off, _ := c.Cursor.Slice(int64(len(text)))
	insert(off, input)
	c.appendRecord(off, input, true)
	pos := off + int64(len(input))
	c.Cursor = TextCursor{First: pos, Last: pos}
}

// Drag extends the selection's Last endpoint to pos, preserving First.
func (c *Compositor) Drag(pos int64) {
	c.Cursor.Last = pos
}

func (c *Compositor) selectCodepoint(pos int64) {
	c.Cursor = TextCursor{First: pos, Last: pos}
}

func isSymbol(r rune, symbols []rune) bool {
	for _, s := range symbols {
		if r == s {
			return true
		}
	}
	return false
}

// wordAt returns the [start, end) range of the word containing pos,
// delimited by WordSymbols.
func (c *Compositor) wordAt(text []rune, pos int64) (int64, int64) {
	n := int64(len(text))
	pos = clamp(pos, 0, max64(n-1, 0))
	start, end := pos, pos
	for start > 0 && !isSymbol(text[start-1], c.WordSymbols) {
		start--
	}
	for end < n && !isSymbol(text[end], c.WordSymbols) {
		end++
	}
	return start, end
}

// lineAt returns the [start, end) range of the line containing pos,
// delimited by LineSymbols.
func (c *Compositor) lineAt(text []rune, pos int64) (int64, int64) {
	n := int64(len(text))
	pos = clamp(pos, 0, max64(n-1, 0))
	start, end := pos, pos
	for start > 0 && !isSymbol(text[start-1], c.LineSymbols) {
		start--
	}
	for end < n && !isSymbol(text[end], c.LineSymbols) {
		end++
	}
	return start, end
}

func (c *Compositor) selectWord(text []rune, pos int64) {
	s, e := c.wordAt(text, pos)
	c.Cursor = FromSlice(s, e-s)
}

func (c *Compositor) selectLine(text []rune, pos int64) {
	s, e := c.lineAt(text, pos)
	c.Cursor = FromSlice(s, e-s)
}

func (c *Compositor) selectAll(text []rune) {
	c.Cursor = FromSlice(0, int64(len(text)))
}

// motion computes the destination codepoint for a plain (non-select)
// navigation command, without mutating the cursor.
func (c *Compositor) motion(cmd Command, text []rune, lines int) int64 {
	n := int64(len(text))
	cur := c.Cursor.ToEnd().First
	switch cmd {
	case Left, SelectLeft:
		return prevGraphemeBoundary(text, c.Cursor.First)
	case Right, SelectRight:
		return nextGraphemeBoundary(text, c.Cursor.Last)
	case WordStart, SelectWordStart:
		s, _ := c.wordAt(text, addSat(cur, -1))
		return s
	case WordEnd, SelectWordEnd:
		_, e := c.wordAt(text, cur)
		return e
	case LineStart, SelectLineStart:
		s, _ := c.lineAt(text, addSat(cur, -1))
		return s
	case LineEnd, SelectLineEnd:
		_, e := c.lineAt(text, cur)
		return e
	case Up, Down, SelectUp, SelectDown, PageUp, PageDown, SelectPageUp, SelectPageDown:
		return c.vertical(cmd, text, cur, lines)
	}
	return clamp(cur, 0, n)
}

func (c *Compositor) vertical(cmd Command, text []rune, cur int64, lines int) int64 {
	if lines <= 0 {
		lines = 1
	}
	up := cmd == Up || cmd == SelectUp || cmd == PageUp || cmd == SelectPageUp
	lineStart, _ := c.lineAt(text, cur)
	col := cur - lineStart
	pos := lineStart
	for i := 0; i < lines; i++ {
		if up {
			if pos == 0 {
				break
			}
			s, _ := c.lineAt(text, pos-1)
			pos = s
		} else {
			_, e := c.lineAt(text, pos)
			if e >= int64(len(text)) {
				pos = e
				break
			}
			pos = e + 1
		}
	}
	s, e := c.lineAt(text, pos)
	return min64(s+col, e)
}

// Dispatch applies cmd against the current cursor and caller-owned
// text, invoking insert/erase for any resulting edit. text must
// reflect the buffer's contents before this call; the caller is
// responsible for keeping it in sync with the Insert/Erase callbacks
// it receives.
func (c *Compositor) Dispatch(cmd Command, text []rune, args Args, insert InsertFunc, erase EraseFunc, clip Clipboard) {
	switch cmd {
	case None:
	case Escape:
		c.Cursor = c.Cursor.Escape()
	case BackSpace:
		if !c.deleteSelection(text, erase) {
			off, _ := c.Cursor.Slice(int64(len(text)))
			if off > 0 {
				content := append([]rune(nil), text[off-1:off]...)
				erase(off-1, 1)
				c.appendRecord(off-1, content, false)
				c.Cursor = TextCursor{First: off - 1, Last: off - 1}
			}
		}
	case Delete:
		if !c.deleteSelection(text, erase) {
			off, _ := c.Cursor.Slice(int64(len(text)))
			if off < int64(len(text)) {
				content := append([]rune(nil), text[off:off+1]...)
				erase(off, 1)
				c.appendRecord(off, content, false)
			}
		}
	case Left, Right, Up, Down, WordStart, WordEnd, LineStart, LineEnd, PageUp, PageDown:
		pos := c.motion(cmd, text, args.Lines)
		pos = clamp(pos, 0, int64(len(text)))
		c.Cursor = TextCursor{First: pos, Last: pos}
	case SelectLeft, SelectRight, SelectUp, SelectDown, SelectWordStart, SelectWordEnd,
		SelectLineStart, SelectLineEnd, SelectPageUp, SelectPageDown:
		pos := c.motion(cmd, text, args.Lines)
		c.Cursor.Last = clamp(pos, 0, int64(len(text)))
	case SelectCodepoint:
		c.selectCodepoint(args.HitPos)
	case SelectWord:
		c.selectWord(text, args.HitPos)
	case SelectLine:
		c.selectLine(text, args.HitPos)
	case SelectAll:
		c.selectAll(text)
	case Cut:
		off, span := c.Cursor.Slice(int64(len(text)))
		if clip != nil && span > 0 {
			clip.Set(append([]rune(nil), text[off:off+span]...))
		}
		c.deleteSelection(text, erase)
	case Copy:
		off, span := c.Cursor.Slice(int64(len(text)))
		if clip != nil && span > 0 {
			clip.Set(append([]rune(nil), text[off:off+span]...))
		}
	case Paste:
		if clip != nil {
			c.InputText(text, clip.Get(), insert, erase)
		}
	case Undo:
		c.Undo(insert, erase)
	case Redo:
		c.Redo(insert, erase)
	case HitCodepoint:
		c.selectCodepoint(args.HitPos)
	case HitWord:
		c.selectWord(text, args.HitPos)
	case HitLine:
		c.selectLine(text, args.HitPos)
	case HitAll:
		c.selectAll(text)
	case Drag:
		c.Drag(args.HitPos)
	case InputText:
		c.InputText(text, args.InputText, insert, erase)
	case NewLine:
		c.InputText(text, []rune{'\n'}, insert, erase)
	case Tab:
		c.InputText(text, []rune{'\t'}, insert, erase)
	case Submit, Unselect:
		c.Cursor = c.Cursor.Escape()
	}
}
