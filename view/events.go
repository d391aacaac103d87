package view

// Events is a bitfield over the event kinds a view may observe on the
// frame following the one that produced them.
type Events uint32

const (
	Mount Events = 1 << iota
	PointerIn
	PointerOut
	PointerOver
	PointerDown
	PointerUp
	Scroll
	DragStart
	DragUpdate
	DragEnd
	DragIn
	DragOut
	DragOver
	Drop
	FocusIn
	FocusOut
	FocusOver
	KeyDown
	KeyUp
	TextInput
)

// Has reports whether e contains all bits of kind.
func (e Events) Has(kind Events) bool { return e&kind == kind }

// payload is one queued entry: the composed event bits plus whichever
// optional hit/scroll info the emitting pass attached. Later emits in
// the same frame OR the bits together and overwrite the payload
// fields (last-writer wins), matching how a single view may receive
// e.g. both PointerOver and Scroll in one frame.
type payload struct {
	bits         Events
	hitPos       Vec2
	scrollCenter Vec2
	scrollZoom   float32
}

// eventQueue is the cross-frame ViewId -> Events mapping. Entries are
// appended during a frame's hit/focus state machines and drained the
// following frame when the addressed view ticks; entries whose owning
// view has vanished are discarded silently.
type eventQueue struct {
	m map[ViewId]payload
}

func newEventQueue() *eventQueue {
	return &eventQueue{m: make(map[ViewId]payload)}
}

func (q *eventQueue) emit(id ViewId, bits Events) {
	if id == NoView {
		return
	}
	p := q.m[id]
	p.bits |= bits
	q.m[id] = p
}

func (q *eventQueue) emitScroll(id ViewId, center Vec2, zoom float32) {
	if id == NoView {
		return
	}
	p := q.m[id]
	p.bits |= Scroll
	p.scrollCenter, p.scrollZoom = center, zoom
	q.m[id] = p
}

func (q *eventQueue) emitHit(id ViewId, bits Events, pos Vec2) {
	if id == NoView {
		return
	}
	p := q.m[id]
	p.bits |= bits
	p.hitPos = pos
	q.m[id] = p
}

// drain removes and returns id's queued payload, the bitfield of
// which is passed to the view's next Tick.
func (q *eventQueue) drain(id ViewId) payload {
	if id == NoView {
		return payload{}
	}
	p, ok := q.m[id]
	if !ok {
		return payload{}
	}
	delete(q.m, id)
	return p
}
