package view

import "testing"

// TestTreeFlatness checks Property A: for every non-root index i,
// parent[i] < i and i falls within parent[i]'s declared child range.
func TestTreeFlatness(t *testing.T) {
	leafA1 := &stubView{state: State{TabIdx: -1}}
	leafA2 := &stubView{state: State{TabIdx: -1}}
	nodeA := &stubView{state: State{TabIdx: -1}, children: []View{leafA1, leafA2}}
	nodeB := &stubView{state: State{TabIdx: -1}}
	root := &stubView{state: State{TabIdx: -1}, children: []View{nodeA, nodeB}}

	tree := New()
	tree.Build(root, &Context{})

	if tree.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", tree.Len())
	}
	for i := 1; i < tree.Len(); i++ {
		p := tree.parent[i]
		if p >= i {
			t.Fatalf("parent[%d] = %d, want < %d", i, p, i)
		}
		r := tree.children[p]
		if i < r.Begin || i >= r.Begin+r.Span {
			t.Fatalf("index %d not within parent %d's child range %+v", i, p, r)
		}
	}
}

// TestBuildDepthFirstTabOrder checks that the default tab index (when
// unset) follows genuine depth-first visitation order, not array
// append order.
func TestBuildDepthFirstTabOrder(t *testing.T) {
	leaf1 := &stubView{state: State{TabIdx: -1}}
	leaf2 := &stubView{state: State{TabIdx: -1}}
	nodeA := &stubView{state: State{TabIdx: -1}, children: []View{leaf1, leaf2}}
	nodeB := &stubView{state: State{TabIdx: -1}}
	root := &stubView{state: State{TabIdx: -1}, children: []View{nodeA, nodeB}}

	tree := New()
	tree.Build(root, &Context{})

	// Depth-first visit order: root, nodeA, leaf1, leaf2, nodeB.
	// Dense indices follow allocation order instead: root's children
	// (nodeA, nodeB) are allocated while root ticks, nodeA's later.
	idxNodeA, idxNodeB, idxLeaf1, idxLeaf2 := 1, 2, 3, 4
	if tree.tabIdx[0] != 0 {
		t.Fatalf("root tab_idx = %d, want 0", tree.tabIdx[0])
	}
	if tree.tabIdx[idxNodeA] != 1 {
		t.Fatalf("nodeA tab_idx = %d, want 1", tree.tabIdx[idxNodeA])
	}
	if tree.tabIdx[idxLeaf1] != 2 {
		t.Fatalf("leaf1 tab_idx = %d, want 2", tree.tabIdx[idxLeaf1])
	}
	if tree.tabIdx[idxLeaf2] != 3 {
		t.Fatalf("leaf2 tab_idx = %d, want 3", tree.tabIdx[idxLeaf2])
	}
	if tree.tabIdx[idxNodeB] != 4 {
		t.Fatalf("nodeB tab_idx = %d, want 4", tree.tabIdx[idxNodeB])
	}
}

// TestCrossFrameIdStability covers scenario 5: reordering a parent's
// children across frames must not change each view's own id, and
// events queued against an id on frame 1 must still reach it on frame
// 2 despite the index change.
func TestCrossFrameIdStability(t *testing.T) {
	child2 := &stubView{state: State{TabIdx: -1}}
	child3 := &stubView{state: State{TabIdx: -1}}
	root := &stubView{state: State{TabIdx: -1}, children: []View{child2, child3}}

	tree := New()
	tree.Build(root, &Context{})

	id2, id3 := child2.id.ID, child3.id.ID
	if id2 == NoView || id3 == NoView || id2 == id3 {
		t.Fatalf("expected distinct mounted ids, got %d and %d", id2, id3)
	}

	tree.events.emit(id2, PointerDown)

	// Frame 2: swap the builder order.
	root.children = []View{child3, child2}
	tree.Build(root, &Context{})

	if child2.id.ID != id2 || child3.id.ID != id3 {
		t.Fatalf("ids changed across frames: child2 %d->%d, child3 %d->%d",
			id2, child2.id.ID, id3, child3.id.ID)
	}

	idx2 := tree.idToIdx(id2)
	if idx2 < 0 {
		t.Fatalf("child2 not found in frame 2 tree")
	}
	// The queued PointerDown should have been drained into child2's
	// events on this frame's Tick, not lost to the reorder. Build
	// doesn't expose drained events directly, so check indirectly:
	// the queue entry must be gone.
	if _, ok := tree.events.m[id2]; ok {
		t.Fatalf("event for id2 was not drained during frame 2's tick")
	}
}
