package text

import "testing"

func TestCursorIsEmpty(t *testing.T) {
	c := TextCursor{First: 4, Last: 4}
	if !c.IsEmpty() {
		t.Fatalf("IsEmpty:\nhave false\nwant true")
	}
	c.Last = 5
	if c.IsEmpty() {
		t.Fatalf("IsEmpty:\nhave true\nwant false")
	}
}

func TestCursorSliceOrdersEndpoints(t *testing.T) {
	c := TextCursor{First: 8, Last: 3}
	off, span := c.Slice(20)
	if off != 3 || span != 6 {
		t.Fatalf("Slice:\nhave {%d %d}\nwant {3 6}", off, span)
	}
}

func TestCursorSliceClampsToLength(t *testing.T) {
	c := TextCursor{First: -5, Last: 100}
	off, span := c.Slice(10)
	if off != 0 || span != 10 {
		t.Fatalf("Slice clamp:\nhave {%d %d}\nwant {0 10}", off, span)
	}
}

func TestFromSliceEmptySpan(t *testing.T) {
	c := FromSlice(7, 0)
	if c.First != 7 || c.Last != 7 {
		t.Fatalf("FromSlice empty:\nhave %+v\nwant {7 7}", c)
	}
}

func TestFromSliceNonEmpty(t *testing.T) {
	c := FromSlice(2, 5)
	if c.First != 2 || c.Last != 6 {
		t.Fatalf("FromSlice:\nhave %+v\nwant {2 6}", c)
	}
}

func TestToBeginToEnd(t *testing.T) {
	c := TextCursor{First: 9, Last: 2}
	if b := c.ToBegin(); b.First != 2 || b.Last != 2 {
		t.Fatalf("ToBegin:\nhave %+v\nwant {2 2}", b)
	}
	if e := c.ToEnd(); e.First != 9 || e.Last != 9 {
		t.Fatalf("ToEnd:\nhave %+v\nwant {9 9}", e)
	}
}

func TestEscape(t *testing.T) {
	c := TextCursor{First: 1, Last: 6}
	e := c.Escape()
	if e.First != 6 || e.Last != 6 {
		t.Fatalf("Escape:\nhave %+v\nwant {6 6}", e)
	}
}

func TestDirection(t *testing.T) {
	if !(TextCursor{First: 1, Last: 5}).Direction() {
		t.Fatalf("Direction forward:\nhave false\nwant true")
	}
	if (TextCursor{First: 5, Last: 1}).Direction() {
		t.Fatalf("Direction backward:\nhave true\nwant false")
	}
}

func TestAddSatSaturatesAtExtremes(t *testing.T) {
	if v := addSat(maxInt64, 1); v != maxInt64 {
		t.Fatalf("addSat overflow:\nhave %d\nwant %d", v, maxInt64)
	}
	if v := addSat(minInt64, -1); v != minInt64 {
		t.Fatalf("addSat underflow:\nhave %d\nwant %d", v, minInt64)
	}
	if v := addSat(10, -3); v != 7 {
		t.Fatalf("addSat normal:\nhave %d\nwant 7", v)
	}
}
