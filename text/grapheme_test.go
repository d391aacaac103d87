package text

import "testing"

func TestLeftRightStepByGraphemeCluster(t *testing.T) {
	// "e" + combining acute accent (U+0301) is one grapheme cluster.
	text := []rune{'a', 'e', '́', 'b'}
	c := New(16, 16)
	c.Cursor = TextCursor{First: 3, Last: 3}
	c.Dispatch(Left, text, Args{}, nil, nil, nil)
	if c.Cursor.First != 1 {
		t.Fatalf("Left over combining mark:\nhave %d\nwant 1", c.Cursor.First)
	}
	c.Cursor = TextCursor{First: 0, Last: 0}
	c.Dispatch(Right, text, Args{}, nil, nil, nil)
	if c.Cursor.First != 1 {
		t.Fatalf("Right onto plain rune:\nhave %d\nwant 1", c.Cursor.First)
	}
	c.Dispatch(Right, text, Args{}, nil, nil, nil)
	if c.Cursor.First != 3 {
		t.Fatalf("Right over combining mark:\nhave %d\nwant 3", c.Cursor.First)
	}
}
