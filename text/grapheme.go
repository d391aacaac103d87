package text

import "github.com/rivo/uniseg"

// graphemeBoundaries returns the codepoint offsets at which grapheme
// clusters begin, in ascending order, always including 0 and len(text).
// Left/Right (and drag-free single-step navigation) step between these
// boundaries rather than raw codepoints, so that e.g. a flag emoji or
// a combining accent is treated as one visual unit.
func graphemeBoundaries(text []rune) []int {
	bounds := make([]int, 0, len(text)+1)
	bounds = append(bounds, 0)
	if len(text) == 0 {
		return bounds
	}
	g := uniseg.NewGraphemes(string(text))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		bounds = append(bounds, pos)
	}
	return bounds
}

// prevGraphemeBoundary returns the largest boundary strictly less than
// pos, or 0 if pos is already at or before the first boundary.
func prevGraphemeBoundary(text []rune, pos int64) int64 {
	bounds := graphemeBoundaries(text)
	var prev int64
	for _, b := range bounds {
		if int64(b) >= pos {
			break
		}
		prev = int64(b)
	}
	return prev
}

// nextGraphemeBoundary returns the smallest boundary strictly greater
// than pos, or len(text) if pos is already at or past the last boundary.
func nextGraphemeBoundary(text []rune, pos int64) int64 {
	bounds := graphemeBoundaries(text)
	n := int64(len(text))
	for _, b := range bounds {
		if int64(b) > pos {
			return int64(b)
		}
	}
	return n
}
