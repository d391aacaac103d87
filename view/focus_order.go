package view

import "sort"

// buildFocusOrder fills zOrd... no: fills focusOrd/focusIdx from tabIdx,
// per spec §4.2: stable sort of [0,N) by tab_idx, then the inverse
// permutation.
func (t *ViewTree) buildFocusOrder() {
	n := t.n
	if cap(t.focusOrd) < n {
		t.focusOrd = make([]int, n)
	} else {
		t.focusOrd = t.focusOrd[:n]
	}
	if cap(t.focusIdx) < n {
		t.focusIdx = make([]int, n)
	} else {
		t.focusIdx = t.focusIdx[:n]
	}
	for i := range t.focusOrd {
		t.focusOrd[i] = i
	}
	sort.SliceStable(t.focusOrd, func(a, b int) bool {
		return t.tabIdx[t.focusOrd[a]] < t.tabIdx[t.focusOrd[b]]
	})
	for k, i := range t.focusOrd {
		t.focusIdx[i] = k
	}
}

func (t *ViewTree) focusable_(i int) bool {
	if i < 0 || i >= t.n {
		return false
	}
	if t.hidden.Len() > i && t.hidden.IsSet(i) {
		return false
	}
	return t.focusable.Len() > i && t.focusable.IsSet(i)
}

// navigateFocus advances cyclically through focusOrd starting at i,
// stepping by dir (+1 forward, -1 backward), and returns the first
// non-hidden focusable view encountered. If none exists it returns i.
func (t *ViewTree) navigateFocus(i int, dir int) int {
	n := t.n
	if n == 0 {
		return i
	}
	k := t.focusIdx[i]
	for step := 0; step < n; step++ {
		k = ((k+dir)%n + n) % n
		cand := t.focusOrd[k]
		if t.focusable_(cand) {
			return cand
		}
	}
	return i
}
