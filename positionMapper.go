package main

import "sort"

// mapRun is one run of the original->processed offset mapping. Every original
// offset >= orig (up to the next run) maps to orig+delta.
type mapRun struct {
	orig  int
	delta int
}

// PositionMapper translates byte offsets in the original source into offsets
// in the comment-stripped output. Runs are recorded in scan order, so orig is
// strictly increasing and the slice can be binary-searched directly.
type PositionMapper struct {
	runs []mapRun
}

// record registers that the original offset orig was emitted at output offset
// out. Consecutive records with the same delta coalesce into one run.
func (m *PositionMapper) record(orig, out int) {
	delta := out - orig
	if n := len(m.runs); n > 0 && m.runs[n-1].delta == delta {
		return
	}
	m.runs = append(m.runs, mapRun{orig: orig, delta: delta})
}

// truncate drops trailing runs whose first output offset falls at or beyond
// outLen. Called when already-emitted output is cut back, so no surviving run
// maps an original offset past the end of the shrunken output. A run starting
// below outLen only covers characters that are still present, so it stays.
func (m *PositionMapper) truncate(outLen int) {
	n := len(m.runs)
	for n > 0 && m.runs[n-1].orig+m.runs[n-1].delta >= outLen {
		n--
	}
	m.runs = m.runs[:n]
}

// Map returns the output offset for an original offset. It finds the greatest
// recorded run at or before orig and applies that run's delta, so offsets
// inside verbatim-copied spans map exactly.
func (m *PositionMapper) Map(orig int) int {
	idx := sort.Search(len(m.runs), func(i int) bool {
		return m.runs[i].orig > orig
	}) - 1
	if idx < 0 {
		return orig
	}
	return orig + m.runs[idx].delta
}

// Len reports the number of coalesced runs. Used by tests.
func (m *PositionMapper) Len() int {
	return len(m.runs)
}
