package label

import "github.com/katalvlaran/tdbcp/pwl"

// Label is an immutable-once-processed record of a partial path, per
// spec.md §3. Parent is an index into the owning Arena's slab (not a raw
// pointer), matching the "parent back-pointers form a forest" design note
// in spec.md §9 (arena-allocated labels with indices).
type Label struct {
	Parent int // index into Arena.slab; -1 for the sentinel no-label.
	V      int // last vertex.
	Q      float64
	P      float64
	Length int
	S      VertexSet
	U      VertexSet
	Duration   pwl.Function
	RW         pwl.Interval
	CutVisited []int
	CutNZ      []int
	CutCost    float64
	MinCost    float64
}

// LazyLabel is a reference to an extension candidate: "extend Parent along
// the arc to V, with earliest-arrival makespan Makespan" (spec.md §3,
// Lifecycle; §4.4 Enumeration step).
type LazyLabel struct {
	Parent   int // index into Arena.slab.
	V        int
	Makespan float64
}

// Arena is a bump allocator for Labels: New appends to a growable slab and
// returns the new label's index; Reset bulk-frees by truncating the slab,
// matching spec.md §9's "bump-allocate and bulk-free at Clean()" guidance.
type Arena struct {
	slab []Label
}

// NewArena returns an Arena pre-sized for an expected label count.
func NewArena(capacityHint int) *Arena {
	return &Arena{slab: make([]Label, 0, capacityHint)}
}

// New appends a new Label to the arena and returns its index.
func (a *Arena) New(l Label) int {
	a.slab = append(a.slab, l)
	return len(a.slab) - 1
}

// At returns a pointer to the label stored at index i. The pointer is only
// valid until the next Reset (or until further New calls reallocate the
// backing slice, callers must not retain it across a New in tight loops;
// all engines in this module finish mutating the arena before dereferencing
// stored indices across a Run invocation's lifetime).
func (a *Arena) At(i int) *Label {
	if i < 0 {
		return nil
	}
	return &a.slab[i]
}

// Reset bulk-frees every label allocated so far.
func (a *Arena) Reset() {
	a.slab = a.slab[:0]
}

// Len reports how many labels are currently live in the arena.
func (a *Arena) Len() int { return len(a.slab) }

// Path reconstructs the sequence of vertices from the sentinel no-label to l
// by walking Parent indices upward through the arena (spec.md §9: "Path
// reconstruction is an upward walk").
func (a *Arena) Path(idx int) []int {
	var rev []int
	for idx >= 0 {
		l := a.At(idx)
		rev = append(rev, l.V)
		idx = l.Parent
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}
