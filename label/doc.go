// Package label implements the Label record, the LazyLabel extension
// request, and a bitset VertexSet used for elementarity
// and dominance tracking (spec.md §3).
//
// Labels are allocated from an Arena: a bump allocator that bulk-frees at
// Clean() instead of relying on the general-purpose allocator per label
// (spec.md §9). This follows the teacher's preallocate-once-per-engine idiom
// (see tsp/bb.go's bbEngine fields) rather than introducing a third-party
// arena/pool library — none appears in the retrieved corpus.
package label
