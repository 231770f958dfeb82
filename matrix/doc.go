// Package matrix provides the dense 2-D float64 backing store used by
// simplex's tableau and spf's constraint-matrix assembly. It carries only
// the row-major storage and bounds-checked accessors those two callers
// exercise — not the teacher's generic linear-algebra, graph-adjacency, and
// statistics surface, none of which any TDVRPTW component reaches.
package matrix
