// Package simplex implements a dense-tableau two-phase primal simplex
// method, the numeric back end for the set-partitioning master problem
// (spec.md §4.7). It is built directly on matrix.Dense rather than raw
// float64 slices, reusing the teacher's own linear-algebra storage instead
// of introducing a parallel one; no LP solver library exists anywhere in
// the retrieved corpus, so this is the one core-adjacent piece built
// without a third-party dependency (see DESIGN.md).
package simplex
