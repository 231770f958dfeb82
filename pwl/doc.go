// Package pwl implements piecewise-linear (PWL) real functions and the
// domination primitive the bidirectional labeling pricing engine builds on.
//
// A Function is a finite, ordered sequence of linear Pieces with contiguous
// domains. Functions model arc travel times, arrival/departure curves, and
// label duration curves throughout this module: every "cost over time"
// quantity in the solver is a pwl.Function.
//
// # Operations
//
//	Domain/Image   — the Interval a Function is defined/valued over.
//	At             — point evaluation.
//	Add            — f(t)+g(t), refined over the merged breakpoints.
//	Compose        — f(g(t)), restricted to {t : g(t) ∈ dom(f)}.
//	Inverse        — only defined for strictly monotone Functions.
//	Min            — pointwise minimum of two Functions.
//	RestrictDomain — clip to a sub-interval.
//
// # Domination primitive
//
//	IsAlwaysDominated(delta, m, theta) — true iff dom(delta) ⊆ dom(m) and
//	  m(t)+theta ≤ delta(t) for every t in dom(delta).
//	DominatePieces(delta, m, theta) — removes every maximal sub-interval of
//	  dom(delta) ∩ dom(m) on which m(t)+theta ≤ delta(t); reports whether
//	  delta became empty.
//
// No third-party piecewise-linear-function library exists anywhere in the
// retrieved reference corpus, so this package is a from-scratch primitive
// (see DESIGN.md). All numeric comparisons are tolerant of a fixed absolute
// Eps, following the teacher's tsp.Options.Eps convention: a strict
// inequality in pruning uses ">" tolerant of Eps rather than a raw "<=".
package pwl
