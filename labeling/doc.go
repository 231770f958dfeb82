// Package labeling implements the monodirectional resource-constrained
// shortest-path labeling algorithm: Extension, Domination, Correction,
// Process, and Enumeration steps over a priority queue of lazy label
// extensions (spec.md §4.2–§4.5).
//
// Engine mirrors the teacher's dedicated-engine-struct idiom (tsp.bbEngine,
// dijkstra.runner): a struct preallocated once per run holding every piece
// of mutable search state, rather than a closure-heavy functional style.
package labeling
