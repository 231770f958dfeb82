// Package tdbcp is a branch-cut-and-price solver for the time-dependent
// vehicle routing problem with time windows (TDVRPTW): a bidirectional
// labeling pricing engine feeding a set-partitioning master over a
// column-generation search tree.
//
// Subpackages:
//
//	pwl/           — piecewise-linear function arithmetic and domination
//	vrpinstance/   — instance data model, digraph, reverse-instance builder
//	label/         — arena-allocated labels and their PWL duration state
//	labeling/      — monodirectional labeling engine (extend/dominate/pop)
//	bidirectional/ — forward/backward driver, merge, solution pool
//	simplex/       — dense tableau simplex used by the set-partitioning LP
//	spf/           — set-partitioning formulation: master LP + cuts
//	bcp/           — branch-cut-and-price search tree
//	solverio/      — experiment config, execution logs, solver I/O
//	cmd/tdbcp/     — cobra CLI: tdbcp solve --config ... --instance ...
package tdbcp
