// Package bidirectional orchestrates a forward and a backward
// labeling.Engine over the same pricing problem, merging their processed
// labels into full negative-reduced-cost routes (spec.md §5). It implements
// the opening-state (iterative merge) and closing-state (last-arc merge)
// strategies and the t_m boundary-update rule that keeps the two directions
// from overlapping their search.
package bidirectional
