package vrpinstance

import "github.com/katalvlaran/tdbcp/label"

// Arc is a forbidden/removed directed edge (Tail,Head) passed between the
// master formulation and the pricing problem.
type Arc struct {
	Tail, Head int
}

// PricingProblem is the dual-adjusted sub-problem the labeling engines
// solve: forbidden arcs from branching decisions, per-vertex profits (the
// partitioning constraints' duals), and subset-row cuts with nonzero duals
// (spec.md §4.7's InterpretDuals output).
type PricingProblem struct {
	Forbidden []Arc
	Profit    []float64
	Cuts      []label.VertexSet
	Sigma     []float64 // dual value of each entry in Cuts, same indexing.
}
