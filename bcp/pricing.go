package bcp

import (
	"time"

	"github.com/katalvlaran/tdbcp/bidirectional"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// PricingFunction solves the pricing sub-problem for one column-generation
// round: given the master's dual-adjusted profits/cuts, the index of the
// node asking (0 for the root), and a remaining time budget, it returns
// every negative-reduced-cost route found and the run log describing how
// the search went. bcp never imports solverio, so this returns the
// concrete bidirectional.RunLog rather than a solverio-level alias;
// solverio defines BLBExecutionLog = bidirectional.RunLog on top of it
// (spec.md §9) without bcp needing to know that name exists.
type PricingFunction func(pp vrpinstance.PricingProblem, nodeIndex int, timeLimit time.Duration) ([]bidirectional.Route, *bidirectional.RunLog)
