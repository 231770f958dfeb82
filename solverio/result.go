package solverio

import (
	"time"

	"github.com/katalvlaran/tdbcp/bcp"
	"github.com/katalvlaran/tdbcp/bidirectional"
	"github.com/katalvlaran/tdbcp/spf"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// Route is one route of a Solution: the vertex sequence and its travel
// duration.
type Route struct {
	Path     []int   `json:"path"`
	Duration float64 `json:"duration"`
}

// Solution is the best feasible solution found, spec.md §6's "Best
// solution" object: its objective value and the routes composing it.
type Solution struct {
	Value  float64 `json:"value"`
	Routes []Route `json:"routes"`
}

// SolverResult is the one JSON object the core writes out: the execution
// log and the best solution found, spec.md §6's two named top-level
// fields.
type SolverResult struct {
	Exact        ExecutionLog `json:"Exact"`
	BestSolution Solution     `json:"Best solution"`
}

// Solve runs the full branch-cut-and-price search over vrp under cfg: it
// wires a bidirectional.Driver as the pricing function for a bcp.Tree,
// applies cfg to both, and assembles the resulting SolverResult.
func Solve(cfg ExperimentConfig, vrp *vrpinstance.Instance) SolverResult {
	s := spf.New(vrp.N())
	driver := bidirectional.NewDriver(vrp)
	cfg.ApplyToDriver(driver)

	var lastRootBLBLog bidirectional.RunLog
	pricing := func(pp vrpinstance.PricingProblem, nodeIndex int, timeLimit time.Duration) ([]bidirectional.Route, *bidirectional.RunLog) {
		if timeLimit > 0 {
			driver.TimeLimit = timeLimit
		}
		routes, log := driver.Run(pp)
		if nodeIndex == 0 {
			lastRootBLBLog = *log
		}
		return routes, log
	}

	tree := bcp.NewTree(vrp.D, s, pricing)
	cfg.ApplyToTree(tree)

	bcpLog, routes, objective := tree.Run()

	solRoutes := make([]Route, 0, len(routes))
	for _, r := range routes {
		solRoutes = append(solRoutes, Route{Path: r.Path, Duration: r.Duration})
	}

	return SolverResult{
		Exact:        NewExecutionLog(bcpLog, lastRootBLBLog),
		BestSolution: Solution{Value: objective, Routes: solRoutes},
	}
}
