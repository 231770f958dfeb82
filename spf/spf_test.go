package spf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdbcp/simplex"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// buildChainSPF builds a 4-vertex instance (depot 0, customers 1 and 2,
// depot 3) with two single-customer routes and one two-customer route.
func buildChainSPF(t *testing.T) *SPF {
	t.Helper()
	s := New(4)
	s.AddRoute(Route{Path: []int{0, 1, 3}, Duration: 10})
	s.AddRoute(Route{Path: []int{0, 2, 3}, Duration: 10})
	s.AddRoute(Route{Path: []int{0, 1, 2, 3}, Duration: 15})
	return s
}

func TestSolvePicksCheaperColumnCombination(t *testing.T) {
	s := buildChainSPF(t)

	status, valuation, duals, objective := s.Solve()
	require.Equal(t, simplex.StatusOptimal, status)
	require.Len(t, duals, 2) // two customer rows, no cuts yet.
	// The combined route (duration 15) beats the sum of two singles (20).
	require.InDelta(t, 15, objective, 1e-6)
	require.Contains(t, valuation, 2)
}

func TestSetForbiddenArcsExcludesRoutes(t *testing.T) {
	s := buildChainSPF(t)
	s.SetForbiddenArcs([]vrpinstance.Arc{{Tail: 1, Head: 2}})

	status, valuation, _, objective := s.Solve()
	require.Equal(t, simplex.StatusOptimal, status)
	require.NotContains(t, valuation, 2) // route using arc (1,2) excluded.
	require.InDelta(t, 20, objective, 1e-6)

	s.SetForbiddenArcs(nil)
	status, _, _, objective = s.Solve()
	require.Equal(t, simplex.StatusOptimal, status)
	require.InDelta(t, 15, objective, 1e-6) // restored once arcs are cleared.
}

func TestAddCutAddsRowAndKeepsCutDualsParallel(t *testing.T) {
	s := buildChainSPF(t)
	s.AddCut(SubsetRowCut{Vertices: [3]int{1, 2, 0}})

	status, _, duals, _ := s.Solve()
	require.Equal(t, simplex.StatusOptimal, status)
	require.Len(t, duals, 3)

	pp := s.InterpretDuals(duals)
	require.Len(t, pp.Profit, 4)
	// Whether the cut row's dual is nonzero depends on the LP outcome; just
	// verify the interpretation keeps Cuts/Sigma parallel and bounded.
	require.Equal(t, len(pp.Cuts), len(pp.Sigma))
	require.LessOrEqual(t, len(pp.Cuts), 1)
}

func TestInterpretSolutionReturnsSelectedRoutes(t *testing.T) {
	s := buildChainSPF(t)
	routes := s.InterpretSolution(map[int]float64{2: 1.0})
	require.Len(t, routes, 1)
	require.Equal(t, []int{0, 1, 2, 3}, routes[0].Path)
}

func TestRouteOf(t *testing.T) {
	s := buildChainSPF(t)
	require.Equal(t, []int{0, 2, 3}, s.RouteOf(1).Path)
}
