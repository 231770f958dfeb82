package bcp

import (
	"container/heap"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdbcp/bidirectional"
	"github.com/katalvlaran/tdbcp/spf"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// chainDigraph builds the depot(0)-customer(1)-customer(2)-depot(3) arc set
// every test in this file routes over.
func chainDigraph() *vrpinstance.Digraph {
	d := vrpinstance.NewDigraph(4)
	d.AddArc(0, 1)
	d.AddArc(0, 2)
	d.AddArc(1, 2)
	d.AddArc(1, 3)
	d.AddArc(2, 3)
	d.AddArc(0, 3)
	return d
}

func noMoreRoutes(vrpinstance.PricingProblem, int, time.Duration) ([]bidirectional.Route, *bidirectional.RunLog) {
	return nil, &bidirectional.RunLog{}
}

// TestRunConvergesWithoutPricing seeds the master with a combined route
// that is already the unique LP (and integer) optimum, so the root closes
// without ever branching.
func TestRunConvergesWithoutPricing(t *testing.T) {
	s := spf.New(4)
	s.AddRoute(spf.Route{Path: []int{0, 1, 3}, Duration: 10})
	s.AddRoute(spf.Route{Path: []int{0, 2, 3}, Duration: 10})
	s.AddRoute(spf.Route{Path: []int{0, 1, 2, 3}, Duration: 15})

	tree := NewTree(chainDigraph(), s, noMoreRoutes)
	log, routes, objective := tree.Run()

	require.Equal(t, StatusOptimum, log.Status)
	require.True(t, log.HasIncumbent)
	require.InDelta(t, 15, objective, 1e-6)
	require.Len(t, routes, 1)
	require.Equal(t, []int{0, 1, 2, 3}, routes[0].Path)
	require.Equal(t, 1, log.NodesOpened)
	require.Equal(t, 1, log.NodesClosed)
}

// TestRunAddsColumnViaPricing starts the master with only the two
// single-customer routes (LP optimum 20) and lets a one-shot pricing
// function contribute the cheaper combined route, which the tree must pick
// up as a new column and converge on.
func TestRunAddsColumnViaPricing(t *testing.T) {
	s := spf.New(4)
	s.AddRoute(spf.Route{Path: []int{0, 1, 3}, Duration: 10})
	s.AddRoute(spf.Route{Path: []int{0, 2, 3}, Duration: 10})

	calls := 0
	pricing := func(pp vrpinstance.PricingProblem, nodeIndex int, tl time.Duration) ([]bidirectional.Route, *bidirectional.RunLog) {
		calls++
		if calls == 1 {
			return []bidirectional.Route{{Path: []int{0, 1, 2, 3}, Duration: 15}}, &bidirectional.RunLog{}
		}
		return nil, &bidirectional.RunLog{}
	}

	tree := NewTree(chainDigraph(), s, pricing)
	log, routes, objective := tree.Run()

	require.Equal(t, StatusOptimum, log.Status)
	require.True(t, log.HasIncumbent)
	require.InDelta(t, 15, objective, 1e-6)
	require.Len(t, routes, 1)
	require.Equal(t, []int{0, 1, 2, 3}, routes[0].Path)
	require.GreaterOrEqual(t, calls, 2) // at least one productive call, one dry one.
}

func TestNodeHeapPopsAscendingBound(t *testing.T) {
	h := &nodeHeap{}
	heap.Init(h)
	for _, b := range []float64{5, 1, 3, 0.5, 2} {
		heap.Push(h, &Node{Bound: b})
	}

	got := make([]float64, 0, 5)
	for h.Len() > 0 {
		got = append(got, heap.Pop(h).(*Node).Bound)
	}
	require.Equal(t, []float64{0.5, 1, 2, 3, 5}, got)
}

func TestIsInteger(t *testing.T) {
	require.True(t, isInteger(map[int]float64{0: 1, 1: 1}))
	require.False(t, isInteger(map[int]float64{0: 0.5, 1: 0.5}))
	require.True(t, isInteger(nil))
}

// findMostViolatedCut needs at least 3 customer vertices (n>=5) to have any
// triple to enumerate.
func TestFindMostViolatedCutDetectsOverlap(t *testing.T) {
	omega := []spf.Route{
		// Each route covers two of customers 1, 2, 3; at value 0.5 apiece the
		// subset-row sum over {1,2,3} is 1.5, a violation of 0.5.
		{Path: []int{0, 1, 2, 4}, Duration: 10},
		{Path: []int{0, 2, 3, 4}, Duration: 10},
		{Path: []int{0, 1, 3, 4}, Duration: 10},
	}
	valuation := map[int]float64{0: 0.5, 1: 0.5, 2: 0.5}
	cut, violation := findMostViolatedCut(5, valuation, omega)
	require.Greater(t, violation, 0.0)
	require.Equal(t, [3]int{1, 2, 3}, cut.Vertices)
}

func TestFindMostViolatedCutNoneWhenFeasible(t *testing.T) {
	omega := []spf.Route{
		{Path: []int{0, 1, 4}, Duration: 10},
		{Path: []int{0, 2, 3, 4}, Duration: 12},
	}
	valuation := map[int]float64{0: 1.0, 1: 1.0}
	_, violation := findMostViolatedCut(5, valuation, omega)
	require.LessOrEqual(t, violation, 0.0)
}
