package labeling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdbcp/label"
	"github.com/katalvlaran/tdbcp/pwl"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// buildTwoArc constructs the tiny 0->1->2 instance spec.md §8 uses: a depot,
// one customer, and an end depot, each leg a constant-5 travel time.
func buildTwoArc(t *testing.T) *vrpinstance.Instance {
	t.Helper()
	n := 3
	d := vrpinstance.NewDigraph(n)
	d.AddArc(0, 1)
	d.AddArc(1, 2)
	d.AddArc(0, 2)

	tw := []pwl.Interval{{Left: 0, Right: 100}, {Left: 0, Right: 100}, {Left: 0, Right: 100}}
	in := &vrpinstance.Instance{
		D:        d,
		O:        0,
		Dest:     2,
		Horizon:  pwl.Interval{Left: 0, Right: 100},
		TW:       tw,
		Capacity: 10,
		Demand:   []float64{0, 3, 0},
		Profit:   []float64{0, 15, 0},
	}
	in.Tau = make([][]pwl.Function, n)
	in.Arr = make([][]pwl.Function, n)
	in.Dep = make([][]pwl.Function, n)
	in.PreTau = make([][]pwl.Function, n)
	for i := 0; i < n; i++ {
		in.Tau[i] = make([]pwl.Function, n)
		in.Arr[i] = make([]pwl.Function, n)
		in.Dep[i] = make([]pwl.Function, n)
		in.PreTau[i] = make([]pwl.Function, n)
	}

	setArc := func(u, v int, travel float64) {
		in.Tau[u][v] = pwl.Constant(travel, tw[u])
		in.Arr[u][v] = in.Tau[u][v].Add(pwl.Identity(tw[u]))
		dep, err := in.Arr[u][v].Inverse()
		require.NoError(t, err)
		in.Dep[u][v] = dep
		in.PreTau[u][v] = pwl.Identity(dep.Domain()).Sub(dep)
	}
	setArc(0, 1, 5)
	setArc(1, 2, 5)
	setArc(0, 2, 20) // direct arc dominated in duration by the 0-1-2 path.

	for u := 0; u < n; u++ {
		in.Tau[u][u] = pwl.Constant(0, tw[u])
		in.PreTau[u][u] = pwl.Constant(0, tw[u])
		in.Dep[u][u] = pwl.Identity(tw[u])
		in.Arr[u][u] = pwl.Identity(tw[u])
	}
	in.ComputeLDT()
	return in
}

func TestEngineFindsTwoArcPath(t *testing.T) {
	vrp := buildTwoArc(t)
	e := NewEngine(vrp)
	e.SetProblem(vrpinstance.PricingProblem{Profit: vrp.Profit})

	q := NewLabelQueue()
	q.Enqueue(e.Init(), 0, 0)
	processed, log := e.Run(q)
	require.Equal(t, StatusFinished, log.Status)
	require.NotEmpty(t, processed)

	var foundDest bool
	var bestNegCost float64
	for _, idx := range processed {
		l := e.Arena.At(idx)
		if l.V != vrp.Dest {
			continue
		}
		foundDest = true
		if l.MinCost < bestNegCost {
			bestNegCost = l.MinCost
		}
	}
	require.True(t, foundDest)
	// Visiting vertex 1 earns profit 15 at a duration cost of 10 ticks, so a
	// negative reduced-cost label reaching the destination must exist.
	require.Less(t, bestNegCost, 0.0)

	var path []int
	for _, idx := range processed {
		l := e.Arena.At(idx)
		if l.V == vrp.Dest && l.MinCost == bestNegCost {
			path = e.Arena.Path(idx)
		}
	}
	require.Equal(t, []int{0, 1, 2}, path)
}

func TestEngineRespectsForbiddenArc(t *testing.T) {
	vrp := buildTwoArc(t)
	e := NewEngine(vrp)
	e.SetProblem(vrpinstance.PricingProblem{
		Profit:    vrp.Profit,
		Forbidden: []vrpinstance.Arc{{Tail: 0, Head: 1}},
	})
	require.False(t, vrp.D.HasArc(0, 1))

	q := NewLabelQueue()
	q.Enqueue(e.Init(), 0, 0)
	processed, _ := e.Run(q)

	for _, idx := range processed {
		path := e.Arena.Path(idx)
		for _, v := range path {
			require.NotEqual(t, 1, v, "vertex 1 must be unreachable with arc (0,1) forbidden")
		}
	}

	// Restoring the pricing problem without the forbidden arc must re-add it.
	e.SetProblem(vrpinstance.PricingProblem{Profit: vrp.Profit})
	require.True(t, vrp.D.HasArc(0, 1))
}

func TestEngineCapacityPrunesCustomer(t *testing.T) {
	vrp := buildTwoArc(t)
	vrp.Demand[1] = 20 // exceeds capacity; vertex 1 must never be enumerated.
	e := NewEngine(vrp)
	e.SetProblem(vrpinstance.PricingProblem{Profit: vrp.Profit})

	q := NewLabelQueue()
	q.Enqueue(e.Init(), 0, 0)
	processed, _ := e.Run(q)

	for _, idx := range processed {
		require.NotEqual(t, 1, e.Arena.At(idx).V)
	}
}

func TestLabelQueueOrdering(t *testing.T) {
	q := NewLabelQueue()
	q.Enqueue(label.LazyLabel{V: 2, Makespan: 5}, 0, 0)
	q.Enqueue(label.LazyLabel{V: 1, Makespan: 1}, 0, 0)
	q.Enqueue(label.LazyLabel{V: 3, Makespan: 3}, 0, 0)

	require.Equal(t, 1, q.Dequeue().V)
	require.Equal(t, 3, q.Dequeue().V)
	require.Equal(t, 2, q.Dequeue().V)
	require.True(t, q.Empty())
}
