package bidirectional

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdbcp/pwl"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// buildChain constructs a 0->1->2->3 chain instance: each leg a constant-5
// travel time, customers 1 and 2 each earning profit, matching spec.md §8's
// bidirectional merge scenario.
func buildChain(t *testing.T) *vrpinstance.Instance {
	t.Helper()
	n := 4
	d := vrpinstance.NewDigraph(n)
	d.AddArc(0, 1)
	d.AddArc(1, 2)
	d.AddArc(2, 3)

	tw := make([]pwl.Interval, n)
	for i := range tw {
		tw[i] = pwl.Interval{Left: 0, Right: 100}
	}
	in := &vrpinstance.Instance{
		D:        d,
		O:        0,
		Dest:     3,
		Horizon:  pwl.Interval{Left: 0, Right: 100},
		TW:       tw,
		Capacity: 10,
		Demand:   []float64{0, 2, 2, 0},
		Profit:   []float64{0, 10, 10, 0},
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
	setArc(2, 3, 5)

	for u := 0; u < n; u++ {
		in.Tau[u][u] = pwl.Constant(0, tw[u])
		in.PreTau[u][u] = pwl.Constant(0, tw[u])
		in.Dep[u][u] = pwl.Identity(tw[u])
		in.Arr[u][u] = pwl.Identity(tw[u])
	}
	in.ComputeLDT()
	return in
}

func TestDriverFindsFullChainRoute(t *testing.T) {
	vrp := buildChain(t)
	d := NewDriver(vrp)

	routes, log := d.Run(vrpinstance.PricingProblem{Profit: vrp.Profit})
	require.Equal(t, StatusFinished, log.Status)
	require.NotEmpty(t, routes)

	var best *Route
	for i := range routes {
		r := &routes[i]
		require.Equal(t, vrp.O, r.Path[0])
		require.Equal(t, vrp.Dest, r.Path[len(r.Path)-1])
		if best == nil || r.Duration < best.Duration {
			best = r
		}
	}
	require.NotNil(t, best)
	// Visiting both customers earns profit 20 for a 15-tick route, so a
	// negative reduced-cost route must exist.
	require.Less(t, best.Duration-20.0, 0.0)
}

func TestReversePricingProblemReversesArcsOnly(t *testing.T) {
	pp := vrpinstance.PricingProblem{
		Forbidden: []vrpinstance.Arc{{Tail: 1, Head: 2}},
		Profit:    []float64{1, 2, 3},
		Sigma:     []float64{0.5},
	}
	rpp := reversePricingProblem(pp)
	require.Equal(t, []vrpinstance.Arc{{Tail: 2, Head: 1}}, rpp.Forbidden)
	require.Equal(t, pp.Profit, rpp.Profit)
	require.Equal(t, pp.Sigma, rpp.Sigma)
}
