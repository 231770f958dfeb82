package vrpinstance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdbcp/pwl"
)

// buildTiny constructs a 2-vertex instance: depot 0 -> customer 1, travel
// time constant 5 over [0,10], matching spec.md §8's tiny two-arc scenario.
func buildTiny(t *testing.T) *Instance {
	t.Helper()
	n := 2
	d := NewDigraph(n)
	d.AddArc(0, 1)

	in := &Instance{
		D:        d,
		O:        0,
		Dest:     1,
		Horizon:  pwl.Interval{Left: 0, Right: 20},
		TW:       []pwl.Interval{{Left: 0, Right: 20}, {Left: 0, Right: 20}},
		Capacity: 10,
		Demand:   []float64{0, 3},
		Tau:      newFuncMatrix(n),
		Arr:      newFuncMatrix(n),
		Dep:      newFuncMatrix(n),
		PreTau:   newFuncMatrix(n),
	}
	in.Tau[0][1] = pwl.Constant(5, pwl.Interval{Left: 0, Right: 10})
	in.Arr[0][1] = in.Tau[0][1].Add(pwl.Identity(in.Tau[0][1].Domain()))
	dep, err := in.Arr[0][1].Inverse()
	require.NoError(t, err)
	in.Dep[0][1] = dep
	in.PreTau[0][1] = pwl.Identity(dep.Domain()).Sub(dep)

	for u := 0; u < n; u++ {
		in.Tau[u][u] = pwl.Constant(0, in.TW[u])
		in.PreTau[u][u] = pwl.Constant(0, in.TW[u])
		in.Dep[u][u] = pwl.Identity(in.TW[u])
		in.Arr[u][u] = pwl.Identity(in.TW[u])
	}
	in.ComputeLDT()
	return in
}

func TestDigraphAddRemoveArc(t *testing.T) {
	d := NewDigraph(3)
	d.AddArc(0, 1)
	d.AddArc(0, 2)
	require.True(t, d.HasArc(0, 1))
	require.Equal(t, []int{1, 2}, d.Successors(0))

	d.RemoveArc(0, 1)
	require.False(t, d.HasArc(0, 1))
	require.Equal(t, []int{2}, d.Successors(0))

	d.AddArc(0, 1) // restore
	require.True(t, d.HasArc(0, 1))
	require.Equal(t, []int{1, 2}, d.Successors(0))
}

func TestDigraphReverse(t *testing.T) {
	d := NewDigraph(2)
	d.AddArc(0, 1)
	r := d.Reverse()
	require.True(t, r.HasArc(1, 0))
	require.False(t, r.HasArc(0, 1))
}

func TestTravelAndArrivalTime(t *testing.T) {
	in := buildTiny(t)
	require.InDelta(t, 5.0, in.TravelTime(0, 1, 0), 1e-6)
	require.InDelta(t, 5.0, in.ArrivalTime(0, 1, 0), 1e-6)
	require.InDelta(t, 0.0, in.DepartureTime(0, 1, 5), 1e-6)
}

func TestReadyTimeCapacity(t *testing.T) {
	in := buildTiny(t)
	require.InDelta(t, 5.0, in.ReadyTime([]int{0, 1}, 0), 1e-6)

	in.Demand[1] = 20 // exceeds capacity
	require.GreaterOrEqual(t, in.ReadyTime([]int{0, 1}, 0), Inf)
}

func TestLDTAndUnreachable(t *testing.T) {
	in := buildTiny(t)
	// Vertex 1 has deadline 20; departing 0 at t must allow arrival by 20.
	// Tau's domain caps feasible departure at 10, so that is the latest
	// departure time even though the deadline itself is later.
	require.InDelta(t, 10.0, in.LDT[0][1], 1e-6)

	weak := in.WeakUnreachable(0, 16)
	require.True(t, weak.Test(1))

	ok := in.WeakUnreachable(0, 10)
	require.False(t, ok.Test(1))
}
