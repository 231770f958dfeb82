package solverio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdbcp/bcp"
	"github.com/katalvlaran/tdbcp/bidirectional"
	"github.com/katalvlaran/tdbcp/pwl"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

func TestNewExecutionLogAssemblesNestedLogs(t *testing.T) {
	bcpLog := bcp.RunLog{
		Status:          bcp.StatusOptimum,
		LPTime:          2 * time.Second,
		PricingTime:     3 * time.Second,
		CutTime:         time.Second,
		VariableCount:   5,
		ConstraintCount: 4,
	}
	rootBLB := bidirectional.RunLog{Status: bidirectional.StatusFinished}

	log := NewExecutionLog(bcpLog, rootBLB)

	require.Equal(t, bcpLog, log.BranchCutAndPrice)
	require.Equal(t, rootBLB, log.BidirectionalLabeling)
	require.Equal(t, 2*time.Second, log.ColumnGeneration.LPTime)
	require.Equal(t, 3*time.Second, log.ColumnGeneration.PricingTime)
	require.Equal(t, time.Second, log.ColumnGeneration.CutTime)
	require.Equal(t, 5, log.ColumnGeneration.VariableCount)
	require.Equal(t, 4, log.ColumnGeneration.ConstraintCount)
}

// buildChain constructs a 0->1->2->3 chain instance: each leg a constant-5
// travel time, customers 1 and 2 each earning profit, the same scenario
// bidirectional's own driver tests use.
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
		Profit:   []float64{0, 5, 5, 0},
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

func TestSolveEndToEndOnChainInstance(t *testing.T) {
	vrp := buildChain(t)
	cfg := DefaultExperimentConfig()
	cfg.TimeLimitSeconds = 5

	result := Solve(cfg, vrp)

	require.True(t, result.Exact.BranchCutAndPrice.Status == bcp.StatusOptimum ||
		result.Exact.BranchCutAndPrice.Status == bcp.StatusTimeLimitReached)
	for _, r := range result.BestSolution.Routes {
		require.NotEmpty(t, r.Path)
		require.Equal(t, vrp.O, r.Path[0])
		require.Equal(t, vrp.Dest, r.Path[len(r.Path)-1])
	}
}
