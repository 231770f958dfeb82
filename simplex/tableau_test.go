package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tdbcp/matrix"
)

func buildTableau(t *testing.T, rows [][]float64, senses []Sense, b, c []float64) *Tableau {
	t.Helper()
	m, n := len(rows), len(c)
	A, err := matrix.NewDense(m, n)
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, A.Set(i, j, v))
		}
	}
	tab, err := NewTableau(A, b, c, senses)
	require.NoError(t, err)
	return tab
}

// TestSolveLEProblem is a textbook two-variable <= LP:
//
//	max 3x + 5y  <=>  min -3x - 5y
//	s.t. x <= 4, 2y <= 12, 3x + 2y <= 18
//
// with known optimum x=2, y=6, objective -36.
func TestSolveLEProblem(t *testing.T) {
	tab := buildTableau(t,
		[][]float64{
			{1, 0},
			{0, 2},
			{3, 2},
		},
		[]Sense{LE, LE, LE},
		[]float64{4, 12, 18},
		[]float64{-3, -5},
	)

	status, values, obj := tab.Solve()
	require.Equal(t, StatusOptimal, status)
	require.InDelta(t, 2, values[0], 1e-6)
	require.InDelta(t, 6, values[1], 1e-6)
	require.InDelta(t, -36, obj, 1e-6)
}

// TestSolveEqualityCoverProblem mirrors the set-partitioning master's
// shape: two equality rows each covered by exactly one of two columns, so
// the unique feasible (and optimal) solution sets both variables to 1.
func TestSolveEqualityCoverProblem(t *testing.T) {
	tab := buildTableau(t,
		[][]float64{
			{1, 0},
			{0, 1},
		},
		[]Sense{EQ, EQ},
		[]float64{1, 1},
		[]float64{4, 6},
	)

	status, values, obj := tab.Solve()
	require.Equal(t, StatusOptimal, status)
	require.InDelta(t, 1, values[0], 1e-6)
	require.InDelta(t, 1, values[1], 1e-6)
	require.InDelta(t, 10, obj, 1e-6)
}

// TestSolveInfeasible sets up two equality rows that cannot both be
// satisfied by any non-negative x: x = 1 and x = 2.
func TestSolveInfeasible(t *testing.T) {
	tab := buildTableau(t,
		[][]float64{
			{1},
			{1},
		},
		[]Sense{EQ, EQ},
		[]float64{1, 2},
		[]float64{1},
	)

	status, _, _ := tab.Solve()
	require.Equal(t, StatusInfeasible, status)
}

// TestSolveUnbounded has an objective that decreases without bound along a
// ray of the feasible region (x >= 1, minimize -x).
func TestSolveUnbounded(t *testing.T) {
	tab := buildTableau(t,
		[][]float64{
			{-1},
		},
		[]Sense{LE},
		[]float64{-1},
		[]float64{-1},
	)

	status, _, _ := tab.Solve()
	require.Equal(t, StatusUnbounded, status)
}

// TestDualsNonBindingRowIsZero checks complementary slackness on the <=
// problem above: at the optimum x=2, y=6 the row x<=4 is slack while 2y<=12
// and 3x+2y<=18 are tight, so the slack row's dual must be zero. The values
// of the two binding rows' duals are not asserted.
func TestDualsNonBindingRowIsZero(t *testing.T) {
	tab := buildTableau(t,
		[][]float64{
			{1, 0},
			{0, 2},
			{3, 2},
		},
		[]Sense{LE, LE, LE},
		[]float64{4, 12, 18},
		[]float64{-3, -5},
	)
	status, _, _ := tab.Solve()
	require.Equal(t, StatusOptimal, status)

	duals := tab.Duals()
	require.Len(t, duals, 3)
	require.InDelta(t, 0, duals[0], 1e-6) // x <= 4 isn't binding at x=2.
}
