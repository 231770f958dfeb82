package simplex

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tdbcp/matrix"
)

// eps is the numeric tolerance used throughout pivoting and feasibility
// checks; below it, two float64 values are treated as equal.
const eps = 1e-9

// Sense constrains how a constraint row relates its linear combination to
// its right-hand side.
type Sense int

const (
	LE Sense = iota // a·x <= b
	GE              // a·x >= b
	EQ              // a·x == b
)

// Status reports the outcome of a Tableau.Solve call.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
)

// String implements fmt.Stringer for Status.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "Unknown"
	}
}

// Tableau is a dense two-phase primal simplex solver for
//
//	min c^T x   s.t.   A x {<=, =, >=} b,   x >= 0
//
// It wraps a matrix.Dense working tableau of shape (rows+1) x totalCols:
// one row per structural constraint plus a trailing objective row, and one
// column per structural variable, slack/surplus variable, artificial
// variable, and a final right-hand-side column.
//
// Bland's rule governs both the entering- and leaving-variable choice —
// smallest eligible index rather than steepest reduced cost or tightest
// ratio — trading iteration count for a guaranteed cycling-free run on
// degenerate instances. The set-partitioning master this backs is exactly
// such an instance: every customer row is an equality, so ties in the ratio test
// are the common case, not the exception.
type Tableau struct {
	structVars int // n: number of original decision variables.
	rows       int // m: number of constraints.
	totalCols  int // structVars + slacks + artificials + 1 (rhs).

	T     *matrix.Dense // (rows+1) x totalCols working tableau.
	basis []int         // basis[i] = column index of row i's basic variable.

	slackCols      []int   // per-row slack/surplus column, or -1.
	artificialCols []int   // per-row artificial column, or -1.
	sense          []Sense // normalized (post sign-flip) sense per row.

	cost []float64 // original objective coefficients, length structVars.
}

// NewTableau builds a Tableau for min c^T x s.t. A x {senses} b, x >= 0.
// Rows with a negative right-hand side are sign-flipped (and their sense
// mirrored) so every row enters the initial tableau with a non-negative
// right-hand side, per the standard simplex staging.
func NewTableau(A *matrix.Dense, b, c []float64, senses []Sense) (*Tableau, error) {
	if A == nil {
		return nil, ErrNilMatrix
	}
	m, n := A.Rows(), A.Cols()
	if m == 0 || n == 0 {
		return nil, ErrEmptyProblem
	}
	if len(b) != m || len(c) != n || len(senses) != m {
		return nil, ErrDimensionMismatch
	}

	flip := make([]bool, m)
	sense := make([]Sense, m)
	rhs := make([]float64, m)
	for i := 0; i < m; i++ {
		rhs[i], sense[i] = b[i], senses[i]
		if rhs[i] < 0 {
			rhs[i] = -rhs[i]
			flip[i] = true
			switch sense[i] {
			case LE:
				sense[i] = GE
			case GE:
				sense[i] = LE
			}
		}
	}

	// First pass: assign slack columns (LE and GE rows) and reserve
	// artificial slots (GE and EQ rows).
	slackCols := make([]int, m)
	artificialCols := make([]int, m)
	nSlack, nArt := 0, 0
	for i := 0; i < m; i++ {
		slackCols[i], artificialCols[i] = -1, -1
		switch sense[i] {
		case LE:
			slackCols[i] = n + nSlack
			nSlack++
		case GE:
			slackCols[i] = n + nSlack
			nSlack++
			artificialCols[i] = -2
			nArt++
		case EQ:
			artificialCols[i] = -2
			nArt++
		}
	}
	artStart := n + nSlack
	next := 0
	for i := 0; i < m; i++ {
		if artificialCols[i] == -2 {
			artificialCols[i] = artStart + next
			next++
		}
	}

	totalCols := n + nSlack + nArt + 1
	dense, err := matrix.NewDense(m+1, totalCols)
	if err != nil {
		return nil, err
	}

	basis := make([]int, m)
	for i := 0; i < m; i++ {
		sign := 1.0
		if flip[i] {
			sign = -1.0
		}
		for j := 0; j < n; j++ {
			v, verr := A.At(i, j)
			if verr != nil {
				return nil, verr
			}
			mustSet(dense, i, j, sign*v)
		}
		if slackCols[i] >= 0 {
			coeff := 1.0
			if sense[i] == GE {
				coeff = -1.0
			}
			mustSet(dense, i, slackCols[i], coeff)
		}
		if artificialCols[i] >= 0 {
			mustSet(dense, i, artificialCols[i], 1.0)
			basis[i] = artificialCols[i]
		} else {
			basis[i] = slackCols[i]
		}
		mustSet(dense, i, totalCols-1, rhs[i])
	}

	t := &Tableau{
		structVars:     n,
		rows:           m,
		totalCols:      totalCols,
		T:              dense,
		basis:          basis,
		slackCols:      slackCols,
		artificialCols: artificialCols,
		sense:          sense,
		cost:           append([]float64(nil), c...),
	}
	return t, nil
}

// Solve runs the two-phase primal simplex and returns the outcome, the
// structural variable values at the optimum (zero where a variable never
// entered the basis), and the achieved objective value. values and
// objective are only meaningful when Status is StatusOptimal.
func (t *Tableau) Solve() (Status, []float64, float64) {
	hasArtificial := false
	for _, a := range t.artificialCols {
		if a >= 0 {
			hasArtificial = true
			break
		}
	}

	if hasArtificial {
		t.loadObjective(t.phase1Cost())
		t.runSimplex(nil) // phase 1 minimizes a sum of non-negatives; never unbounded.
		if mustAt(t.T, t.rows, t.totalCols-1) < -eps {
			return StatusInfeasible, nil, 0
		}
		t.expelBasicArtificials()
	}

	blocked := make([]bool, t.totalCols)
	for _, a := range t.artificialCols {
		if a >= 0 {
			blocked[a] = true
		}
	}

	t.loadObjective(t.phase2Cost())
	status := t.runSimplex(blocked)

	values := make([]float64, t.structVars)
	if status == StatusOptimal {
		for i := 0; i < t.rows; i++ {
			if t.basis[i] < t.structVars {
				values[t.basis[i]] = mustAt(t.T, i, t.totalCols-1)
			}
		}
	}
	objective := 0.0
	for j, cj := range t.cost {
		objective += cj * values[j]
	}
	return status, values, objective
}

// expelBasicArtificials pivots any artificial variable still basic at zero
// level (left over from a degenerate phase-1 optimum) out of the basis, so
// phase 2 never has to treat an artificial column as structurally basic.
// Per the standard phase-1/phase-2 handoff, such a row's non-artificial
// entries aren't all zero (otherwise the row would be a redundant
// constraint), so a pivot column always exists.
func (t *Tableau) expelBasicArtificials() {
	for i := 0; i < t.rows; i++ {
		if t.artificialCols[i] < 0 || t.basis[i] != t.artificialCols[i] {
			continue
		}
		for j := 0; j < t.structVars; j++ {
			v := mustAt(t.T, i, j)
			if v > eps || v < -eps {
				t.pivot(i, j)
				break
			}
		}
	}
}

// phase1Cost returns the cost vector that minimizes the sum of artificial
// variables: 1 for every artificial column, 0 elsewhere.
func (t *Tableau) phase1Cost() []float64 {
	cost := make([]float64, t.totalCols)
	for _, a := range t.artificialCols {
		if a >= 0 {
			cost[a] = 1
		}
	}
	return cost
}

// phase2Cost returns the real objective padded out to totalCols (slack and
// artificial columns cost 0).
func (t *Tableau) phase2Cost() []float64 {
	cost := make([]float64, t.totalCols)
	copy(cost, t.cost)
	return cost
}

// loadObjective resets the objective row to cost and re-derives the
// reduced-cost row from the current basis: T[rows][j] = cost[j] for every
// j, then each basic row's cost is subtracted out so every basic column
// reads zero, leaving the non-basic columns holding true reduced costs.
func (t *Tableau) loadObjective(cost []float64) {
	for j := 0; j < t.totalCols; j++ {
		mustSet(t.T, t.rows, j, cost[j])
	}
	for i := 0; i < t.rows; i++ {
		cb := cost[t.basis[i]]
		if cb != 0 {
			t.rowCombine(t.rows, -cb, i)
		}
	}
}

// rowCombine performs T[dst][j] += factor * T[src][j] for every column.
func (t *Tableau) rowCombine(dst int, factor float64, src int) {
	if factor == 0 {
		return
	}
	for j := 0; j < t.totalCols; j++ {
		mustSet(t.T, dst, j, mustAt(t.T, dst, j)+factor*mustAt(t.T, src, j))
	}
}

// pivot makes T[row][col] the unit pivot: row is scaled so the pivot
// becomes 1, then every other row (including the objective row) has its
// col-th entry eliminated via rowCombine.
func (t *Tableau) pivot(row, col int) {
	pv := mustAt(t.T, row, col)
	inv := 1.0 / pv
	for j := 0; j < t.totalCols; j++ {
		mustSet(t.T, row, j, mustAt(t.T, row, j)*inv)
	}
	for i := 0; i <= t.rows; i++ {
		if i == row {
			continue
		}
		factor := mustAt(t.T, i, col)
		if factor != 0 {
			t.rowCombine(i, -factor, row)
		}
	}
	t.basis[row] = col
}

// runSimplex drives the tableau to optimality (or detects unboundedness)
// using Bland's rule: the entering column is the smallest-index column
// with a negative reduced cost, and the leaving row is chosen by the
// minimum ratio test, ties broken by the smallest basic-variable index.
// blocked, when non-nil, marks columns (e.g. phase-1 artificials) that may
// never enter the basis.
func (t *Tableau) runSimplex(blocked []bool) Status {
	// Bland's rule bounds the number of distinct bases visited, so any
	// realistic master-problem tableau terminates far below this; it exists
	// purely as a belt-and-suspenders guard against a malformed tableau.
	const maxIter = 100000

	for iter := 0; iter < maxIter; iter++ {
		enter := -1
		for j := 0; j < t.totalCols-1; j++ {
			if blocked != nil && blocked[j] {
				continue
			}
			if mustAt(t.T, t.rows, j) < -eps {
				enter = j
				break
			}
		}
		if enter == -1 {
			return StatusOptimal
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < t.rows; i++ {
			a := mustAt(t.T, i, enter)
			if a <= eps {
				continue
			}
			ratio := mustAt(t.T, i, t.totalCols-1) / a
			switch {
			case leave == -1 || ratio < bestRatio-eps:
				bestRatio, leave = ratio, i
			case ratio < bestRatio+eps && t.basis[i] < t.basis[leave]:
				leave = i
			}
		}
		if leave == -1 {
			return StatusUnbounded
		}
		t.pivot(leave, enter)
	}
	return StatusOptimal
}

// Duals returns the dual values y_i for each constraint row, read off the
// objective row's entry in that row's slack (or, for equality rows,
// artificial) column — the column that carried a unit vector e_i (or -e_i,
// for a surplus) into the initial tableau. Only meaningful immediately
// after a StatusOptimal Solve. Assumes every row's right-hand side was
// non-negative as given to NewTableau (true for both constraint families
// the master problem builds — coverage rows and cut rows always carry
// rhs=1); a row that NewTableau had to sign-flip would need its sign
// corrected here too, which this does not attempt.
func (t *Tableau) Duals() []float64 {
	duals := make([]float64, t.rows)
	for i := 0; i < t.rows; i++ {
		col := t.slackCols[i]
		if col < 0 {
			col = t.artificialCols[i]
		}
		rc := mustAt(t.T, t.rows, col)
		if t.sense[i] == GE {
			duals[i] = rc
		} else {
			duals[i] = -rc
		}
	}
	return duals
}

// mustSet writes v at (i,j), panicking if the indices violate the
// tableau's own invariant shape — a programmer error, never a user input
// condition, since every index here is computed from t.rows/t.totalCols.
func mustSet(d *matrix.Dense, i, j int, v float64) {
	if err := d.Set(i, j, v); err != nil {
		panic(fmt.Sprintf("simplex: internal tableau bounds violated at (%d,%d): %v", i, j, err))
	}
}

// mustAt reads (i,j), panicking under the same invariant as mustSet.
func mustAt(d *matrix.Dense, i, j int) float64 {
	v, err := d.At(i, j)
	if err != nil {
		panic(fmt.Sprintf("simplex: internal tableau bounds violated at (%d,%d): %v", i, j, err))
	}
	return v
}
