package spf

import (
	"github.com/katalvlaran/tdbcp/label"
	"github.com/katalvlaran/tdbcp/matrix"
	"github.com/katalvlaran/tdbcp/simplex"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

const eps = 1e-9

// Route is a complete origin-to-destination path, considered here purely
// as a column of the master problem: its only relevant data are the
// vertices it visits (for constraint coefficients) and its cost.
type Route struct {
	Path     []int
	Duration float64
}

// SubsetRowCut strengthens the master with a rank-1 cut over exactly three
// customer vertices (spec.md §6): in any integer solution, at most one
// selected route may visit two or more of Vertices.
type SubsetRowCut struct {
	Vertices [3]int
}

// Test reports whether v is one of the cut's three vertices.
func (c SubsetRowCut) Test(v int) bool {
	return v == c.Vertices[0] || v == c.Vertices[1] || v == c.Vertices[2]
}

type arcKey struct{ Tail, Head int }

// SPF is the set-partitioning formulation for the VRP:
//
//	min  sum_j duration_j * y_j
//	s.t. sum_{j: i in path(j)} y_j = 1         for every customer i
//	     sum_{j: |path(j) ∩ cut.Vertices| >= 2} y_j <= 1   for every active cut
//	     y_j >= 0
//
// Vertices 0 and N-1 are the start/end depots and never get a coverage
// row — every route starts and ends there by construction, so a row for
// them would always read 0=0 (the original formulation keeps such a row
// only to index duals by raw vertex number; this port drops it and
// indexes customer rows directly by position instead, documented in
// DESIGN.md).
type SPF struct {
	N             int
	Omega         []Route
	OmegaByArc    map[arcKey][]int
	Cuts          []SubsetRowCut
	ForbiddenArcs []vrpinstance.Arc

	forbidden map[int]bool // route index -> currently excluded from the master.
}

// New returns an empty SPF over an n-vertex instance (vertices 0 and n-1
// are the start/end depots).
func New(n int) *SPF {
	return &SPF{
		N:          n,
		OmegaByArc: make(map[arcKey][]int),
		forbidden:  make(map[int]bool),
	}
}

// AddRoute adds r as a new column and returns its index in Omega.
func (s *SPF) AddRoute(r Route) int {
	j := len(s.Omega)
	s.Omega = append(s.Omega, r)
	for k := 0; k+1 < len(r.Path); k++ {
		key := arcKey{r.Path[k], r.Path[k+1]}
		s.OmegaByArc[key] = append(s.OmegaByArc[key], j)
	}
	return j
}

// AddCut adds a new subset-row cut row to the master.
func (s *SPF) AddCut(cut SubsetRowCut) {
	s.Cuts = append(s.Cuts, cut)
}

// SetForbiddenArcs restores every arc forbidden by a prior call (so routes
// using them become eligible again) before excluding routes that use any
// arc in arcs — the paired restore-then-remove invariant spec.md §5
// requires of all forbidden-arc bookkeeping.
func (s *SPF) SetForbiddenArcs(arcs []vrpinstance.Arc) {
	s.forbidden = make(map[int]bool)
	for _, a := range arcs {
		for _, j := range s.OmegaByArc[arcKey{a.Tail, a.Head}] {
			s.forbidden[j] = true
		}
	}
	s.ForbiddenArcs = append([]vrpinstance.Arc(nil), arcs...)
}

// RouteOf returns the route backing column j.
func (s *SPF) RouteOf(j int) Route {
	return s.Omega[j]
}

// ExcludeColumns marks the given Omega indices as inactive for subsequent
// Solve calls, independently of the arc-based ForbiddenArcs bookkeeping.
// The freeze heuristic's rounding dive (bcp.Tree.freezeHeuristic) uses this
// to remove routes that conflict with a variable it just fixed to 1; a
// later SetForbiddenArcs call rebuilds forbidden from scratch and clears
// any exclusion left over from a dive.
func (s *SPF) ExcludeColumns(idxs []int) {
	for _, j := range idxs {
		s.forbidden[j] = true
	}
}

// activeColumns returns the Omega indices not currently forbidden, in
// ascending order.
func (s *SPF) activeColumns() []int {
	cols := make([]int, 0, len(s.Omega))
	for j := range s.Omega {
		if !s.forbidden[j] {
			cols = append(cols, j)
		}
	}
	return cols
}

// rowCount is the number of master constraint rows: one per customer plus
// one per active cut.
func (s *SPF) rowCount() int {
	return s.N - 2 + len(s.Cuts)
}

// buildTableau constructs a fresh simplex.Tableau from the current
// Omega/Cuts/forbidden state (no warm start, see DESIGN.md) and returns it
// alongside the Omega index each tableau column corresponds to.
func (s *SPF) buildTableau() (*simplex.Tableau, []int, error) {
	cols := s.activeColumns()
	m, n := s.rowCount(), len(cols)
	if m <= 0 || n == 0 {
		return nil, cols, simplex.ErrEmptyProblem
	}

	A, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, cols, err
	}
	b := make([]float64, m)
	senses := make([]simplex.Sense, m)
	c := make([]float64, n)

	nCustomers := s.N - 2
	for row := 0; row < nCustomers; row++ {
		b[row] = 1
		senses[row] = simplex.EQ
	}
	for i := range s.Cuts {
		b[nCustomers+i] = 1
		senses[nCustomers+i] = simplex.LE
	}

	for colIdx, j := range cols {
		r := s.Omega[j]
		c[colIdx] = r.Duration
		visited := label.SetFromVertices(s.N, r.Path)
		for row := 0; row < nCustomers; row++ {
			if visited.Test(row + 1) {
				if err := A.Set(row, colIdx, 1); err != nil {
					return nil, cols, err
				}
			}
		}
		for i, cut := range s.Cuts {
			hits := 0
			for _, v := range cut.Vertices {
				if visited.Test(v) {
					hits++
				}
			}
			if hits >= 2 {
				if err := A.Set(nCustomers+i, colIdx, 1); err != nil {
					return nil, cols, err
				}
			}
		}
	}

	tab, err := simplex.NewTableau(A, b, c, senses)
	return tab, cols, err
}

// Solve builds and solves the current restricted master LP, returning the
// status, the fractional value of every selected (nonzero) column keyed
// by its Omega index, the row duals (customer rows first, then cut rows,
// matching rowCount's layout), and the objective value.
func (s *SPF) Solve() (simplex.Status, map[int]float64, []float64, float64) {
	tab, cols, err := s.buildTableau()
	if err != nil {
		return simplex.StatusInfeasible, nil, nil, 0
	}

	status, values, objective := tab.Solve()
	if status != simplex.StatusOptimal {
		return status, nil, nil, 0
	}

	valuation := make(map[int]float64)
	for colIdx, v := range values {
		if v > eps {
			valuation[cols[colIdx]] = v
		}
	}
	return status, valuation, tab.Duals(), objective
}

// InterpretDuals turns the row duals from a Solve call into a pricing
// problem for the labeling engines: customer duals become per-vertex
// profits, and cuts with a nonzero dual carry that dual as their
// activation weight (spec.md §4.7 — only nonzero-dual cuts need to be
// passed on, since a zero-dual cut contributes nothing to reduced cost).
func (s *SPF) InterpretDuals(duals []float64) vrpinstance.PricingProblem {
	pp := vrpinstance.PricingProblem{
		Forbidden: append([]vrpinstance.Arc(nil), s.ForbiddenArcs...),
	}

	profit := make([]float64, s.N)
	nCustomers := s.N - 2
	for i := 0; i < nCustomers && i < len(duals); i++ {
		profit[i+1] = duals[i]
	}
	pp.Profit = profit

	for i, cut := range s.Cuts {
		row := nCustomers + i
		if row >= len(duals) {
			continue
		}
		if d := duals[row]; d > eps || d < -eps {
			pp.Cuts = append(pp.Cuts, label.SetFromVertices(s.N, cut.Vertices[:]))
			pp.Sigma = append(pp.Sigma, d)
		}
	}
	return pp
}

// InterpretSolution returns the routes backing every column present in
// valuation (e.g. the integer solution found by a freeze-heuristic dive).
func (s *SPF) InterpretSolution(valuation map[int]float64) []Route {
	routes := make([]Route, 0, len(valuation))
	for j := range valuation {
		routes = append(routes, s.Omega[j])
	}
	return routes
}
