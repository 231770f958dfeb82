package bcp

import (
	"container/heap"
	"math"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/katalvlaran/tdbcp/simplex"
	"github.com/katalvlaran/tdbcp/spf"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

const eps = 1e-6

// Status reports why a Tree.Run invocation stopped (bcp.h's BCP fields
// translated into a result code, spec.md §4.8).
type Status int

const (
	StatusDidNotStart Status = iota
	StatusOptimum
	StatusTimeLimitReached
	StatusNodeLimitReached
	StatusMemoryLimitReached
)

func (s Status) String() string {
	switch s {
	case StatusOptimum:
		return "Optimum"
	case StatusTimeLimitReached:
		return "TimeLimitReached"
	case StatusNodeLimitReached:
		return "NodeLimitReached"
	case StatusMemoryLimitReached:
		return "MemoryLimitReached"
	default:
		return "DidNotStart"
	}
}

// MarshalJSON renders Status as its String() name, the BCStatus wire
// format spec.md §6 names.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// RunLog is the branch-cut-and-price execution log named by spec.md §6
// (BCPExecutionLog).
type RunLog struct {
	Status Status

	NodesOpened int
	NodesClosed int

	CutCount      int
	CutTime       time.Duration
	BranchingTime time.Duration
	PricingTime   time.Duration
	LPTime        time.Duration
	Duration      time.Duration

	RootLPValue         float64
	RootVariableCount   int
	RootConstraintCount int

	VariableCount        int
	ConstraintCount      int
	FinalVariableCount   int
	FinalConstraintCount int

	BestBound    float64
	BestIntValue float64
	HasIncumbent bool
}

// cgResult is the outcome of one node's column-generation loop: either the
// restricted master converged to an LP optimum (feasible) or it proved
// infeasible, or the node ran out of time mid-loop.
type cgResult struct {
	feasible  bool
	timeLimit bool
	objective float64
	valuation map[int]float64
}

// Tree is the branch-cut-and-price search driver: best-bound node
// selection over restricted master problems, root-only cut separation, and
// strong branching on fractional arc flows (bcp.h's BCP, spec.md §4.8).
// Every piece of run-to-run state is a field, mirroring the teacher's
// dedicated-engine idiom rather than closures.
type Tree struct {
	D       *vrpinstance.Digraph
	SPF     *spf.SPF
	Pricing PricingFunction

	TimeLimit        time.Duration
	NodeLimit        int
	CutLimit         int
	MemoryLimitBytes uint64 // 0: unlimited. Checked via runtime.ReadMemStats between nodes.

	zUB      float64
	hasUB    bool
	ub       map[int]float64
	nodeSeq  int
	queue    nodeHeap
	start    time.Time
	deadline time.Time
	log      RunLog
}

// NewTree returns a Tree over d/s with the teacher-default tunables: a
// two-hour time budget, an unbounded node count and a limit of 100 cuts
// (bcp.cpp's BCP constructor defaults).
func NewTree(d *vrpinstance.Digraph, s *spf.SPF, pricing PricingFunction) *Tree {
	return &Tree{
		D:         d,
		SPF:       s,
		Pricing:   pricing,
		TimeLimit: 2 * time.Hour,
		NodeLimit: math.MaxInt32,
		CutLimit:  100,
		zUB:       math.Inf(1),
	}
}

// Run executes the full branch-cut-and-price search and returns the
// execution log, the routes composing the best integer solution found, and
// its objective value (bcp.cpp's BCP::Run).
func (t *Tree) Run() (RunLog, []spf.Route, float64) {
	t.start = time.Now()
	t.deadline = t.start.Add(t.TimeLimit)
	t.log = RunLog{Status: StatusOptimum}
	t.queue = nil
	heap.Init(&t.queue)

	root := &Node{Index: 0, Bound: math.Inf(-1)}
	t.nodeSeq = 1
	t.processNode(root)

	if len(t.queue) > 0 {
		t.freezeHeuristic()
	}

	for len(t.queue) > 0 {
		if t.timedOut() {
			t.log.Status = StatusTimeLimitReached
			break
		}
		if t.nodeSeq > t.NodeLimit {
			t.log.Status = StatusNodeLimitReached
			break
		}
		if t.memoryExceeded() {
			t.log.Status = StatusMemoryLimitReached
			break
		}
		n := heap.Pop(&t.queue).(*Node)
		if t.hasUB && n.Bound >= t.zUB-eps {
			t.log.NodesClosed++
			continue
		}
		t.branchNode(n)
	}

	t.log.Duration = time.Since(t.start)
	t.log.BestBound = t.bestOpenBound()
	t.log.FinalVariableCount = len(t.SPF.Omega)
	t.log.FinalConstraintCount = t.SPF.N - 2 + len(t.SPF.Cuts)
	if t.hasUB {
		t.log.HasIncumbent = true
		t.log.BestIntValue = t.zUB
		return t.log, t.SPF.InterpretSolution(t.ub), t.zUB
	}
	return t.log, nil, 0
}

func (t *Tree) timedOut() bool {
	return !t.deadline.IsZero() && time.Now().After(t.deadline)
}

// memoryExceeded soft-checks process memory against MemoryLimitBytes. This
// is the only practical way to approximate the original's external
// memory-limit signal in a garbage-collected runtime: it can run late (GC
// hasn't reclaimed yet) or early (a large single allocation spikes Alloc
// transiently), so it is checked only at node boundaries, not mid-pivot.
func (t *Tree) memoryExceeded() bool {
	if t.MemoryLimitBytes == 0 {
		return false
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc > t.MemoryLimitBytes
}

func (t *Tree) bestOpenBound() float64 {
	if len(t.queue) == 0 {
		if t.hasUB {
			return t.zUB
		}
		return math.Inf(1)
	}
	best := math.Inf(1)
	for _, n := range t.queue {
		if n.Bound < best {
			best = n.Bound
		}
	}
	return best
}

// processNode runs column generation at n and files the result: infeasible
// nodes close immediately, an integer-optimal LP updates the incumbent and
// closes, a fractional LP bounded below the incumbent is enqueued, and one
// bounded at or above it is pruned (bcp.cpp's BCP::ProcessNode).
func (t *Tree) processNode(n *Node) {
	if t.memoryExceeded() {
		t.log.Status = StatusMemoryLimitReached
		return
	}
	t.log.NodesOpened++
	t.SPF.SetForbiddenArcs(n.ForbiddenArcs)

	cg := t.columnGeneration(n)
	if cg.timeLimit {
		t.log.Status = StatusTimeLimitReached
		t.log.NodesClosed++
		return
	}
	if !cg.feasible {
		t.log.NodesClosed++
		return
	}

	n.Bound = cg.objective
	n.Opt = cg.valuation
	if n.Index == 0 {
		t.log.RootLPValue = cg.objective
		t.log.RootVariableCount = len(t.SPF.Omega)
		t.log.RootConstraintCount = t.SPF.N - 2 + len(t.SPF.Cuts)
	}
	t.log.VariableCount = len(t.SPF.Omega)
	t.log.ConstraintCount = t.SPF.N - 2 + len(t.SPF.Cuts)

	if t.hasUB && n.Bound >= t.zUB-eps {
		t.log.NodesClosed++
		return
	}
	if isInteger(n.Opt) {
		if !t.hasUB || n.Bound < t.zUB {
			t.zUB = n.Bound
			t.ub = n.Opt
			t.hasUB = true
		}
		t.log.NodesClosed++
		return
	}
	heap.Push(&t.queue, n)
}

// columnGeneration repeatedly solves the restricted master and calls
// Pricing until no negative-reduced-cost route remains, adding every found
// route as a new Omega column (bcp.cpp's CGSolver::Solve loop). At the
// root, it also separates subset-row cuts once pricing is exhausted.
func (t *Tree) columnGeneration(n *Node) cgResult {
	for {
		if t.timedOut() {
			return cgResult{timeLimit: true}
		}

		lpStart := time.Now()
		status, valuation, duals, objective := t.SPF.Solve()
		t.log.LPTime += time.Since(lpStart)
		if status != simplex.StatusOptimal {
			return cgResult{}
		}

		pp := t.SPF.InterpretDuals(duals)
		priceStart := time.Now()
		routes, _ := t.Pricing(pp, n.Index, t.deadline.Sub(time.Now()))
		t.log.PricingTime += time.Since(priceStart)

		added := false
		for _, r := range routes {
			if len(r.Path) == 0 {
				continue
			}
			t.SPF.AddRoute(spf.Route{Path: r.Path, Duration: r.Duration})
			added = true
		}
		if added {
			continue
		}

		if n.Index == 0 {
			cutStart := time.Now()
			cutAdded := t.separateCutsLoop()
			t.log.CutTime += time.Since(cutStart)
			if cutAdded {
				continue
			}
		}

		return cgResult{feasible: true, objective: objective, valuation: valuation}
	}
}

// separateCutsLoop adds the most-violated subset-row cut, re-solving and
// repeating, until no cut exceeds the violation threshold or CutLimit is
// reached (bcp.cpp's BCP::SeparateCuts, folded into the caller's loop since
// the master must be re-solved after every cut addition anyway).
func (t *Tree) separateCutsLoop() bool {
	addedAny := false
	for len(t.SPF.Cuts) < t.CutLimit {
		status, valuation, _, _ := t.SPF.Solve()
		if status != simplex.StatusOptimal {
			break
		}
		cut, violation := findMostViolatedCut(t.SPF.N, valuation, t.SPF.Omega)
		if violation <= 0.1 {
			break
		}
		t.SPF.AddCut(cut)
		t.log.CutCount++
		addedAny = true
	}
	return addedAny
}

// findMostViolatedCut brute-force enumerates every customer triple
// 1<=i<j<k<=n-2 and returns the one with the largest violation of
// sum_{routes covering >=2 of i,j,k} value - 1 (bcp.cpp's
// BCP::SeparateCuts). Ascending iteration order makes the first
// strictly-greater candidate the lexicographically-first tie-break.
func findMostViolatedCut(n int, valuation map[int]float64, omega []spf.Route) (spf.SubsetRowCut, float64) {
	covers := make([]map[int]bool, len(omega))
	for j, r := range omega {
		set := make(map[int]bool, len(r.Path))
		for _, v := range r.Path {
			set[v] = true
		}
		covers[j] = set
	}

	var best spf.SubsetRowCut
	bestViolation := 0.0
	for i := 1; i <= n-2; i++ {
		for j := i + 1; j <= n-2; j++ {
			for k := j + 1; k <= n-2; k++ {
				sum := 0.0
				for col, val := range valuation {
					hits := 0
					if covers[col][i] {
						hits++
					}
					if covers[col][j] {
						hits++
					}
					if covers[col][k] {
						hits++
					}
					if hits >= 2 {
						sum += val
					}
				}
				violation := sum - 1
				if violation > bestViolation {
					bestViolation = violation
					best = spf.SubsetRowCut{Vertices: [3]int{i, j, k}}
				}
			}
		}
	}
	return best, bestViolation
}

// isInteger reports whether every value in valuation is within eps of 0 or
// of 1 (set-partitioning columns are never fractional below 1 at an LP optimum
// unless the basis itself is fractional).
func isInteger(valuation map[int]float64) bool {
	for _, v := range valuation {
		if v < 1-eps && v > eps {
			return false
		}
	}
	return true
}

// estimateBound solves the restricted master under forbidden without
// pricing, the relaxation strong branching uses to score a candidate child
// (bcp.cpp's BCP::EstimateBound).
func (t *Tree) estimateBound(forbidden []vrpinstance.Arc) float64 {
	saved := t.SPF.ForbiddenArcs
	t.SPF.SetForbiddenArcs(forbidden)
	status, _, _, objective := t.SPF.Solve()
	t.SPF.SetForbiddenArcs(saved)
	if status != simplex.StatusOptimal {
		return math.Inf(1)
	}
	return objective
}

type fractionalArc struct {
	tail, head int
	value      float64
}

// branchNode performs strong branching on n's fractional LP solution: it
// builds the internal arc-flow values (excluding the two depot-adjacent
// positions), scores the K arcs nearest 0.5 by estimating both children's
// bounds, and recurses into the two children of the best-min(left,right)
// candidate (bcp.cpp's BCP::BranchNode).
func (t *Tree) branchNode(n *Node) {
	branchStart := time.Now()
	defer func() { t.log.BranchingTime += time.Since(branchStart) }()

	flow := make(map[[2]int]float64)
	for j, val := range n.Opt {
		r := t.SPF.Omega[j]
		size := len(r.Path)
		for k := 1; k <= size-3; k++ {
			a := [2]int{r.Path[k], r.Path[k+1]}
			flow[a] += val
		}
	}

	candidates := make([]fractionalArc, 0, len(flow))
	for a, v := range flow {
		if v > eps && v < 1-eps {
			candidates = append(candidates, fractionalArc{a[0], a[1], v})
		}
	}
	if len(candidates) == 0 {
		t.log.NodesClosed++
		return
	}
	sort.Slice(candidates, func(i, j int) bool {
		return math.Abs(candidates[i].value-0.5) < math.Abs(candidates[j].value-0.5)
	})
	const K = 10
	if len(candidates) > K {
		candidates = candidates[:K]
	}

	type pair struct {
		leftArcs, rightArcs   []vrpinstance.Arc
		leftBound, rightBound float64
	}
	var best pair
	bestScore := math.Inf(-1)
	for _, c := range candidates {
		leftArcs := append(append([]vrpinstance.Arc(nil), n.ForbiddenArcs...), vrpinstance.Arc{Tail: c.tail, Head: c.head})

		rightArcs := append([]vrpinstance.Arc(nil), n.ForbiddenArcs...)
		for _, w := range t.D.Successors(c.tail) {
			if w != c.head {
				rightArcs = append(rightArcs, vrpinstance.Arc{Tail: c.tail, Head: w})
			}
		}
		for _, u := range t.D.Predecessors(c.head) {
			if u != c.tail {
				rightArcs = append(rightArcs, vrpinstance.Arc{Tail: u, Head: c.head})
			}
		}

		lb := t.estimateBound(leftArcs)
		rb := t.estimateBound(rightArcs)
		score := math.Min(lb, rb)
		if score > bestScore {
			bestScore = score
			best = pair{leftArcs, rightArcs, lb, rb}
		}
	}

	if math.IsInf(best.leftBound, 1) && math.IsInf(best.rightBound, 1) {
		t.log.NodesClosed++
		return
	}

	t.log.NodesClosed++
	if !math.IsInf(best.leftBound, 1) {
		left := &Node{Index: t.nodeSeq, Bound: best.leftBound, ForbiddenArcs: best.leftArcs}
		t.nodeSeq++
		t.processNode(left)
	}
	if !math.IsInf(best.rightBound, 1) {
		right := &Node{Index: t.nodeSeq, Bound: best.rightBound, ForbiddenArcs: best.rightArcs}
		t.nodeSeq++
		t.processNode(right)
	}
}

// freezeHeuristic dives for an early incumbent over the root's current
// columns: it repeatedly fixes the largest-valued fractional variable to 1
// by excluding every column that shares a customer vertex with it, re-solving until
// an integer vertex is reached or the restricted master goes infeasible
// (a rounding-dive heuristic in the spirit of bcp.cpp's
// BCP::FreezeHeuristic, adapted to this port's from-scratch master rather
// than mutating a live MIP solver, since no MIP solver exists in the
// corpus — see DESIGN.md).
func (t *Tree) freezeHeuristic() {
	savedForbidden := append([]vrpinstance.Arc(nil), t.SPF.ForbiddenArcs...)
	defer t.SPF.SetForbiddenArcs(savedForbidden)

	const maxSteps = 64
	for step := 0; step < maxSteps; step++ {
		status, valuation, _, objective := t.SPF.Solve()
		if status != simplex.StatusOptimal {
			return
		}
		if isInteger(valuation) {
			if !t.hasUB || objective < t.zUB {
				t.zUB = objective
				t.ub = valuation
				t.hasUB = true
			}
			return
		}

		fixJ, fixVal := -1, -1.0
		for j, v := range valuation {
			if v < 1-eps && v > fixVal {
				fixJ, fixVal = j, v
			}
		}
		if fixJ < 0 {
			return
		}
		depot, lastDepot := 0, t.SPF.N-1
		fixedVertices := make(map[int]bool)
		for _, v := range t.SPF.Omega[fixJ].Path {
			if v != depot && v != lastDepot {
				fixedVertices[v] = true
			}
		}
		var conflicting []int
		for j, r := range t.SPF.Omega {
			if j == fixJ {
				continue
			}
			for _, v := range r.Path {
				if fixedVertices[v] {
					conflicting = append(conflicting, j)
					break
				}
			}
		}
		t.SPF.ExcludeColumns(conflicting)
	}
}
