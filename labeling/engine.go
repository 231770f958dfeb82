package labeling

import (
	"math"
	"strconv"
	"time"

	"github.com/katalvlaran/tdbcp/label"
	"github.com/katalvlaran/tdbcp/pwl"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// Status reports why a Run invocation stopped.
type Status int

const (
	StatusRunning Status = iota
	StatusFinished
	StatusProcessLimitReached
	StatusTimeLimitReached
)

func (s Status) String() string {
	switch s {
	case StatusFinished:
		return "Finished"
	case StatusProcessLimitReached:
		return "ProcessLimitReached"
	case StatusTimeLimitReached:
		return "TimeLimitReached"
	default:
		return "Running"
	}
}

// MarshalJSON renders Status as its String() name, the MLBStatus wire
// format spec.md §6 names.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// RunLog carries the per-run counters spec.md §7's execution-log contract
// names; solverio.MLBExecutionLog embeds one of these per labeling call.
type RunLog struct {
	Status          Status
	ExtendedCount   int
	DominatedCount  int
	CorrectedCount  int
	ProcessedCount  int
	EnumeratedCount int
	Duration        time.Duration
}

// Engine runs the monodirectional labeling algorithm over a single VRP
// instance and pricing problem. It mirrors the teacher's dedicated-engine
// idiom (tsp.bbEngine, dijkstra.runner): every piece of mutable search
// state — the dominance structure, the label arena, the active pricing
// problem — lives as a field, preallocated once and reset via Clean between
// pricing calls instead of being rebuilt from scratch.
type Engine struct {
	vrp *vrpinstance.Instance
	pp  vrpinstance.PricingProblem

	Arena *label.Arena
	U     [][]bucketEntry // indexed by vertex.

	ProcessedCount int

	// Run-loop configuration (spec.md §4.2's tunables; defaults below
	// mirror the original constructor's field initialization order).
	ProcessLimit            int
	TimeLimit               time.Duration
	TM                      float64
	Cross                   bool
	Partial                 bool
	LimitedExtension        bool
	LazyExtension           bool
	UnreachableStrengthened bool
	SortByCost              bool
	RelaxElementaryCheck    bool
	RelaxCostCheck          bool
	Correcting              bool
}

// NewEngine returns an Engine over vrp with the teacher-default tunables:
// cross, partial, limited/lazy extension, strengthened unreachability, and
// cost sorting all on; elementarity/cost relaxation and label correction
// all off.
func NewEngine(vrp *vrpinstance.Instance) *Engine {
	e := &Engine{
		vrp:                     vrp,
		Arena:                   label.NewArena(256),
		ProcessLimit:            math.MaxInt32,
		TimeLimit:               2 * time.Hour,
		TM:                      vrp.Horizon.Right,
		Cross:                   true,
		Partial:                 true,
		LimitedExtension:        true,
		LazyExtension:           true,
		UnreachableStrengthened: true,
		SortByCost:              true,
	}
	e.Clean()
	return e
}

// SetProblem restores any arcs the previous pricing problem forbade, then
// removes the arcs the new pricing problem forbids, and resets the
// dominance structure. Restore-then-remove keeps Instance.D consistent
// across repeated calls (spec.md §5's forbidden-arc invariant).
func (e *Engine) SetProblem(pp vrpinstance.PricingProblem) {
	for _, a := range e.pp.Forbidden {
		e.vrp.D.AddArc(a.Tail, a.Head)
	}
	e.pp = pp
	for _, a := range pp.Forbidden {
		e.vrp.D.RemoveArc(a.Tail, a.Head)
	}
	e.Clean()
}

// Clean bulk-frees the label arena and resets the dominance structure and
// processed-label counter.
func (e *Engine) Clean() {
	e.ProcessedCount = 0
	e.Arena.Reset()
	e.U = make([][]bucketEntry, e.vrp.N())
}

// noLabel is the virtual sentinel parent of the start depot's root label:
// "no vertex visited yet." It is never itself an arena entry — Parent==-1
// identifies it wherever a *Label is expected, so Path() (an upward walk
// that stops at Parent==-1) never reports it as a visited vertex.
func (e *Engine) noLabel() label.Label {
	n := e.vrp.N()
	l := label.Label{
		Parent:     -1,
		V:          e.vrp.O,
		Duration:   e.vrp.Tau[e.vrp.O][e.vrp.O],
		CutVisited: make([]int, len(e.pp.Cuts)),
		S:          label.NewVertexSet(n),
		U:          label.NewVertexSet(n),
	}
	if !l.Duration.Empty() {
		l.RW = l.Duration.Domain()
	}
	return l
}

// Init returns a lazy extension request for the start depot, the algorithm's
// entry point (spec.md §4.2).
func (e *Engine) Init() label.LazyLabel {
	return label.LazyLabel{Parent: -1, V: e.vrp.O, Makespan: e.vrp.TW[e.vrp.O].Left}
}

// ParentLabel returns the label at idx's parent, or the virtual sentinel
// (noLabel) if idx's label is the origin depot's root. Exported for the
// bidirectional merge, which needs a processed label's parent's cut-visit
// bookkeeping without risking an Arena.At(-1) dereference.
func (e *Engine) ParentLabel(idx int) label.Label {
	l := e.Arena.At(idx)
	if l.Parent == -1 {
		return e.noLabel()
	}
	return *e.Arena.At(l.Parent)
}

// ExtensionStep materializes the label reached by extending ll's parent
// along the arc to ll.V, applying the depot-triangle-inequality cut and the
// duration-composition formula exactly per spec.md §4.2. Returns ok=false
// if the extension is infeasible.
func (e *Engine) ExtensionStep(ll label.LazyLabel) (idx int, ok bool) {
	var parentVal label.Label
	if ll.Parent == -1 {
		parentVal = e.noLabel()
	} else {
		parentVal = *e.Arena.At(ll.Parent)
	}
	parent := &parentVal
	if e.Correcting && parent.Duration.Empty() {
		return -1, false
	}
	u, v := parent.V, ll.V
	if e.Correcting && e.vrp.ArrivalTime(u, v, parent.RW.Left) >= vrpinstance.Inf {
		return -1, false
	}

	if epsilonSmaller(parent.RW.Right, e.vrp.TW[v].Left) &&
		e.vrp.D.HasArc(u, e.vrp.Dest) && e.vrp.D.HasArc(e.vrp.O, v) {
		tauU0V := e.vrp.TravelTime(u, e.vrp.Dest, parent.RW.Right) + e.vrp.PreTravelTime(e.vrp.O, v, e.vrp.TW[v].Left)
		if epsilonSmaller(tauU0V, e.vrp.TW[v].Left-parent.RW.Right) {
			return -1, false
		}
	}

	var newLbl label.Label
	newLbl.Parent = ll.Parent
	newLbl.V = v
	newLbl.Q = parent.Q + e.vrp.Demand[v]
	if v < len(e.pp.Profit) {
		newLbl.P = parent.P + e.pp.Profit[v]
	} else {
		newLbl.P = parent.P
	}
	newLbl.Length = parent.Length + 1

	depImg := e.vrp.Dep[u][v].Image()
	if epsilonSmaller(parent.RW.Right, depImg.Left) {
		val := parent.Duration.At(parent.RW.Right) + e.vrp.TW[v].Left - parent.RW.Right
		newLbl.Duration = pwl.Constant(val, pwl.Interval{Left: e.vrp.TW[v].Left, Right: e.vrp.TW[v].Left})
	} else {
		newLbl.Duration = parent.Duration.Add(e.vrp.Tau[u][v]).Compose(e.vrp.Dep[u][v])
	}
	if e.LimitedExtension && !e.Cross {
		newLbl.Duration = newLbl.Duration.RestrictDomain(pwl.Interval{Left: 0, Right: e.TM})
	}
	if newLbl.Duration.Empty() {
		return -1, false
	}
	newLbl.RW = newLbl.Duration.Domain()
	newLbl.S = parent.S.With(v)

	var unreachable label.VertexSet
	if e.UnreachableStrengthened {
		unreachable = e.vrp.Unreachable(v, newLbl.RW.Left, newLbl.Q)
	} else {
		unreachable = e.vrp.WeakUnreachable(v, newLbl.RW.Left)
	}
	newLbl.U = newLbl.S.Union(unreachable)

	newLbl.CutCost = parent.CutCost
	newLbl.CutVisited = append([]int(nil), parent.CutVisited...)
	for i, cut := range e.pp.Cuts {
		if cut.Test(v) {
			newLbl.CutVisited[i]++
			if newLbl.CutVisited[i] == 2 {
				newLbl.CutCost += e.pp.Sigma[i]
			}
		}
		if newLbl.CutVisited[i] == 1 {
			newLbl.CutNZ = append(newLbl.CutNZ, i)
		}
	}
	newLbl.MinCost = newLbl.Duration.MinImage() - newLbl.P - newLbl.CutCost

	return e.Arena.New(newLbl), true
}

// DominationStep checks whether l is dominated by any processed label at the
// same vertex with no greater demand, shrinking l's surviving duration
// pieces in place when Partial is enabled (spec.md §4.3).
func (e *Engine) DominationStep(idx int) bool {
	l := e.Arena.At(idx)
	if l.V == e.vrp.Dest {
		return !epsilonSmaller(l.MinCost, 0)
	}

	delta := l.Duration
	lBeta := beta(l, e.Partial)

	for _, lvl := range e.U[l.V] {
		if epsilonBigger(lvl.Floor, l.Q) {
			break
		}
		for _, mIdx := range lvl.Labels {
			m := e.Arena.At(mIdx)
			if e.SortByCost && epsilonBigger(alpha(m, e.Partial), lBeta) {
				break
			}
			if !e.RelaxElementaryCheck && !m.U.IsSubsetOf(l.U) {
				continue
			}
			if !e.RelaxCostCheck {
				theta := l.P + l.CutCost - m.P - m.CutCost
				for _, i := range m.CutNZ {
					if l.CutVisited[i] != 1 {
						theta -= e.pp.Sigma[i]
					}
				}
				if e.Partial {
					if !pwl.DominatePieces(&delta, m.Duration, theta) {
						continue
					}
				} else if !pwl.IsAlwaysDominated(delta, m.Duration, theta) {
					continue
				}
			}
			return true
		}
	}

	l.Duration = delta
	l.RW = delta.Domain()
	l.MinCost = delta.MinImage() - l.P - l.CutCost
	return false
}

// CorrectionStep removes every processed label m's dominated duration
// pieces using the newly processed label l, deleting labels that become
// fully dominated. Returns the count removed (spec.md §4.3).
func (e *Engine) CorrectionStep(idx int) int {
	l := e.Arena.At(idx)
	removed := 0
	levels := e.U[l.V]
	for li := len(levels) - 1; li >= 0; li-- {
		lvl := &levels[li]
		if epsilonSmaller(lvl.Floor, l.Q) {
			break
		}
		for j := 0; j < len(lvl.Labels); j++ {
			mIdx := lvl.Labels[j]
			m := e.Arena.At(mIdx)
			if !e.RelaxElementaryCheck && !l.U.IsSubsetOf(m.U) {
				continue
			}
			theta := m.P + m.CutCost - l.P - l.CutCost
			for _, i := range l.CutNZ {
				if m.CutVisited[i] != 1 {
					theta -= e.pp.Sigma[i]
				}
			}
			delta := m.Duration
			var fullyDominated bool
			if e.Partial {
				empty := pwl.DominatePieces(&delta, l.Duration, theta)
				m.Duration = delta
				if !delta.Empty() {
					m.RW = delta.Domain()
					m.MinCost = delta.MinImage() - m.P - m.CutCost
				}
				fullyDominated = empty
			} else {
				fullyDominated = pwl.IsAlwaysDominated(delta, l.Duration, theta)
			}
			if fullyDominated {
				lvl.Labels = append(lvl.Labels[:j], lvl.Labels[j+1:]...)
				j--
				removed++
			}
		}
	}
	return removed
}

// ProcessStep inserts l into the dominance structure at its vertex and
// demand-floor level, sorted ascending by alpha when SortByCost is enabled.
func (e *Engine) ProcessStep(idx int) {
	l := e.Arena.At(idx)
	lvl := levelFor(&e.U[l.V], math.Floor(l.Q))
	if !e.SortByCost {
		lvl.Labels = append(lvl.Labels, idx)
		return
	}
	a := alpha(l, e.Partial)
	i := 0
	for i < len(lvl.Labels) {
		if alpha(e.Arena.At(lvl.Labels[i]), e.Partial) >= a {
			break
		}
		i++
	}
	lvl.Labels = append(lvl.Labels, 0)
	copy(lvl.Labels[i+1:], lvl.Labels[i:])
	lvl.Labels[i] = idx
}

// EnumerationStep returns the feasible lazy extensions of l to every
// out-neighbor not already in its elementarity/unreachable set, respecting
// capacity and the rw/arrival-domain feasibility window (spec.md §4.4).
func (e *Engine) EnumerationStep(idx int) []label.LazyLabel {
	l := e.Arena.At(idx)
	if l.V == e.vrp.Dest {
		return nil
	}
	var out []label.LazyLabel
	for _, v := range e.vrp.D.Successors(l.V) {
		if l.U.Test(v) {
			continue
		}
		if epsilonBigger(l.Q+e.vrp.Demand[v], e.vrp.Capacity) {
			continue
		}
		arrDom := e.vrp.Arr[l.V][v].Domain()
		if epsilonBigger(l.RW.Left, arrDom.Right) {
			continue
		}
		makespan := e.vrp.Arr[l.V][v].At(max64(l.RW.Left, arrDom.Left))
		out = append(out, label.LazyLabel{Parent: idx, V: v, Makespan: makespan})
	}
	return out
}

// Run drains q, extending, dominating, processing, and re-enumerating
// labels until the queue empties or a process/time limit is hit (spec.md
// §4.2). Returns the arena indices of every processed (surviving) label.
//
// The original's lazy_extension flag toggles whether a LazyLabel carries a
// pre-built Label or is extended on pop; this port always extends on pop
// (label.LazyLabel carries no cached extension), since the two are
// behaviorally equivalent and the lazy form only exists in the original as a
// memory/time trade-off.
func (e *Engine) Run(q *LabelQueue) ([]int, *RunLog) {
	log := &RunLog{}
	start := time.Now()
	var processed []int

	for !q.Empty() {
		if len(processed) >= e.ProcessLimit {
			log.Status = StatusProcessLimitReached
			break
		}
		if time.Since(start) >= e.TimeLimit {
			log.Status = StatusTimeLimitReached
			break
		}
		if !e.Cross && epsilonBigger(q.Top().Makespan, e.TM) {
			break
		}

		ll := q.Dequeue()
		idx, ok := e.ExtensionStep(ll)
		if !ok {
			continue
		}
		log.ExtendedCount++

		if e.DominationStep(idx) {
			log.DominatedCount++
			continue
		}

		if e.Correcting {
			log.CorrectedCount += e.CorrectionStep(idx)
		}

		l := e.Arena.At(idx)
		if !e.Cross && epsilonBigger(l.RW.Left, e.TM) {
			gp := e.ParentLabel(idx)
			q.Enqueue(label.LazyLabel{Parent: l.Parent, V: l.V, Makespan: l.RW.Left}, gp.Length, gp.Q)
			continue
		}

		e.ProcessStep(idx)
		log.ProcessedCount++
		e.ProcessedCount++
		processed = append(processed, idx)

		if !epsilonBigger(l.RW.Left, e.TM) {
			exts := e.EnumerationStep(idx)
			log.EnumeratedCount += len(exts)
			for _, ext := range exts {
				q.Enqueue(ext, l.Length, l.Q)
			}
		}
	}

	if q.Empty() && log.Status == StatusRunning {
		log.Status = StatusFinished
	}
	log.Duration = time.Since(start)
	return processed, log
}
