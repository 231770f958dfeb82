package bidirectional

import (
	"math"
	"strconv"
	"time"

	"github.com/katalvlaran/tdbcp/labeling"
	"github.com/katalvlaran/tdbcp/vrpinstance"
)

// Status reports why a Driver.Run invocation stopped.
type Status int

const (
	StatusRunning Status = iota
	StatusFinished
	StatusSolutionLimitReached
	StatusTimeLimitReached
)

func (s Status) String() string {
	switch s {
	case StatusFinished:
		return "Finished"
	case StatusSolutionLimitReached:
		return "SolutionLimitReached"
	case StatusTimeLimitReached:
		return "TimeLimitReached"
	default:
		return "Running"
	}
}

// MarshalJSON renders Status as its String() name, the BLBStatus wire
// format spec.md §6 names.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// RunLog is the bidirectional counterpart of labeling.RunLog: per-direction
// logs plus the merge bookkeeping spec.md §7's execution-log contract names.
type RunLog struct {
	Status      Status
	ForwardLog  labeling.RunLog
	BackwardLog labeling.RunLog
	MergeTime   time.Duration
	Duration    time.Duration
}

// Driver runs the bidirectional labeling algorithm: a forward
// labeling.Engine over the instance and a backward one over its time
// reversal, merging their processed labels as they're produced (spec.md
// §5). Mirrors the teacher's dedicated-engine idiom, same as labeling.Engine
// itself: every piece of run-to-run mutable state is a field, not a closure.
type Driver struct {
	vrp *vrpinstance.Instance
	rev *vrpinstance.Instance
	fwd *labeling.Engine
	bwd *labeling.Engine
	pp  vrpinstance.PricingProblem
	pool *solutionPool

	// Configuration (teacher-default tunables, spec.md §5).
	SolutionLimit int
	TimeLimit     time.Duration
	ClosingState  bool // true: last-arc merge. false: iterative merge.
	MergeStart    int
	Symmetric     bool

	Partial                 bool
	RelaxElementaryCheck    bool
	RelaxCostCheck          bool
	LimitedExtension        bool
	LazyExtension           bool
	UnreachableStrengthened bool
	SortByCost              bool
	Correcting              bool
}

// NewDriver returns a Driver over vrp with the teacher-default tunables: the
// forward engine explores with cross disabled and the backward one with
// cross enabled, each capped at a small per-round process limit so the two
// directions interleave (spec.md §5).
func NewDriver(vrp *vrpinstance.Instance) *Driver {
	rev := vrpinstance.ReverseInstance(vrp)
	d := &Driver{
		vrp:                     vrp,
		rev:                     rev,
		fwd:                     labeling.NewEngine(vrp),
		bwd:                     labeling.NewEngine(rev),
		pool:                    newSolutionPool(vrp.N()),
		SolutionLimit:           math.MaxInt32,
		TimeLimit:               2 * time.Hour,
		ClosingState:            true,
		Partial:                 true,
		LimitedExtension:        true,
		LazyExtension:           true,
		UnreachableStrengthened: true,
		SortByCost:              true,
	}
	d.fwd.ProcessLimit = 10
	d.bwd.ProcessLimit = 10
	d.fwd.Cross = false
	d.bwd.Cross = true
	return d
}

// reversePricingProblem mirrors the original's reverse_pricing_problem: only
// the forbidden-arc set is direction-dependent, so it alone is reversed.
func reversePricingProblem(pp vrpinstance.PricingProblem) vrpinstance.PricingProblem {
	rpp := pp
	rpp.Forbidden = make([]vrpinstance.Arc, len(pp.Forbidden))
	for i, a := range pp.Forbidden {
		rpp.Forbidden[i] = vrpinstance.Arc{Tail: a.Head, Head: a.Tail}
	}
	return rpp
}

func (d *Driver) syncConfig() {
	for _, e := range [2]*labeling.Engine{d.fwd, d.bwd} {
		e.Partial = d.Partial
		e.RelaxElementaryCheck = d.RelaxElementaryCheck
		e.RelaxCostCheck = d.RelaxCostCheck
		e.LimitedExtension = d.LimitedExtension
		e.LazyExtension = d.LazyExtension
		e.SortByCost = d.SortByCost
		e.UnreachableStrengthened = d.UnreachableStrengthened
		e.Correcting = d.Correcting
	}
}

// Run searches for negative reduced-cost routes under pp and returns every
// distinct one found (deduplicated by visited-vertex set, keeping the
// cheapest), per spec.md §5.
func (d *Driver) Run(pp vrpinstance.PricingProblem) ([]Route, *RunLog) {
	d.pp = pp
	d.pool = newSolutionPool(d.vrp.N())
	d.syncConfig()

	d.fwd.SetProblem(pp)
	d.bwd.SetProblem(reversePricingProblem(pp))

	T := d.vrp.Horizon.Right
	tm0 := T
	if d.Symmetric {
		tm0 = T / 2
	}
	d.fwd.TM = tm0
	d.bwd.TM = tm0

	log := &RunLog{}
	start := time.Now()
	var mergeElapsed time.Duration

	q := [2]*labeling.LabelQueue{labeling.NewLabelQueue(), labeling.NewLabelQueue()}
	q[0].Enqueue(d.fwd.Init(), 0, 0)
	q[1].Enqueue(d.bwd.Init(), 0, 0)

	engines := [2]*labeling.Engine{d.fwd, d.bwd}
	logs := [2]*labeling.RunLog{&log.ForwardLog, &log.BackwardLog}

	stopped := false
	processedAny := true
	for processedAny && !stopped {
		processedAny = false
		for dirI := 0; dirI < 2; dirI++ {
			dir, od := dirI, 1-dirI
			if q[dir].Empty() {
				continue
			}
			if time.Since(start) >= d.TimeLimit {
				log.Status = StatusTimeLimitReached
				stopped = true
				break
			}
			if d.pool.len() >= d.SolutionLimit {
				log.Status = StatusSolutionLimitReached
				stopped = true
				break
			}
			engines[dir].TimeLimit = d.TimeLimit - time.Since(start)
			processed, rl := engines[dir].Run(q[dir])
			accumulateLog(logs[dir], rl)

			if !d.ClosingState && logs[0].ProcessedCount >= d.MergeStart {
				mergeStart := time.Now()
				for _, idx := range processed {
					d.iterativeMerge(dir, idx)
				}
				mergeElapsed += time.Since(mergeStart)
			}

			if dir == 0 {
				for _, idx := range processed {
					l := engines[0].Arena.At(idx)
					if l.V == d.vrp.Dest && epsilonSmaller(l.MinCost, 0) {
						d.pool.add(engines[0].Arena.Path(idx), l.Duration.MinImage())
					}
				}
			}

			if q[dir].Empty() {
				engines[dir].TM = T - engines[od].TM
			} else {
				engines[od].TM = math.Min(engines[od].TM, math.Max(T-engines[dir].TM, T-q[dir].Top().Makespan))
			}

			processedAny = processedAny || len(processed) > 0
		}
	}

	if !stopped && d.pool.len() < d.SolutionLimit && time.Since(start) < d.TimeLimit {
		mergeStart := time.Now()
		d.lastArcMerge(q[0])
		mergeElapsed += time.Since(mergeStart)
	}

	if d.pool.len() >= d.SolutionLimit {
		log.Status = StatusSolutionLimitReached
	} else if log.Status == StatusRunning {
		log.Status = StatusFinished
	}
	log.MergeTime = mergeElapsed
	log.Duration = time.Since(start)

	routes := d.pool.routes()
	for i, r := range routes {
		_, dur := d.vrp.BestDurationRoute(r.Path)
		routes[i].Duration = dur
	}
	return routes, log
}

func accumulateLog(dst *labeling.RunLog, src *labeling.RunLog) {
	dst.Status = src.Status
	dst.ExtendedCount += src.ExtendedCount
	dst.DominatedCount += src.DominatedCount
	dst.CorrectedCount += src.CorrectedCount
	dst.ProcessedCount += src.ProcessedCount
	dst.EnumeratedCount += src.EnumeratedCount
	dst.Duration += src.Duration
}

// iterativeMerge merges a just-processed label from direction dir against
// every compatible label already processed in the opposite direction
// (spec.md §5, opening state). merge() always wants (forward label,
// backward label) in that order, since path reconstruction walks the
// forward label's own ancestry and the backward label's ancestry
// separately — so when dir==1 (l itself is the backward label), the roles
// passed to merge are swapped accordingly.
func (d *Driver) iterativeMerge(dir int, lIdx int) {
	self, opposite := d.fwd, d.bwd
	if dir == 1 {
		self, opposite = d.bwd, d.fwd
	}
	l := self.Arena.At(lIdx)
	lParent := self.ParentLabel(lIdx)

	for _, lvl := range opposite.U[l.V] {
		if d.pool.len() >= d.SolutionLimit {
			return
		}
		if epsilonBigger(lvl.Floor+l.Q-d.vrp.Demand[l.V], d.vrp.Capacity) {
			break
		}
		for _, mIdx := range lvl.Labels {
			if d.pool.len() >= d.SolutionLimit {
				return
			}
			m := opposite.Arena.At(mIdx)
			if epsilonBiggerEq(mergeBound(d.pp.Profit, &lParent, l, m), 0) {
				break
			}
			if dir == 0 {
				d.merge(self.Arena.Path(lIdx), &lParent, l, m)
			} else {
				mParent := opposite.ParentLabel(mIdx)
				d.merge(opposite.Arena.Path(mIdx), &mParent, m, l)
			}
		}
	}
}

// lastArcMerge drains the forward queue's remaining labels, merging each
// against the backward dominance structure (spec.md §5, closing state).
// For a pending extension request ll (parent l, target vertex ll.V), it
// looks for backward labels m sitting at l.V whose own backward-parent is
// at ll.V: such an m already encodes the arc (l.V, ll.V) plus everything
// from ll.V onward to the destination, so l and m can be merged directly
// at the shared vertex l.V without ever materializing the pending
// extension as a real label.
func (d *Driver) lastArcMerge(qf *labeling.LabelQueue) {
	for !qf.Empty() {
		if d.pool.len() >= d.SolutionLimit {
			return
		}
		ll := qf.Dequeue()
		if ll.Parent == -1 {
			continue
		}
		l := d.fwd.Arena.At(ll.Parent)
		lParent := d.fwd.ParentLabel(ll.Parent)
		lPath := d.fwd.Arena.Path(ll.Parent)

		for _, entry := range d.bwd.U[l.V] {
			if epsilonBigger(entry.Floor+l.Q-d.vrp.Demand[l.V], d.vrp.Capacity) {
				break
			}
			if d.pool.len() >= d.SolutionLimit {
				break
			}
			for _, mIdx := range entry.Labels {
				if d.pool.len() >= d.SolutionLimit {
					break
				}
				m := d.bwd.Arena.At(mIdx)
				if m.Parent == -1 || d.bwd.Arena.At(m.Parent).V != ll.V {
					continue
				}
				if epsilonBiggerEq(mergeBound(d.pp.Profit, &lParent, l, m), 0) {
					break
				}
				d.merge(lPath, &lParent, l, m)
			}
		}
	}
}
