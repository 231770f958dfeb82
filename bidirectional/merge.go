package bidirectional

import (
	"github.com/katalvlaran/tdbcp/label"
	"github.com/katalvlaran/tdbcp/pwl"
)

const eps = 1e-9

func epsilonSmaller(a, b float64) bool  { return a < b-eps }
func epsilonBigger(a, b float64) bool   { return a > b+eps }
func epsilonBiggerEq(a, b float64) bool { return !epsilonSmaller(a, b) }

// mergeCutCost returns the cost a merged route inherits from the active
// cuts: a cut is violated by the merge whenever the forward label's parent
// and the backward label together visit its vertices twice. Using the
// parent's count (rather than l's own) avoids double-counting the shared
// meeting vertex, which both l and m individually count.
func mergeCutCost(sigma []float64, lParent, m *label.Label) float64 {
	cost := 0.0
	for i, s := range sigma {
		if i >= len(lParent.CutVisited) || i >= len(m.CutVisited) {
			continue
		}
		if lParent.CutVisited[i]+m.CutVisited[i] >= 2 {
			cost += s
		}
	}
	return cost
}

// mergeBound is the same formula used to decide whether IterativeMerge and
// LastArcMerge can stop scanning a bucket early: a coarse lower bound on the
// merged cost using l's own cut-cost delta instead of the full merge cut
// cost, cheap enough to evaluate for every (l,m) pair a bucket scan visits.
func mergeBound(profit []float64, lParent, l, m *label.Label) float64 {
	p := 0.0
	if l.V < len(profit) {
		p = profit[l.V]
	}
	return m.MinCost + l.MinCost + p + l.CutCost - lParent.CutCost
}

// merge attempts to splice forward label l and backward label m into a full
// route: they must meet at exactly one shared vertex (l.V == m.V, and no
// other vertex appears in both of their visited sets), per spec.md §5.
func (d *Driver) merge(lPath []int, lParent, l, m *label.Label) {
	T := d.vrp.Horizon.Right

	if epsilonBigger(l.RW.Left, T-m.RW.Left) {
		return
	}
	shared := l.S.Intersection(m.S)
	if !shared.IsSingleton(l.V) {
		return
	}

	var duration float64
	if epsilonBiggerEq(T-m.RW.Right, l.RW.Right) {
		duration = l.Duration.At(l.RW.Right) + m.Duration.At(m.RW.Right) + (T - m.RW.Right) - l.RW.Right
	} else {
		reflect := pwl.Identity(pwl.Interval{Left: 0, Right: T}).Scale(-1).Offset(T)
		lm := l.Duration.Add(m.Duration.Compose(reflect))
		if lm.Empty() {
			return
		}
		duration = lm.MinImage()
	}

	cutCost := mergeCutCost(d.pp.Sigma, lParent, m)
	profit := 0.0
	if l.V < len(d.pp.Profit) {
		profit = d.pp.Profit[l.V]
	}
	mergeCost := duration - l.P - m.P + profit - cutCost
	if epsilonBiggerEq(mergeCost, 0) {
		return
	}

	path := append([]int(nil), lPath...)
	for x := m.Parent; x != -1; {
		xl := d.bwd.Arena.At(x)
		path = append(path, xl.V)
		x = xl.Parent
	}

	d.pool.add(path, duration)
}
