package vrpinstance

import "github.com/katalvlaran/tdbcp/pwl"

// ReverseInstance builds the time-reversed instance the bidirectional
// labeling driver runs its backward search on (spec.md §4.6):
//
//	o' := d,  d' := o
//	D' := reverse(D)
//	tw'(v) := [T-b(v), T-a(v)]
//	arr'_vu(t) := T - dep_uv(T-t)
//
// with an image-floor clamp on arr' near the left boundary: because
// dep_uv's inverse can undershoot once its domain is exhausted, any arr'
// value below the reversed function's attainable minimum is floored,
// matching the original implementation's boundary handling exactly.
func ReverseInstance(vrp *Instance) *Instance {
	n := vrp.N()
	T := vrp.Horizon.Right

	r := &Instance{
		O:        vrp.Dest,
		Dest:     vrp.O,
		Horizon:  vrp.Horizon,
		Capacity: vrp.Capacity,
		Demand:   append([]float64(nil), vrp.Demand...),
		Profit:   append([]float64(nil), vrp.Profit...),
		D:        vrp.D.Reverse(),
	}

	r.TW = make([]pwl.Interval, n)
	for _, v := range r.D.Vertices() {
		r.TW[v] = pwl.Interval{Left: T - vrp.TW[v].Right, Right: T - vrp.TW[v].Left}
	}

	r.Tau = newFuncMatrix(n)
	r.PreTau = newFuncMatrix(n)
	r.Arr = newFuncMatrix(n)
	r.Dep = newFuncMatrix(n)

	horizonID := pwl.Identity(pwl.Interval{Left: 0, Right: T})
	negateShift := horizonID.Scale(-1).Offset(T) // g(t) = T-t

	for _, u := range vrp.D.Vertices() {
		for _, v := range vrp.D.Successors(u) {
			composed := vrp.Dep[u][v].Compose(negateShift)
			arrRev := composed.Scale(-1).Offset(T)
			arrRev = clampImageFloor(arrRev, r.TW[v].Left)

			r.Arr[v][u] = arrRev
			r.Tau[v][u] = arrRev.Sub(pwl.Identity(arrRev.Domain()))
			dep, err := arrRev.Inverse()
			if err != nil {
				dep = pwl.Function{}
			}
			r.Dep[v][u] = dep
			r.PreTau[v][u] = pwl.Identity(dep.Domain()).Sub(dep)
		}
	}

	for _, u := range r.D.Vertices() {
		r.Tau[u][u] = pwl.Constant(0, r.TW[u])
		r.PreTau[u][u] = pwl.Constant(0, r.TW[u])
		r.Dep[u][u] = pwl.Identity(r.TW[u])
		r.Arr[u][u] = pwl.Identity(r.TW[u])
	}

	r.ComputeLDT()
	return r
}

// clampImageFloor extends f's domain down to left (if f's domain starts
// later than left) by prepending a constant piece at f's attainable minimum
// image value, so the reversed arrival function is always defined over the
// full reversed time window.
func clampImageFloor(f pwl.Function, left float64) pwl.Function {
	if f.Empty() {
		return f
	}
	dom := f.Domain()
	if !epsilonSmaller(left, dom.Left) {
		return f
	}
	floor := f.MinImage()
	prefix := pwl.Constant(floor, pwl.Interval{Left: left, Right: dom.Left})
	return pwl.Concat(prefix, f)
}

func newFuncMatrix(n int) [][]pwl.Function {
	m := make([][]pwl.Function, n)
	for i := range m {
		m[i] = make([]pwl.Function, n)
	}
	return m
}
