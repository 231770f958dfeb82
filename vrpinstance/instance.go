package vrpinstance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tdbcp/label"
	"github.com/katalvlaran/tdbcp/pwl"
)

// Inf stands in for the C++ original's INFTY sentinel: an arrival, travel,
// or duration value that makes a route infeasible.
const Inf = math.MaxFloat64 / 4

// Instance is a time-dependent VRP with two depots (origin and destination)
// per spec.md §3. All travel-time matrices are assumed already preprocessed
// (triangle-depot removal, time-window tightening) — see Validate.
type Instance struct {
	D        *Digraph
	O        int // origin depot.
	Dest     int // destination depot.
	Horizon  pwl.Interval
	TW       []pwl.Interval
	Capacity float64
	Demand   []float64
	Profit   []float64

	Tau    [][]pwl.Function // Tau[i][j](t) = travel time of arc (i,j) departing i at t.
	PreTau [][]pwl.Function // PreTau[i][j](t) = travel time of arc (i,j) arriving j at t.
	Arr    [][]pwl.Function // Arr[i][j](t) = arrival time at j departing i at t.
	Dep    [][]pwl.Function // Dep[i][j](t) = departure time from i arriving j at t.

	LDT [][]float64 // LDT[v][w] = latest time v can depart to reach w before w's deadline.
}

// N returns the vertex count.
func (in *Instance) N() int { return in.D.N() }

// TravelTime returns the travel time of arc (u,v) departing u at t0. Returns
// Inf if departure at t0 is infeasible.
func (in *Instance) TravelTime(u, v int, t0 float64) float64 {
	f := in.Tau[u][v]
	dom := f.Domain()
	if epsilonBigger(t0, dom.Right) {
		return Inf
	}
	if epsilonSmaller(t0, dom.Left) {
		return dom.Left + f.At(dom.Left) - t0
	}
	return f.At(t0)
}

// PreTravelTime returns the travel time of arc (u,v) arriving v at tf.
// Returns Inf if arrival at tf is infeasible.
func (in *Instance) PreTravelTime(u, v int, tf float64) float64 {
	f := in.PreTau[u][v]
	dom := f.Domain()
	if epsilonSmaller(tf, dom.Left) {
		return Inf
	}
	if epsilonBigger(tf, dom.Right) {
		return tf - dom.Right + f.At(dom.Right)
	}
	return f.At(tf)
}

// ArrivalTime returns the arrival time at v departing u at t0. Returns Inf
// if departure at t0 is infeasible.
func (in *Instance) ArrivalTime(u, v int, t0 float64) float64 {
	f := in.Arr[u][v]
	dom := f.Domain()
	if epsilonBigger(t0, dom.Right) {
		return Inf
	}
	if epsilonSmaller(t0, dom.Left) {
		return f.Image().Left
	}
	return f.At(t0)
}

// DepartureTime returns the departure time from u that arrives at v at tf.
// Returns Inf if arrival at tf is infeasible.
func (in *Instance) DepartureTime(u, v int, tf float64) float64 {
	f := in.Dep[u][v]
	dom := f.Domain()
	if epsilonSmaller(tf, dom.Left) {
		return Inf
	}
	if epsilonBigger(tf, dom.Right) {
		return f.Image().Right
	}
	return f.At(tf)
}

// ReadyTime returns the time the vehicle finishes traversing path p when
// departing at t0, or Inf if any leg's travel-time domain excludes the
// current time or the accumulated demand exceeds Capacity.
func (in *Instance) ReadyTime(p []int, t0 float64) float64 {
	load := in.Demand[in.O]
	t := t0
	for k := 0; k+1 < len(p); k++ {
		i, j := p[k], p[k+1]
		dom := in.Tau[i][j].Domain()
		if !dom.Includes(t) {
			return Inf
		}
		t += in.Tau[i][j].At(t)
		load += in.Demand[j]
	}
	if epsilonBigger(load, in.Capacity) {
		return Inf
	}
	return t
}

// BestDurationRoute composes the arrival functions along path p to find the
// departure time from p[0] that minimizes total duration. It returns the
// best departure time and the resulting (minimal) duration; duration is Inf
// if p is infeasible.
func (in *Instance) BestDurationRoute(p []int) (departure, duration float64) {
	if len(p) == 0 {
		return 0, Inf
	}
	delta := in.Arr[p[0]][p[0]]
	if delta.Empty() {
		return 0, Inf
	}
	for k := 0; k+1 < len(p); k++ {
		i, j := p[k], p[k+1]
		delta = in.Arr[i][j].Compose(delta)
		if delta.Empty() {
			return 0, Inf
		}
	}
	delta = delta.Sub(pwl.Identity(delta.Domain()))
	minDuration := delta.MinImage()
	for _, piece := range delta.Pieces {
		if piece.Image.Left <= minDuration+pwl.Eps {
			return piece.Domain.Left, minDuration
		}
		if piece.Image.Right <= minDuration+pwl.Eps {
			return piece.Domain.Right, minDuration
		}
	}
	return delta.Domain().Left, minDuration
}

// WeakUnreachable returns the vertices unreachable from v at time t0 based
// purely on time-window deadlines (the original's Unreachable): w is in the
// set whenever t0 exceeds the latest departure time from v that still
// reaches w before w's deadline.
func (in *Instance) WeakUnreachable(v int, t0 float64) label.VertexSet {
	u := label.NewVertexSet(in.N())
	for _, w := range in.D.Vertices() {
		if epsilonBigger(t0, in.LDT[v][w]) {
			u = u.With(w)
		}
	}
	return u
}

// Unreachable returns the capacity-augmented unreachable set: WeakUnreachable
// plus every vertex w whose demand would push load over Capacity.
func (in *Instance) Unreachable(v int, t0, load float64) label.VertexSet {
	u := in.WeakUnreachable(v, t0)
	for _, w := range in.D.Vertices() {
		if epsilonBigger(load+in.Demand[w], in.Capacity) {
			u = u.With(w)
		}
	}
	return u
}

// Validate checks the preprocessing invariants spec.md §3 assumes already
// hold: every arc's travel-time domain must lie within its tail's time
// window, and self-loop travel functions must be the identity/zero
// functions produced by preprocessing.
func (in *Instance) Validate() error {
	n := in.N()
	if len(in.TW) != n || len(in.Demand) != n {
		return fmt.Errorf("%w: time windows/demand length must equal vertex count", ErrMalformedInstance)
	}
	for _, u := range in.D.Vertices() {
		for _, v := range in.D.Successors(u) {
			dom := in.Tau[u][v].Domain()
			if !in.TW[u].Includes(dom.Left) || epsilonBigger(dom.Right, in.TW[u].Right) {
				return fmt.Errorf("%w: arc (%d,%d) travel domain escapes tail time window", ErrMalformedInstance, u, v)
			}
		}
	}
	return nil
}
