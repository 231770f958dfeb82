package pwl

import (
	"errors"
	"fmt"
	"sort"
)

// Eps is the shared absolute tolerance used across all PWL comparisons.
// Any piece whose length drops below Eps during domination is discarded.
const Eps = 1e-9

// Sentinel errors for pwl operations. Not wrapped with fmt.Errorf where the
// sentinel alone is sufficient context.
var (
	// ErrEmptyFunction indicates an operation required a non-empty Function.
	ErrEmptyFunction = errors.New("pwl: function is empty")

	// ErrNotMonotone indicates Inverse was called on a non strictly-monotone Function.
	ErrNotMonotone = errors.New("pwl: function is not strictly monotone")

	// ErrDisjointDomains indicates two Functions share no overlapping domain.
	ErrDisjointDomains = errors.New("pwl: disjoint domains")
)

// Interval is a closed real interval [Left, Right]. An Interval with
// Left > Right represents the empty interval.
type Interval struct {
	Left, Right float64
}

// Empty reports whether iv is the empty interval (within Eps).
func (iv Interval) Empty() bool { return epsilonBigger(iv.Left, iv.Right) }

// Length returns Right-Left, or 0 for the empty interval.
func (iv Interval) Length() float64 {
	if iv.Empty() {
		return 0
	}
	return iv.Right - iv.Left
}

// Intersect returns the intersection of iv and other (possibly empty).
func (iv Interval) Intersect(other Interval) Interval {
	return Interval{Left: max64(iv.Left, other.Left), Right: min64(iv.Right, other.Right)}
}

// Includes reports whether t lies within [Left, Right] (within Eps).
func (iv Interval) Includes(t float64) bool {
	return epsilonSmallerEq(iv.Left, t) && epsilonSmallerEq(t, iv.Right)
}

// Piece is one linear segment of a Function: an affine map from Domain to
// Image, where Image holds the values at Domain.Left and Domain.Right (so
// Image.Left may exceed Image.Right; the segment is the graph of a line of
// slope (Image.Right-Image.Left)/(Domain.Right-Domain.Left)).
type Piece struct {
	Domain Interval
	Image  Interval
}

// slope returns the piece's slope. A degenerate (point) domain is treated as
// slope 0 by convention; callers must not rely on evaluating a point piece
// at any t other than its single domain value.
func (p Piece) slope() float64 {
	dl := p.Domain.Length()
	if dl <= Eps {
		return 0
	}
	return (p.Image.Right - p.Image.Left) / dl
}

// at evaluates the piece's affine map at t (t is assumed within p.Domain).
func (p Piece) at(t float64) float64 {
	if p.Domain.Length() <= Eps {
		return p.Image.Left
	}
	return p.Image.Left + p.slope()*(t-p.Domain.Left)
}

// Function is an ordered, contiguous sequence of Pieces: Pieces[i].Domain.Right
// == Pieces[i+1].Domain.Left for every i. An empty Function (len(Pieces)==0)
// represents the nowhere-defined function.
type Function struct {
	Pieces []Piece
}

// Empty reports whether f has no pieces (or all pieces are degenerate-empty).
func (f Function) Empty() bool {
	for _, p := range f.Pieces {
		if !p.Domain.Empty() {
			return false
		}
	}
	return true
}

// Domain returns the union of all piece domains, i.e. [Pieces[0].Domain.Left,
// Pieces[last].Domain.Right]. If f is empty it returns the empty interval
// [1,0].
func (f Function) Domain() Interval {
	if f.Empty() {
		return Interval{Left: 1, Right: 0}
	}
	return Interval{Left: f.Pieces[0].Domain.Left, Right: f.Pieces[len(f.Pieces)-1].Domain.Right}
}

// Image returns the union of all piece images as a bounding interval
// [min, max] over every breakpoint value (PWL pieces are monotone in isolation
// but the function need not be monotone overall, so we scan endpoints).
func (f Function) Image() Interval {
	if f.Empty() {
		return Interval{Left: 1, Right: 0}
	}
	lo, hi := f.Pieces[0].Image.Left, f.Pieces[0].Image.Left
	for _, p := range f.Pieces {
		lo = min64(lo, min64(p.Image.Left, p.Image.Right))
		hi = max64(hi, max64(p.Image.Left, p.Image.Right))
	}
	return Interval{Left: lo, Right: hi}
}

// MinImage returns the minimum value attained by f over its domain.
func (f Function) MinImage() float64 { return f.Image().Left }

// At evaluates f at t. t must lie within Domain(f) (within Eps); otherwise
// the nearest breakpoint value is returned, matching the clamp-to-image
// DepartureTime convention resolved in spec.md §9.
func (f Function) At(t float64) float64 {
	if f.Empty() {
		return 0
	}
	pieces := f.Pieces
	if epsilonSmaller(t, pieces[0].Domain.Left) {
		return pieces[0].Image.Left
	}
	if epsilonBigger(t, pieces[len(pieces)-1].Domain.Right) {
		return pieces[len(pieces)-1].Image.Right
	}
	idx := sort.Search(len(pieces), func(i int) bool { return epsilonBigger(pieces[i].Domain.Right, t) })
	if idx >= len(pieces) {
		idx = len(pieces) - 1
	}
	return pieces[idx].at(t)
}

// Identity returns the identity Function t↦t over iv.
func Identity(iv Interval) Function {
	if iv.Empty() {
		return Function{}
	}
	return Function{Pieces: []Piece{{Domain: iv, Image: iv}}}
}

// Constant returns the constant Function t↦v over iv.
func Constant(v float64, iv Interval) Function {
	if iv.Empty() {
		return Function{}
	}
	return Function{Pieces: []Piece{{Domain: iv, Image: Interval{Left: v, Right: v}}}}
}

// Concat joins f and g into a single Function, assuming dom(f).Right ==
// dom(g).Left (or f/g is empty, in which case the other is returned
// unchanged). Used to extend a Function's domain leftward with a prefix
// piece, e.g. an image-floor clamp.
func Concat(f, g Function) Function {
	if f.Empty() {
		return g
	}
	if g.Empty() {
		return f
	}
	out := make([]Piece, 0, len(f.Pieces)+len(g.Pieces))
	out = append(out, f.Pieces...)
	out = append(out, g.Pieces...)
	return Function{Pieces: out}
}

// RestrictDomain clips f to dom(f) ∩ iv, splitting boundary pieces as needed.
func (f Function) RestrictDomain(iv Interval) Function {
	var out []Piece
	for _, p := range f.Pieces {
		inter := p.Domain.Intersect(iv)
		if inter.Empty() {
			continue
		}
		out = append(out, Piece{Domain: inter, Image: Interval{Left: p.at(inter.Left), Right: p.at(inter.Right)}})
	}
	return Function{Pieces: out}
}

// breakpoints returns the sorted union of all domain endpoints of f and g
// intersected with [lo,hi].
func breakpoints(f, g Function, lo, hi float64) []float64 {
	set := map[float64]struct{}{lo: {}, hi: {}}
	for _, p := range f.Pieces {
		if p.Domain.Left >= lo && p.Domain.Left <= hi {
			set[p.Domain.Left] = struct{}{}
		}
		if p.Domain.Right >= lo && p.Domain.Right <= hi {
			set[p.Domain.Right] = struct{}{}
		}
	}
	for _, p := range g.Pieces {
		if p.Domain.Left >= lo && p.Domain.Left <= hi {
			set[p.Domain.Left] = struct{}{}
		}
		if p.Domain.Right >= lo && p.Domain.Right <= hi {
			set[p.Domain.Right] = struct{}{}
		}
	}
	out := make([]float64, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Float64s(out)
	return out
}

// Add returns f(t)+g(t) over dom(f) ∩ dom(g).
func (f Function) Add(g Function) Function {
	if f.Empty() || g.Empty() {
		return Function{}
	}
	dom := f.Domain().Intersect(g.Domain())
	if dom.Empty() {
		return Function{}
	}
	bps := breakpoints(f, g, dom.Left, dom.Right)
	var out []Piece
	for i := 0; i+1 < len(bps); i++ {
		l, r := bps[i], bps[i+1]
		if epsilonSmaller(r-l, Eps) {
			continue
		}
		out = append(out, Piece{Domain: Interval{Left: l, Right: r}, Image: Interval{Left: f.At(l) + g.At(l), Right: f.At(r) + g.At(r)}})
	}
	return Function{Pieces: out}
}

// Sub returns f(t)-g(t) over dom(f) ∩ dom(g).
func (f Function) Sub(g Function) Function { return f.Add(g.Scale(-1)) }

// Scale returns alpha*f(t).
func (f Function) Scale(alpha float64) Function {
	out := make([]Piece, len(f.Pieces))
	for i, p := range f.Pieces {
		out[i] = Piece{Domain: p.Domain, Image: Interval{Left: p.Image.Left * alpha, Right: p.Image.Right * alpha}}
	}
	return Function{Pieces: out}
}

// Offset returns f(t)+c for a scalar c.
func (f Function) Offset(c float64) Function { return f.Add(Constant(c, f.Domain())) }

// Min returns the pointwise minimum of f and g over dom(f) ∩ dom(g).
func (f Function) Min(g Function) Function {
	if f.Empty() || g.Empty() {
		return Function{}
	}
	dom := f.Domain().Intersect(g.Domain())
	if dom.Empty() {
		return Function{}
	}
	bps := breakpoints(f, g, dom.Left, dom.Right)
	var out []Piece
	for i := 0; i+1 < len(bps); i++ {
		l, r := bps[i], bps[i+1]
		if epsilonSmaller(r-l, Eps) {
			continue
		}
		fl, fr := f.At(l), f.At(r)
		gl, gr := g.At(l), g.At(r)
		// On a piece both sides are linear; a crossing splits it in two.
		dl, dr := fl-gl, fr-gr
		if (dl <= 0 && dr <= 0) || (dl >= 0 && dr >= 0) {
			if dl <= dr {
				out = append(out, Piece{Domain: Interval{Left: l, Right: r}, Image: Interval{Left: fl, Right: fr}})
			} else {
				out = append(out, Piece{Domain: Interval{Left: l, Right: r}, Image: Interval{Left: gl, Right: gr}})
			}
			continue
		}
		cross := l + (r-l)*dl/(dl-dr)
		fc := f.At(cross)
		if dl < 0 {
			out = append(out, Piece{Domain: Interval{Left: l, Right: cross}, Image: Interval{Left: fl, Right: fc}})
			out = append(out, Piece{Domain: Interval{Left: cross, Right: r}, Image: Interval{Left: fc, Right: gr}})
		} else {
			out = append(out, Piece{Domain: Interval{Left: l, Right: cross}, Image: Interval{Left: gl, Right: fc}})
			out = append(out, Piece{Domain: Interval{Left: cross, Right: r}, Image: Interval{Left: fc, Right: fr}})
		}
	}
	return Function{Pieces: out}
}

// Compose returns f(g(t)) for t in {t ∈ dom(g) : g(t) ∈ dom(f)}.
func (f Function) Compose(g Function) Function {
	if f.Empty() || g.Empty() {
		return Function{}
	}
	fd := f.Domain()
	var out []Piece
	for _, gp := range g.Pieces {
		// Find the sub-domain of gp where gp's image lands inside fd.
		lo, hi := gp.Image.Left, gp.Image.Right
		inc := lo <= hi
		if !inc {
			lo, hi = hi, lo
		}
		clipped := Interval{Left: lo, Right: hi}.Intersect(fd)
		if clipped.Empty() {
			continue
		}
		// Map the clipped image interval back to gp's domain.
		var tl, tr float64
		s := gp.slope()
		if epsilonSmaller(gp.Domain.Length(), Eps) || s == 0 {
			tl, tr = gp.Domain.Left, gp.Domain.Right
		} else {
			tl = gp.Domain.Left + (clipped.Left-gp.Image.Left)/s
			tr = gp.Domain.Left + (clipped.Right-gp.Image.Left)/s
		}
		if tl > tr {
			tl, tr = tr, tl
		}
		sub := Interval{Left: tl, Right: tr}.Intersect(gp.Domain)
		if sub.Empty() {
			continue
		}
		out = append(out, Piece{Domain: sub, Image: Interval{Left: f.At(gp.at(sub.Left)), Right: f.At(gp.at(sub.Right))}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain.Left < out[j].Domain.Left })
	return Function{Pieces: out}
}

// Inverse returns f^-1, defined only when f is strictly monotone.
func (f Function) Inverse() (Function, error) {
	if f.Empty() {
		return Function{}, ErrEmptyFunction
	}
	out := make([]Piece, len(f.Pieces))
	increasing := f.Pieces[0].Image.Right >= f.Pieces[0].Image.Left
	for i, p := range f.Pieces {
		if p.Domain.Length() > Eps && p.Image.Length() <= Eps {
			return Function{}, fmt.Errorf("pwl.Inverse: %w at piece %d", ErrNotMonotone, i)
		}
		thisIncreasing := p.Image.Right >= p.Image.Left
		if thisIncreasing != increasing {
			return Function{}, fmt.Errorf("pwl.Inverse: %w (direction change at piece %d)", ErrNotMonotone, i)
		}
		out[i] = Piece{Domain: p.Image, Image: p.Domain}
		if !increasing {
			out[i].Domain = Interval{Left: p.Image.Right, Right: p.Image.Left}
			out[i].Image = Interval{Left: p.Domain.Right, Right: p.Domain.Left}
		}
	}
	if !increasing {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return Function{Pieces: out}, nil
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func epsilonSmaller(a, b float64) bool   { return a < b-Eps }
func epsilonBigger(a, b float64) bool    { return a > b+Eps }
func epsilonEqual(a, b float64) bool     { return !epsilonSmaller(a, b) && !epsilonBigger(a, b) }
func epsilonSmallerEq(a, b float64) bool { return !epsilonBigger(a, b) }
func epsilonBiggerEq(a, b float64) bool  { return !epsilonSmaller(a, b) }
