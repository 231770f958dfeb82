package pwl

// IsAlwaysDominated reports whether dom(delta) ⊆ dom(m) and m(t)+theta ≤
// delta(t) for every t in dom(delta) (spec.md §4.1, full-dominance mode).
func IsAlwaysDominated(delta, m Function, theta float64) bool {
	if delta.Empty() {
		return true
	}
	if m.Empty() {
		return false
	}
	dd := delta.Domain()
	md := m.Domain()
	if epsilonSmaller(dd.Left, md.Left) || epsilonBigger(dd.Right, md.Right) {
		return false
	}
	ok := true
	forEachRefinedPiece(delta, m, dd.Left, dd.Right, func(l, r, dl, dr, ml, mr float64) {
		if epsilonBigger(ml+theta, dl) || epsilonBigger(mr+theta, dr) {
			ok = false
		}
	})
	return ok
}

// DominatePieces mutates delta, removing every maximal sub-interval of
// dom(delta) ∩ dom(m) on which m(t)+theta ≤ delta(t). Returns true iff delta
// becomes empty (spec.md §4.1, partial-dominance mode).
func DominatePieces(delta *Function, m Function, theta float64) bool {
	if delta.Empty() {
		return true
	}
	dd := delta.Domain()
	if m.Empty() {
		return delta.Empty()
	}
	md := m.Domain()
	overlap := dd.Intersect(md)

	var surviving []Piece
	// Keep the part of delta outside m's domain untouched.
	if epsilonSmaller(dd.Left, md.Left) {
		surviving = append(surviving, delta.RestrictDomain(Interval{Left: dd.Left, Right: min64(dd.Right, md.Left)}).Pieces...)
	}
	if !overlap.Empty() {
		forEachRefinedPiece(*delta, m, overlap.Left, overlap.Right, func(l, r, dl, dr, ml, mr float64) {
			// On this linear sub-piece, compare delta(t) to m(t)+theta.
			gl := (ml + theta) - dl
			gr := (mr + theta) - dr
			// g(t) = m(t) + theta - delta(t); dominated where g(t) <= 0.
			if gl > Eps && gr > Eps {
				surviving = append(surviving, Piece{Domain: Interval{Left: l, Right: r}, Image: Interval{Left: dl, Right: dr}})
				return
			}
			if gl <= Eps && gr <= Eps {
				return // fully dominated on this sub-piece.
			}
			// Crossing: split at the zero of g.
			cross := l + (r-l)*gl/(gl-gr)
			dcross := Function{Pieces: []Piece{{Domain: Interval{Left: l, Right: r}, Image: Interval{Left: dl, Right: dr}}}}.At(cross)
			if gl > Eps {
				surviving = append(surviving, Piece{Domain: Interval{Left: l, Right: cross}, Image: Interval{Left: dl, Right: dcross}})
			} else {
				surviving = append(surviving, Piece{Domain: Interval{Left: cross, Right: r}, Image: Interval{Left: dcross, Right: dr}})
			}
		})
	}
	if epsilonSmaller(md.Right, dd.Right) {
		surviving = append(surviving, delta.RestrictDomain(Interval{Left: max64(dd.Left, md.Right), Right: dd.Right}).Pieces...)
	}

	// Drop degenerate slivers below Eps and merge contiguous pieces.
	var cleaned []Piece
	for _, p := range surviving {
		if p.Domain.Length() < Eps {
			continue
		}
		cleaned = append(cleaned, p)
	}
	*delta = Function{Pieces: cleaned}
	return delta.Empty()
}

// forEachRefinedPiece walks the merged breakpoint refinement of f and g over
// [lo,hi] and invokes fn with (left, right, f(left), f(right), g(left), g(right))
// for every linear sub-piece.
func forEachRefinedPiece(f, g Function, lo, hi float64, fn func(l, r, fl, fr, gl, gr float64)) {
	bps := breakpoints(f, g, lo, hi)
	for i := 0; i+1 < len(bps); i++ {
		l, r := bps[i], bps[i+1]
		if r-l < Eps {
			continue
		}
		fn(l, r, f.At(l), f.At(r), g.At(l), g.At(r))
	}
}
