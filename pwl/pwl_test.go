package pwl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityAndConstant(t *testing.T) {
	id := Identity(Interval{Left: 0, Right: 10})
	require.Equal(t, 5.0, id.At(5))
	require.False(t, id.Empty())

	c := Constant(3, Interval{Left: 0, Right: 10})
	require.Equal(t, 3.0, c.At(7))
}

func TestAddAndMin(t *testing.T) {
	f := Function{Pieces: []Piece{{Domain: Interval{0, 10}, Image: Interval{0, 10}}}}
	g := Function{Pieces: []Piece{{Domain: Interval{0, 10}, Image: Interval{5, 5}}}}
	sum := f.Add(g)
	require.InDelta(t, 5.0, sum.At(0), Eps)
	require.InDelta(t, 15.0, sum.At(10), Eps)

	m := f.Min(g)
	require.InDelta(t, 0.0, m.At(0), Eps)
	require.InDelta(t, 5.0, m.At(10), Eps)
}

// TestPartialDominance matches spec.md scenario 3: Delta_A(t)=t on [0,10],
// Delta_B(t)=t+2 on [0,5]. Partial dominance shrinks Delta_B to empty.
func TestPartialDominance(t *testing.T) {
	deltaA := Function{Pieces: []Piece{{Domain: Interval{0, 10}, Image: Interval{0, 10}}}}
	deltaB := Function{Pieces: []Piece{{Domain: Interval{0, 5}, Image: Interval{2, 7}}}}

	// deltaA(t) = t ≤ deltaB(t) = t+2 everywhere on the overlap → fully dominated.
	full := IsAlwaysDominated(deltaB, deltaA, 0)
	require.True(t, full)

	gotEmpty := DominatePieces(&deltaB, deltaA, 0)
	require.True(t, gotEmpty)
	require.True(t, deltaB.Empty())
}

func TestDominatePiecesPartialSurvival(t *testing.T) {
	// delta(t) = t on [0,10]; m(t) = 12-t on [0,10] dominates only where
	// 12-t <= t, i.e. t >= 6. So [0,6) should survive.
	delta := Function{Pieces: []Piece{{Domain: Interval{0, 10}, Image: Interval{0, 10}}}}
	m := Function{Pieces: []Piece{{Domain: Interval{0, 10}, Image: Interval{12, 2}}}}

	empty := DominatePieces(&delta, m, 0)
	require.False(t, empty)
	require.InDelta(t, 0.0, delta.Domain().Left, 1e-6)
	require.InDelta(t, 6.0, delta.Domain().Right, 1e-6)
}

func TestComposeAndInverse(t *testing.T) {
	f := Identity(Interval{Left: 0, Right: 10}).Offset(2) // f(t) = t+2
	inv, err := f.Inverse()
	require.NoError(t, err)
	require.InDelta(t, 0.0, inv.At(2), 1e-9)
	require.InDelta(t, 10.0, inv.At(12), 1e-9)

	g := Identity(Interval{Left: 0, Right: 5})
	h := f.Compose(g) // h(t) = g(t)+2 = t+2 over [0,5]
	require.InDelta(t, 2.0, h.At(0), 1e-9)
	require.InDelta(t, 7.0, h.At(5), 1e-9)
}
