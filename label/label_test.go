package label

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVertexSetBasics(t *testing.T) {
	s := NewVertexSet(10)
	require.False(t, s.Test(3))
	s = s.With(3).With(7)
	require.True(t, s.Test(3))
	require.True(t, s.Test(7))
	require.False(t, s.Test(4))
	require.Equal(t, 2, s.PopCount())

	other := SetFromVertices(10, []int{3, 7, 9})
	require.True(t, s.IsSubsetOf(other))
	require.False(t, other.IsSubsetOf(s))

	inter := s.Intersection(other)
	require.Equal(t, []int{3, 7}, inter.Vertices())
}

func TestArenaPath(t *testing.T) {
	a := NewArena(4)
	root := a.New(Label{Parent: -1, V: 0})
	mid := a.New(Label{Parent: root, V: 2})
	leaf := a.New(Label{Parent: mid, V: 5})

	require.Equal(t, []int{0, 2, 5}, a.Path(leaf))
	a.Reset()
	require.Equal(t, 0, a.Len())
}
