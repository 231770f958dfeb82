package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDenseRejectsNonPositiveDimensions(t *testing.T) {
	_, err := NewDense(0, 3)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewDense(3, -1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestDenseSetAtRoundTrip(t *testing.T) {
	d, err := NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, d.Rows())
	require.Equal(t, 3, d.Cols())

	require.NoError(t, d.Set(1, 2, 7.5))
	v, err := d.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)

	// Untouched cells stay zero-initialized.
	v, err = d.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}

func TestDenseOutOfBoundsAccess(t *testing.T) {
	d, err := NewDense(2, 2)
	require.NoError(t, err)

	_, err = d.At(2, 0)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	err = d.Set(0, -1, 1)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
}
