package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense(t *testing.T) {
	d, err := NewDense(3)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Dimension())
	assert.Equal(t, 0, d.Len())

	_, err = NewDense(0)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestDenseAppend(t *testing.T) {
	d, err := NewDense(2)
	require.NoError(t, err)

	require.NoError(t, d.Append([]float64{1, 2}))
	require.NoError(t, d.Append([]float64{3, 4}))
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []float64{1, 2}, d.Vector(0))
	assert.Equal(t, []float64{3, 4}, d.Vector(1))

	assert.ErrorIs(t, d.Append([]float64{1}), ErrWrongDimension)
}

func TestFromSlices(t *testing.T) {
	d, err := FromSlices([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []float64{5, 6}, d.Vector(2))

	_, err = FromSlices(nil)
	assert.Error(t, err)

	_, err = FromSlices([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrWrongDimension)
}

func TestFromFlat(t *testing.T) {
	d, err := FromFlat(2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []float64{3, 4}, d.Vector(1))

	_, err = FromFlat(2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrWrongDimension)

	_, err = FromFlat(0, nil)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}
