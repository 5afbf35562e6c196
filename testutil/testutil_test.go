package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}

	a.Reset()
	c := NewRNG(42)
	assert.Equal(t, c.Float64(), a.Float64())
	assert.Equal(t, int64(42), a.Seed())
}

func TestFillUniform(t *testing.T) {
	r := NewRNG(1)
	dst := make([]float64, 100)
	r.FillUniform(dst)
	for _, v := range dst {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestMixture(t *testing.T) {
	r := NewRNG(7)
	centers := [][]float64{{0, 0}, {100, 100}}
	store := Mixture(r, 50, centers, 1.0)
	require.Equal(t, 50, store.Len())
	require.Equal(t, 2, store.Dimension())

	// Round-robin: even rows near the first component.
	assert.InDelta(t, 0.0, store.Vector(0)[0], 10.0)
	assert.InDelta(t, 100.0, store.Vector(1)[0], 10.0)

	r2 := NewRNG(7)
	store2 := Mixture(r2, 50, centers, 1.0)
	assert.Equal(t, store.Vector(49), store2.Vector(49))
}
