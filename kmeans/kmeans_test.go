package kmeans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo/distance"
	"github.com/hupe1980/clustergo/vectorstore"
)

func cornerStore(t *testing.T) *vectorstore.Dense {
	t.Helper()
	store, err := vectorstore.FromSlices([][]float64{
		{0, 0}, {0, 1}, {10, 0}, {10, 1},
	})
	require.NoError(t, err)
	return store
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{K: 0})
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = New(Config{K: -3})
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = New(Config{K: 2, Metric: distance.Metric(99)})
	assert.Error(t, err)

	_, err = New(Config{K: 2, Variant: Variant(99)})
	assert.Error(t, err)

	// Annulus pruning is only sound for Euclidean distance.
	_, err = New(Config{K: 2, Variant: VariantAnnulus, Metric: distance.MetricManhattan})
	assert.ErrorIs(t, err, ErrUnsupportedMetric)

	// Hamerly only needs the triangle inequality; Manhattan qualifies.
	_, err = New(Config{K: 2, Variant: VariantHamerly, Metric: distance.MetricManhattan})
	assert.NoError(t, err)

	_, err = New(Config{K: 2, Variant: VariantLloyd, Metric: distance.MetricManhattan})
	assert.NoError(t, err)
}

func TestRunValidation(t *testing.T) {
	ctx := context.Background()
	store := cornerStore(t)

	km, err := New(Config{K: 5})
	require.NoError(t, err)
	_, err = km.Run(ctx, store)
	assert.ErrorIs(t, err, ErrTooManyClusters)

	km, err = New(Config{K: 1})
	require.NoError(t, err)
	empty, err := vectorstore.NewDense(2)
	require.NoError(t, err)
	_, err = km.Run(ctx, empty)
	assert.ErrorIs(t, err, ErrEmptyStore)

	km, err = New(Config{K: 2, InitialCenters: [][]float64{{0, 0}}})
	require.NoError(t, err)
	_, err = km.Run(ctx, store)
	assert.ErrorIs(t, err, ErrInvalidK)

	km, err = New(Config{K: 2, InitialCenters: [][]float64{{0, 0}, {1, 2, 3}}})
	require.NoError(t, err)
	_, err = km.Run(ctx, store)
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	km, err := New(Config{K: 2})
	require.NoError(t, err)
	_, err = km.Run(ctx, cornerStore(t))
	assert.ErrorIs(t, err, context.Canceled)
}

// Four corner points, two well-separated pairs, centers seeded on the left
// point of each pair: one refinement settles the means at the pair midpoints.
func TestCornerScenario(t *testing.T) {
	ctx := context.Background()
	store := cornerStore(t)

	for _, variant := range []Variant{VariantLloyd, VariantHamerly, VariantAnnulus} {
		t.Run(variant.String(), func(t *testing.T) {
			km, err := New(Config{
				K:              2,
				Variant:        variant,
				InitialCenters: [][]float64{{0, 0}, {10, 0}},
			})
			require.NoError(t, err)

			res, err := km.Run(ctx, store)
			require.NoError(t, err)

			assert.Equal(t, StateConverged, res.State)
			assert.Equal(t, 2, res.Iterations)
			assert.Equal(t, []int{0, 0, 1, 1}, res.Assignments)
			assert.InDeltaSlice(t, []float64{0, 0.5}, res.Clusters[0].Center, 1e-12)
			assert.InDeltaSlice(t, []float64{10, 0.5}, res.Clusters[1].Center, 1e-12)
			assert.Equal(t, 2, res.Clusters[0].Size)
			assert.Equal(t, 2, res.Clusters[1].Size)
		})
	}
}

// White-box view of the same scenario: two points change away from the
// default cluster in the initial pass, none afterwards, and an extra
// iteration past convergence is a no-op.
func TestCornerScenarioChangedCounts(t *testing.T) {
	ctx := context.Background()
	store := cornerStore(t)
	fn, info, err := distance.Provider(distance.MetricSquaredL2)
	require.NoError(t, err)

	for _, variant := range []Variant{VariantLloyd, VariantHamerly, VariantAnnulus} {
		t.Run(variant.String(), func(t *testing.T) {
			means := []float64{0, 0, 10, 0}
			r := newRun(store, fn, info, Config{K: 2}, append([]float64(nil), means...))
			eng := r.engine(variant)

			changed, err := eng.iterate(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, 2, changed)

			changed, err = eng.iterate(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, 0, changed)

			// Idempotence at convergence.
			before := append([]float64(nil), r.means...)
			changed, err = eng.iterate(ctx, 3)
			require.NoError(t, err)
			assert.Equal(t, 0, changed)
			assert.InDeltaSlice(t, before, r.means, 1e-12)
		})
	}
}

func TestMaxIterReached(t *testing.T) {
	ctx := context.Background()
	km, err := New(Config{
		K:              2,
		MaxIterations:  1,
		InitialCenters: [][]float64{{0, 0}, {10, 0}},
	})
	require.NoError(t, err)

	res, err := km.Run(ctx, cornerStore(t))
	require.NoError(t, err)
	assert.Equal(t, StateMaxIterReached, res.State)
	assert.Equal(t, 1, res.Iterations)
}

func TestSingleCluster(t *testing.T) {
	ctx := context.Background()
	store := cornerStore(t)

	km, err := New(Config{K: 1, Initializer: NewRandomInit(1)})
	require.NoError(t, err)

	res, err := km.Run(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, StateConverged, res.State)
	// One refinement pass confirms the centroid assignment.
	assert.Equal(t, 2, res.Iterations)
	assert.InDeltaSlice(t, []float64{5, 0.5}, res.Clusters[0].Center, 1e-12)
	assert.Equal(t, 4, res.Clusters[0].Size)
}

// Seeds chosen so that every point is nearest center 0 on the initial pass:
// nothing moves, yet the recomputed mean pulls point 1 over to center 1 on
// the next pass. Termination must wait for a refinement pass to confirm the
// assignment, otherwise the reported centers and assignments are not a
// fixpoint.
func TestQuietInitialPassStillRefines(t *testing.T) {
	ctx := context.Background()
	store, err := vectorstore.FromSlices([][]float64{{-10, 0}, {2, 0}})
	require.NoError(t, err)

	for _, variant := range []Variant{VariantLloyd, VariantHamerly, VariantAnnulus} {
		t.Run(variant.String(), func(t *testing.T) {
			km, err := New(Config{
				K:              2,
				Variant:        variant,
				InitialCenters: [][]float64{{0, 0}, {4.5, 0}},
			})
			require.NoError(t, err)

			res, err := km.Run(ctx, store)
			require.NoError(t, err)

			assert.Equal(t, StateConverged, res.State)
			assert.Equal(t, 3, res.Iterations)
			assert.Equal(t, []int{0, 1}, res.Assignments)
			assert.InDeltaSlice(t, []float64{-10, 0}, res.Clusters[0].Center, 1e-12)
			assert.InDeltaSlice(t, []float64{2, 0}, res.Clusters[1].Center, 1e-12)

			// Fixpoint: restarting from the reported centers changes nothing.
			km2, err := New(Config{
				K:              2,
				Variant:        variant,
				InitialCenters: [][]float64{res.Clusters[0].Center, res.Clusters[1].Center},
			})
			require.NoError(t, err)
			res2, err := km2.Run(ctx, store)
			require.NoError(t, err)
			assert.Equal(t, res.Assignments, res2.Assignments)
			for c := range res.Clusters {
				assert.InDeltaSlice(t, res.Clusters[c].Center, res2.Clusters[c].Center, 1e-12)
			}
		})
	}
}

func TestOneClusterPerPoint(t *testing.T) {
	ctx := context.Background()
	store := cornerStore(t)

	km, err := New(Config{
		K:              4,
		Variance:       true,
		Variant:        VariantAnnulus,
		InitialCenters: [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}},
	})
	require.NoError(t, err)

	res, err := km.Run(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, StateConverged, res.State)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Assignments)
	assert.Zero(t, res.Variance)
	for c, cl := range res.Clusters {
		assert.Equal(t, 1, cl.Size)
		assert.Equal(t, store.Vector(c), cl.Center)
	}
}

func TestEmptyClusterKeepsCenter(t *testing.T) {
	ctx := context.Background()
	store, err := vectorstore.FromSlices([][]float64{{0, 0}, {1, 0}})
	require.NoError(t, err)

	km, err := New(Config{
		K:              2,
		InitialCenters: [][]float64{{0.4, 0}, {10, 0}},
	})
	require.NoError(t, err)

	res, err := km.Run(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, StateConverged, res.State)
	assert.Equal(t, []int{0, 0}, res.Assignments)
	assert.Equal(t, 0, res.Clusters[1].Size)
	assert.True(t, res.Clusters[1].Members.IsEmpty())
	assert.Equal(t, []float64{10, 0}, res.Clusters[1].Center)
	assert.InDeltaSlice(t, []float64{0.5, 0}, res.Clusters[0].Center, 1e-12)
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "Lloyd", VariantLloyd.String())
	assert.Equal(t, "Hamerly", VariantHamerly.String())
	assert.Equal(t, "Annulus", VariantAnnulus.String())
	assert.Equal(t, "Unknown(9)", Variant(9).String())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Converged", StateConverged.String())
	assert.Equal(t, "MaxIterReached", StateMaxIterReached.String())
	assert.Equal(t, "Unknown(0)", State(0).String())
}
