package kmeans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo/distance"
	"github.com/hupe1980/clustergo/testutil"
	"github.com/hupe1980/clustergo/vectorstore"
)

var mixtureCenters = [][]float64{
	{0, 0, 0},
	{100, 0, 50},
	{0, 100, -50},
	{100, 100, 0},
	{-100, 50, 25},
}

func mixtureStore(seed int64, n int) *vectorstore.Dense {
	return testutil.Mixture(testutil.NewRNG(seed), n, mixtureCenters, 2.0)
}

func runVariant(t *testing.T, store vectorstore.Store, cfg Config) *Result {
	t.Helper()
	km, err := New(cfg)
	require.NoError(t, err)
	res, err := km.Run(context.Background(), store)
	require.NoError(t, err)
	return res
}

// The bound-pruned engines must produce exactly the same assignments and
// centers as the exact Lloyd baseline, for fixed initial centers, at every
// iteration cap.
func TestPrunedVariantsMatchLloyd(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		store := mixtureStore(seed, 300)
		initial := initialFromRows(store, []int{0, 1, 2, 3, 4})

		for _, metric := range []distance.Metric{distance.MetricSquaredL2, distance.MetricL2} {
			for _, maxIter := range []int{1, 2, 3, 0} {
				base := runVariant(t, store, Config{
					K: 5, Metric: metric, MaxIterations: maxIter,
					Variant: VariantLloyd, InitialCenters: initial,
				})

				for _, variant := range []Variant{VariantHamerly, VariantAnnulus} {
					res := runVariant(t, store, Config{
						K: 5, Metric: metric, MaxIterations: maxIter,
						Variant: variant, InitialCenters: initial,
					})

					assert.Equal(t, base.State, res.State, "seed=%d metric=%s maxIter=%d variant=%s", seed, metric, maxIter, variant)
					assert.Equal(t, base.Iterations, res.Iterations)
					assert.Equal(t, base.Assignments, res.Assignments)
					for c := range base.Clusters {
						assert.InDeltaSlice(t, base.Clusters[c].Center, res.Clusters[c].Center, 1e-9)
						assert.Equal(t, base.Clusters[c].Size, res.Clusters[c].Size)
					}
				}
			}
		}
	}
}

// Hamerly's separation prune only needs the triangle inequality, so it must
// also match Lloyd under Manhattan distance.
func TestHamerlyMatchesLloydManhattan(t *testing.T) {
	store := mixtureStore(11, 200)
	initial := initialFromRows(store, []int{0, 1, 2, 3, 4})

	base := runVariant(t, store, Config{
		K: 5, Metric: distance.MetricManhattan, Variant: VariantLloyd, InitialCenters: initial,
	})
	res := runVariant(t, store, Config{
		K: 5, Metric: distance.MetricManhattan, Variant: VariantHamerly, InitialCenters: initial,
	})

	assert.Equal(t, base.Assignments, res.Assignments)
	assert.Equal(t, base.Iterations, res.Iterations)
}

// A sharded pass must produce the same clustering as the sequential one; the
// per-worker partial sums are merged before centers are recomputed.
func TestParallelMatchesSequential(t *testing.T) {
	store := mixtureStore(5, 500)
	initial := initialFromRows(store, []int{0, 1, 2, 3, 4})

	for _, variant := range []Variant{VariantLloyd, VariantHamerly, VariantAnnulus} {
		t.Run(variant.String(), func(t *testing.T) {
			seq := runVariant(t, store, Config{K: 5, Variant: variant, InitialCenters: initial})
			par := runVariant(t, store, Config{K: 5, Variant: variant, InitialCenters: initial, Parallelism: 4})

			assert.Equal(t, seq.State, par.State)
			assert.Equal(t, seq.Assignments, par.Assignments)
			for c := range seq.Clusters {
				assert.InDeltaSlice(t, seq.Clusters[c].Center, par.Clusters[c].Center, 1e-6)
			}
		})
	}
}

// Total within-cluster sum of squares never increases across iterations and
// strictly decreases while points are still moving.
func TestMonotonicImprovement(t *testing.T) {
	store := mixtureStore(9, 250)
	initial := initialFromRows(store, []int{0, 1, 2, 3, 4})
	fn, info, err := distance.Provider(distance.MetricSquaredL2)
	require.NoError(t, err)

	means := flatten(initial, store.Dimension())
	r := newRun(store, fn, info, Config{K: 5}, means)
	eng := r.engine(VariantAnnulus)

	prev := -1.0
	for it := 1; it <= 50; it++ {
		changed, err := eng.iterate(context.Background(), it)
		require.NoError(t, err)

		cur := wcss(r)
		if prev >= 0 {
			assert.LessOrEqual(t, cur, prev+1e-9, "iteration %d", it)
			if changed > 0 {
				assert.Less(t, cur, prev, "iteration %d", it)
			}
		}
		prev = cur

		if changed == 0 {
			return
		}
	}
	t.Fatal("did not converge within 50 iterations")
}

// wcss computes the sum of squared distances from each point to the mean of
// its current cluster.
func wcss(r *run) float64 {
	centers := make([]float64, r.k*r.dim)
	r.meansFromSums(centers)

	var total float64
	for row := 0; row < r.n; row++ {
		c := r.assign[row]
		total += distance.SquaredL2(r.store.Vector(row), centers[c*r.dim:(c+1)*r.dim])
	}
	return total
}

func initialFromRows(store vectorstore.Store, rows []int) [][]float64 {
	centers := make([][]float64, len(rows))
	for i, row := range rows {
		centers[i] = append([]float64(nil), store.Vector(row)...)
	}
	return centers
}

func flatten(vecs [][]float64, dim int) []float64 {
	out := make([]float64, 0, len(vecs)*dim)
	for _, v := range vecs {
		out = append(out, v...)
	}
	return out
}
