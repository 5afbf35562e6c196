// Package kmeans implements Lloyd's algorithm and its bound-pruned
// accelerations (Hamerly, Annulus).
//
// All variants produce identical clusterings for the same initial centers;
// the accelerated ones avoid most distance computations by maintaining, per
// point, an upper bound on the distance to its assigned center and a lower
// bound on the distance to every other center. Centers are derived from
// running per-cluster sums, so a mean update costs O(k*dim) instead of a
// pass over the data.
//
// # Usage
//
//	km, _ := kmeans.New(kmeans.Config{
//	    K:             8,
//	    MaxIterations: 100,
//	    Variant:       kmeans.VariantAnnulus,
//	    Initializer:   kmeans.NewPlusPlusInit(42),
//	})
//	result, _ := km.Run(ctx, store)
//
// # Variant selection
//
//   - VariantLloyd: exact baseline, any metric.
//   - VariantHamerly: needs a metric with the triangle inequality.
//   - VariantAnnulus: needs Euclidean distance (norm-based pruning).
//
// Non-convergence within MaxIterations is a defined terminal state
// (StateMaxIterReached), not an error. Empty clusters keep their previous
// center and are reported as zero-member clusters.
package kmeans
