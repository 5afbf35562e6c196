// Package distance provides vector distance calculations for clustering.
//
// # Supported Metrics
//
//   - MetricSquaredL2: Squared Euclidean distance (default)
//   - MetricL2: Euclidean distance
//   - MetricManhattan: L1 distance
//
// Every metric carries an Info record describing whether its values are
// squared and which bound-pruning fast paths it supports. The accelerated
// k-means engines consult these capabilities instead of assuming Euclidean
// geometry.
//
// # Usage
//
//	fn, info, _ := distance.Provider(distance.MetricSquaredL2)
//	d := fn(a, b)
//	if info.Squared {
//	    d = math.Sqrt(d)
//	}
package distance
