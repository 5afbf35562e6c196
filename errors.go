package clustergo

import "github.com/hupe1980/clustergo/kmeans"

// Re-exported sentinels so facade callers can match errors without importing
// the kmeans package.
var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = kmeans.ErrInvalidK
	// ErrTooManyClusters is returned when k exceeds the number of points.
	ErrTooManyClusters = kmeans.ErrTooManyClusters
	// ErrEmptyStore is returned when the input store contains no vectors.
	ErrEmptyStore = kmeans.ErrEmptyStore
	// ErrUnsupportedMetric is returned when a variant cannot prune safely
	// under the configured metric.
	ErrUnsupportedMetric = kmeans.ErrUnsupportedMetric
)
