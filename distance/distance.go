package distance

import (
	"fmt"
	"math"

	"github.com/hupe1980/clustergo/internal/math64"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	return math64.Dot(a, b)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	return math64.SquaredL2(a, b)
}

// Norm calculates the Euclidean length of v.
func Norm(v []float64) float64 {
	return math64.Norm(v)
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	// MetricSquaredL2 reports squared Euclidean distances (default).
	MetricSquaredL2 Metric = iota
	// MetricL2 reports true Euclidean distances.
	MetricL2
	// MetricManhattan reports L1 distances.
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricSquaredL2:
		return "SquaredL2"
	case MetricL2:
		return "L2"
	case MetricManhattan:
		return "Manhattan"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Info describes the semantics of a distance function.
//
// Squared tells callers that reported values live in squared space and a
// square root is required to obtain a true distance. TriangleInequality and
// NormPruning gate the bound-pruning fast paths: separation bounds require
// the triangle inequality, norm-annulus pruning is only sound for Euclidean
// distance.
type Info struct {
	Squared            bool
	TriangleInequality bool
	NormPruning        bool
}

// Provider returns the distance function for the given metric together with
// its semantics.
func Provider(m Metric) (Func, Info, error) {
	switch m {
	case MetricSquaredL2:
		return math64.SquaredL2, Info{Squared: true, TriangleInequality: true, NormPruning: true}, nil
	case MetricL2:
		return l2, Info{TriangleInequality: true, NormPruning: true}, nil
	case MetricManhattan:
		return math64.L1, Info{TriangleInequality: true}, nil
	default:
		return nil, Info{}, fmt.Errorf("unsupported metric: %v", m)
	}
}

func l2(a, b []float64) float64 {
	return math.Sqrt(math64.SquaredL2(a, b))
}
