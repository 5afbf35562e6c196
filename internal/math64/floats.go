// Package math64 provides float64 vector primitives for the clustering hot loops.
// This is an internal package - external users should use the distance package.
package math64

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	var ret float64
	for i := range a {
		ret += a[i] * b[i]
	}

	return ret
}

// SquaredL2 calculates the squared L2 (Euclidean) distance.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var distance float64
	for i := range a {
		distance += (a[i] - b[i]) * (a[i] - b[i])
	}

	return distance
}

// L1 calculates the L1 (Manhattan) distance.
// Assumes vectors are the same length (caller's responsibility).
func L1(a, b []float64) float64 {
	var distance float64
	for i := range a {
		distance += math.Abs(a[i] - b[i])
	}

	return distance
}

// Norm calculates the Euclidean length of v.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// AddInPlace adds v to dst element-wise.
func AddInPlace(dst, v []float64) {
	for i := range dst {
		dst[i] += v[i]
	}
}

// MoveInPlace applies dst1 += v and dst2 -= v in a single pass.
//
// This is the cluster-sum transfer: when a point moves between clusters,
// both running sums must stay consistent.
func MoveInPlace(dst1, dst2, v []float64) {
	for i := range v {
		dst1[i] += v[i]
		dst2[i] -= v[i]
	}
}

// ScaleInPlace multiplies all elements of a by scalar.
func ScaleInPlace(a []float64, scalar float64) {
	for i := range a {
		a[i] *= scalar
	}
}
