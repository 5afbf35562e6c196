package kmeans

import (
	"math/rand"

	"github.com/hupe1980/clustergo/distance"
	"github.com/hupe1980/clustergo/vectorstore"
)

// Initializer produces k starting centers from the input store.
// Implementations own their randomness; runs are deterministic given a seed.
type Initializer interface {
	InitialCenters(store vectorstore.Store, k int, dist distance.Func) ([]float64, error)
}

// RandomInit picks k distinct input points as starting centers.
type RandomInit struct {
	rng *rand.Rand
}

// NewRandomInit creates a RandomInit seeded for reproducible runs.
func NewRandomInit(seed int64) *RandomInit {
	return &RandomInit{rng: rand.New(rand.NewSource(seed))}
}

// InitialCenters returns k distinct points, flattened to k*dim.
func (in *RandomInit) InitialCenters(store vectorstore.Store, k int, _ distance.Func) ([]float64, error) {
	dim := store.Dimension()
	means := make([]float64, k*dim)
	perm := in.rng.Perm(store.Len())
	for c := 0; c < k; c++ {
		copy(means[c*dim:(c+1)*dim], store.Vector(perm[c]))
	}
	return means, nil
}

// PlusPlusInit implements k-means++ seeding: after a uniform first pick,
// each further center is sampled with probability proportional to the
// distance from its nearest already-chosen center.
type PlusPlusInit struct {
	rng *rand.Rand
}

// NewPlusPlusInit creates a PlusPlusInit seeded for reproducible runs.
func NewPlusPlusInit(seed int64) *PlusPlusInit {
	return &PlusPlusInit{rng: rand.New(rand.NewSource(seed))}
}

// InitialCenters returns k centers chosen by D² sampling, flattened to k*dim.
func (in *PlusPlusInit) InitialCenters(store vectorstore.Store, k int, dist distance.Func) ([]float64, error) {
	n := store.Len()
	dim := store.Dimension()
	means := make([]float64, k*dim)

	first := in.rng.Intn(n)
	copy(means[0:dim], store.Vector(first))

	// weights[row] is the distance to the nearest chosen center so far.
	weights := make([]float64, n)
	for c := 1; c < k; c++ {
		prev := means[(c-1)*dim : c*dim]
		var total float64
		for row := 0; row < n; row++ {
			d := dist(store.Vector(row), prev)
			if c == 1 || d < weights[row] {
				weights[row] = d
			}
			total += weights[row]
		}

		if total <= 0 {
			// All remaining points coincide with chosen centers; any pick works.
			copy(means[c*dim:(c+1)*dim], store.Vector(in.rng.Intn(n)))
			continue
		}

		target := in.rng.Float64() * total
		row := 0
		for ; row < n-1; row++ {
			target -= weights[row]
			if target <= 0 {
				break
			}
		}
		copy(means[c*dim:(c+1)*dim], store.Vector(row))
	}

	return means, nil
}
