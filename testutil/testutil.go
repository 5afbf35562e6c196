package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/clustergo/vectorstore"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a normally distributed float64.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// Mixture generates n points drawn from a Gaussian mixture around the given
// component centers with the given standard deviation, round-robin across
// components. The returned store is deterministic for a given RNG state.
func Mixture(r *RNG, n int, centers [][]float64, stddev float64) *vectorstore.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	dim := len(centers[0])
	data := make([]float64, 0, n*dim)
	for i := 0; i < n; i++ {
		c := centers[i%len(centers)]
		for d := 0; d < dim; d++ {
			data = append(data, c[d]+r.rand.NormFloat64()*stddev)
		}
	}
	store, err := vectorstore.FromFlat(dim, data)
	if err != nil {
		panic(err)
	}
	return store
}
