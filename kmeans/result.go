package kmeans

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Cluster is one output cluster: its final center and its membership.
// A cluster may end up empty; it is still reported.
type Cluster struct {
	// Center is the final center vector (a copy, safe to retain).
	Center []float64
	// Members holds the row ids assigned to this cluster.
	Members *roaring.Bitmap
	// Size is the member count.
	Size int
	// Variance is the within-cluster sum of distances to the center in the
	// metric's native space. Only populated when Config.Variance is set.
	Variance float64
}

// Result is the outcome of a clustering run.
type Result struct {
	// State reports how the run terminated.
	State State
	// Iterations is the number of iterations executed, counting the initial
	// full assignment as iteration 1.
	Iterations int
	// Assignments maps each row id to its final cluster index.
	Assignments []int
	// Clusters holds the final centers and memberships, indexed by cluster id.
	Clusters []Cluster
	// Variance is the total within-cluster variance across all clusters.
	// Only populated when Config.Variance is set.
	Variance float64
}

// buildResult converts the run state into the output form. Centers are
// derived from the final sums and counts, so they are the means of the final
// memberships; empty clusters keep the center they last had.
func (r *run) buildResult(state State, iterations int, varstat bool) *Result {
	centers := make([]float64, r.k*r.dim)
	r.meansFromSums(centers)

	res := &Result{
		State:       state,
		Iterations:  iterations,
		Assignments: make([]int, r.n),
		Clusters:    make([]Cluster, r.k),
	}
	copy(res.Assignments, r.assign)

	for c := 0; c < r.k; c++ {
		res.Clusters[c] = Cluster{
			Center:  centers[c*r.dim : (c+1)*r.dim],
			Members: roaring.New(),
			Size:    r.counts[c],
		}
	}
	for row, c := range r.assign {
		res.Clusters[c].Members.Add(uint32(row))
	}

	if varstat {
		for row, c := range r.assign {
			d := r.dist(r.store.Vector(row), res.Clusters[c].Center)
			res.Clusters[c].Variance += d
			res.Variance += d
		}
	}

	return res
}
