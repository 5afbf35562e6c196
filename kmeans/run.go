package kmeans

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/clustergo/distance"
	"github.com/hupe1980/clustergo/internal/math64"
	"github.com/hupe1980/clustergo/vectorstore"
)

// engine is one assignment strategy driving the shared run state.
//
// iterate(ctx, 1) performs the initial full assignment; later iterations
// refine it. It returns the number of points that changed cluster.
type engine interface {
	iterate(ctx context.Context, iteration int) (int, error)
}

// run owns all mutable state of a single clustering run: the centers with
// their running sums and counts, and the per-point assignment. It is created
// once per run and discarded after the result is built.
type run struct {
	store vectorstore.Store
	dist  distance.Func
	info  distance.Info

	k, dim, n   int
	parallelism int

	// Flattened centers (k*dim), running per-cluster vector sums and counts.
	// Outside of an in-flight pass, sums[c]/counts[c] is the mean of the
	// points currently assigned to c.
	means  []float64
	sums   []float64
	counts []int

	// assign[row] is the index of the nearest center as of the last pass.
	assign []int
}

func newRun(store vectorstore.Store, dist distance.Func, info distance.Info, cfg Config, means []float64) *run {
	dim := store.Dimension()
	return &run{
		store:       store,
		dist:        dist,
		info:        info,
		k:           cfg.K,
		dim:         dim,
		n:           store.Len(),
		parallelism: cfg.Parallelism,
		means:       means,
		sums:        make([]float64, cfg.K*dim),
		counts:      make([]int, cfg.K),
		assign:      make([]int, store.Len()),
	}
}

func (r *run) engine(v Variant) engine {
	switch v {
	case VariantHamerly:
		return newHamerly(r)
	case VariantAnnulus:
		return newAnnulus(r)
	default:
		return &lloyd{run: r}
	}
}

// mean returns the center vector of cluster c (aliases run state).
func (r *run) mean(c int) []float64 {
	return r.means[c*r.dim : (c+1)*r.dim]
}

// root converts a reported distance into true distance space, taking a
// square root exactly once when the metric is squared.
func (r *run) root(d float64) float64 {
	if r.info.Squared {
		return math.Sqrt(d)
	}
	return d
}

// meansFromSums derives the next centers into dst. Clusters with zero
// members keep their previous center, so a mean is never NaN.
func (r *run) meansFromSums(dst []float64) {
	for c := 0; c < r.k; c++ {
		m := dst[c*r.dim : (c+1)*r.dim]
		if r.counts[c] == 0 {
			copy(m, r.mean(c))
			continue
		}
		copy(m, r.sums[c*r.dim:(c+1)*r.dim])
		math64.ScaleInPlace(m, 1/float64(r.counts[c]))
	}
}

// movedDistances fills moved[c] with the true distance each center traveled
// and returns the maximum movement.
func (r *run) movedDistances(old, next, moved []float64) float64 {
	var maxMoved float64
	for c := 0; c < r.k; c++ {
		d := r.root(r.dist(old[c*r.dim:(c+1)*r.dim], next[c*r.dim:(c+1)*r.dim]))
		moved[c] = d
		if d > maxMoved {
			maxMoved = d
		}
	}
	return maxMoved
}

// halfSeparations fills sep[c] with half the true distance from center c to
// its nearest other center. O(k²), symmetric.
func (r *run) halfSeparations(sep []float64) {
	for c := range sep {
		sep[c] = math.Inf(1)
	}
	for i := 0; i < r.k; i++ {
		mi := r.mean(i)
		for j := 0; j < i; j++ {
			d := 0.5 * r.root(r.dist(mi, r.mean(j)))
			if d < sep[i] {
				sep[i] = d
			}
			if d < sep[j] {
				sep[j] = d
			}
		}
	}
}

// worker accumulates the side effects of one shard of a per-point pass.
// In a sequential pass it writes through to the shared sums and counts; in a
// parallel pass it holds per-worker deltas merged by runPass afterwards.
type worker struct {
	sums    []float64
	counts  []int
	dim     int
	changed int
	pruned  int
}

// seed accounts a point entering cluster c during the initial assignment.
func (w *worker) seed(c int, v []float64) {
	math64.AddInPlace(w.sums[c*w.dim:(c+1)*w.dim], v)
	w.counts[c]++
}

// move transfers a point from cluster src to cluster dst, keeping both
// running sums consistent in one step.
func (w *worker) move(dst, src int, v []float64) {
	math64.MoveInPlace(w.sums[dst*w.dim:(dst+1)*w.dim], w.sums[src*w.dim:(src+1)*w.dim], v)
	w.counts[dst]++
	w.counts[src]--
	w.changed++
}

// runPass applies fn to every row, sharded across the configured number of
// workers. Each row is owned by exactly one worker, so per-point state may be
// written without locking; cluster-sum updates go through the worker and are
// merged here before the next center recomputation.
func (r *run) runPass(ctx context.Context, fn func(w *worker, row int)) (changed, pruned int, err error) {
	p := r.parallelism
	if p > r.n {
		p = r.n
	}
	if p <= 1 {
		w := &worker{sums: r.sums, counts: r.counts, dim: r.dim}
		for row := 0; row < r.n; row++ {
			fn(w, row)
		}
		return w.changed, w.pruned, nil
	}

	workers := make([]*worker, p)
	g, ctx := errgroup.WithContext(ctx)
	chunk := (r.n + p - 1) / p
	for i := 0; i < p; i++ {
		w := &worker{
			sums:   make([]float64, r.k*r.dim),
			counts: make([]int, r.k),
			dim:    r.dim,
		}
		workers[i] = w

		lo := i * chunk
		hi := lo + chunk
		if hi > r.n {
			hi = r.n
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for row := lo; row < hi; row++ {
				fn(w, row)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	for _, w := range workers {
		math64.AddInPlace(r.sums, w.sums)
		for c := range r.counts {
			r.counts[c] += w.counts[c]
		}
		changed += w.changed
		pruned += w.pruned
	}
	return changed, pruned, nil
}
