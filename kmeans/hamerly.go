package kmeans

import (
	"context"
	"math"
)

// hamerly prunes reassignment work with one upper bound (distance to the
// assigned center) and one lower bound (distance to any other center) per
// point, plus half the separation between each center and its nearest
// neighbor. A point whose upper bound is below either threshold provably
// cannot change cluster and is skipped without a single distance computation.
type hamerly struct {
	*run

	// upper[row] >= d(row, assigned center); exact right after (re)computation,
	// then stale by at most the center movement added in updateBounds.
	// lower[row] <= d(row, c) for every center c other than the assigned one.
	upper, lower []float64

	sep   []float64
	moved []float64
	next  []float64
}

func newHamerly(r *run) *hamerly {
	return &hamerly{
		run:   r,
		upper: make([]float64, r.n),
		lower: make([]float64, r.n),
		sep:   make([]float64, r.k),
		moved: make([]float64, r.k),
		next:  make([]float64, r.k*r.dim),
	}
}

func (e *hamerly) iterate(ctx context.Context, iteration int) (int, error) {
	if iteration == 1 {
		return e.initialAssign(ctx, nil)
	}

	e.refreshCenters()
	e.halfSeparations(e.sep)

	changed, _, err := e.runPass(ctx, e.assignPoint)
	return changed, err
}

// initialAssign is the one unavoidable O(n*k) pass: it computes every
// distance, records nearest and second-nearest, and establishes exact bounds.
// When second is non-nil the second-nearest center index is stored there.
func (e *hamerly) initialAssign(ctx context.Context, second []int) (int, error) {
	changed, _, err := e.runPass(ctx, func(w *worker, row int) {
		fv := e.store.Vector(row)

		min1, min2 := math.Inf(1), math.Inf(1)
		minIndex, secIndex := -1, -1
		for c := 0; c < e.k; c++ {
			d := e.dist(fv, e.mean(c))
			if d < min1 {
				min2, secIndex = min1, minIndex
				min1, minIndex = d, c
			} else if d < min2 {
				min2, secIndex = d, c
			}
		}

		if minIndex != e.assign[row] {
			w.changed++
		}
		e.assign[row] = minIndex
		w.seed(minIndex, fv)
		e.upper[row] = e.root(min1)
		e.lower[row] = e.root(min2)
		if second != nil {
			second[row] = secIndex
		}
	})
	return changed, err
}

// refreshCenters derives the new means from the running sums and repairs the
// bounds for the movement: a point's upper bound grows by how far its own
// center moved, its lower bound shrinks by the largest movement of any center.
func (e *hamerly) refreshCenters() {
	e.meansFromSums(e.next)
	maxMoved := e.movedDistances(e.means, e.next, e.moved)
	copy(e.means, e.next)
	if maxMoved == 0 {
		return
	}
	for row := 0; row < e.n; row++ {
		e.upper[row] += e.moved[e.assign[row]]
		e.lower[row] -= maxMoved
	}
}

func (e *hamerly) assignPoint(w *worker, row int) {
	cur := e.assign[row]
	z := e.lower[row]
	sa := e.sep[cur]
	u := e.upper[row]
	if u <= z || u <= sa {
		w.pruned++
		return
	}

	// Tighten the upper bound to the exact distance and recheck before
	// paying for a full scan.
	fv := e.store.Vector(row)
	curd2 := e.dist(fv, e.mean(cur))
	u = e.root(curd2)
	e.upper[row] = u
	if u <= z || u <= sa {
		w.pruned++
		return
	}

	min1, minIndex := curd2, cur
	min2 := math.Inf(1)
	for c := 0; c < e.k; c++ {
		if c == cur {
			continue
		}
		d := e.dist(fv, e.mean(c))
		if d < min1 || (d == min1 && c < minIndex) {
			min2 = min1
			min1, minIndex = d, c
		} else if d < min2 {
			min2 = d
		}
	}

	if minIndex != cur {
		e.assign[row] = minIndex
		w.move(minIndex, cur, fv)
		if min1 == curd2 {
			e.upper[row] = u
		} else {
			e.upper[row] = e.root(min1)
		}
	}
	if min2 == curd2 {
		e.lower[row] = u
	} else {
		e.lower[row] = e.root(min2)
	}
}
