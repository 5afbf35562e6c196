package kmeans

import "context"

// lloyd is the exact full-scan baseline: every iteration computes the
// distance from every point to every center. It is the reference the
// bound-pruned variants must agree with, and the only engine valid for
// metrics without the triangle inequality.
type lloyd struct {
	*run
	next []float64
}

func (e *lloyd) iterate(ctx context.Context, iteration int) (int, error) {
	if iteration > 1 {
		if e.next == nil {
			e.next = make([]float64, e.k*e.dim)
		}
		e.meansFromSums(e.next)
		copy(e.means, e.next)
	}

	initial := iteration == 1
	changed, _, err := e.runPass(ctx, func(w *worker, row int) {
		fv := e.store.Vector(row)

		minIndex := 0
		min1 := e.dist(fv, e.mean(0))
		for c := 1; c < e.k; c++ {
			if d := e.dist(fv, e.mean(c)); d < min1 {
				min1 = d
				minIndex = c
			}
		}

		cur := e.assign[row]
		if initial {
			if minIndex != cur {
				w.changed++
			}
			e.assign[row] = minIndex
			w.seed(minIndex, fv)
			return
		}
		if minIndex != cur {
			e.assign[row] = minIndex
			w.move(minIndex, cur, fv)
		}
	})
	return changed, err
}
