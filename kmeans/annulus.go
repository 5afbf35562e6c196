package kmeans

import (
	"context"
	"sort"

	"github.com/hupe1980/clustergo/internal/math64"
)

// annulus extends hamerly with a second bound based on comparing the norm of
// a point against the norms of the centers: once a candidate radius is known,
// centers whose norm differs from the point's norm by more than that radius
// cannot win, so a walk over the norm-sorted center order can skip the head
// and stop early at the tail. Only sound for Euclidean distance.
type annulus struct {
	hamerly

	// second[row] is the second-nearest-known center, used to tighten the
	// candidate radius before the annulus walk.
	second []int

	// Centers sorted ascending by their distance from the origin:
	// cdist holds the norms, cnum the matching center indices.
	cdist []float64
	cnum  []int
}

func newAnnulus(r *run) *annulus {
	return &annulus{
		hamerly: *newHamerly(r),
		second:  make([]int, r.n),
		cdist:   make([]float64, r.k),
		cnum:    make([]int, r.k),
	}
}

func (e *annulus) iterate(ctx context.Context, iteration int) (int, error) {
	if iteration == 1 {
		return e.initialAssign(ctx, e.second)
	}

	e.refreshCenters()
	e.orderMeans()

	changed, _, err := e.runPass(ctx, e.assignPoint)
	return changed, err
}

// orderMeans recomputes the separation table and the norm-sorted center order.
func (e *annulus) orderMeans() {
	e.halfSeparations(e.sep)
	for c := 0; c < e.k; c++ {
		e.cdist[c] = math64.Norm(e.mean(c))
		e.cnum[c] = c
	}
	sort.Sort(&normOrder{dist: e.cdist, num: e.cnum})
}

func (e *annulus) assignPoint(w *worker, row int) {
	cur := e.assign[row]
	z := e.lower[row]
	sa := e.sep[cur]
	u := e.upper[row]
	if u <= z || u <= sa {
		w.pruned++
		return
	}

	fv := e.store.Vector(row)
	curd2 := e.dist(fv, e.mean(cur))
	u = e.root(curd2)
	e.upper[row] = u
	if u <= z || u <= sa {
		w.pruned++
		return
	}

	// The exact distance to the second-nearest-known center caps the search
	// radius together with the tightened upper bound.
	sec := e.second[row]
	secd2 := e.dist(fv, e.mean(sec))
	secd := e.root(secd2)
	r := u
	if secd > r {
		r = secd
	}
	norm := math64.Norm(fv)

	min1, minIndex := curd2, cur
	min2, secIndex := secd2, sec
	if curd2 > secd2 || (curd2 == secd2 && sec < cur) {
		min1, minIndex = secd2, sec
		min2, secIndex = curd2, cur
	}
	for i := 0; i < e.k; i++ {
		c := e.cnum[i]
		if c == cur || c == sec {
			continue
		}
		d := e.cdist[i] - norm
		if -d > r {
			continue // not yet in the annulus
		}
		if d > r {
			break // all remaining centers are even further out
		}
		dist := e.dist(fv, e.mean(c))
		if dist < min1 || (dist == min1 && c < minIndex) {
			min2, secIndex = min1, minIndex
			min1, minIndex = dist, c
		} else if dist < min2 {
			min2, secIndex = dist, c
		}
	}

	if minIndex != cur {
		e.assign[row] = minIndex
		e.second[row] = secIndex
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

// normOrder sorts the center norms and their index permutation in tandem.
type normOrder struct {
	dist []float64
	num  []int
}

func (o *normOrder) Len() int           { return len(o.dist) }
func (o *normOrder) Less(i, j int) bool { return o.dist[i] < o.dist[j] }
func (o *normOrder) Swap(i, j int) {
	o.dist[i], o.dist[j] = o.dist[j], o.dist[i]
	o.num[i], o.num[j] = o.num[j], o.num[i]
}
