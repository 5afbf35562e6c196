package vectorstore

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongDimension is returned when a vector doesn't match the store dimension.
	ErrWrongDimension = errors.New("wrong vector dimension")
	// ErrInvalidDimension is returned when a store is created with a non-positive dimension.
	ErrInvalidDimension = errors.New("invalid dimension")
)

// Store is the canonical read interface for clustering input.
//
// Rows are dense, contiguous integer ids in [0, Len()). Implementations must
// treat the configured dimension as authoritative. Returned slices may alias
// internal memory; callers must not mutate them.
type Store interface {
	Dimension() int
	Len() int
	Vector(row int) []float64
}

// Dense is a Store backed by a single flattened slice (row-major, Len*Dimension).
//
// The flat layout keeps the per-point hot loop free of pointer chasing and
// matches how centers are stored by the clustering engines.
type Dense struct {
	dim  int
	data []float64
}

// NewDense creates an empty dense store for vectors of the given dimension.
func NewDense(dim int) (*Dense, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	return &Dense{dim: dim}, nil
}

// FromSlices builds a dense store from row vectors.
// All rows must share the dimension of the first.
func FromSlices(vecs [][]float64) (*Dense, error) {
	if len(vecs) == 0 {
		return nil, errors.New("no vectors")
	}
	d, err := NewDense(len(vecs[0]))
	if err != nil {
		return nil, err
	}
	for _, v := range vecs {
		if err := d.Append(v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// FromFlat wraps an existing flattened slice without copying.
// len(data) must be a multiple of dim.
func FromFlat(dim int, data []float64) (*Dense, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	if len(data)%dim != 0 {
		return nil, fmt.Errorf("%w: %d values, dimension %d", ErrWrongDimension, len(data), dim)
	}
	return &Dense{dim: dim, data: data}, nil
}

// Dimension returns the vector dimensionality.
func (d *Dense) Dimension() int { return d.dim }

// Len returns the number of stored vectors.
func (d *Dense) Len() int { return len(d.data) / d.dim }

// Vector returns the vector at the given row.
// The slice aliases internal memory and must not be mutated.
func (d *Dense) Vector(row int) []float64 {
	return d.data[row*d.dim : (row+1)*d.dim]
}

// Append adds a vector to the store, assigning it the next row id.
func (d *Dense) Append(v []float64) error {
	if len(v) != d.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongDimension, len(v), d.dim)
	}
	d.data = append(d.data, v...)
	return nil
}
