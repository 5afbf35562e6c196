package dataset

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/clustergo/vectorstore"
)

// Binary frame layout (little-endian):
//
//	magic   [4]byte "CGV1"
//	dim     uint32
//	count   uint64
//	values  count*dim float64
var binaryMagic = [4]byte{'C', 'G', 'V', '1'}

func readBinary(r io.Reader) (*vectorstore.Dense, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if magic != binaryMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, magic)
	}

	var dim uint32
	if err := binary.Read(br, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero dimension", ErrCorrupt)
	}

	// Grow while reading instead of trusting count: a corrupt header must
	// not size the allocation, and count*dim can overflow.
	hint := count * uint64(dim)
	if hint/uint64(dim) != count || hint > 1<<16 {
		hint = 1 << 16
	}
	data := make([]float64, 0, hint)
	buf := make([]byte, 8)
	for i := uint64(0); i < count; i++ {
		for j := uint32(0); j < dim; j++ {
			if _, err := io.ReadFull(br, buf); err != nil {
				return nil, fmt.Errorf("%w: truncated values: %v", ErrCorrupt, err)
			}
			data = append(data, math.Float64frombits(binary.LittleEndian.Uint64(buf)))
		}
	}

	return vectorstore.FromFlat(int(dim), data)
}

func writeBinary(w io.Writer, store vectorstore.Store) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(binaryMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(store.Dimension())); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(store.Len())); err != nil {
		return err
	}

	buf := make([]byte, 8)
	for row := 0; row < store.Len(); row++ {
		for _, v := range store.Vector(row) {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
