package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/clustergo/vectorstore"
)

// readText parses one vector per line. The dimensionality is fixed by the
// first data line; every later line must match it.
func readText(r io.Reader, sep byte) (*vectorstore.Dense, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var store *vectorstore.Dense
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := splitFields(text, sep)
		vec := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vec[i] = v
		}

		if store == nil {
			var err error
			store, err = vectorstore.NewDense(len(vec))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if err := store.Append(vec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: no data lines", ErrCorrupt)
	}
	return store, nil
}

func splitFields(text string, sep byte) []string {
	if sep == ',' {
		fields := strings.Split(text, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields
	}
	return strings.Fields(text)
}

func writeText(w io.Writer, store vectorstore.Store, sep byte) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < store.Len(); row++ {
		vec := store.Vector(row)
		for i, v := range vec {
			if i > 0 {
				if err := bw.WriteByte(sep); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
