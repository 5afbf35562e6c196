package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/vectorstore"
)

var (
	// ErrUnknownFormat is returned when a name carries no recognized suffix.
	ErrUnknownFormat = errors.New("unknown dataset format")
	// ErrCorrupt is returned when a binary frame fails validation.
	ErrCorrupt = errors.New("corrupt dataset")
)

// Format identifies a dataset encoding.
type Format int

const (
	// FormatText is line-oriented: one vector per line, values separated by
	// commas (.csv) or whitespace (.txt, .tsv). Blank lines and lines
	// starting with '#' are skipped.
	FormatText Format = iota
	// FormatBinary is the little-endian binary frame (.vec).
	FormatBinary
)

// DetectFormat resolves the encoding from a blob name, after stripping any
// compression suffix (.gz, .zst, .lz4).
func DetectFormat(name string) (Format, error) {
	switch path.Ext(stripCompression(name)) {
	case ".csv", ".tsv", ".txt":
		return FormatText, nil
	case ".vec":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Load reads a dataset from r. The name selects both the encoding and the
// compression, the way a file name would: "points.csv.zst" is zstd-compressed
// CSV, "points.vec" is the raw binary frame.
func Load(r io.Reader, name string) (*vectorstore.Dense, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	cr, err := wrapReader(r, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cr.Close() }()

	switch format {
	case FormatBinary:
		return readBinary(cr)
	default:
		return readText(cr, textSeparator(name))
	}
}

// Save writes the store to w, encoded and compressed according to name.
func Save(w io.Writer, name string, store vectorstore.Store) error {
	format, err := DetectFormat(name)
	if err != nil {
		return err
	}

	cw, err := wrapWriter(w, name)
	if err != nil {
		return err
	}

	switch format {
	case FormatBinary:
		err = writeBinary(cw, store)
	default:
		err = writeText(cw, store, textSeparator(name))
	}
	if err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}

// Open loads a dataset blob from the given store.
func Open(ctx context.Context, bs blobstore.Store, name string) (*vectorstore.Dense, error) {
	r, err := bs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return Load(r, name)
}

// Write saves a dataset blob to the given store.
func Write(ctx context.Context, bs blobstore.Store, name string, store vectorstore.Store) error {
	var buf bytes.Buffer
	if err := Save(&buf, name, store); err != nil {
		return err
	}
	return bs.Put(ctx, name, buf.Bytes())
}

func textSeparator(name string) byte {
	if path.Ext(stripCompression(name)) == ".csv" {
		return ','
	}
	return ' '
}

func stripCompression(name string) string {
	switch path.Ext(name) {
	case ".gz", ".zst", ".lz4":
		return strings.TrimSuffix(name, path.Ext(name))
	default:
		return name
	}
}
