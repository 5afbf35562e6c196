package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing dataset blobs.
//
// Blobs are read and written whole: clustering input is streamed through the
// dataset decoders once, so there is no random-access surface.
type Store interface {
	// Open opens a blob for reading. The caller must close the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Put writes a blob atomically.
	Put(ctx context.Context, name string, data []byte) error

	// List returns all blob names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
