package storage

import (
	"context"
	"io"
)

// Store abstracts flat-file persistence for uploaded artifacts.
type Store interface {
	// Save writes the stream under the given filename, replacing any
	// existing file with that name.
	Save(ctx context.Context, filename string, file io.Reader) error

	// Open returns the stored file for reading.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)

	// Exists reports whether a file with the given name is stored.
	Exists(ctx context.Context, filename string) (bool, error)

	// Delete removes the stored file.
	Delete(ctx context.Context, filename string) error

	// Path resolves the filename to an absolute on-disk path.
	Path(filename string) (string, error)
}
