package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading immutable artifacts
// (models, document sets, score lists).
type BlobStore interface {
	// Open opens a blob for streaming reads. The caller closes it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// ReadAll opens a blob and reads it fully.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
