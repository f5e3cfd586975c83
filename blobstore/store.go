package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned for names that are empty, absolute or escape
// the store root.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// BlobStore stores immutable blobs addressed by slash-separated names.
type BlobStore interface {
	// Get returns the full contents of a blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put writes a blob atomically, replacing any existing blob of that name.
	Put(ctx context.Context, name string, data []byte) error
	// Stat returns the size of a blob in bytes.
	Stat(ctx context.Context, name string) (int64, error)
	// Delete removes a blob. Deleting a missing blob succeeds.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Prefetcher is implemented by stores that can warm a read cache ahead of
// sequential Gets.
type Prefetcher interface {
	Prefetch(ctx context.Context, names ...string) error
}

// ValidateName checks that name is a clean relative slash path.
func ValidateName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if path.Clean(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." || part == "." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// ConditionalPutter is implemented by stores that can create a blob only if
// it does not exist yet, in one round trip.
type ConditionalPutter interface {
	// PutIfAbsent writes data unless name exists. created reports whether
	// this call wrote the blob.
	PutIfAbsent(ctx context.Context, name string, data []byte) (created bool, err error)
}
