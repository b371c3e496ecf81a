// Package storage defines the gateway to the external object store.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned by Download when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Error wraps a provider-specific failure so callers above this layer
// never see transport or SDK error types. The cause is retained for logging.
type Error struct {
	Op    string // "upload", "download" or "delete"
	Key   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsStorageErr reports whether err is a gateway storage failure.
func IsStorageErr(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

// DownloadResult carries a streamed object back to the caller.
// The caller owns Body and must close it on every exit path.
type DownloadResult struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Storage is the interface for uploading, retrieving and deleting objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Download fetches the object at key as a stream. Returns ErrNotFound
	// when no such object exists.
	Download(ctx context.Context, key string) (*DownloadResult, error)
	// Delete removes an object identified by key. Deleting a missing
	// object is not an error.
	Delete(ctx context.Context, key string) error
}
