package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the object storage operations the media service
// performs. Blobs are written and read, never deleted; orphaned objects
// are an accepted cost of the write path.
type ObjectStorage interface {
	// Upload uploads an object to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download downloads an object from storage.
	// Returns ErrObjectNotFound if no object exists under key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// EnsureBucket creates the backing bucket if it does not exist.
	// Called once at service startup, not per request.
	EnsureBucket(ctx context.Context) error
}
