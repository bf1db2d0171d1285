package secondary

import (
	"context"
	"fmt"
)

// SignedURLProvider defines the secondary port for resolving internal storage
// paths into short-lived signed URLs.
type SignedURLProvider interface {
	ResolveSignedURL(ctx context.Context, path string, ttlSeconds int) (string, error)
}

// StorageError reports a failed signed-URL resolution.
type StorageError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *StorageError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("storage: sign %s: status %d: %v", e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("storage: sign %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
