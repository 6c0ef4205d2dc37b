// Package storage abstracts the media object store behind a small
// gateway interface so access-control logic can be tested against
// in-memory fakes. The production implementation signs Google Cloud
// Storage URLs; no object bytes ever pass through this service.
package storage

import (
	"context"
	"time"
)

// ObjectStore issues capability-bearing URLs for media objects. A signed
// URL grants temporary access to exactly one object without any further
// authorization check, so TTLs are kept short.
type ObjectStore interface {
	// SignedURL returns a time-limited GET URL for the object at path.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	// SignedUploadURL returns a time-limited PUT URL for the object at path.
	SignedUploadURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
