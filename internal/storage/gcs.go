package storage

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

// GCSStore signs URLs against a single Google Cloud Storage bucket that
// holds all lesson media. Credentials come from the ambient service
// account (GOOGLE_APPLICATION_CREDENTIALS or workload identity).
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore connects a storage client and binds it to the bucket named
// by MEDIA_GCS_BUCKET. The bucket name is required; an unset variable is
// a configuration error surfaced at startup.
func NewGCSStore(ctx context.Context) (*GCSStore, error) {
	bucket := os.Getenv("MEDIA_GCS_BUCKET")
	if bucket == "" {
		return nil, errors.New("missing required env var: MEDIA_GCS_BUCKET")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// SignedURL issues a V4-signed GET URL for the object at path.
func (s *GCSStore) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(path, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().UTC().Add(ttl),
	})
}

// SignedUploadURL issues a V4-signed PUT URL for the object at path.
func (s *GCSStore) SignedUploadURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(path, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodPut,
		Expires: time.Now().UTC().Add(ttl),
	})
}

// Close releases the underlying storage client.
func (s *GCSStore) Close() error { return s.client.Close() }
