package store

import (
	"context"
	"log/slog"
)

// BlobStore stores uploaded asset files and exposes them through public URLs.
type BlobStore interface {
	// Upload writes data at path inside bucket.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error

	// PublicURL returns the publicly reachable URL for a stored blob.
	// An empty string means no URL could be resolved.
	PublicURL(bucket, path string) string

	// Remove deletes the blob at path inside bucket.
	Remove(ctx context.Context, bucket, path string) error

	// PathFromURL extracts the blob path from a URL returned by PublicURL.
	// Returns ErrBlobNotFound if the URL does not belong to bucket.
	PathFromURL(bucket, url string) (string, error)
}

// BlobCleanup reports the outcome of a best-effort blob deletion.
// It never turns into an error for the caller; Err is nil on success.
type BlobCleanup struct {
	Bucket string
	Path   string
	Err    error
}

// Attempted reports whether a delete was issued at all.
func (c BlobCleanup) Attempted() bool {
	return c.Path != ""
}

// OK reports whether the blob is known to be gone.
func (c BlobCleanup) OK() bool {
	return c.Attempted() && c.Err == nil
}

// LogValue implements slog.LogValuer.
func (c BlobCleanup) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("bucket", c.Bucket),
		slog.String("path", c.Path),
	}
	if c.Err != nil {
		attrs = append(attrs, slog.String("error", c.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}
