package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/gearcast-api/internal/store"
)

// FileStore persists assets onto the local filesystem under
// {basePath}/{bucket}/{path}. It is intended for development and test
// environments where an object storage service is not available.
type FileStore struct {
	basePath      string
	publicBaseURL string
}

// NewFileStore initializes a FileStore rooted at basePath whose files are
// served under publicBaseURL.
func NewFileStore(basePath, publicBaseURL string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("blob: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("blob: ensure base path: %w", err)
	}
	return &FileStore{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

var _ store.BlobStore = (*FileStore)(nil)

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	return s.basePath
}

func (s *FileStore) fullPath(bucket, path string) (string, error) {
	key, err := sanitizeKey(bucket + "/" + path)
	if err != nil {
		return "", err
	}
	if !strings.Contains(key, "/") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.basePath, filepath.FromSlash(key)), nil
}

// Upload implements store.BlobStore.Upload.
func (s *FileStore) Upload(ctx context.Context, bucket, path string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.fullPath(bucket, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("blob: ensure directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("blob: write file: %w", err)
	}
	return nil
}

// PublicURL implements store.BlobStore.PublicURL.
func (s *FileStore) PublicURL(bucket, path string) string {
	if s.publicBaseURL == "" || bucket == "" || path == "" {
		return ""
	}
	return s.publicBaseURL + "/" + escapePath(bucket) + "/" + escapePath(path)
}

// Remove implements store.BlobStore.Remove.
func (s *FileStore) Remove(ctx context.Context, bucket, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.fullPath(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s/%s", store.ErrBlobNotFound, bucket, path)
		}
		return fmt.Errorf("blob: remove file: %w", err)
	}
	return nil
}

// PathFromURL implements store.BlobStore.PathFromURL.
func (s *FileStore) PathFromURL(bucket, rawURL string) (string, error) {
	if s.publicBaseURL == "" {
		return "", store.ErrBlobNotFound
	}
	return pathAfterPrefix(rawURL, s.publicBaseURL+"/"+escapePath(bucket)+"/")
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
