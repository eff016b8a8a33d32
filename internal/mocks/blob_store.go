package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/phrazzld/gearcast-api/internal/store"
)

// MockBlobStore implements store.BlobStore in memory. Public URLs are
// BaseURL + "/" + bucket + "/" + path.
type MockBlobStore struct {
	BaseURL string

	UploadFn    func(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURLFn func(bucket, path string) string
	RemoveFn    func(ctx context.Context, bucket, path string) error

	mu      sync.Mutex
	Objects map[string][]byte
	Removed []string
}

// NewMockBlobStore returns an empty in-memory blob store.
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		BaseURL: "https://blobs.test",
		Objects: map[string][]byte{},
	}
}

var _ store.BlobStore = (*MockBlobStore)(nil)

// Upload implements store.BlobStore.
func (m *MockBlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, bucket, path, data, contentType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[bucket+"/"+path] = append([]byte(nil), data...)
	return nil
}

// PublicURL implements store.BlobStore.
func (m *MockBlobStore) PublicURL(bucket, path string) string {
	if m.PublicURLFn != nil {
		return m.PublicURLFn(bucket, path)
	}
	return m.BaseURL + "/" + bucket + "/" + path
}

// Remove implements store.BlobStore.
func (m *MockBlobStore) Remove(ctx context.Context, bucket, path string) error {
	m.mu.Lock()
	m.Removed = append(m.Removed, bucket+"/"+path)
	m.mu.Unlock()

	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, bucket, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := bucket + "/" + path
	if _, ok := m.Objects[key]; !ok {
		return store.ErrBlobNotFound
	}
	delete(m.Objects, key)
	return nil
}

// PathFromURL implements store.BlobStore.
func (m *MockBlobStore) PathFromURL(bucket, url string) (string, error) {
	prefix := m.BaseURL + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", store.ErrBlobNotFound
	}
	return strings.TrimPrefix(url, prefix), nil
}

// Has reports whether an object is stored.
func (m *MockBlobStore) Has(bucket, path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[bucket+"/"+path]
	return ok
}
