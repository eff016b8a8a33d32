package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/gearcast-api/internal/generation"
)

// MockProvider implements generation.Provider.
type MockProvider struct {
	GenerateVideoFn func(ctx context.Context, req generation.Request) (generation.Response, error)

	// Default return values when GenerateVideoFn is nil
	Response generation.Response
	Err      error

	mu       sync.Mutex
	requests []generation.Request
}

var _ generation.Provider = (*MockProvider)(nil)

// Name implements generation.Provider.
func (m *MockProvider) Name() string { return "mock" }

// GenerateVideo implements generation.Provider.
func (m *MockProvider) GenerateVideo(ctx context.Context, req generation.Request) (generation.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateVideoFn != nil {
		return m.GenerateVideoFn(ctx, req)
	}
	return m.Response, m.Err
}

// Requests returns the requests received so far.
func (m *MockProvider) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Request(nil), m.requests...)
}
