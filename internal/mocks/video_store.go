package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// VideoUpdateCall records one Update call.
type VideoUpdateCall struct {
	ID     uuid.UUID
	Update store.VideoUpdate
}

// MockVideoStore implements store.VideoStore.
type MockVideoStore struct {
	CreateFn       func(ctx context.Context, video *domain.Video) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	ListFn         func(ctx context.Context, equipmentID uuid.UUID) ([]*domain.Video, error)
	ListByStatusFn func(ctx context.Context, status domain.VideoStatus) ([]*domain.Video, error)
	UpdateFn       func(ctx context.Context, id uuid.UUID, update store.VideoUpdate) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error

	mu          sync.Mutex
	items       map[uuid.UUID]*domain.Video
	updateCalls []VideoUpdateCall
}

// NewMockVideoStore returns an in-memory video store.
func NewMockVideoStore(seed ...*domain.Video) *MockVideoStore {
	m := &MockVideoStore{items: map[uuid.UUID]*domain.Video{}}
	for _, v := range seed {
		c := *v
		m.items[v.ID] = &c
	}
	return m
}

var _ store.VideoStore = (*MockVideoStore)(nil)

// Create implements store.VideoStore.
func (m *MockVideoStore) Create(ctx context.Context, video *domain.Video) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, video)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *video
	m.items[video.ID] = &c
	return nil
}

// GetByID implements store.VideoStore.
func (m *MockVideoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		return nil, store.ErrVideoNotFound
	}
	c := *v
	return &c, nil
}

// List implements store.VideoStore, newest first.
func (m *MockVideoStore) List(ctx context.Context, equipmentID uuid.UUID) ([]*domain.Video, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, equipmentID)
	}
	return m.filter(func(v *domain.Video) bool {
		return equipmentID == uuid.Nil || v.EquipmentID == equipmentID
	}, true), nil
}

// ListByStatus implements store.VideoStore, oldest first.
func (m *MockVideoStore) ListByStatus(ctx context.Context, status domain.VideoStatus) ([]*domain.Video, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return m.filter(func(v *domain.Video) bool { return v.Status == status }, false), nil
}

func (m *MockVideoStore) filter(keep func(*domain.Video) bool, newestFirst bool) []*domain.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Video{}
	for _, v := range m.items {
		if keep(v) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Update implements store.VideoStore. Updating a missing row is a no-op.
func (m *MockVideoStore) Update(ctx context.Context, id uuid.UUID, update store.VideoUpdate) error {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, VideoUpdateCall{ID: id, Update: update})
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		return nil
	}
	v.Status = update.Status
	if update.ResultURL != nil {
		v.ResultURL = domain.NormalizeResultURL(*update.ResultURL)
	}
	if update.ProviderTaskID != nil {
		v.ProviderTaskID = *update.ProviderTaskID
	}
	return nil
}

// Delete implements store.VideoStore.
func (m *MockVideoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return store.ErrVideoNotFound
	}
	delete(m.items, id)
	return nil
}

// UpdateCalls returns a copy of the recorded Update calls.
func (m *MockVideoStore) UpdateCalls() []VideoUpdateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]VideoUpdateCall(nil), m.updateCalls...)
}
