package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// MockEquipmentStore implements store.EquipmentStore.
type MockEquipmentStore struct {
	CreateFn  func(ctx context.Context, equipment *domain.Equipment) error
	ListFn    func(ctx context.Context) ([]*domain.Equipment, error)
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)
	UpdateFn  func(ctx context.Context, equipment *domain.Equipment) error

	mu          sync.Mutex
	items       map[uuid.UUID]*domain.Equipment
	order       []uuid.UUID
	UpdateCalls int
	TxCalls     int
}

// NewMockEquipmentStore returns an empty in-memory equipment store.
func NewMockEquipmentStore(seed ...*domain.Equipment) *MockEquipmentStore {
	m := &MockEquipmentStore{items: map[uuid.UUID]*domain.Equipment{}}
	for _, e := range seed {
		m.put(e)
	}
	return m
}

var _ store.EquipmentStore = (*MockEquipmentStore)(nil)

func (m *MockEquipmentStore) put(e *domain.Equipment) {
	if m.items == nil {
		m.items = map[uuid.UUID]*domain.Equipment{}
	}
	if _, ok := m.items[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.items[e.ID] = cloneEquipment(e)
}

// Create implements store.EquipmentStore.
func (m *MockEquipmentStore) Create(ctx context.Context, equipment *domain.Equipment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, equipment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(equipment)
	return nil
}

// List implements store.EquipmentStore.
func (m *MockEquipmentStore) List(ctx context.Context) ([]*domain.Equipment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Equipment, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneEquipment(m.items[id]))
	}
	return out, nil
}

// GetByID implements store.EquipmentStore.
func (m *MockEquipmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, store.ErrEquipmentNotFound
	}
	return cloneEquipment(e), nil
}

// Update implements store.EquipmentStore.
func (m *MockEquipmentStore) Update(ctx context.Context, equipment *domain.Equipment) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, equipment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[equipment.ID]; !ok {
		return store.ErrEquipmentNotFound
	}
	m.put(equipment)
	return nil
}

// WithTx returns the same mock; calls are counted in TxCalls.
func (m *MockEquipmentStore) WithTx(_ *sql.Tx) store.EquipmentStore {
	m.mu.Lock()
	m.TxCalls++
	m.mu.Unlock()
	return m
}

func cloneEquipment(e *domain.Equipment) *domain.Equipment {
	c := *e
	c.Manuals = append([]string{}, e.Manuals...)
	c.Images = append([]string{}, e.Images...)
	return &c
}
