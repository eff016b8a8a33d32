package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
)

// EquipmentStore defines the interface for equipment persistence.
type EquipmentStore interface {
	// Create inserts a new equipment row.
	// Returns validation errors if the equipment is invalid.
	Create(ctx context.Context, equipment *domain.Equipment) error

	// List returns all equipment ordered by creation time, oldest first.
	// NULL asset lists are returned as empty slices.
	List(ctx context.Context) ([]*domain.Equipment, error)

	// GetByID retrieves equipment by its ID.
	// Returns ErrEquipmentNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)

	// Update overwrites the name, manuals and images of an existing row.
	// Returns ErrEquipmentNotFound if it does not exist.
	//
	// Asset mutations are read-modify-write on the whole list. Two concurrent
	// writers on the same equipment can overwrite each other's changes.
	Update(ctx context.Context, equipment *domain.Equipment) error

	// WithTx returns a new EquipmentStore that uses the provided transaction.
	WithTx(tx *sql.Tx) EquipmentStore
}
