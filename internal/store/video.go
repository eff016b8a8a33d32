package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
)

// VideoUpdate describes the fields written when a generation run finishes.
// Nil pointers leave the stored column unchanged.
type VideoUpdate struct {
	Status         domain.VideoStatus
	ResultURL      *string
	ProviderTaskID *string
}

// VideoStore defines the interface for video task persistence.
type VideoStore interface {
	// Create inserts a new video task.
	Create(ctx context.Context, video *domain.Video) error

	// GetByID retrieves a video task by its ID.
	// Returns ErrVideoNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)

	// List returns video tasks newest first. An equipmentID other than
	// uuid.Nil restricts the result to tasks referencing that equipment.
	List(ctx context.Context, equipmentID uuid.UUID) ([]*domain.Video, error)

	// ListByStatus returns video tasks in the given status, oldest first.
	ListByStatus(ctx context.Context, status domain.VideoStatus) ([]*domain.Video, error)

	// Update applies a status change to a video task.
	// Updating a task that no longer exists is not an error; the write is
	// dropped and logged.
	Update(ctx context.Context, id uuid.UUID, update VideoUpdate) error

	// Delete removes a video task regardless of its status.
	// Returns ErrVideoNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
