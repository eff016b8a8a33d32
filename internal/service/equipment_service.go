package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// Upload is a file received for attachment to an equipment.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EquipmentService manages equipment and their attached assets.
type EquipmentService interface {
	// Create inserts a new equipment with empty asset lists.
	Create(ctx context.Context, name string) (*domain.Equipment, error)

	// List returns every equipment, oldest first.
	List(ctx context.Context) ([]*domain.Equipment, error)

	// Get returns one equipment or domain.ErrEquipmentNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Equipment, error)

	// Update renames an equipment.
	Update(ctx context.Context, id uuid.UUID, name string) (*domain.Equipment, error)

	// AttachAsset uploads a file and appends its public URL to the kind's list.
	AttachAsset(ctx context.Context, id uuid.UUID, kind domain.AssetKind, upload Upload) (*domain.Equipment, error)

	// RemoveAsset detaches url from the kind's list and then deletes the
	// blob on a best-effort basis. The cleanup outcome never becomes an error.
	RemoveAsset(ctx context.Context, id uuid.UUID, kind domain.AssetKind, url string) (*domain.Equipment, store.BlobCleanup, error)
}

// Buckets maps asset kinds to blob store buckets.
type Buckets struct {
	Manuals string
	Images  string
}

func (b Buckets) forKind(kind domain.AssetKind) string {
	if kind == domain.AssetKindManual {
		return b.Manuals
	}
	return b.Images
}

type equipmentServiceImpl struct {
	equipment store.EquipmentStore
	blobs     store.BlobStore
	buckets   Buckets
	db        *sql.DB
	logger    *slog.Logger
}

// NewEquipmentService creates an EquipmentService. db may be nil, in which
// case asset list updates run without a transaction.
func NewEquipmentService(
	equipment store.EquipmentStore,
	blobs store.BlobStore,
	buckets Buckets,
	db *sql.DB,
	logger *slog.Logger,
) (EquipmentService, error) {
	if equipment == nil {
		return nil, &ServiceError{Service: "equipment", Operation: "create_service", Message: "equipment store cannot be nil"}
	}
	if blobs == nil {
		return nil, &ServiceError{Service: "equipment", Operation: "create_service", Message: "blob store cannot be nil"}
	}
	if buckets.Manuals == "" || buckets.Images == "" {
		return nil, &ServiceError{Service: "equipment", Operation: "create_service", Message: "bucket names cannot be empty"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &equipmentServiceImpl{
		equipment: equipment,
		blobs:     blobs,
		buckets:   buckets,
		db:        db,
		logger:    logger.With("component", "equipment_service"),
	}, nil
}

func (s *equipmentServiceImpl) Create(ctx context.Context, name string) (*domain.Equipment, error) {
	equipment, err := domain.NewEquipment(name)
	if err != nil {
		return nil, err
	}

	if err := s.equipment.Create(ctx, equipment); err != nil {
		s.logger.ErrorContext(ctx, "failed to create equipment", "error", err)
		return nil, NewServiceError("equipment", "create", "failed to save equipment", err)
	}

	s.logger.InfoContext(ctx, "equipment created", "equipment_id", equipment.ID)
	return equipment, nil
}

func (s *equipmentServiceImpl) List(ctx context.Context) ([]*domain.Equipment, error) {
	list, err := s.equipment.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list equipment", "error", err)
		return nil, NewServiceError("equipment", "list", "failed to list equipment", err)
	}
	return list, nil
}

func (s *equipmentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	equipment, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.ErrorContext(ctx, "failed to get equipment", "error", err, "equipment_id", id)
		}
		return nil, NewServiceError("equipment", "get", "failed to get equipment", err)
	}
	return equipment, nil
}

func (s *equipmentServiceImpl) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Equipment, error) {
	var updated *domain.Equipment
	err := s.modify(ctx, id, func(e *domain.Equipment) error {
		if err := e.Rename(name); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, NewServiceError("equipment", "update", "failed to update equipment", err)
	}

	s.logger.InfoContext(ctx, "equipment updated", "equipment_id", id)
	return updated, nil
}

func (s *equipmentServiceImpl) AttachAsset(
	ctx context.Context,
	id uuid.UUID,
	kind domain.AssetKind,
	upload Upload,
) (*domain.Equipment, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidAssetKind
	}

	// Existence is checked before anything is uploaded.
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(upload.Data) == 0 {
		return nil, domain.ErrEmptyUpload
	}

	bucket := s.buckets.forKind(kind)
	path := domain.AssetPath(id, upload.Filename)
	log := s.logger.With("equipment_id", id, "bucket", bucket, "path", path)

	if err := s.blobs.Upload(ctx, bucket, path, upload.Data, upload.ContentType); err != nil {
		log.ErrorContext(ctx, "failed to upload asset", "error", err)
		return nil, NewServiceError("equipment", "attach_asset", "failed to upload asset", err)
	}

	// An uploaded blob without a URL stays in the bucket.
	url := s.blobs.PublicURL(bucket, path)
	if url == "" {
		log.ErrorContext(ctx, "blob store returned no public url")
		return nil, domain.ErrNoPublicURL
	}

	var updated *domain.Equipment
	err := s.modify(ctx, id, func(e *domain.Equipment) error {
		e.AppendAsset(kind, url)
		updated = e
		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to record asset", "error", err)
		return nil, NewServiceError("equipment", "attach_asset", "failed to record asset", err)
	}

	log.InfoContext(ctx, "asset attached", "kind", kind, "size", len(upload.Data))
	return updated, nil
}

func (s *equipmentServiceImpl) RemoveAsset(
	ctx context.Context,
	id uuid.UUID,
	kind domain.AssetKind,
	url string,
) (*domain.Equipment, store.BlobCleanup, error) {
	if !kind.Valid() {
		return nil, store.BlobCleanup{}, domain.ErrInvalidAssetKind
	}

	var updated *domain.Equipment
	err := s.modify(ctx, id, func(e *domain.Equipment) error {
		if err := e.RemoveAsset(kind, url); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, store.BlobCleanup{}, NewServiceError("equipment", "remove_asset", "failed to detach asset", err)
	}

	cleanup := s.deleteBlob(ctx, s.buckets.forKind(kind), url)
	if cleanup.OK() {
		s.logger.InfoContext(ctx, "asset removed", "equipment_id", id, "cleanup", cleanup)
	} else {
		s.logger.WarnContext(ctx, "asset detached but blob cleanup failed",
			"equipment_id", id,
			"url", url,
			"cleanup", cleanup)
	}
	return updated, cleanup, nil
}

// deleteBlob removes the blob behind url. Failures are reported in the
// returned value only.
func (s *equipmentServiceImpl) deleteBlob(ctx context.Context, bucket, url string) store.BlobCleanup {
	cleanup := store.BlobCleanup{Bucket: bucket}

	path, err := s.blobs.PathFromURL(bucket, url)
	if err != nil {
		cleanup.Err = fmt.Errorf("resolve blob path: %w", err)
		return cleanup
	}
	cleanup.Path = path

	if err := s.blobs.Remove(ctx, bucket, path); err != nil {
		cleanup.Err = err
	}
	return cleanup
}

// modify reads the equipment, applies fn and writes the whole row back,
// inside a transaction when a database handle is available.
func (s *equipmentServiceImpl) modify(ctx context.Context, id uuid.UUID, fn func(*domain.Equipment) error) error {
	apply := func(ctx context.Context, equipment store.EquipmentStore) error {
		e, err := equipment.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
		return equipment.Update(ctx, e)
	}

	if s.db == nil {
		return apply(ctx, s.equipment)
	}
	return store.WithinTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return apply(ctx, s.equipment.WithTx(tx))
	})
}
