package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/gearcast-api/internal/domain"
	"github.com/phrazzld/gearcast-api/internal/platform/logger"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// PostgresEquipmentStore implements store.EquipmentStore using PostgreSQL.
type PostgresEquipmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEquipmentStore creates a new PostgresEquipmentStore.
// If logger is nil, a default logger will be used.
func NewPostgresEquipmentStore(db store.DBTX, logger *slog.Logger) *PostgresEquipmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEquipmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "equipment_store")),
	}
}

var _ store.EquipmentStore = (*PostgresEquipmentStore)(nil)

// WithTx implements store.EquipmentStore.WithTx.
func (s *PostgresEquipmentStore) WithTx(tx *sql.Tx) store.EquipmentStore {
	return &PostgresEquipmentStore{db: tx, logger: s.logger}
}

// Create implements store.EquipmentStore.Create.
func (s *PostgresEquipmentStore) Create(ctx context.Context, equipment *domain.Equipment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := equipment.Validate(); err != nil {
		log.Warn("equipment validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO equipments (id, name, manuals, images)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		equipment.ID,
		equipment.Name,
		orEmpty(equipment.Manuals),
		orEmpty(equipment.Images),
	)
	if err != nil {
		log.Error("failed to create equipment",
			slog.String("equipment_id", equipment.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("equipment created", slog.String("equipment_id", equipment.ID.String()))
	return nil
}

const selectEquipment = `SELECT id, name, manuals, images FROM equipments`

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	var e domain.Equipment
	if err := row.Scan(&e.ID, &e.Name, textArray(&e.Manuals), textArray(&e.Images)); err != nil {
		return nil, err
	}
	e.Manuals = orEmpty(e.Manuals)
	e.Images = orEmpty(e.Images)
	return &e, nil
}

// List implements store.EquipmentStore.List.
func (s *PostgresEquipmentStore) List(ctx context.Context) ([]*domain.Equipment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectEquipment+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		log.Error("failed to list equipment", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	result := []*domain.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			log.Error("failed to scan equipment row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return result, nil
}

// GetByID implements store.EquipmentStore.GetByID.
func (s *PostgresEquipmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Equipment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	e, err := scanEquipment(s.db.QueryRowContext(ctx, selectEquipment+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("equipment not found", slog.String("equipment_id", id.String()))
			return nil, store.ErrEquipmentNotFound
		}
		log.Error("failed to get equipment",
			slog.String("equipment_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return e, nil
}

// Update implements store.EquipmentStore.Update.
func (s *PostgresEquipmentStore) Update(ctx context.Context, equipment *domain.Equipment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := equipment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE equipments
		SET name = $1, manuals = $2, images = $3, updated_at = now()
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		equipment.Name,
		orEmpty(equipment.Manuals),
		orEmpty(equipment.Images),
		equipment.ID,
	)
	if err != nil {
		log.Error("failed to update equipment",
			slog.String("equipment_id", equipment.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := requireRow(result, store.ErrEquipmentNotFound); err != nil {
		return err
	}

	log.Debug("equipment updated",
		slog.String("equipment_id", equipment.ID.String()),
		slog.Int("manuals", len(equipment.Manuals)),
		slog.Int("images", len(equipment.Images)))
	return nil
}
