package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/gearcast-api/internal/store"
)

// SQLSTATE codes the stores translate.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
	invalidTextCode         = "22P02"
)

// MapError turns a driver error into a store sentinel, keeping the driver
// error in the chain. Errors without a mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %s: %w", store.ErrDuplicate, pgErr.ConstraintName, err)
	case foreignKeyViolationCode, checkViolationCode:
		return fmt.Errorf("%w: constraint %s: %w", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: column %s is required: %w", store.ErrInvalidEntity, pgErr.ColumnName, err)
	case invalidTextCode:
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	default:
		return err
	}
}

// requireRow reports notFound when an UPDATE or DELETE matched nothing.
func requireRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
