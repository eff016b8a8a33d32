package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/gearcast-api/internal/platform/logger"
)

// TxFn is the unit of work run by WithinTx.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// WithinTx runs fn in a transaction. The transaction commits when fn returns
// nil and rolls back when fn fails or panics; a panic is re-raised after the
// rollback.
func WithinTx(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("transaction rollback failed", slog.String("error", rbErr.Error()))
			if p == nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
		if p != nil {
			// ALLOW-PANIC: re-raise after releasing the transaction
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	committed = true
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
