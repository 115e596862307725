// ABOUTME: Scoped transactions and the session gate used by every ledger call.
// ABOUTME: withTx commits on success and rolls back on error or panic.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/auth"
	"github.com/harperreed/fitness/internal/models"
)

// withTx runs fn inside one transaction. Nothing fn writes is visible unless
// it returns nil and the commit succeeds.
func (d *DB) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, unavailable(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				d.log.Error().Err(rbErr).Str("op", op).Msg("rollback failed")
			}
			d.log.Debug().Err(err).Str("op", op).Msg("transaction rolled back")
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("%s: commit: %w", op, unavailable(cErr))
			d.log.Error().Err(err).Str("op", op).Msg("commit failed")
		}
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}
	return nil
}

// requireSession returns the live identity or ErrUnauthenticated. It never
// touches the database.
func (d *DB) requireSession(op string) (auth.Identity, error) {
	id, ok := d.session.Current()
	if !ok {
		d.log.Warn().Str("op", op).Msg("rejected: no active session")
		return auth.Identity{}, fmt.Errorf("%s: %w", op, models.ErrUnauthenticated)
	}
	return id, nil
}
