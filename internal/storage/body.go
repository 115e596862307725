// ABOUTME: Body metrics ledger: one measurement per user per day, replaced on re-save.
// ABOUTME: Optional fields are nullable columns; nothing is derived from them.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// bodyPolicy combines a second save for the same day with the first. The
// upsert in SaveBodyStats is its SQL form.
const bodyPolicy = models.Overwrite

// SaveBodyStats stores the day's measurement for the current user. An existing
// row for the same day is combined with bodyPolicy: every column is replaced,
// so optional fields left unset are cleared. It returns the row id on both paths.
func (d *DB) SaveBodyStats(ctx context.Context, in *models.BodyStatsInput) (int64, error) {
	const op = "save body stats"
	who, err := d.requireSession(op)
	if err != nil {
		return 0, err
	}
	if in == nil {
		return 0, fmt.Errorf("%s: %w: no measurement given", op, models.ErrIntegrityViolation)
	}

	var id int64
	err = d.withTx(ctx, op, func(tx *sql.Tx) error {
		id, err = d.upsertBody(ctx, tx, who.UserID, in)
		return err
	})
	if err != nil {
		return 0, err
	}

	d.log.Info().
		Str("username", who.Username).
		Str("timestamp", in.Timestamp).
		Int64("id", id).
		Stringer("policy", bodyPolicy).
		Msg("body stats saved")
	return id, nil
}

// upsertBody writes the day's measurement inside tx and returns its row id.
func (d *DB) upsertBody(ctx context.Context, tx *sql.Tx, userID int64, in *models.BodyStatsInput) (int64, error) {
	var id int64
	now := d.timestamp()
	err := tx.QueryRowContext(ctx,
		`INSERT INTO body_stats (user_id, timestamp, height, weight, body_fat, basal_metabolic_rate, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, timestamp) DO UPDATE SET
			height = excluded.height,
			weight = excluded.weight,
			body_fat = excluded.body_fat,
			basal_metabolic_rate = excluded.basal_metabolic_rate,
			updated_at = excluded.updated_at
		 RETURNING id`,
		userID, in.Timestamp, in.Height, in.Weight,
		nullFloat(in.BodyFat), nullFloat(in.BasalMetabolicRate), now, now,
	).Scan(&id)
	return id, err
}

// GetBodyStatsHistory returns the current user's measurements, newest day
// first. A non-positive limit means models.DefaultLimit.
func (d *DB) GetBodyStatsHistory(ctx context.Context, limit int) ([]models.BodyStats, error) {
	const op = "get body stats history"
	who, err := d.requireSession(op)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	return d.bodyStats(ctx, op, who.UserID, limit)
}

// bodyStats lists a user's measurements; a negative limit returns all of them.
func (d *DB) bodyStats(ctx context.Context, op string, userID int64, limit int) ([]models.BodyStats, error) {
	var stats []models.BodyStats
	err := d.withTx(ctx, op, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, bodyStatsSelect+`
			 WHERE user_id = ? ORDER BY timestamp DESC LIMIT ?`,
			userID, limit)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			s, err := scanBodyStats(rows)
			if err != nil {
				return err
			}
			stats = append(stats, *s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetLatestBodyStats returns the current user's newest measurement. The bool is
// false when the user has none.
func (d *DB) GetLatestBodyStats(ctx context.Context) (*models.BodyStats, bool, error) {
	const op = "get latest body stats"
	who, err := d.requireSession(op)
	if err != nil {
		return nil, false, err
	}

	var latest *models.BodyStats
	err = d.withTx(ctx, op, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, bodyStatsSelect+`
			 WHERE user_id = ? ORDER BY timestamp DESC LIMIT 1`, who.UserID)
		s, err := scanBodyStats(row)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		latest = s
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return latest, latest != nil, nil
}

const bodyStatsSelect = `SELECT id, user_id, timestamp, height, weight, body_fat, basal_metabolic_rate, created_at, updated_at
			 FROM body_stats`

type scanner interface {
	Scan(dest ...any) error
}

func scanBodyStats(s scanner) (*models.BodyStats, error) {
	var (
		b                    models.BodyStats
		bodyFat, bmr         sql.NullFloat64
		createdAt, updatedAt string
	)
	if err := s.Scan(&b.ID, &b.UserID, &b.Timestamp, &b.Height, &b.Weight,
		&bodyFat, &bmr, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if bodyFat.Valid {
		v := bodyFat.Float64
		b.BodyFat = &v
	}
	if bmr.Valid {
		v := bmr.Float64
		b.BasalMetabolicRate = &v
	}
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return &b, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
