// ABOUTME: Training ledger: one record per user per day, merged on conflict.
// ABOUTME: Exercises and group counts are stored as JSON arrays in TEXT columns.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// trainingPolicy combines a second save for the same day with the first.
const trainingPolicy = models.Accumulate

// SaveTrainingRecord stores the day's exercises for the current user. If the
// day already has a record the two are combined with trainingPolicy:
// existing exercises keep their position and new ones are appended. Blank
// names, negative counts and sums that overflow are ErrIntegrityViolation.
func (d *DB) SaveTrainingRecord(ctx context.Context, timestamp string, exercises []string, counts []int) (models.SaveOutcome, error) {
	const op = "save training record"
	who, err := d.requireSession(op)
	if err != nil {
		return models.SaveOutcome{}, err
	}

	incoming, err := models.TallyOf(exercises, counts)
	if err != nil {
		return models.SaveOutcome{}, fmt.Errorf("%s: %w", op, err)
	}

	var out models.SaveOutcome
	err = d.withTx(ctx, op, func(tx *sql.Tx) error {
		out, err = d.mergeTraining(ctx, tx, who.UserID, timestamp, incoming)
		return err
	})
	if err != nil {
		return models.SaveOutcome{}, err
	}

	d.log.Info().
		Str("username", who.Username).
		Str("timestamp", timestamp).
		Stringer("kind", out.Kind).
		Stringer("policy", trainingPolicy).
		Int64("id", out.ID).
		Msg("training record saved")
	return out, nil
}

// mergeTraining inserts the day's record or combines incoming into the existing
// one, inside tx.
func (d *DB) mergeTraining(ctx context.Context, tx *sql.Tx, userID int64, timestamp string, incoming *models.Tally) (models.SaveOutcome, error) {
	var (
		id                 int64
		rawNames, rawCount string
	)
	err := tx.QueryRowContext(ctx,
		`SELECT id, exercises, group_counts FROM training_records WHERE user_id = ? AND timestamp = ?`,
		userID, timestamp).Scan(&id, &rawNames, &rawCount)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		names, nums, err := encodeTally(incoming)
		if err != nil {
			return models.SaveOutcome{}, err
		}
		now := d.timestamp()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO training_records (user_id, timestamp, exercises, group_counts, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			userID, timestamp, names, nums, now, now)
		if err != nil {
			return models.SaveOutcome{}, err
		}
		if id, err = res.LastInsertId(); err != nil {
			return models.SaveOutcome{}, err
		}
		return models.SaveOutcome{Kind: models.Inserted, ID: id}, nil

	case err != nil:
		return models.SaveOutcome{}, err
	}

	existing, err := decodeTally(rawNames, rawCount)
	if err != nil {
		return models.SaveOutcome{}, err
	}
	merged, err := models.Combine(trainingPolicy, existing, incoming)
	if err != nil {
		return models.SaveOutcome{}, err
	}
	names, nums, err := encodeTally(merged)
	if err != nil {
		return models.SaveOutcome{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE training_records SET exercises = ?, group_counts = ?, updated_at = ? WHERE id = ?`,
		names, nums, d.timestamp(), id); err != nil {
		return models.SaveOutcome{}, err
	}
	return models.SaveOutcome{Kind: models.Merged, ID: id}, nil
}

// GetTrainingRecords returns the current user's records, most recently created
// first. A non-positive limit means models.DefaultLimit.
func (d *DB) GetTrainingRecords(ctx context.Context, limit int) ([]models.TrainingRecord, error) {
	const op = "get training records"
	who, err := d.requireSession(op)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	return d.trainingRecords(ctx, op, who.UserID, limit)
}

// trainingRecords lists a user's records; a negative limit returns all of them.
func (d *DB) trainingRecords(ctx context.Context, op string, userID int64, limit int) ([]models.TrainingRecord, error) {
	var records []models.TrainingRecord
	err := d.withTx(ctx, op, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT id, user_id, timestamp, exercises, group_counts, created_at, updated_at
			 FROM training_records WHERE user_id = ?
			 ORDER BY created_at DESC, id DESC LIMIT ?`,
			userID, limit)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			r, err := scanTrainingRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func scanTrainingRecord(rows *sql.Rows) (models.TrainingRecord, error) {
	var (
		r                    models.TrainingRecord
		rawNames, rawCounts  string
		createdAt, updatedAt string
	)
	if err := rows.Scan(&r.ID, &r.UserID, &r.Timestamp, &rawNames, &rawCounts, &createdAt, &updatedAt); err != nil {
		return r, err
	}
	t, err := decodeTally(rawNames, rawCounts)
	if err != nil {
		return r, err
	}
	r.Exercises = t.Names()
	r.GroupCounts = t.Counts()
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return r, nil
}

func encodeTally(t *models.Tally) (string, string, error) {
	names, err := json.Marshal(t.Names())
	if err != nil {
		return "", "", fmt.Errorf("encode exercises: %w", err)
	}
	counts, err := json.Marshal(t.Counts())
	if err != nil {
		return "", "", fmt.Errorf("encode group counts: %w", err)
	}
	return string(names), string(counts), nil
}

// decodeTally parses stored columns. Malformed or unpaired data is an
// integrity violation.
func decodeTally(rawNames, rawCounts string) (*models.Tally, error) {
	var (
		names  []string
		counts []int
	)
	if err := json.Unmarshal([]byte(rawNames), &names); err != nil {
		return nil, fmt.Errorf("%w: decode exercises: %w", models.ErrIntegrityViolation, err)
	}
	if err := json.Unmarshal([]byte(rawCounts), &counts); err != nil {
		return nil, fmt.Errorf("%w: decode group counts: %w", models.ErrIntegrityViolation, err)
	}
	return models.TallyOf(names, counts)
}
