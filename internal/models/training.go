// ABOUTME: TrainingRecord model: one row of exercises and group counts per user per day.
// ABOUTME: Also defines the outcome reported by a training save.
package models

import "time"

// DefaultLimit is the number of rows returned by history queries when no
// positive limit is given.
const DefaultLimit = 10

// TrainingRecord holds the exercises done on one calendar day.
// Exercises[i] pairs with GroupCounts[i]; names are unique within a record.
type TrainingRecord struct {
	ID          int64     `json:"id" yaml:"id"`
	UserID      int64     `json:"user_id" yaml:"user_id"`
	Timestamp   string    `json:"timestamp" yaml:"timestamp"`
	Exercises   []string  `json:"exercises" yaml:"exercises"`
	GroupCounts []int     `json:"group_counts" yaml:"group_counts"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Tally returns the record's pairs as a Tally.
func (r *TrainingRecord) Tally() (*Tally, error) {
	return TallyOf(r.Exercises, r.GroupCounts)
}

// Clone returns a deep copy so callers never share slices with the store.
func (r TrainingRecord) Clone() TrainingRecord {
	c := r
	c.Exercises = append([]string(nil), r.Exercises...)
	c.GroupCounts = append([]int(nil), r.GroupCounts...)
	return c
}

// SaveKind tells whether a training save created a row or merged into one.
type SaveKind int

const (
	Inserted SaveKind = iota + 1
	Merged
)

func (k SaveKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Merged:
		return "merged"
	default:
		return "unknown"
	}
}

// SaveOutcome is returned by a training save. ID is the row that now holds the day.
type SaveOutcome struct {
	Kind SaveKind `json:"kind"`
	ID   int64    `json:"id"`
}
