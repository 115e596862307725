// ABOUTME: BodyStats model: height, weight and optional body fat / BMR per user per day.
// ABOUTME: A second save for the same day replaces the whole row.
package models

import "time"

// BodyStats is one day's body measurement. BodyFat and BasalMetabolicRate are
// optional and carry no derived computation.
type BodyStats struct {
	ID                 int64     `json:"id" yaml:"id"`
	UserID             int64     `json:"user_id" yaml:"user_id"`
	Timestamp          string    `json:"timestamp" yaml:"timestamp"`
	Height             float64   `json:"height" yaml:"height"`
	Weight             float64   `json:"weight" yaml:"weight"`
	BodyFat            *float64  `json:"body_fat,omitempty" yaml:"body_fat,omitempty"`
	BasalMetabolicRate *float64  `json:"basal_metabolic_rate,omitempty" yaml:"basal_metabolic_rate,omitempty"`
	CreatedAt          time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a copy that shares no pointers with r.
func (b BodyStats) Clone() BodyStats {
	c := b
	if b.BodyFat != nil {
		v := *b.BodyFat
		c.BodyFat = &v
	}
	if b.BasalMetabolicRate != nil {
		v := *b.BasalMetabolicRate
		c.BasalMetabolicRate = &v
	}
	return c
}

// BMI is weight over height in metres squared. It is for display only and is
// never stored. ok is false when height is not positive.
func (b BodyStats) BMI() (bmi float64, ok bool) {
	if b.Height <= 0 {
		return 0, false
	}
	m := b.Height / 100
	return b.Weight / (m * m), true
}

// BodyStatsInput is the caller-supplied part of a body stats save.
type BodyStatsInput struct {
	Timestamp          string
	Height             float64
	Weight             float64
	BodyFat            *float64
	BasalMetabolicRate *float64
}

// NewBodyStatsInput builds an input with only the required fields set.
func NewBodyStatsInput(timestamp string, height, weight float64) *BodyStatsInput {
	return &BodyStatsInput{Timestamp: timestamp, Height: height, Weight: weight}
}

// WithBodyFat sets the body fat percentage.
func (in *BodyStatsInput) WithBodyFat(v float64) *BodyStatsInput {
	in.BodyFat = &v
	return in
}

// WithBasalMetabolicRate sets the basal metabolic rate.
func (in *BodyStatsInput) WithBasalMetabolicRate(v float64) *BodyStatsInput {
	in.BasalMetabolicRate = &v
	return in
}
