// ABOUTME: Exercise model for the static catalog.
// ABOUTME: JSON layout matches the hand-edited fitness_library.json files.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is a 1-5 rating. Library files store it either as a number or as
// a numeric string, so both decode.
type Difficulty int

// UnmarshalJSON accepts 3 and "3".
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*d = Difficulty(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("difficulty must be a number: %s", data)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("difficulty must be a number: %q", s)
	}
	*d = Difficulty(n)
	return nil
}

// Exercise is one catalog entry.
type Exercise struct {
	ID            string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string     `json:"name" yaml:"name" validate:"required"`
	TargetMuscles []string   `json:"target_muscles" yaml:"target_muscles" validate:"min=1,dive,required"`
	Equipment     string     `json:"equipment" yaml:"equipment"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty" validate:"min=1,max=5"`
	Description   string     `json:"description" yaml:"description"`
}

// Targets reports whether the exercise lists muscle among its targets.
func (e *Exercise) Targets(muscle string) bool {
	for _, m := range e.TargetMuscles {
		if m == muscle {
			return true
		}
	}
	return false
}

// Clone returns a copy with its own muscle slice.
func (e Exercise) Clone() Exercise {
	c := e
	c.TargetMuscles = append([]string(nil), e.TargetMuscles...)
	return c
}
