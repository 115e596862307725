// ABOUTME: Tests for the Exercise model and its tolerant difficulty decoding.
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseDecodesStringDifficulty(t *testing.T) {
	raw := `{"name": "push_up", "target_muscles": ["chest", "triceps"], "equipment": "none", "difficulty": "2", "description": "classic"}`

	var e Exercise
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, Difficulty(2), e.Difficulty)
	assert.Equal(t, []string{"chest", "triceps"}, e.TargetMuscles)
	assert.Empty(t, e.ID)
}

func TestExerciseDecodesNumericDifficulty(t *testing.T) {
	var e Exercise
	require.NoError(t, json.Unmarshal([]byte(`{"name": "squat", "difficulty": 4}`), &e))
	assert.Equal(t, Difficulty(4), e.Difficulty)
}

func TestExerciseRejectsBadDifficulty(t *testing.T) {
	var e Exercise
	assert.Error(t, json.Unmarshal([]byte(`{"name": "squat", "difficulty": "hard"}`), &e))
	assert.Error(t, json.Unmarshal([]byte(`{"name": "squat", "difficulty": true}`), &e))
}

func TestExerciseTargets(t *testing.T) {
	e := Exercise{Name: "plank", TargetMuscles: []string{"core", "shoulders"}}
	assert.True(t, e.Targets("core"))
	assert.False(t, e.Targets("Core"))
	assert.False(t, e.Targets("legs"))
}

func TestExerciseCloneIsIndependent(t *testing.T) {
	e := Exercise{Name: "plank", TargetMuscles: []string{"core"}}
	c := e.Clone()
	c.TargetMuscles[0] = "legs"
	assert.Equal(t, "core", e.TargetMuscles[0])
}
