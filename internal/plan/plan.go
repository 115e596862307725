// ABOUTME: Rule-based workout plan filler over the exercise catalog.
// ABOUTME: Fills the requested minutes with matching exercises, repeating them in order.
package plan

import (
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/catalog"
	"github.com/harperreed/fitness/internal/models"
)

// MinutesPerExercise is the time budgeted for one slot.
const MinutesPerExercise = 5

// ErrNoMatch is returned when no exercise targets the requested muscle.
var ErrNoMatch = errors.New("no exercise targets that muscle")

// Library supplies candidate exercises. *catalog.Catalog implements it.
type Library interface {
	Match(muscle string, maxDifficulty int) []models.Exercise
}

// Request describes the session to plan.
type Request struct {
	Minutes       int    `json:"minutes" validate:"gt=0"`
	Muscle        string `json:"muscle" validate:"required"`
	MaxDifficulty int    `json:"max_difficulty" validate:"min=1,max=5"`
}

// Plan is an ordered list of exercise slots.
type Plan struct {
	Request Request           `json:"request"`
	Slots   []models.Exercise `json:"slots"`
}

// Generate builds a plan of max(1, minutes/MinutesPerExercise) slots.
func Generate(lib Library, req Request) (*Plan, error) {
	if err := catalog.Validate(&req); err != nil {
		return nil, fmt.Errorf("invalid plan request: %w", err)
	}

	candidates := lib.Match(req.Muscle, req.MaxDifficulty)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, req.Muscle)
	}

	total := max(1, req.Minutes/MinutesPerExercise)
	slots := make([]models.Exercise, total)
	for i := range slots {
		slots[i] = candidates[i%len(candidates)].Clone()
	}
	return &Plan{Request: req, Slots: slots}, nil
}

// Minutes is the time the plan fills.
func (p *Plan) Minutes() int {
	return len(p.Slots) * MinutesPerExercise
}

// Tally counts slots per exercise name, in first-appearance order. One slot
// is one group.
func (p *Plan) Tally() *models.Tally {
	t := models.NewTally()
	for _, ex := range p.Slots {
		// One per slot; a slot count never overflows.
		_ = t.Add(ex.Name, 1)
	}
	return t
}
