// ABOUTME: Exercise catalog backed by a JSON file (fitness_library.json).
// ABOUTME: Owned value with explicit Load/Save; no package-level state.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrNotFound is returned when no exercise matches an id or prefix. It
	// wraps models.ErrNotFound.
	ErrNotFound = fmt.Errorf("exercise %w", models.ErrNotFound)
	// ErrAmbiguous is returned when a prefix matches more than one exercise.
	ErrAmbiguous = errors.New("ambiguous exercise id prefix")
)

// Catalog is an in-memory exercise library tied to the file it was loaded from.
// Mutations stay in memory until Save.
type Catalog struct {
	mu        sync.RWMutex
	path      string
	exercises []models.Exercise
}

// Load reads the catalog at path. A missing file yields an empty catalog that
// Save will create. Entries without an id are given one.
func Load(path string) (*Catalog, error) {
	c := &Catalog{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return c, nil
	}

	if err := json.Unmarshal(data, &c.exercises); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	for i := range c.exercises {
		if c.exercises[i].ID == "" {
			c.exercises[i].ID = newID()
		}
		normalize(&c.exercises[i])
	}
	return c, nil
}

// Path returns the file the catalog reads from and writes to.
func (c *Catalog) Path() string {
	return c.path
}

// Save writes the catalog back to its file.
func (c *Catalog) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}

	out := c.exercises
	if out == nil {
		out = []models.Exercise{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Add validates ex, assigns it an id, and appends it.
func (c *Catalog) Add(ex models.Exercise) (models.Exercise, error) {
	ex = ex.Clone()
	normalize(&ex)
	if err := Validate(&ex); err != nil {
		return models.Exercise{}, fmt.Errorf("add exercise: %w", err)
	}
	ex.ID = newID()

	c.mu.Lock()
	c.exercises = append(c.exercises, ex)
	c.mu.Unlock()
	return ex.Clone(), nil
}

// List returns copies of every exercise in file order.
func (c *Catalog) List() []models.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.exercises, func(models.Exercise) bool { return true })
}

// Len is the number of exercises.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.exercises)
}

// Get finds an exercise by full id or unique prefix.
func (c *Catalog) Get(idOrPrefix string) (models.Exercise, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, err := c.find(idOrPrefix)
	if err != nil {
		return models.Exercise{}, err
	}
	return c.exercises[i].Clone(), nil
}

// Delete removes an exercise by full id or unique prefix and returns it.
func (c *Catalog) Delete(idOrPrefix string) (models.Exercise, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, err := c.find(idOrPrefix)
	if err != nil {
		return models.Exercise{}, err
	}
	removed := c.exercises[i]
	c.exercises = append(c.exercises[:i], c.exercises[i+1:]...)
	return removed, nil
}

// Search returns exercises whose name, equipment or any target muscle contains
// keyword, compared under Unicode case folding. An empty keyword matches all.
func (c *Catalog) Search(keyword string) []models.Exercise {
	fold := cases.Fold()
	needle := fold.String(norm.NFC.String(strings.TrimSpace(keyword)))

	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.exercises, func(ex models.Exercise) bool {
		if strings.Contains(fold.String(ex.Name), needle) ||
			strings.Contains(fold.String(ex.Equipment), needle) {
			return true
		}
		for _, m := range ex.TargetMuscles {
			if strings.Contains(fold.String(m), needle) {
				return true
			}
		}
		return false
	})
}

// Match returns the exercises that target muscle at or below maxDifficulty.
// When none qualify it falls back to every exercise targeting muscle.
func (c *Catalog) Match(muscle string, maxDifficulty int) []models.Exercise {
	muscle = norm.NFC.String(strings.TrimSpace(muscle))

	c.mu.RLock()
	defer c.mu.RUnlock()
	matched := cloneAll(c.exercises, func(ex models.Exercise) bool {
		return ex.Targets(muscle) && int(ex.Difficulty) <= maxDifficulty
	})
	if len(matched) > 0 {
		return matched
	}
	return cloneAll(c.exercises, func(ex models.Exercise) bool {
		return ex.Targets(muscle)
	})
}

func (c *Catalog) find(idOrPrefix string) (int, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return -1, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	found := -1
	for i, ex := range c.exercises {
		if ex.ID == idOrPrefix {
			return i, nil
		}
		if strings.HasPrefix(ex.ID, idOrPrefix) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return found, nil
}

func cloneAll(in []models.Exercise, keep func(models.Exercise) bool) []models.Exercise {
	var out []models.Exercise
	for _, ex := range in {
		if keep(ex) {
			out = append(out, ex.Clone())
		}
	}
	return out
}

// normalize trims fields, drops empty muscles, and applies NFC so lookups
// compare equal regardless of how the text was typed.
func normalize(ex *models.Exercise) {
	ex.Name = norm.NFC.String(strings.TrimSpace(ex.Name))
	ex.Equipment = norm.NFC.String(strings.TrimSpace(ex.Equipment))
	ex.Description = strings.TrimSpace(ex.Description)
	muscles := ex.TargetMuscles[:0:0]
	for _, m := range ex.TargetMuscles {
		if m = norm.NFC.String(strings.TrimSpace(m)); m != "" {
			muscles = append(muscles, m)
		}
	}
	ex.TargetMuscles = muscles
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
