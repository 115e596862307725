// ABOUTME: Ordered exercise→count map and the merge policies applied on day conflicts.
// ABOUTME: Training records merge with Accumulate; body stats use Overwrite.
package models

import (
	"fmt"
	"math"
	"strings"
)

// MergeStrategy names how a second write for the same day combines with the first.
type MergeStrategy int

const (
	// Accumulate adds incoming counts to the existing ones.
	Accumulate MergeStrategy = iota
	// Overwrite replaces existing values with incoming ones.
	Overwrite
)

func (s MergeStrategy) String() string {
	switch s {
	case Accumulate:
		return "accumulate"
	case Overwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("MergeStrategy(%d)", int(s))
	}
}

// Tally is an insertion-ordered map from exercise name to group count.
// The zero value is ready to use.
type Tally struct {
	names  []string
	counts map[string]int
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// TallyOf builds a Tally from positionally paired slices. Repeated names are
// accumulated into their first position. Blank names and negative counts are
// integrity violations.
func TallyOf(names []string, counts []int) (*Tally, error) {
	if len(names) != len(counts) {
		return nil, fmt.Errorf("%w: %d exercises but %d group counts",
			ErrIntegrityViolation, len(names), len(counts))
	}
	t := NewTally()
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrIntegrityViolation, i+1)
		}
		if err := t.Add(name, counts[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add increases the count for name, appending name if it is new. A negative n
// or a sum past math.MaxInt leaves t unchanged and returns ErrIntegrityViolation.
func (t *Tally) Add(name string, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative group count %d for %s", ErrIntegrityViolation, n, name)
	}
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	cur, ok := t.counts[name]
	if cur > math.MaxInt-n {
		return fmt.Errorf("%w: group count for %s overflows", ErrIntegrityViolation, name)
	}
	if !ok {
		t.names = append(t.names, name)
	}
	t.counts[name] = cur + n
	return nil
}

// Set replaces the count for name, appending name if it is new.
func (t *Tally) Set(name string, n int) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[name]; !ok {
		t.names = append(t.names, name)
	}
	t.counts[name] = n
}

// Get returns the count for name.
func (t *Tally) Get(name string) (int, bool) {
	n, ok := t.counts[name]
	return n, ok
}

// Len returns the number of distinct exercises.
func (t *Tally) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns a copy of the exercise names in insertion order.
func (t *Tally) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Counts returns the counts aligned with Names.
func (t *Tally) Counts() []int {
	out := make([]int, len(t.names))
	for i, name := range t.names {
		out[i] = t.counts[name]
	}
	return out
}

// Clone returns an independent copy.
func (t *Tally) Clone() *Tally {
	c := NewTally()
	if t == nil {
		return c
	}
	for _, name := range t.names {
		c.Set(name, t.counts[name])
	}
	return c
}

// Combine merges incoming into a copy of existing. Existing names keep their
// position; names first seen in incoming are appended in the order they appear.
// Neither argument is modified. Accumulate fails with ErrIntegrityViolation
// when a sum would overflow.
func Combine(strategy MergeStrategy, existing, incoming *Tally) (*Tally, error) {
	merged := existing.Clone()
	if incoming == nil {
		return merged, nil
	}
	for _, name := range incoming.names {
		n := incoming.counts[name]
		switch strategy {
		case Overwrite:
			merged.Set(name, n)
		default:
			if err := merged.Add(name, n); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}
