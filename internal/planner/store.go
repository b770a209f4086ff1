// Package planner holds the application state for composing an itinerary:
// the ordered location store, the view-mode controller, the map scene
// projection with its animator, and the debounced searcher. All state is
// explicit and injected; nothing reads ambient globals.
package planner

import (
	"fmt"
	"log/slog"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// Store is the single source of truth for the ordered itinerary of the
// active form. Every mutation notifies subscribers so list and map
// projections can rebuild from scratch.
type Store struct {
	locations []domain.Location
	observers []func()
	log       *slog.Logger
}

// NewStore creates an empty store. logger may be nil.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{log: logger}
}

// Subscribe registers fn to run after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.observers = append(s.observers, fn)
}

// Locations returns a copy of the current sequence.
func (s *Store) Locations() []domain.Location {
	out := make([]domain.Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// Len returns the number of locations.
func (s *Store) Len() int {
	return len(s.locations)
}

// At returns the location at index i, or false if out of bounds.
func (s *Store) At(i int) (domain.Location, bool) {
	if i < 0 || i >= len(s.locations) {
		return domain.Location{}, false
	}
	return s.locations[i], true
}

// SetAll replaces the sequence wholesale. Entries with invalid coordinates
// are dropped with a warning each; the call itself never fails. Returns the
// number of dropped entries.
func (s *Store) SetAll(locs []domain.Location) int {
	kept := make([]domain.Location, 0, len(locs))
	dropped := 0
	for _, loc := range locs {
		if err := loc.Validate(); err != nil {
			s.log.Warn("dropping invalid location", "name", loc.Name, "error", err)
			dropped++
			continue
		}
		kept = append(kept, loc)
	}
	s.locations = kept
	s.notify()
	return dropped
}

// Clear empties the sequence.
func (s *Store) Clear() {
	s.locations = s.locations[:0]
	s.notify()
}

// Add validates loc and appends it. On validation failure the store is
// left unchanged and the error wraps domain.ErrInvalidLocation.
func (s *Store) Add(loc domain.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	s.locations = append(s.locations, loc)
	s.notify()
	return nil
}

// RemoveAt removes the location at index i, preserving the order of the
// rest. Out-of-bounds indices are a silent no-op.
func (s *Store) RemoveAt(i int) {
	if i < 0 || i >= len(s.locations) {
		return
	}
	s.locations = append(s.locations[:i], s.locations[i+1:]...)
	s.notify()
}

// Move removes the element at oldIndex and reinserts it at newIndex.
// An out-of-bounds oldIndex is a no-op; newIndex is clamped into range.
func (s *Store) Move(oldIndex, newIndex int) {
	n := len(s.locations)
	if oldIndex < 0 || oldIndex >= n {
		return
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= n {
		newIndex = n - 1
	}
	if oldIndex == newIndex {
		return
	}

	moved := s.locations[oldIndex]
	s.locations = append(s.locations[:oldIndex], s.locations[oldIndex+1:]...)
	s.locations = append(s.locations, domain.Location{})
	copy(s.locations[newIndex+1:], s.locations[newIndex:])
	s.locations[newIndex] = moved
	s.notify()
}

// Reorder applies a permutation of current indices: order[i] names which
// current element ends up at position i. The permutation must be a
// bijection over the full sequence; anything else is rejected and the
// store is left unchanged.
func (s *Store) Reorder(order []int) error {
	n := len(s.locations)
	if len(order) != n {
		return fmt.Errorf("reorder: got %d indices for %d locations", len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			return fmt.Errorf("reorder: index %d out of range", idx)
		}
		if seen[idx] {
			return fmt.Errorf("reorder: index %d repeated", idx)
		}
		seen[idx] = true
	}

	next := make([]domain.Location, n)
	for i, idx := range order {
		next[i] = s.locations[idx]
	}
	s.locations = next
	s.notify()
	return nil
}

func (s *Store) notify() {
	for _, fn := range s.observers {
		fn()
	}
}
