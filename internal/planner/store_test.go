package planner_test

import (
	"errors"
	"testing"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/planner"
)

func loc(name string, lat, lon float64) domain.Location {
	return domain.Location{Name: name, Latitude: lat, Longitude: lon}
}

func names(locs []domain.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.Name
	}
	return out
}

func equalNames(got []domain.Location, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, l := range got {
		if l.Name != want[i] {
			return false
		}
	}
	return true
}

func TestStore_Add_RejectsInvalid(t *testing.T) {
	s := planner.NewStore(nil)

	cases := []domain.Location{
		{Name: "no coords"},
		loc("out of range", 91, 0),
		loc("bad lon", 0, 181),
	}
	for _, c := range cases {
		err := s.Add(c)
		if !errors.Is(err, domain.ErrInvalidLocation) {
			t.Errorf("Add(%q): expected ErrInvalidLocation, got %v", c.Name, err)
		}
	}
	if s.Len() != 0 {
		t.Errorf("store mutated by failed adds: len=%d", s.Len())
	}
}

func TestStore_Add_AppendsInOrder(t *testing.T) {
	s := planner.NewStore(nil)
	if err := s.Add(loc("A", 10, 20)); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(loc("B", -5, 30)); err != nil {
		t.Fatal(err)
	}
	if !equalNames(s.Locations(), "A", "B") {
		t.Errorf("got %v", names(s.Locations()))
	}
}

func TestStore_SetAll_FiltersInvalid(t *testing.T) {
	s := planner.NewStore(nil)
	dropped := s.SetAll([]domain.Location{
		loc("A", 10, 20),
		loc("bad", 200, 0),
		loc("B", -5, 30),
	})
	if dropped != 1 {
		t.Errorf("dropped = %d, expected 1", dropped)
	}
	if !equalNames(s.Locations(), "A", "B") {
		t.Errorf("got %v", names(s.Locations()))
	}
}

func TestStore_RemoveAt(t *testing.T) {
	s := planner.NewStore(nil)
	s.SetAll([]domain.Location{loc("A", 1, 1), loc("B", 2, 2), loc("C", 3, 3)})

	s.RemoveAt(1)
	if !equalNames(s.Locations(), "A", "C") {
		t.Errorf("got %v", names(s.Locations()))
	}

	// out of bounds is a no-op
	s.RemoveAt(-1)
	s.RemoveAt(5)
	if s.Len() != 2 {
		t.Errorf("out-of-bounds remove changed length: %d", s.Len())
	}
}

func TestStore_Move(t *testing.T) {
	s := planner.NewStore(nil)
	s.SetAll([]domain.Location{loc("A", 1, 1), loc("B", 2, 2), loc("C", 3, 3)})

	s.Move(0, 2)
	if !equalNames(s.Locations(), "B", "C", "A") {
		t.Errorf("after Move(0,2): %v", names(s.Locations()))
	}

	s.Move(2, 0)
	if !equalNames(s.Locations(), "A", "B", "C") {
		t.Errorf("after Move(2,0): %v", names(s.Locations()))
	}

	s.Move(7, 0) // out-of-bounds source is a no-op
	if !equalNames(s.Locations(), "A", "B", "C") {
		t.Errorf("after bad Move: %v", names(s.Locations()))
	}
}

func TestStore_Reorder(t *testing.T) {
	s := planner.NewStore(nil)
	s.SetAll([]domain.Location{loc("A", 1, 1), loc("B", 2, 2), loc("C", 3, 3)})

	if err := s.Reorder([]int{2, 0, 1}); err != nil {
		t.Fatal(err)
	}
	if !equalNames(s.Locations(), "C", "A", "B") {
		t.Errorf("got %v", names(s.Locations()))
	}
}

func TestStore_Reorder_RejectsNonBijection(t *testing.T) {
	s := planner.NewStore(nil)
	s.SetAll([]domain.Location{loc("A", 1, 1), loc("B", 2, 2), loc("C", 3, 3)})

	bad := [][]int{
		{0, 1},       // wrong length
		{0, 1, 1},    // duplicate
		{0, 1, 3},    // out of range
		{0, 1, 2, 2}, // too long
	}
	for _, order := range bad {
		if err := s.Reorder(order); err == nil {
			t.Errorf("Reorder(%v) accepted", order)
		}
	}
	if !equalNames(s.Locations(), "A", "B", "C") {
		t.Errorf("rejected reorder mutated store: %v", names(s.Locations()))
	}
}

func TestStore_NotifiesObservers(t *testing.T) {
	s := planner.NewStore(nil)
	calls := 0
	s.Subscribe(func() { calls++ })

	s.SetAll([]domain.Location{loc("A", 1, 1), loc("B", 2, 2)})
	_ = s.Add(loc("C", 3, 3))
	s.RemoveAt(0)
	s.Move(0, 1)
	_ = s.Reorder([]int{1, 0})
	s.Clear()

	if calls != 6 {
		t.Errorf("observer called %d times, expected 6", calls)
	}

	// a failed add must not notify
	_ = s.Add(domain.Location{Name: "bad"})
	if calls != 6 {
		t.Errorf("failed add notified observers")
	}
}
