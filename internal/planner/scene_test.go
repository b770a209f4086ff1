package planner_test

import (
	"reflect"
	"testing"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/planner"
)

func TestBuildScene_Empty(t *testing.T) {
	sc := planner.BuildScene(nil)
	if len(sc.Markers) != 0 || sc.Path != nil || sc.Fit != nil {
		t.Errorf("empty itinerary must render nothing: %+v", sc)
	}
}

func TestBuildScene_SingleLocation(t *testing.T) {
	sc := planner.BuildScene([]domain.Location{loc("A", 10, 20)})
	if len(sc.Markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(sc.Markers))
	}
	if sc.Path != nil {
		t.Error("single location must not render a path")
	}
	if sc.Fit == nil {
		t.Error("single location must still fit the viewport")
	}
	if sc.Markers[0].Label != "A" {
		t.Errorf("marker label = %q", sc.Markers[0].Label)
	}
}

func TestBuildScene_PathAndFit(t *testing.T) {
	locs := []domain.Location{loc("A", 10, 20), loc("B", -5, 30)}
	sc := planner.BuildScene(locs)

	if len(sc.Markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(sc.Markers))
	}
	if sc.Path == nil {
		t.Fatal("two locations must render a path")
	}
	if len(sc.Path.Flows) != 3 {
		t.Errorf("expected 3 flow strokes, got %d", len(sc.Path.Flows))
	}
	for i, f := range sc.Path.Flows {
		if f.DelaySec != float64(-i) {
			t.Errorf("flow %d delay = %v, expected %v", i, f.DelaySec, float64(-i))
		}
	}
	if sc.DistanceKm <= 0 {
		t.Errorf("distance = %v, expected > 0", sc.DistanceKm)
	}

	if sc.Fit == nil {
		t.Fatal("expected a viewport fit")
	}
	want := domain.Bounds{MinLat: -5, MinLon: 20, MaxLat: 10, MaxLon: 30}
	if sc.Fit.Bounds != want {
		t.Errorf("fit bounds = %+v, want %+v", sc.Fit.Bounds, want)
	}
	if sc.Fit.MaxZoom != 12 {
		t.Errorf("fit max zoom = %d", sc.Fit.MaxZoom)
	}
}

func TestBuildScene_Idempotent(t *testing.T) {
	locs := []domain.Location{loc("A", 10, 20), loc("B", -5, 30), loc("C", 0, 0.1)}
	first := planner.BuildScene(locs)
	second := planner.BuildScene(locs)
	if !reflect.DeepEqual(first, second) {
		t.Error("same input produced different scenes")
	}
}

func TestFocusScene(t *testing.T) {
	sc := planner.FocusScene(loc("Paris", 48.8566, 2.3522))
	if len(sc.Markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(sc.Markers))
	}
	if sc.Focus == nil {
		t.Fatal("expected a focus")
	}
	if sc.Focus.Zoom != 14 {
		t.Errorf("focus zoom = %d", sc.Focus.Zoom)
	}
	if sc.Path != nil || sc.Fit != nil {
		t.Error("focus scene must not carry a path or fit")
	}
}
