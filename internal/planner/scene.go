package planner

import (
	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/pkg/geospatial"
)

// Rendering constants for the map projection. The flow strokes are purely
// cosmetic; the only invariant is "path visible iff at least 2 points".
const (
	basePathWeight  = 2
	basePathOpacity = 0.35
	flowPathWeight  = 4
	flowPathOpacity = 0.85
	flowStrokeCount = 3

	// Viewport fit reserves room on the left for the side panel and caps
	// zoom so near-duplicate points don't over-zoom.
	panelPaddingLeftPx = 448
	fitPaddingPx       = 24
	fitMaxZoom         = 12
	fitDurationSec     = 1.0

	focusZoom        = 14
	focusDurationSec = 1.0
)

// Marker is one map pin with its hover label.
type Marker struct {
	Point domain.GeoPoint
	Label string
}

// Stroke describes one rendered polyline pass over the path.
type Stroke struct {
	Weight   int
	Opacity  float64
	DelaySec float64
}

// Path is the layered itinerary polyline: a faint base stroke plus
// staggered animated flow strokes on the same points.
type Path struct {
	Points []domain.GeoPoint
	Base   Stroke
	Flows  []Stroke
}

// ViewportFit frames the viewport around a bounding box.
type ViewportFit struct {
	Bounds        domain.Bounds
	PaddingLeftPx int
	PaddingPx     int
	MaxZoom       int
	DurationSec   float64
}

// ViewportFocus centers the viewport on one point at a fixed zoom.
type ViewportFocus struct {
	Point       domain.GeoPoint
	Zoom        int
	DurationSec float64
}

// Scene is the full map projection of an itinerary. It is derived from
// scratch on every store mutation; nothing is patched incrementally.
type Scene struct {
	Markers    []Marker
	Path       *Path
	Fit        *ViewportFit
	Focus      *ViewportFocus
	DistanceKm float64
}

// BuildScene projects locations into a scene. It is a pure function: the
// same input always yields the same scene. Locations are assumed valid;
// the store enforces that upstream.
func BuildScene(locs []domain.Location) Scene {
	var sc Scene
	if len(locs) == 0 {
		return sc
	}

	pts := make([]domain.GeoPoint, len(locs))
	sc.Markers = make([]Marker, len(locs))
	for i, loc := range locs {
		pts[i] = loc.Point()
		sc.Markers[i] = Marker{Point: pts[i], Label: loc.Name}
	}

	if len(pts) >= 2 {
		flows := make([]Stroke, flowStrokeCount)
		for i := range flows {
			flows[i] = Stroke{
				Weight:   flowPathWeight,
				Opacity:  flowPathOpacity,
				DelaySec: float64(-i),
			}
		}
		sc.Path = &Path{
			Points: pts,
			Base:   Stroke{Weight: basePathWeight, Opacity: basePathOpacity},
			Flows:  flows,
		}
		sc.DistanceKm = geospatial.PathLengthKm(pts)
	}

	if bounds, ok := domain.BoundsOf(pts); ok {
		sc.Fit = &ViewportFit{
			Bounds:        bounds,
			PaddingLeftPx: panelPaddingLeftPx,
			PaddingPx:     fitPaddingPx,
			MaxZoom:       fitMaxZoom,
			DurationSec:   fitDurationSec,
		}
	}

	return sc
}

// FocusScene projects a single location at detail zoom, keeping its marker.
func FocusScene(loc domain.Location) Scene {
	pt := loc.Point()
	return Scene{
		Markers: []Marker{{Point: pt, Label: loc.Name}},
		Focus: &ViewportFocus{
			Point:       pt,
			Zoom:        focusZoom,
			DurationSec: focusDurationSec,
		},
	}
}
