package planner

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// MapView holds the current map scene and the animator that frames it.
// Every update is clear-and-rebuild: the previous scene is discarded
// wholesale, never patched. Decorative overlays are dimmed while a
// viewport animation is in flight and restored on completion.
type MapView struct {
	mu             sync.Mutex
	anim           *Animator
	scene          Scene
	overlaysDimmed bool
	log            *slog.Logger
}

// NewMapView creates an empty map view. logger may be nil.
func NewMapView(logger *slog.Logger) *MapView {
	if logger == nil {
		logger = slog.Default()
	}
	return &MapView{anim: NewAnimator(), log: logger}
}

// Render rebuilds the scene from locs and, when the scene carries a
// viewport fit, animates toward it.
func (v *MapView) Render(locs []domain.Location) {
	sc := BuildScene(locs)

	v.mu.Lock()
	v.scene = sc
	v.mu.Unlock()

	if sc.Fit != nil {
		v.animate(sc.Fit.DurationSec)
	}
}

// Focus rebuilds the scene around a single location at detail zoom.
func (v *MapView) Focus(loc domain.Location) {
	sc := FocusScene(loc)

	v.mu.Lock()
	v.scene = sc
	v.mu.Unlock()

	v.animate(sc.Focus.DurationSec)
}

// Scene returns the current scene.
func (v *MapView) Scene() Scene {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scene
}

// StopAnimation cancels any in-flight viewport animation. Called when
// the screen that requested it is no longer active.
func (v *MapView) StopAnimation() {
	v.anim.Stop()
}

// Animating reports whether a viewport animation is in flight.
func (v *MapView) Animating() bool {
	return v.anim.Animating()
}

// OverlaysDimmed reports whether decorative overlays are currently faded
// out for an animation.
func (v *MapView) OverlaysDimmed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.overlaysDimmed
}

func (v *MapView) animate(durationSec float64) {
	v.mu.Lock()
	v.overlaysDimmed = true
	v.mu.Unlock()

	d := time.Duration(durationSec * float64(time.Second))
	v.anim.Start(d, func(cancelled bool) {
		// A superseding animation keeps the overlays dimmed; it restores
		// them itself when it completes.
		if cancelled && v.anim.Animating() {
			return
		}
		v.mu.Lock()
		v.overlaysDimmed = false
		v.mu.Unlock()
	})
}
