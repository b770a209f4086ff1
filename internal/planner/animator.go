package planner

import (
	"sync"
	"time"
)

// Animator serializes viewport animations for one map surface. At most one
// animation is in flight; starting a new one deterministically cancels the
// previous one before its callback can run.
type Animator struct {
	mu      sync.Mutex
	gen     uint64
	current *AnimationHandle
}

// AnimationHandle is a cancellable in-flight animation.
type AnimationHandle struct {
	animator  *Animator
	gen       uint64
	timer     *time.Timer
	onDone    func(cancelled bool)
	done      chan struct{}
	finished  bool
	cancelled bool
}

// NewAnimator creates an idle animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Start cancels any in-flight animation and begins a new one that completes
// after d. onDone runs exactly once, with cancelled reporting whether the
// animation was superseded or stopped before completing. onDone may be nil.
func (a *Animator) Start(d time.Duration, onDone func(cancelled bool)) *AnimationHandle {
	a.mu.Lock()
	prev := a.current
	a.gen++
	h := &AnimationHandle{
		animator: a,
		gen:      a.gen,
		onDone:   onDone,
		done:     make(chan struct{}),
	}
	a.current = h
	h.timer = time.AfterFunc(d, func() { h.finish(false) })
	a.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	return h
}

// Stop cancels the in-flight animation, if any.
func (a *Animator) Stop() {
	a.mu.Lock()
	h := a.current
	a.mu.Unlock()
	if h != nil {
		h.Cancel()
	}
}

// Animating reports whether an animation is in flight.
func (a *Animator) Animating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current != nil
}

// Cancel stops the animation before completion. Safe to call more than
// once and after completion.
func (h *AnimationHandle) Cancel() {
	h.finish(true)
}

// Done is closed once the animation has completed or been cancelled.
func (h *AnimationHandle) Done() <-chan struct{} {
	return h.done
}

// Cancelled reports whether the animation was cancelled rather than run
// to completion. Only meaningful after Done is closed.
func (h *AnimationHandle) Cancelled() bool {
	h.animator.mu.Lock()
	defer h.animator.mu.Unlock()
	return h.cancelled
}

func (h *AnimationHandle) finish(cancelled bool) {
	a := h.animator
	a.mu.Lock()
	if h.finished {
		a.mu.Unlock()
		return
	}
	h.finished = true
	h.cancelled = cancelled
	h.timer.Stop()
	if a.current == h {
		a.current = nil
	}
	onDone := h.onDone
	a.mu.Unlock()

	if onDone != nil {
		onDone(cancelled)
	}
	close(h.done)
}
