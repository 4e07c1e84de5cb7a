package main

import (
	"sync"
	"time"
)

const defaultTransitionDuration = 1400 * time.Millisecond

// animationRun is one in-flight eased auto-advance toward progress 1.0.
// At most one exists at a time; a superseding trigger replaces it.
type animationRun struct {
	start    time.Time
	from     float64
	duration time.Duration
}

func (r *animationRun) progressAt(now time.Time) float64 {
	t := clamp01(now.Sub(r.start).Seconds() / r.duration.Seconds())
	return lerp(r.from, 1.0, easeInOutCubic(t))
}

func (r *animationRun) done(now time.Time) bool {
	return now.Sub(r.start) >= r.duration
}

// GestureController owns the active day and progress state and arbitrates
// day-advance commands against the in-flight auto-advance animation.
//
// Forward navigation starts an eased run from the live progress to 1.0 and
// advances the day on completion. Backward navigation and direct jumps are
// synchronous: day changes and progress resets with no intermediate state.
type GestureController struct {
	mu        sync.Mutex
	activeDay int
	dayCount  int
	progress  float64
	run       *animationRun
	duration  time.Duration
}

func NewGestureController(dayCount int, duration time.Duration) *GestureController {
	if duration <= 0 {
		duration = defaultTransitionDuration
	}
	return &GestureController{dayCount: dayCount, duration: duration}
}

// TriggerTransition handles a day-advance command. Returns whether the
// command had any effect.
//
// direction > 0 starts (or restarts) the forward run unless already on the
// last day; a prior run is cancelled and the new one starts from the live
// progress snapshot, so progress never jumps backward. direction < 0
// decrements the day immediately unless on the first day or a run is in
// flight.
func (g *GestureController) TriggerTransition(now time.Time, direction int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case direction > 0:
		if g.activeDay >= g.dayCount-1 {
			return false
		}
		if g.run != nil {
			g.progress = g.run.progressAt(now)
		}
		g.run = &animationRun{start: now, from: g.progress, duration: g.duration}
		return true

	case direction < 0:
		if g.run != nil || g.activeDay <= 0 {
			return false
		}
		g.activeDay--
		g.progress = 0
		return true
	}
	return false
}

// SetDayCount updates the navigable day count after a forecast refresh.
// The active day is clamped into the new range, and a run that would
// complete past the new last day is cancelled.
func (g *GestureController) SetDayCount(count int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dayCount = count
	if count < 1 {
		g.activeDay = 0
		g.progress = 0
		g.run = nil
		return
	}
	if g.activeDay > count-1 {
		g.activeDay = count - 1
		g.progress = 0
		g.run = nil
	}
	if g.run != nil && g.activeDay >= count-1 {
		g.progress = 0
		g.run = nil
	}
}

// JumpToDay sets the active day directly with zero progress, cancelling any
// in-flight run.
func (g *GestureController) JumpToDay(day int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if day < 0 {
		day = 0
	}
	if day > g.dayCount-1 {
		day = g.dayCount - 1
	}
	g.activeDay = day
	g.progress = 0
	g.run = nil
}

// Update advances the in-flight run, if any. On completion the active day
// increments and progress resets to zero.
func (g *GestureController) Update(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.run == nil {
		return
	}
	g.progress = g.run.progressAt(now)
	if g.run.done(now) {
		g.activeDay++
		g.progress = 0
		g.run = nil
	}
}

// State returns the current day, progress and whether a run is in flight.
func (g *GestureController) State() (day int, progress float64, animating bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.activeDay, g.progress, g.run != nil
}

func (g *GestureController) ActiveDay() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.activeDay
}

func (g *GestureController) Animating() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.run != nil
}
