package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSettings contains wheel and touch configuration.
type PointerSettings struct {
	WheelThreshold float64 `json:"wheel_threshold"` // accumulated delta before firing
	WheelResetMS   int     `json:"wheel_reset_ms"`  // idle window that resets accumulation
	WheelInverted  bool    `json:"wheel_inverted"`
	SwipeThreshold float64 `json:"swipe_threshold"` // vertical pixels before a swipe fires
}

// WheelTracker accumulates wheel deltas and converts them into discrete
// day-advance commands. Accumulation resets after a short idle window so a
// slow trickle of small deltas does not eventually fire.
type WheelTracker struct {
	threshold  float64
	resetAfter time.Duration
	inverted   bool

	accum float64
	last  time.Time
}

func NewWheelTracker(settings PointerSettings) *WheelTracker {
	return &WheelTracker{
		threshold:  settings.WheelThreshold,
		resetAfter: time.Duration(settings.WheelResetMS) * time.Millisecond,
		inverted:   settings.WheelInverted,
	}
}

// Add feeds one tick's wheel delta and returns the fired direction:
// +1 forward, -1 backward, 0 below threshold. Scrolling down advances.
func (w *WheelTracker) Add(now time.Time, dy float64) int {
	if dy == 0 {
		return 0
	}
	if !w.last.IsZero() && now.Sub(w.last) > w.resetAfter {
		w.accum = 0
	}
	w.last = now
	if w.inverted {
		dy = -dy
	}
	w.accum += dy

	if w.accum <= -w.threshold {
		w.accum = 0
		return 1
	}
	if w.accum >= w.threshold {
		w.accum = 0
		return -1
	}
	return 0
}

type touchStart struct {
	x, y int
}

// TouchTracker turns vertical swipes into day-advance commands. Touch
// positions are fed per tick; a swipe fires on release when the vertical
// travel exceeds the threshold.
type TouchTracker struct {
	threshold float64
	active    map[ebiten.TouchID]touchStart
}

func NewTouchTracker(settings PointerSettings) *TouchTracker {
	return &TouchTracker{
		threshold: settings.SwipeThreshold,
		active:    make(map[ebiten.TouchID]touchStart),
	}
}

// Press records the starting position of a new touch.
func (t *TouchTracker) Press(id ebiten.TouchID, x, y int) {
	t.active[id] = touchStart{x: x, y: y}
}

// Release resolves a finished touch into a direction: swiping up advances,
// swiping down goes back, anything shorter than the threshold is 0.
func (t *TouchTracker) Release(id ebiten.TouchID, x, y int) int {
	start, ok := t.active[id]
	if !ok {
		return 0
	}
	delete(t.active, id)

	dy := float64(y - start.y)
	if dy <= -t.threshold {
		return 1
	}
	if dy >= t.threshold {
		return -1
	}
	return 0
}
