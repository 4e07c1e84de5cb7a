package main

import (
	"testing"
	"time"
)

func testPointerSettings() PointerSettings {
	return PointerSettings{
		WheelThreshold: 3.0,
		WheelResetMS:   300,
		WheelInverted:  false,
		SwipeThreshold: 60.0,
	}
}

func TestWheelTrackerAccumulates(t *testing.T) {
	w := NewWheelTracker(testPointerSettings())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Scrolling down (negative dy) accumulates toward a forward command.
	if got := w.Add(now, -1); got != 0 {
		t.Errorf("first tick fired %d, want 0", got)
	}
	if got := w.Add(now.Add(50*time.Millisecond), -1); got != 0 {
		t.Errorf("second tick fired %d, want 0", got)
	}
	if got := w.Add(now.Add(100*time.Millisecond), -1); got != 1 {
		t.Errorf("threshold tick fired %d, want 1", got)
	}

	// Accumulation resets after firing.
	if got := w.Add(now.Add(150*time.Millisecond), -1); got != 0 {
		t.Errorf("tick after firing fired %d, want 0", got)
	}
}

func TestWheelTrackerBackward(t *testing.T) {
	w := NewWheelTracker(testPointerSettings())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := w.Add(now, 3); got != -1 {
		t.Errorf("scroll up past threshold fired %d, want -1", got)
	}
}

func TestWheelTrackerIdleReset(t *testing.T) {
	w := NewWheelTracker(testPointerSettings())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	w.Add(now, -2)
	// After the idle window the stale accumulation is discarded, so this
	// delta alone must not reach the threshold.
	if got := w.Add(now.Add(time.Second), -2); got != 0 {
		t.Errorf("tick after idle window fired %d, want 0", got)
	}
}

func TestWheelTrackerInverted(t *testing.T) {
	settings := testPointerSettings()
	settings.WheelInverted = true
	w := NewWheelTracker(settings)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := w.Add(now, 3); got != 1 {
		t.Errorf("inverted scroll up fired %d, want 1", got)
	}
}

func TestWheelTrackerIgnoresZeroDelta(t *testing.T) {
	w := NewWheelTracker(testPointerSettings())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	w.Add(now, -2)
	// Zero-delta ticks arrive every frame; they must not reset accumulation
	// or advance the idle clock.
	for i := 0; i < 10; i++ {
		if got := w.Add(now.Add(time.Duration(i)*10*time.Millisecond), 0); got != 0 {
			t.Fatalf("zero delta fired %d", got)
		}
	}
	if got := w.Add(now.Add(100*time.Millisecond), -1); got != 1 {
		t.Errorf("accumulation lost across zero-delta ticks: fired %d, want 1", got)
	}
}

func TestTouchTrackerSwipe(t *testing.T) {
	tests := []struct {
		name     string
		startY   int
		endY     int
		expected int
	}{
		{"Swipe up advances", 500, 400, 1},
		{"Swipe down goes back", 400, 500, -1},
		{"Short drag does nothing", 500, 480, 0},
		{"Exactly at threshold fires", 500, 440, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTouchTracker(testPointerSettings())
			tr.Press(1, 100, tt.startY)
			if got := tr.Release(1, 100, tt.endY); got != tt.expected {
				t.Errorf("Release = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTouchTrackerUnknownRelease(t *testing.T) {
	tr := NewTouchTracker(testPointerSettings())
	if got := tr.Release(7, 100, 100); got != 0 {
		t.Errorf("release of unknown touch fired %d, want 0", got)
	}
}

func TestTouchTrackerIndependentTouches(t *testing.T) {
	tr := NewTouchTracker(testPointerSettings())
	tr.Press(1, 100, 500)
	tr.Press(2, 200, 300)

	if got := tr.Release(2, 200, 290); got != 0 {
		t.Errorf("short second touch fired %d, want 0", got)
	}
	if got := tr.Release(1, 100, 400); got != 1 {
		t.Errorf("first touch swipe fired %d, want 1", got)
	}
	// A touch is consumed by its release.
	if got := tr.Release(1, 100, 400); got != 0 {
		t.Errorf("re-release fired %d, want 0", got)
	}
}
