package main

import "math"

// FrameIndex maps a normalized progress value to a 1-based frame index,
// clamped to [1, frameCount]. Pure; callers choose which count source
// (cached, default or freshly probed) to pass.
func FrameIndex(progress float64, frameCount int) int {
	if frameCount < 1 {
		return 1
	}
	idx := int(math.Round(progress * float64(frameCount)))
	if idx < 1 {
		return 1
	}
	if idx > frameCount {
		return frameCount
	}
	return idx
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOutCubic applies smooth easing to t in [0,1].
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
