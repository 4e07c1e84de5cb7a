package main

// InputActions provides action methods for the input paths
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Day navigation
	NextDay()
	PreviousDay()
	JumpToDay(day int)

	// Data
	RefreshForecast()
	GetDayCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	// IsAnimating reports whether an auto-advance run is in flight; trigger
	// input is suppressed while it is.
	IsAnimating() bool
}

// RenderState provides read-only access to application state for the renderer
type RenderState interface {
	// Forecast data
	Days() []DayForecast
	ActiveDay() int
	Progress() float64
	PlaceName() string

	// Display modes
	IsFullscreen() bool
	IsShowingInfo() bool
	IsShowingHelp() bool

	// Display data
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
}
