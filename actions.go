package main

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
}

// actionDefinitions contains all action definitions with default keybindings and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, "Quit application"},
	{"help", []string{"Shift+Slash"}, "Show/hide help"},
	{"info", []string{"KeyI"}, "Show/hide forecast info strip"},
	{"next_day", []string{"ArrowDown", "Space", "KeyN", "PageDown"}, "Transition to next forecast day"},
	{"previous_day", []string{"ArrowUp", "Backspace", "KeyP", "PageUp"}, "Back to previous forecast day"},
	{"first_day", []string{"Home"}, "Jump to first forecast day"},
	{"last_day", []string{"End"}, "Jump to last forecast day"},
	{"fullscreen", []string{"Enter", "KeyZ"}, "Toggle fullscreen"},
	{"refresh", []string{"KeyR"}, "Re-fetch the forecast"},
}

// ActionExecutor provides centralized action execution logic shared by the
// keyboard, wheel and touch input paths.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// Day-advance triggers are suppressed while an auto-advance animation is in
// flight; everything else is always allowed.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "next_day":
		if inputState.IsAnimating() {
			return false
		}
		inputActions.NextDay()
	case "previous_day":
		if inputState.IsAnimating() {
			return false
		}
		inputActions.PreviousDay()
	case "first_day":
		inputActions.JumpToDay(0)
	case "last_day":
		dayCount := inputActions.GetDayCount()
		if dayCount > 0 {
			inputActions.JumpToDay(dayCount - 1)
		}
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "refresh":
		inputActions.RefreshForecast()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}
