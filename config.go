package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Window size constants
const (
	defaultWidth  = 960
	defaultHeight = 640
	minWidth      = 400
	minHeight     = 300
)

// getDefaultKeybindings returns the default keybinding configuration
func getDefaultKeybindings() map[string][]string {
	return GetDefaultKeybindings()
}

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	// Check for valid key formats and detect conflicts
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			// Validate key format
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			// Check for conflicts
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return fmt.Errorf("empty key string")
	}

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	// Check modifiers
	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns a set of valid key names
func getValidKeyNames() map[string]bool {
	validKeys := make(map[string]bool)
	for name := range getKeyMapping() {
		validKeys[name] = true
	}
	return validKeys
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth    int                 `json:"window_width"`
	WindowHeight   int                 `json:"window_height"`
	Fullscreen     bool                `json:"fullscreen"`
	Assets         string              `json:"assets"`
	Place          string              `json:"place"`
	Latitude       float64             `json:"latitude"`
	Longitude      float64             `json:"longitude"`
	ForecastDays   int                 `json:"forecast_days"`
	TransitionMS   int                 `json:"transition_ms"`
	PreloadChunk   int                 `json:"preload_chunk"`
	InitialPreload int                 `json:"initial_preload"`
	HelpFontSize   float64             `json:"help_font_size"`
	ShowInfo       bool                `json:"show_info"`
	Pointer        PointerSettings     `json:"pointer"`
	Keybindings    map[string][]string `json:"keybindings"`
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "skies.json"
	}
	return filepath.Join(homeDir, ".skies.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := Config{
		WindowWidth:    defaultWidth,
		WindowHeight:   defaultHeight,
		Fullscreen:     false,
		Assets:         "", // Required via config or -assets flag
		Place:          "", // Optional; resolved through the geocoder
		Latitude:       0, // Used when no place is given
		Longitude:      0,
		ForecastDays:   7,    // Default forecast span
		TransitionMS:   1400, // Default auto-advance duration
		PreloadChunk:   defaultPreloadChunk,
		InitialPreload: 24,   // One second of idle frames
		HelpFontSize:   24.0, // Default help font size
		ShowInfo:       true, // Info strip on by default
		Pointer: PointerSettings{
			WheelThreshold: 3.0,
			WheelResetMS:   300,
			WheelInverted:  false,
			SwipeThreshold: 60.0,
		},
		Keybindings: getDefaultKeybindings(),
	}

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		// Invalid config file - log warning and use defaults
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		// Keep default config values
		return result
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate forecast span (the upstream API serves at most 16 days)
	if config.ForecastDays < 2 {
		config.ForecastDays = 7
	} else if config.ForecastDays > 16 {
		config.ForecastDays = 16
	}

	// Validate transition duration (minimum 200ms, maximum 5s)
	if config.TransitionMS < 200 {
		config.TransitionMS = 1400
	} else if config.TransitionMS > 5000 {
		config.TransitionMS = 5000
	}

	// Validate preload sizes
	if config.PreloadChunk < 1 || config.PreloadChunk > 200 {
		config.PreloadChunk = defaultPreloadChunk
	}
	if config.InitialPreload < 1 || config.InitialPreload > 200 {
		config.InitialPreload = 24
	}

	// Validate help font size (minimum 12px for readability)
	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = 24.0
	}

	// Validate pointer settings
	if config.Pointer.WheelThreshold <= 0 {
		config.Pointer.WheelThreshold = 3.0
	}
	if config.Pointer.WheelResetMS < 50 {
		config.Pointer.WheelResetMS = 300
	}
	if config.Pointer.SwipeThreshold <= 0 {
		config.Pointer.SwipeThreshold = 60.0
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = getDefaultKeybindings()
	} else {
		// Fill in missing keybindings with defaults
		defaults := getDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		// Validate keybindings and fall back wholesale on conflicts
		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = getDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	// Update the result with the final config
	result.Config = config
	return result
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
