package tui

import "time"

// Screen represents different TUI screens
type Screen string

const (
	// ScreenMenu is the main menu screen
	ScreenMenu Screen = "menu"
	// ScreenDevices lists inventory devices and their supported algorithms
	ScreenDevices Screen = "devices"
	// ScreenOptions edits launch option values
	ScreenOptions Screen = "options"
	// ScreenCommand previews the worker command line
	ScreenCommand Screen = "command"
	// ScreenBinaries shows the binary package check
	ScreenBinaries Screen = "binaries"
	// ScreenHelp shows help overlay
	ScreenHelp Screen = "help"
)

// MenuItem represents a menu item
type MenuItem struct {
	Key         string // Number key or letter
	Label       string // Display label
	Description string // Short description
	Screen      Screen // Target screen
}

// UIState is the persisted editor state (tui_state.json)
type UIState struct {
	CurrentScreen Screen            `json:"menu"`
	Selection     int               `json:"selection"`
	Values        map[string]string `json:"values"`
	LastError     string            `json:"last_error"`
	Updated       time.Time         `json:"updated"`
}

// DefaultMenuItems returns the default main menu items
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Key: "1", Label: "Devices", Description: "Detected GPUs and supported algorithms", Screen: ScreenDevices},
		{Key: "2", Label: "Launch Options", Description: "Edit worker option values", Screen: ScreenOptions},
		{Key: "3", Label: "Command Preview", Description: "Show the worker command line", Screen: ScreenCommand},
		{Key: "4", Label: "Binary Package", Description: "Check required worker files", Screen: ScreenBinaries},
		{Key: "?", Label: "Help", Description: "Show help", Screen: ScreenHelp},
	}
}
