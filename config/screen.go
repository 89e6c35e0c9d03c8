package config

// Screen layout configuration
const (
	// Window dimensions in pixels
	WindowWidth  = 1024
	WindowHeight = 768

	// GUI layout
	InfoBarHeight = 24  // Info bar along the bottom edge
	MenuWidth     = 196 // Tile selection menu width
	MenuEntryH    = 22  // Height of one menu entry
	LogLines      = 30  // Message log lines shown by the log viewer

	// Camera limits
	MinZoom  = 0.25
	MaxZoom  = 4.0
	PanSpeed = 480.0 // Pixels per second for keyboard panning
)

// GetScreenDimensions returns the screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}
