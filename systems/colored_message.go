package systems

import (
	"image/color"
)

// MessageType defines different types of messages that can appear in the log
type MessageType int

const (
	// MessageTypeNormal is for standard messages (white/gray)
	MessageTypeNormal MessageType = iota
	// MessageTypeEconomy is for payouts and tax changes (gold)
	MessageTypeEconomy
	// MessageTypeBuild is for placements (green)
	MessageTypeBuild
	// MessageTypeAlert is for refused actions and failures (red)
	MessageTypeAlert
	// MessageTypeSystem is for saves and loads (purple/magenta)
	MessageTypeSystem
)

// ColoredMessage stores a message with its associated color
type ColoredMessage struct {
	Text string
	Type MessageType
}

// GetColor returns the color for the message based on its type
func (cm ColoredMessage) GetColor() color.RGBA {
	switch cm.Type {
	case MessageTypeEconomy:
		return color.RGBA{218, 165, 32, 255} // Gold
	case MessageTypeBuild:
		return color.RGBA{120, 220, 120, 255}
	case MessageTypeAlert:
		return color.RGBA{255, 100, 100, 255} // Red
	case MessageTypeSystem:
		return color.RGBA{186, 85, 211, 255} // Medium Orchid (Purple)
	default:
		return color.RGBA{200, 200, 200, 255} // Light Gray (default)
	}
}
