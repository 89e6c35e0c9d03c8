package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"citybuilder/systems"
)

// NoMessage is returned by Menu.Activate when no entry is under the cursor
const NoMessage = "null"

// MenuEntry is one line of a Menu; Message is returned when it is activated
type MenuEntry struct {
	Label   string
	Message string
}

// Menu is a vertical list of entries drawn at a screen position
type Menu struct {
	Entries     []MenuEntry
	X, Y        float64
	Width       float64
	EntryHeight float64
	Visible     bool

	highlighted int
	font        *systems.UIFont

	background color.RGBA
	highlight  color.RGBA
	textColor  color.RGBA
}

// NewMenu creates a hidden menu
func NewMenu(font *systems.UIFont, width, entryHeight float64, entries []MenuEntry) *Menu {
	return &Menu{
		Entries:     entries,
		Width:       width,
		EntryHeight: entryHeight,
		highlighted: -1,
		font:        font,
		background:  color.RGBA{32, 32, 40, 230},
		highlight:   color.RGBA{80, 90, 140, 255},
		textColor:   color.RGBA{230, 230, 230, 255},
	}
}

// Show opens the menu at (x, y), kept inside a bounds of w x h pixels
func (m *Menu) Show(x, y, w, h float64) {
	height := m.EntryHeight * float64(len(m.Entries))
	if x+m.Width > w {
		x = w - m.Width
	}
	if y+height > h {
		y = h - height
	}
	m.X, m.Y = max(x, 0), max(y, 0)
	m.Visible = true
	m.highlighted = -1
}

// Hide closes the menu
func (m *Menu) Hide() {
	m.Visible = false
	m.highlighted = -1
}

// EntryAt returns the index of the entry under (x, y) or -1
func (m *Menu) EntryAt(x, y float64) int {
	if !m.Visible || x < m.X || x >= m.X+m.Width || y < m.Y {
		return -1
	}
	i := int((y - m.Y) / m.EntryHeight)
	if i >= len(m.Entries) {
		return -1
	}
	return i
}

// Highlight marks the entry under (x, y)
func (m *Menu) Highlight(x, y float64) {
	m.highlighted = m.EntryAt(x, y)
}

// Activate returns the message of the entry under (x, y) or NoMessage
func (m *Menu) Activate(x, y float64) string {
	i := m.EntryAt(x, y)
	if i < 0 {
		return NoMessage
	}
	return m.Entries[i].Message
}

// Draw draws the menu when visible
func (m *Menu) Draw(dst *ebiten.Image) {
	if !m.Visible {
		return
	}
	for i, e := range m.Entries {
		y := m.Y + float64(i)*m.EntryHeight
		bg := m.background
		if i == m.highlighted {
			bg = m.highlight
		}
		vector.DrawFilledRect(dst, float32(m.X), float32(y), float32(m.Width), float32(m.EntryHeight), bg, false)
		textY := y + (m.EntryHeight-m.font.LineHeight())/2
		m.font.Draw(dst, e.Label, m.X+6, textY, m.textColor)
	}
}
