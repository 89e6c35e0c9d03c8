package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"citybuilder/systems"
)

// ModalScreen represents a popup window that appears on top of other
// screens; any key or click closes it
type ModalScreen struct {
	*BaseScreen
	title      string
	content    string
	width      int
	height     int
	font       *systems.UIFont
	background color.RGBA
	textColor  color.Color
}

// NewModalScreen creates a new modal screen
func NewModalScreen(title, content string, width, height int, font *systems.UIFont) *ModalScreen {
	return &ModalScreen{
		BaseScreen: NewBaseScreen(),
		title:      title,
		content:    content,
		width:      width,
		height:     height,
		font:       font,
		background: color.RGBA{0, 0, 0, 200}, // Semi-transparent black
		textColor:  color.White,
	}
}

// Update closes the modal on any key press or mouse click
func (s *ModalScreen) Update() error {
	if len(inpututil.AppendJustPressedKeys(nil)) > 0 ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return ErrCloseScreen
	}
	return nil
}

// Draw implements the Screen interface
func (s *ModalScreen) Draw(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := float32(sw-s.width) / 2
	y := float32(sh-s.height) / 2

	vector.DrawFilledRect(screen, x, y, float32(s.width), float32(s.height), s.background, false)
	vector.StrokeRect(screen, x, y, float32(s.width), float32(s.height), 1, color.White, false)

	titleX := float64(x) + (float64(s.width)-s.font.Measure(s.title))/2
	s.font.Draw(screen, s.title, titleX, float64(y)+10, s.textColor)
	s.font.Draw(screen, s.content, float64(x)+10, float64(y)+20+s.font.LineHeight(), s.textColor)
}
