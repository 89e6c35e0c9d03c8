package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"citybuilder/config"
	"citybuilder/systems"
)

// LogScreen shows the message log in a modal window
type LogScreen struct {
	*BaseScreen
	log          *systems.MessageLog
	font         *systems.UIFont
	scrollOffset int
	width        int
	height       int
	background   color.RGBA
	textColor    color.Color
}

// NewLogScreen creates a viewer for log
func NewLogScreen(log *systems.MessageLog, font *systems.UIFont) *LogScreen {
	return &LogScreen{
		BaseScreen: NewBaseScreen(),
		log:        log,
		font:       font,
		width:      600,
		height:     400,
		background: color.RGBA{0, 0, 0, 255},
		textColor:  color.White,
	}
}

// Update handles scrolling; Esc closes the viewer
func (s *LogScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.scrollUp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.scrollDown()
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		s.scrollUp()
	} else if wy < 0 {
		s.scrollDown()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	return nil
}

func (s *LogScreen) scrollUp() {
	if s.scrollOffset < len(s.log.Messages)-1 {
		s.scrollOffset++
	}
}

func (s *LogScreen) scrollDown() {
	if s.scrollOffset > 0 {
		s.scrollOffset--
	}
}

// visibleLines returns how many message lines fit in the window
func (s *LogScreen) visibleLines() int {
	n := int(float64(s.height-50) / (s.font.LineHeight() + 2))
	return min(n, config.LogLines)
}

// Draw renders the newest messages at the bottom of the window
func (s *LogScreen) Draw(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := float32(sw-s.width) / 2
	y := float32(sh-s.height) / 2

	vector.DrawFilledRect(screen, x, y, float32(s.width), float32(s.height), s.background, false)
	vector.StrokeRect(screen, x, y, float32(s.width), float32(s.height), 2, color.White, false)

	title := "MESSAGE LOG"
	s.font.Draw(screen, title, float64(x)+(float64(s.width)-s.font.Measure(title))/2, float64(y)+8, s.textColor)

	lineHeight := s.font.LineHeight() + 2
	maxLines := s.visibleLines()
	recent := s.log.RecentMessages(maxLines + s.scrollOffset)
	if s.scrollOffset < len(recent) {
		recent = recent[s.scrollOffset:]
	} else {
		recent = nil
	}

	bottom := float64(y) + float64(s.height) - 30 - lineHeight
	for i, msg := range recent {
		if i >= maxLines {
			break
		}
		s.font.Draw(screen, msg.Text, float64(x)+10, bottom-float64(i)*lineHeight, msg.GetColor())
	}

	s.font.Draw(screen, "Up/Down: Scroll  Esc/F1: Close", float64(x)+10, float64(y)+float64(s.height)-20, s.textColor)
}
