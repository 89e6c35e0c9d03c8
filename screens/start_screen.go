package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"citybuilder/systems"
)

// Start menu messages
const (
	msgNewCity  = "new_city"
	msgLoadCity = "load_city"
	msgQuit     = "quit"
)

// StartScreen handles the title menu
type StartScreen struct {
	*BaseScreen
	title      string
	menu       *Menu
	font       *systems.UIFont
	titleColor color.Color
	background color.Color
}

// NewStartScreen creates a new start screen
func NewStartScreen(title string, font *systems.UIFont) *StartScreen {
	menu := NewMenu(font, 160, 28, []MenuEntry{
		{Label: "New City", Message: msgNewCity},
		{Label: "Load City", Message: msgLoadCity},
		{Label: "Quit", Message: msgQuit},
	})
	menu.highlighted = 0
	return &StartScreen{
		BaseScreen: NewBaseScreen(),
		title:      title,
		menu:       menu,
		font:       font,
		titleColor: color.RGBA{255, 230, 150, 255}, // Gold
		background: color.RGBA{20, 24, 32, 255},
	}
}

// Update handles mouse and keyboard input for the start menu
func (s *StartScreen) Update() error {
	s.placeMenu()

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.menu.highlighted = (s.menu.highlighted - 1 + len(s.menu.Entries)) % len(s.menu.Entries)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.menu.highlighted = (s.menu.highlighted + 1) % len(s.menu.Entries)
	}

	mx, my := ebiten.CursorPosition()
	if i := s.menu.EntryAt(float64(mx), float64(my)); i >= 0 {
		s.menu.highlighted = i
	}

	msg := NoMessage
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		msg = s.menu.Activate(float64(mx), float64(my))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && s.menu.highlighted >= 0 {
		msg = s.menu.Entries[s.menu.highlighted].Message
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		msg = msgQuit
	}

	switch msg {
	case msgNewCity:
		return ErrNewCity
	case msgLoadCity:
		return ErrLoadCity
	case msgQuit:
		return ErrQuit
	}
	return nil
}

func (s *StartScreen) placeMenu() {
	w, h := float64(s.GetWidth()), float64(s.GetHeight())
	s.menu.X = (w - s.menu.Width) / 2
	s.menu.Y = h/2 - s.menu.EntryHeight*float64(len(s.menu.Entries))/2
	s.menu.Visible = true
}

// Draw renders the start screen
func (s *StartScreen) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	w := float64(screen.Bounds().Dx())
	titleX := (w - s.font.Measure(s.title)) / 2
	s.font.Draw(screen, s.title, titleX, s.menu.Y-3*s.font.LineHeight(), s.titleColor)
	s.menu.Draw(screen)
}
