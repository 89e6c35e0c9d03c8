package screens

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screen transition errors returned from Update
var (
	ErrNewCity     = errors.New("new city")
	ErrLoadCity    = errors.New("load city")
	ErrQuit        = errors.New("quit")
	ErrCloseScreen = errors.New("close screen")
)

// Screen represents a game screen that can be pushed onto the screen stack
type Screen interface {
	// Update updates the screen state
	Update() error
	// Draw draws the screen
	Draw(screen *ebiten.Image)
	// Layout handles screen layout
	Layout(outsideWidth, outsideHeight int) (int, int)
}

// Closer is implemented by screens holding resources to release when
// they leave the stack
type Closer interface {
	Close()
}

// ScreenStack owns a stack of screens. Screens removed from the stack
// are closed.
type ScreenStack struct {
	screens []Screen
}

// NewScreenStack creates a new screen stack
func NewScreenStack() *ScreenStack {
	return &ScreenStack{
		screens: make([]Screen, 0),
	}
}

// Push adds a new screen to the top of the stack
func (s *ScreenStack) Push(screen Screen) {
	s.screens = append(s.screens, screen)
}

// Pop removes and closes the top screen
func (s *ScreenStack) Pop() {
	if len(s.screens) == 0 {
		return
	}
	top := s.screens[len(s.screens)-1]
	s.screens[len(s.screens)-1] = nil
	s.screens = s.screens[:len(s.screens)-1]
	if c, ok := top.(Closer); ok {
		c.Close()
	}
}

// Change replaces the top screen
func (s *ScreenStack) Change(screen Screen) {
	s.Pop()
	s.Push(screen)
}

// Peek returns the top screen without removing it
func (s *ScreenStack) Peek() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Len returns the number of screens on the stack
func (s *ScreenStack) Len() int {
	return len(s.screens)
}

// Update updates the top screen
func (s *ScreenStack) Update() error {
	if top := s.Peek(); top != nil {
		return top.Update()
	}
	return nil
}

// Draw draws all screens from bottom to top
func (s *ScreenStack) Draw(screen *ebiten.Image) {
	for _, scr := range s.screens {
		scr.Draw(screen)
	}
}

// Layout lays out every screen and returns the top screen's size
func (s *ScreenStack) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	for _, scr := range s.screens {
		w, h = scr.Layout(outsideWidth, outsideHeight)
	}
	return w, h
}
