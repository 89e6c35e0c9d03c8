package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"citybuilder/city"
	"citybuilder/components"
	"citybuilder/config"
	"citybuilder/logger"
	"citybuilder/screens"
	"citybuilder/systems"
)

// Game implements ebiten.Game by forwarding to a screen stack
type Game struct {
	settings config.Settings
	atlas    components.TileAtlas
	mapping  *components.TileMapping
	font     *systems.UIFont
	screens  *screens.ScreenStack
}

// NewGame creates a game showing the start menu
func NewGame(settings config.Settings, atlas components.TileAtlas, mapping *components.TileMapping) *Game {
	font, err := systems.NewUIFont(settings.UI.FontPath, settings.UI.FontSize)
	if err != nil {
		logger.L().Warn("font_fallback", "path", settings.UI.FontPath, "err", err)
	}

	g := &Game{
		settings: settings,
		atlas:    atlas,
		mapping:  mapping,
		font:     font,
		screens:  screens.NewScreenStack(),
	}
	g.screens.Push(screens.NewStartScreen("City Builder", font))
	return g
}

// Update runs the top screen and handles the transition it asks for
func (g *Game) Update() error {
	err := g.screens.Update()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, screens.ErrNewCity):
		g.openEditor(newCity(g.settings, g.atlas))
	case errors.Is(err, screens.ErrLoadCity):
		c, err := loadCity(g.settings, g.atlas)
		if err != nil {
			logger.L().Warn("city_load_failed", "name", g.settings.City.Name, "err", err)
			msg := fmt.Sprintf("Could not load %q", g.settings.City.Name)
			if errors.Is(err, city.ErrNoSave) {
				msg = fmt.Sprintf("No saved city named %q", g.settings.City.Name)
			}
			g.screens.Push(screens.NewModalScreen("Load City", msg, 380, 80, g.font))
			return nil
		}
		g.openEditor(c)
	case errors.Is(err, screens.ErrCloseScreen):
		g.screens.Pop()
		if g.screens.Len() == 0 {
			return ebiten.Termination
		}
	case errors.Is(err, screens.ErrQuit):
		return ebiten.Termination
	default:
		return err
	}
	return nil
}

func (g *Game) openEditor(c *city.City) {
	systems.GetMessageLog().AddColored(fmt.Sprintf("Welcome to %s", g.settings.City.Name), systems.MessageTypeSystem)
	g.screens.Push(screens.NewEditorScreen(c, g.atlas, g.mapping, g.font, screens.EditorOptions{
		Name:    g.settings.City.Name,
		SaveDir: g.settings.City.SaveDir,
	}))
}

// Draw draws the screen stack
func (g *Game) Draw(screen *ebiten.Image) {
	g.screens.Draw(screen)
}

// Layout implements ebiten.Game's Layout
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screens.Layout(outsideWidth, outsideHeight)
}

// runPlay opens the game window
func runPlay(opts *rootOptions) error {
	game := NewGame(opts.settings, opts.templates.Atlas(), opts.templates.Mapping())

	w, h := config.GetScreenDimensions()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("City Builder - " + opts.settings.City.Name)
	return ebiten.RunGame(game)
}
