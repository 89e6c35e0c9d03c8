package screens

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"citybuilder/city"
	"citybuilder/components"
	"citybuilder/config"
	"citybuilder/ecs"
	"citybuilder/logger"
	"citybuilder/metrics"
	"citybuilder/systems"
)

// taxStep is how much +/- changes the selected tax rate
const taxStep = 0.01

// EditorScreen is the city view: it owns the ECS world holding the city
// and the camera, and turns mouse and keyboard input into edits.
type EditorScreen struct {
	*BaseScreen
	world *ecs.World
	city  *city.City
	atlas components.TileAtlas

	name    string
	saveDir string

	simulationSystem *systems.SimulationSystem
	cameraSystem     *systems.CameraSystem
	renderSystem     *systems.RenderSystem
	messageSystem    *systems.MessageSystem

	font    *systems.UIFont
	menu    *Menu
	overlay *ScreenStack

	tileKey string
	taxKind city.TaxKind

	selecting   bool
	selectStart components.Point
	panning     bool
	lastX       int
	lastY       int
}

// EditorOptions names the city for saving
type EditorOptions struct {
	Name    string
	SaveDir string
}

// NewEditorScreen creates the editor for c
func NewEditorScreen(c *city.City, atlas components.TileAtlas, mapping *components.TileMapping, font *systems.UIFont, opts EditorOptions) *EditorScreen {
	world := ecs.NewWorld()

	cityEntity := world.CreateEntity()
	world.TagEntity(cityEntity.ID, "city")
	world.AddComponent(cityEntity.ID, components.CityComponentID, c)
	world.AddComponent(cityEntity.ID, components.Name, components.NewNameComponent(opts.Name))

	cameraEntity := world.CreateEntity()
	world.TagEntity(cameraEntity.ID, "camera")
	world.AddComponent(cameraEntity.ID, components.Camera, components.NewCameraComponent(0, 0))

	simulationSystem := systems.NewSimulationSystem()
	cameraSystem := systems.NewCameraSystem()
	sprites := systems.NewTileSprites(c.Map.TileSize, mapping)
	renderSystem := systems.NewRenderSystem(sprites, font, cameraSystem)
	messageSystem := systems.NewMessageSystem(systems.GetMessageLog())

	world.AddSystem(simulationSystem)
	world.AddSystem(cameraSystem)
	world.AddSystem(messageSystem)
	messageSystem.Initialize(world)
	cameraSystem.CenterOn(world)

	entries := make([]MenuEntry, 0, len(atlas))
	for _, key := range atlas.Keys() {
		tile := atlas[key]
		entries = append(entries, MenuEntry{
			Label:   fmt.Sprintf("%s  $%d", tile.Type, tile.Cost),
			Message: key,
		})
	}

	s := &EditorScreen{
		BaseScreen:       NewBaseScreen(),
		world:            world,
		city:             c,
		atlas:            atlas,
		name:             opts.Name,
		saveDir:          opts.SaveDir,
		simulationSystem: simulationSystem,
		cameraSystem:     cameraSystem,
		renderSystem:     renderSystem,
		messageSystem:    messageSystem,
		font:             font,
		menu:             NewMenu(font, config.MenuWidth, config.MenuEntryH, entries),
		overlay:          NewScreenStack(),
		tileKey:          components.KeyGrass,
	}
	s.renderSystem.TileName = s.currentTile().Type.String()
	return s
}

// Close releases the world's event subscriptions
func (s *EditorScreen) Close() {
	s.messageSystem.Shutdown(s.world)
}

// City returns the edited city
func (s *EditorScreen) City() *city.City {
	return s.city
}

func (s *EditorScreen) currentTile() components.Tile {
	if tile, ok := s.atlas.Lookup(s.tileKey); ok {
		return tile
	}
	return s.atlas.ForType(components.TileGrass)
}

// Update handles input, then advances the world by one frame
func (s *EditorScreen) Update() error {
	// F1 toggles the message log
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		if s.overlay.Peek() != nil {
			s.overlay.Pop()
		} else {
			s.overlay.Push(NewLogScreen(systems.GetMessageLog(), s.font))
		}
		return nil
	}

	// A modal on top takes all input and pauses the world
	if s.overlay.Peek() != nil {
		if err := s.overlay.Update(); err == ErrCloseScreen {
			s.overlay.Pop()
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if s.menu.Visible {
			s.menu.Hide()
		} else {
			return ErrCloseScreen
		}
	}

	s.handleKeys()
	s.handleMouse()

	s.world.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (s *EditorScreen) handleKeys() {
	dt := 1.0 / float64(ebiten.TPS())
	step := config.PanSpeed * dt
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.cameraSystem.Pan(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.cameraSystem.Pan(step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.cameraSystem.Pan(0, -step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.cameraSystem.Pan(0, step)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.simulationSystem.TogglePause()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		s.taxKind = city.TaxResidential
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		s.taxKind = city.TaxCommercial
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		s.taxKind = city.TaxIndustrial
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.adjustTax(taxStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.adjustTax(-taxStep)
	}
}

func (s *EditorScreen) adjustTax(delta float64) {
	s.city.SetTax(s.taxKind, s.city.Tax(s.taxKind)+delta)
	s.world.EmitEvent(systems.TaxChangedEvent{Kind: s.taxKind, Rate: s.city.Tax(s.taxKind)})
}

func (s *EditorScreen) save() {
	err := s.city.Save(s.saveDir, s.name)
	if err != nil {
		logger.L().Error("city_save_failed", "name", s.name, "err", err)
	}
	s.world.EmitEvent(systems.CitySavedEvent{Name: s.name, Dir: s.saveDir, Err: err})
}

func (s *EditorScreen) handleMouse() {
	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)

	if _, wy := ebiten.Wheel(); wy > 0 {
		s.cameraSystem.Zoom(0.9)
	} else if wy < 0 {
		s.cameraSystem.Zoom(1.1)
	}

	// Middle drag pans
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		s.panning = true
		s.lastX, s.lastY = mx, my
	}
	if s.panning {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
			s.panning = false
		} else {
			s.cameraSystem.Pan(float64(s.lastX-mx), float64(s.lastY-my))
			s.lastX, s.lastY = mx, my
		}
	}

	if s.menu.Visible {
		s.menu.Highlight(fx, fy)
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			if msg := s.menu.Activate(fx, fy); msg != NoMessage {
				s.tileKey = msg
				s.renderSystem.TileName = s.currentTile().Type.String()
			}
			s.menu.Hide()
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			s.menu.Hide()
		}
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if s.selecting {
			s.cancelSelection()
		} else {
			w, h := s.cameraSystem.Viewport()
			s.menu.Show(fx, fy, w, h)
		}
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if p, ok := s.cameraSystem.ScreenToGrid(s.world, mx, my); ok {
			s.selecting = true
			s.selectStart = p
		}
	}
	if !s.selecting {
		return
	}

	end, _ := s.cameraSystem.ScreenToGrid(s.world, mx, my)
	tmpl := s.currentTile()
	s.city.Map.ClearSelected()
	s.city.Map.Select(s.selectStart, end, components.PlacementBlacklist(tmpl.Type))
	cost := s.city.PlacementCost(tmpl)
	s.renderSystem.Preview = fmt.Sprintf("$%d", int64(cost))
	s.renderSystem.PreviewAlert = cost > s.city.Funds

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.place(tmpl)
	}
}

func (s *EditorScreen) place(tmpl components.Tile) {
	result, err := s.city.BuildSelection(tmpl)
	name := tmpl.Type.String()
	if err != nil {
		s.world.EmitEvent(systems.PlaceRefusedEvent{Name: name, Err: err})
	} else {
		metrics.ObservePlacement(result)
		s.world.EmitEvent(systems.TilesPlacedEvent{Name: name, Result: result})
	}
	s.cancelSelection()
}

func (s *EditorScreen) cancelSelection() {
	s.selecting = false
	s.city.Map.ClearSelected()
	s.renderSystem.Preview = ""
	s.renderSystem.PreviewAlert = false
}

// Draw draws the world, the tile menu and any open modal
func (s *EditorScreen) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(s.world, screen)
	s.menu.Draw(screen)
	if s.overlay.Peek() != nil {
		s.overlay.Draw(screen)
	}
}

// Layout keeps the map viewport above the info bar
func (s *EditorScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.cameraSystem.SetViewport(outsideWidth, outsideHeight-config.InfoBarHeight)
	s.overlay.Layout(outsideWidth, outsideHeight)
	return s.BaseScreen.Layout(outsideWidth, outsideHeight)
}
