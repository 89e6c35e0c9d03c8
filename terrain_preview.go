package main

import (
	"fmt"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"citybuilder/city"
	"citybuilder/components"
	"citybuilder/config"
	"citybuilder/ecs"
	"citybuilder/generation"
	"citybuilder/logger"
	"citybuilder/systems"
)

// TerrainPreview implements ebiten.Game for trying out terrain seeds
// and thresholds without founding a city.
type TerrainPreview struct {
	world        *ecs.World
	cityEntity   *ecs.Entity
	settings     config.Settings
	atlas        components.TileAtlas
	generator    *generation.TerrainGenerator
	options      generation.TerrainOptions
	cameraSystem *systems.CameraSystem
	renderSystem *systems.RenderSystem
}

// NewTerrainPreview creates a preview starting at seed
func NewTerrainPreview(settings config.Settings, atlas components.TileAtlas, mapping *components.TileMapping, font *systems.UIFont, seed int64) *TerrainPreview {
	world := ecs.NewWorld()
	cameraSystem := systems.NewCameraSystem()
	renderSystem := systems.NewRenderSystem(systems.NewTileSprites(components.DefaultTileSize, mapping), font, cameraSystem)
	world.AddSystem(cameraSystem)

	cityEntity := world.CreateEntity()
	world.TagEntity(cityEntity.ID, "city")
	cameraEntity := world.CreateEntity()
	world.TagEntity(cameraEntity.ID, "camera")
	world.AddComponent(cameraEntity.ID, components.Camera, components.NewCameraComponent(0, 0))

	p := &TerrainPreview{
		world:        world,
		cityEntity:   cityEntity,
		settings:     settings,
		atlas:        atlas,
		generator:    terrainGenerator(settings, seed),
		cameraSystem: cameraSystem,
		renderSystem: renderSystem,
		options: generation.TerrainOptions{
			WaterLevel:   settings.Terrain.WaterLevel,
			ForestLevel:  settings.Terrain.ForestLevel,
			SmoothPasses: settings.Terrain.SmoothPasses,
		},
	}
	p.regenerate()
	cameraSystem.CenterOn(world)
	return p
}

func (p *TerrainPreview) regenerate() {
	p.generator.SetOptions(p.options)
	m := p.generator.Generate(p.settings.City.Width, p.settings.City.Height, components.DefaultTileSize, p.atlas)
	c := city.New(m, rand.New(rand.NewSource(p.generator.Seed())))
	p.world.AddComponent(p.cityEntity.ID, components.CityComponentID, c)
	p.renderSystem.TileName = fmt.Sprintf("seed %d  water %.2f  forest %.2f",
		p.generator.Seed(), p.options.WaterLevel, p.options.ForestLevel)
}

// Update handles regeneration, threshold and camera keys
func (p *TerrainPreview) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.generator.SetSeed(p.generator.Seed() + 1)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		p.options.WaterLevel = min(p.options.WaterLevel+0.05, 1)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		p.options.WaterLevel = max(p.options.WaterLevel-0.05, 0)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		p.options.ForestLevel = max(p.options.ForestLevel-0.05, 0)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		p.options.ForestLevel = min(p.options.ForestLevel+0.05, 1)
		changed = true
	}
	if changed {
		p.regenerate()
		logger.L().Debug("terrain_regenerated", "seed", p.generator.Seed(),
			"water", p.options.WaterLevel, "forest", p.options.ForestLevel)
	}

	step := config.PanSpeed / float64(ebiten.TPS())
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		p.cameraSystem.Pan(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		p.cameraSystem.Pan(step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		p.cameraSystem.Pan(0, -step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		p.cameraSystem.Pan(0, step)
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		p.cameraSystem.Zoom(0.9)
	} else if wy < 0 {
		p.cameraSystem.Zoom(1.1)
	}

	p.world.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw renders the generated map
func (p *TerrainPreview) Draw(screen *ebiten.Image) {
	p.renderSystem.Draw(p.world, screen)
}

// Layout implements ebiten.Game's Layout
func (p *TerrainPreview) Layout(outsideWidth, outsideHeight int) (int, int) {
	p.cameraSystem.SetViewport(outsideWidth, outsideHeight-config.InfoBarHeight)
	return outsideWidth, outsideHeight
}

func newTerrainCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "terrain",
		Short: "Preview generated terrain (R: next seed, Q/W: water, F/G: forest)",
		RunE: func(cmd *cobra.Command, args []string) error {
			font, err := systems.NewUIFont(opts.settings.UI.FontPath, opts.settings.UI.FontSize)
			if err != nil {
				logger.L().Warn("font_fallback", "err", err)
			}
			preview := NewTerrainPreview(opts.settings, opts.templates.Atlas(), opts.templates.Mapping(), font, resolveSeed(opts.settings))
			w, h := config.GetScreenDimensions()
			ebiten.SetWindowSize(w, h)
			ebiten.SetWindowTitle("Terrain Preview")
			return ebiten.RunGame(preview)
		},
	}
}
