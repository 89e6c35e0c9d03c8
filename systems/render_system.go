package systems

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"citybuilder/components"
	"citybuilder/config"
	"citybuilder/ecs"
)

var (
	backgroundColor = color.RGBA{20, 24, 32, 255}
	infoBarColor    = color.RGBA{0, 0, 0, 200}
	infoTextColor   = color.RGBA{230, 230, 230, 255}
)

// RenderSystem draws the isometric city and the info bar
type RenderSystem struct {
	sprites      *TileSprites
	font         *UIFont
	cameraSystem *CameraSystem

	// TileName is shown at the end of the info bar
	TileName string
	// Preview, when set, is drawn after the info labels, e.g. a pending cost
	Preview      string
	PreviewAlert bool
}

// NewRenderSystem creates a new rendering system
func NewRenderSystem(sprites *TileSprites, font *UIFont, cameraSystem *CameraSystem) *RenderSystem {
	return &RenderSystem{
		sprites:      sprites,
		font:         font,
		cameraSystem: cameraSystem,
	}
}

// Update implements ecs.System
func (s *RenderSystem) Update(world *ecs.World, dt float64) {}

// Draw renders the map followed by the info bar
func (s *RenderSystem) Draw(world *ecs.World, screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.drawMap(world, screen)
	s.drawInfoBar(world, screen)
}

func (s *RenderSystem) drawMap(world *ecs.World, screen *ebiten.Image) {
	c := CityFromWorld(world)
	camera := CameraFromWorld(world)
	if c == nil || camera == nil {
		return
	}
	m := c.Map
	vw, vh := s.cameraSystem.Viewport()
	ts := float64(m.TileSize)
	scale := 1 / camera.Zoom

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := m.TileAt(x, y)
			height := float64(s.sprites.Height(tile.Type))

			px, py := m.IsoPosition(x, y)
			py -= (height - 1) * ts
			sx, sy := camera.WorldToScreen(px, py, vw, vh)

			// cull sprites entirely off screen
			if sx > vw || sy > vh || sx+2*ts*scale < 0 || sy+height*ts*scale < 0 {
				continue
			}

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(sx, sy)
			switch m.SelectionAt(x, y) {
			case components.SelectedValid:
				op.ColorScale.Scale(0.6, 0.6, 0.6, 1)
			case components.SelectedInvalid:
				op.ColorScale.Scale(1, 0.4, 0.4, 1)
			}
			screen.DrawImage(s.sprites.Sprite(tile), op)
		}
	}
}

func (s *RenderSystem) drawInfoBar(world *ecs.World, screen *ebiten.Image) {
	c := CityFromWorld(world)
	if c == nil {
		return
	}
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	top := float32(h - config.InfoBarHeight)
	vector.DrawFilledRect(screen, 0, top, float32(w), config.InfoBarHeight, infoBarColor, false)

	labels := c.Summary().InfoLabels()
	if s.TileName != "" {
		labels = append(labels, s.TileName)
	}
	line := strings.Join(labels, "   ")
	textY := float64(top) + (config.InfoBarHeight-s.font.LineHeight())/2
	s.font.Draw(screen, line, 8, textY, infoTextColor)

	if s.Preview != "" {
		clr := color.Color(infoTextColor)
		if s.PreviewAlert {
			clr = color.RGBA{255, 80, 80, 255}
		}
		s.font.Draw(screen, s.Preview, float64(w)-s.font.Measure(s.Preview)-8, textY, clr)
	}
}
