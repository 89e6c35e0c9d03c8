package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"

	"citybuilder/components"
	"citybuilder/logger"
	"citybuilder/systems"
)

// spriteRow is one tile key with every variant worth looking at
type spriteRow struct {
	key   string
	tiles []components.Tile
}

// SpriteViewer implements ebiten.Game and shows every tile sprite and
// variant side by side.
type SpriteViewer struct {
	sprites *systems.TileSprites
	font    *systems.UIFont
	rows    []spriteRow
	scale   float64
	offsetY float64
}

// NewSpriteViewer creates a viewer for the tiles of atlas
func NewSpriteViewer(atlas components.TileAtlas, mapping *components.TileMapping, font *systems.UIFont) *SpriteViewer {
	rows := make([]spriteRow, 0, len(atlas))
	for _, key := range atlas.Keys() {
		tmpl := atlas[key]
		last := 0
		switch {
		case tmpl.Type == components.TileRoad:
			last = components.DirTeeMissingWest
		case tmpl.Type.IsZone():
			last = tmpl.MaxLevels
		}
		row := spriteRow{key: key}
		for v := 0; v <= last; v++ {
			tile := tmpl
			tile.Variant = v
			row.tiles = append(row.tiles, tile)
		}
		rows = append(rows, row)
	}
	return &SpriteViewer{
		sprites: systems.NewTileSprites(components.DefaultTileSize, mapping),
		font:    font,
		rows:    rows,
		scale:   4,
	}
}

// Update handles zoom and scrolling
func (v *SpriteViewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) && v.scale < 8 {
		v.scale++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && v.scale > 1 {
		v.scale--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.offsetY += 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) && v.offsetY > 0 {
		v.offsetY -= 4
	}
	return nil
}

// Draw displays the sprites of each tile key on one row
func (v *SpriteViewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 30, 255})
	v.font.Draw(screen, "Esc: quit | +/-: zoom | Up/Down: scroll", 10, 10, color.White)

	ts := float64(components.DefaultTileSize)
	cellW := 2*ts*v.scale + 8
	y := 40 - v.offsetY
	for _, row := range v.rows {
		rowH := 0.0
		for _, tile := range row.tiles {
			h := float64(v.sprites.Height(tile.Type)) * ts * v.scale
			rowH = max(rowH, h)
		}
		v.font.Draw(screen, row.key, 10, y, color.White)
		for i, tile := range row.tiles {
			x := 110 + float64(i)*cellW
			h := float64(v.sprites.Height(tile.Type)) * ts * v.scale
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(2*ts*v.scale), float32(rowH), color.RGBA{60, 60, 60, 255}, false)

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(v.scale, v.scale)
			op.GeoM.Translate(x, y+rowH-h)
			screen.DrawImage(v.sprites.Sprite(&tile), op)
			v.font.Draw(screen, fmt.Sprint(tile.Variant), x+2, y+rowH+2, color.RGBA{180, 180, 180, 255})
		}
		y += rowH + v.font.LineHeight() + 12
	}
}

// Layout implements ebiten.Game's Layout
func (v *SpriteViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func newSpritesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sprites",
		Short: "Show every tile sprite and variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			font, err := systems.NewUIFont(opts.settings.UI.FontPath, opts.settings.UI.FontSize)
			if err != nil {
				logger.L().Warn("font_fallback", "err", err)
			}
			viewer := NewSpriteViewer(opts.templates.Atlas(), opts.templates.Mapping(), font)
			ebiten.SetWindowSize(900, 700)
			ebiten.SetWindowTitle("Tile Sprites")
			return ebiten.RunGame(viewer)
		},
	}
}
