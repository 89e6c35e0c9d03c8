package systems

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"citybuilder/components"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type spriteKey struct {
	tileType components.TileType
	variant  int
}

// TileSprites draws and caches one sprite per tile type and variant.
// Sprites are 2*TileSize wide and TileSize*Height high with the ground
// diamond along the bottom edge.
type TileSprites struct {
	tileSize int
	mapping  *components.TileMapping
	cache    map[spriteKey]*ebiten.Image
}

// NewTileSprites creates an empty sprite cache
func NewTileSprites(tileSize int, mapping *components.TileMapping) *TileSprites {
	if mapping == nil {
		mapping = components.NewTileMapping()
	}
	return &TileSprites{
		tileSize: tileSize,
		mapping:  mapping,
		cache:    make(map[spriteKey]*ebiten.Image),
	}
}

// Height returns the sprite height of a tile type in tiles
func (t *TileSprites) Height(tileType components.TileType) int {
	if h := t.mapping.GetTileDefinition(tileType).Height; h > 0 {
		return h
	}
	return 1
}

// Sprite returns the cached sprite for a tile, drawing it on first use
func (t *TileSprites) Sprite(tile *components.Tile) *ebiten.Image {
	key := spriteKey{tileType: tile.Type, variant: tile.Variant}
	if img, ok := t.cache[key]; ok {
		return img
	}
	img := t.draw(tile.Type, tile.Variant)
	t.cache[key] = img
	return img
}

func (t *TileSprites) draw(tileType components.TileType, variant int) *ebiten.Image {
	def := t.mapping.GetTileDefinition(tileType)
	ts := float32(t.tileSize)
	h := float32(t.tileSize * t.Height(tileType))
	img := ebiten.NewImage(t.tileSize*2, int(h))

	// ground diamond
	groundY := h - ts
	fillPolygon(img, def.Top,
		ts, groundY,
		2*ts, groundY+ts/2,
		ts, groundY+ts,
		0, groundY+ts/2,
	)

	switch {
	case tileType == components.TileRoad:
		drawRoadMarkings(img, ts, groundY, variant, def.Side)
	case tileType == components.TileForest:
		// one tree per tile
		fillPolygon(img, def.Side,
			ts, 0,
			ts*1.4, groundY+ts/2,
			ts*0.6, groundY+ts/2,
		)
	case tileType.IsZone() && variant > 0:
		drawBuilding(img, ts, groundY, variant, def)
	}
	return img
}

// drawRoadMarkings draws a centre line from the middle of the diamond to
// every connected edge.
func drawRoadMarkings(img *ebiten.Image, ts, groundY float32, variant int, clr color.Color) {
	cx, cy := ts, groundY+ts/2
	mask := components.DirectionMask(variant)
	edges := []struct {
		bit    int
		ex, ey float32
	}{
		{components.ConnectTop, ts * 1.5, groundY + ts*0.25},
		{components.ConnectRight, ts * 1.5, groundY + ts*0.75},
		{components.ConnectBottom, ts * 0.5, groundY + ts*0.75},
		{components.ConnectLeft, ts * 0.5, groundY + ts*0.25},
	}
	for _, e := range edges {
		if mask&e.bit != 0 {
			vector.StrokeLine(img, cx, cy, e.ex, e.ey, 1, clr, false)
		}
	}
}

// drawBuilding raises an inset box whose height grows with the zone level
func drawBuilding(img *ebiten.Image, ts, groundY float32, level int, def components.TileDefinition) {
	bh := ts * 0.25 * float32(level)
	if bh > groundY+ts*0.25 {
		bh = groundY + ts*0.25
	}
	// inset footprint
	top := groundY + ts*0.2
	left, right := ts*0.4, ts*1.6
	mid, bottom := groundY+ts*0.5, groundY+ts*0.8

	dark := shade(def.Side, 0.75)
	fillPolygon(img, dark,
		left, mid-bh,
		ts, bottom-bh,
		ts, bottom,
		left, mid,
	)
	fillPolygon(img, def.Side,
		ts, bottom-bh,
		right, mid-bh,
		right, mid,
		ts, bottom,
	)
	fillPolygon(img, shade(def.Top, 0.9),
		ts, top-bh,
		right, mid-bh,
		ts, bottom-bh,
		left, mid-bh,
	)
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// fillPolygon fills the polygon given as x, y pairs
func fillPolygon(dst *ebiten.Image, clr color.RGBA, xy ...float32) {
	if len(xy) < 6 {
		return
	}
	var path vector.Path
	path.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		path.LineTo(xy[i], xy[i+1])
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}
