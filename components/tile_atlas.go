package components

import (
	"errors"
	"image/color"
	"sort"
)

// ErrUnknownTileType is returned when a tile type name is not recognised
var ErrUnknownTileType = errors.New("unknown tile type")

// Atlas keys
const (
	KeyGrass       = "grass"
	KeyForest      = "forest"
	KeyWater       = "water"
	KeyResidential = "residential"
	KeyCommercial  = "commercial"
	KeyIndustrial  = "industrial"
	KeyRoad        = "road"
)

// TileAtlas maps a template name to the tile placed for it
type TileAtlas map[string]Tile

// DefaultTileAtlas returns the built-in tile templates
func DefaultTileAtlas() TileAtlas {
	return TileAtlas{
		KeyGrass:       NewTile(TileGrass, 50, 0, 1),
		KeyForest:      NewTile(TileForest, 100, 0, 1),
		KeyWater:       NewTile(TileWater, 0, 0, 1),
		KeyResidential: NewTile(TileResidential, 300, 50, 6),
		KeyCommercial:  NewTile(TileCommercial, 300, 50, 4),
		KeyIndustrial:  NewTile(TileIndustrial, 300, 50, 4),
		KeyRoad:        NewTile(TileRoad, 100, 0, 1),
	}
}

// KeyForType returns the atlas key of a tile type. VOID and unknown
// types map to grass.
func KeyForType(t TileType) string {
	switch t {
	case TileForest:
		return KeyForest
	case TileWater:
		return KeyWater
	case TileResidential:
		return KeyResidential
	case TileCommercial:
		return KeyCommercial
	case TileIndustrial:
		return KeyIndustrial
	case TileRoad:
		return KeyRoad
	default:
		return KeyGrass
	}
}

// TypeForKey is the inverse of KeyForType
func TypeForKey(key string) (TileType, bool) {
	for t := TileGrass; t <= TileRoad; t++ {
		if KeyForType(t) == key {
			return t, true
		}
	}
	return TileVoid, false
}

// ForType returns a fresh copy of the template for a tile type
func (a TileAtlas) ForType(t TileType) Tile {
	if tile, ok := a[KeyForType(t)]; ok {
		return tile
	}
	return a[KeyGrass]
}

// Lookup returns the template registered under key
func (a TileAtlas) Lookup(key string) (Tile, bool) {
	tile, ok := a[key]
	return tile, ok
}

// Keys returns the atlas keys in menu order
func (a TileAtlas) Keys() []string {
	order := []string{KeyGrass, KeyForest, KeyResidential, KeyCommercial, KeyIndustrial, KeyRoad, KeyWater}
	keys := make([]string, 0, len(a))
	seen := make(map[string]bool, len(a))
	for _, k := range order {
		if _, ok := a[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	extra := make([]string, 0)
	for k := range a {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// TileDefinition describes how a tile type is drawn
type TileDefinition struct {
	Top    color.RGBA // Colour of the ground diamond
	Side   color.RGBA // Colour of building walls
	Height int        // Sprite height in tiles
}

// TileMapping maps tile types to their visual representation
type TileMapping struct {
	Definitions map[TileType]TileDefinition
}

// NewTileMapping creates the default tile mapping
func NewTileMapping() *TileMapping {
	return &TileMapping{
		Definitions: map[TileType]TileDefinition{
			TileGrass:       {Top: color.RGBA{96, 160, 64, 255}, Side: color.RGBA{72, 120, 48, 255}, Height: 1},
			TileForest:      {Top: color.RGBA{40, 110, 50, 255}, Side: color.RGBA{24, 72, 32, 255}, Height: 2},
			TileWater:       {Top: color.RGBA{48, 96, 200, 255}, Side: color.RGBA{32, 64, 150, 255}, Height: 1},
			TileResidential: {Top: color.RGBA{96, 200, 96, 255}, Side: color.RGBA{200, 180, 140, 255}, Height: 2},
			TileCommercial:  {Top: color.RGBA{96, 140, 220, 255}, Side: color.RGBA{150, 170, 210, 255}, Height: 2},
			TileIndustrial:  {Top: color.RGBA{220, 200, 80, 255}, Side: color.RGBA{140, 130, 110, 255}, Height: 2},
			TileRoad:        {Top: color.RGBA{90, 90, 90, 255}, Side: color.RGBA{220, 220, 220, 255}, Height: 1},
		},
	}
}

// GetTileDefinition returns the visual definition for a given tile type
func (m *TileMapping) GetTileDefinition(tileType TileType) TileDefinition {
	if def, exists := m.Definitions[tileType]; exists {
		return def
	}

	// Magenta for undefined tiles
	return TileDefinition{
		Top:    color.RGBA{255, 0, 255, 255},
		Side:   color.RGBA{128, 0, 128, 255},
		Height: 1,
	}
}
