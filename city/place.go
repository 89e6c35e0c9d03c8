package city

import (
	"errors"
	"fmt"

	"citybuilder/components"
)

var (
	// ErrInsufficientFunds is returned when a placement costs more than the city has
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnknownTile is returned when a tile key is not in the atlas
	ErrUnknownTile = errors.New("unknown tile")
)

// PlaceResult describes a completed placement
type PlaceResult struct {
	Tile    components.TileType `json:"tile"`
	Placed  int                 `json:"placed"`
	Cost    float64             `json:"cost"`
	Regions int                 `json:"regions"`
}

// PlacementCost returns what placing tmpl over the current valid
// selection would cost.
func (c *City) PlacementCost(tmpl components.Tile) float64 {
	return float64(tmpl.Cost * c.Map.NumSelected)
}

// Place selects the rectangle between start and end, skipping cells
// that tmpl may not replace, and builds tmpl on every valid cell. The
// selection is cleared afterwards whether or not the build happened.
func (c *City) Place(tmpl components.Tile, start, end components.Point) (PlaceResult, error) {
	c.Map.ClearSelected()
	c.Map.Select(start, end, components.PlacementBlacklist(tmpl.Type))
	defer c.Map.ClearSelected()

	return c.BuildSelection(tmpl)
}

// BuildSelection builds tmpl over the current valid selection, charging
// its cost per cell. It leaves the selection untouched.
func (c *City) BuildSelection(tmpl components.Tile) (PlaceResult, error) {
	result := PlaceResult{Tile: tmpl.Type}
	if c.Map.NumSelected == 0 {
		result.Regions = c.Map.NumRegions[0] - 1
		return result, nil
	}

	cost := c.PlacementCost(tmpl)
	if c.Funds < cost {
		return result, fmt.Errorf("%s costs %.0f, have %.0f: %w", tmpl.Type, cost, c.Funds, ErrInsufficientFunds)
	}

	result.Placed = c.Bulldoze(tmpl)
	result.Cost = cost
	c.Funds -= cost
	result.Regions = c.TileChanged()
	return result, nil
}

// PlaceKey looks key up in atlas and places it like Place
func (c *City) PlaceKey(atlas components.TileAtlas, key string, start, end components.Point) (PlaceResult, error) {
	tmpl, ok := atlas.Lookup(key)
	if !ok {
		return PlaceResult{}, fmt.Errorf("%q: %w", key, ErrUnknownTile)
	}
	return c.Place(tmpl, start, end)
}
