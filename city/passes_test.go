package city

import (
	"testing"

	"citybuilder/components"
)

// fixedRNG always draws the same value and keeps the tile order as is
type fixedRNG struct {
	n int
}

func (r fixedRNG) Intn(n int) int {
	return min(r.n, n-1)
}

func (r fixedRNG) Float64() float64 {
	return 0
}

func (r fixedRNG) Shuffle(n int, swap func(i, j int)) {}

// row builds a one-row city from tile keys; "" leaves grass
func row(t *testing.T, keys ...string) *City {
	t.Helper()
	atlas := components.DefaultTileAtlas()
	m := components.NewMap(len(keys), 1, components.DefaultTileSize, atlas[components.KeyGrass])
	for x, key := range keys {
		if key == "" {
			continue
		}
		tile, ok := atlas.Lookup(key)
		if !ok {
			t.Fatalf("no template %q", key)
		}
		m.SetTile(x, 0, tile)
	}
	return New(m, fixedRNG{})
}

func TestExtractionDrainsOwnCell(t *testing.T) {
	c := row(t, "", components.KeyIndustrial)
	c.Population = 100
	c.Map.Resources[1] = 2

	for i := 0; i < 3; i++ {
		c.extractionPass()
	}

	if got := c.Map.Tiles[1].Production; got != 2 {
		t.Errorf("production = %v, want 2", got)
	}
	if got := c.Map.Resources[1]; got != 0 {
		t.Errorf("resources = %d, want 0", got)
	}
	if got := c.Map.Resources[0]; got != 255 {
		t.Errorf("neighbouring cell resources = %d, want 255", got)
	}
}

func TestExtractionNeedsPopulation(t *testing.T) {
	c := row(t, components.KeyIndustrial)
	c.extractionPass()
	if got := c.Map.Tiles[0].Production; got != 0 {
		t.Errorf("production = %v with no population", got)
	}
	if got := c.Map.Resources[0]; got != 255 {
		t.Errorf("resources = %d, want 255", got)
	}
}

func TestManufactureScopedToRegion(t *testing.T) {
	ind := components.KeyIndustrial
	c := row(t, ind, ind, ind, "", ind)
	if c.Map.RegionOf(0, 0, 0) == c.Map.RegionOf(4, 0, 0) {
		t.Fatalf("industry across the gap shares a region")
	}
	for _, x := range []int{1, 2, 4} {
		c.Map.Tiles[x].Production = 4
	}

	c.manufacturePass()

	wantProduction := map[int]float64{0: 0, 1: 1, 2: 4, 4: 3}
	wantGoods := map[int]float64{0: 1, 1: 3, 2: 5, 4: 4}
	for x, want := range wantProduction {
		if got := c.Map.Tiles[x].Production; got != want {
			t.Errorf("tile %d production = %v, want %v", x, got, want)
		}
	}
	for x, want := range wantGoods {
		if got := c.Map.Tiles[x].StoredGoods; got != want {
			t.Errorf("tile %d goods = %v, want %v", x, got, want)
		}
	}
}

func TestManufactureScalesWithLevel(t *testing.T) {
	c := row(t, components.KeyIndustrial, components.KeyIndustrial)
	c.Map.Tiles[0].Variant = 2
	c.Map.Tiles[0].Production = 2
	c.Map.Tiles[1].Production = 10

	c.manufacturePass()

	// Tile 0 takes one unit from each tile, keeps one of its own and
	// multiplies by its level.
	if got := c.Map.Tiles[0].StoredGoods; got != 9 {
		t.Errorf("tile 0 goods = %v, want 9", got)
	}
	if got := c.Map.Tiles[1].StoredGoods; got != 10 {
		t.Errorf("tile 1 goods = %v, want 10", got)
	}
	if got := c.Map.Tiles[1].Production; got != 9 {
		t.Errorf("tile 1 production = %v, want 9", got)
	}
}

func TestDistributionTakesLevelGoods(t *testing.T) {
	for variant := 0; variant < 3; variant++ {
		c := row(t, components.KeyCommercial, components.KeyIndustrial)
		c.Map.Tiles[0].Variant = variant
		c.Map.Tiles[1].StoredGoods = 5
		c.SetTax(TaxIndustrial, 0)

		_, industrial := c.distributionPass()

		sold := float64(variant + 1)
		if got := c.Map.Tiles[1].StoredGoods; got != 5-sold {
			t.Errorf("variant %d: goods left = %v, want %v", variant, got, 5-sold)
		}
		if industrial != 100*sold {
			t.Errorf("variant %d: industrial revenue = %v, want %v", variant, industrial, 100*sold)
		}
	}
}

func TestDistributionScopedToRegion(t *testing.T) {
	c := row(t,
		components.KeyIndustrial, components.KeyResidential, "",
		components.KeyCommercial, components.KeyResidential, components.KeyIndustrial)
	c.SetTax(TaxCommercial, 0)
	c.SetTax(TaxIndustrial, 0)
	c.Map.Tiles[0].StoredGoods = 5
	c.Map.Tiles[1].Population = 30
	c.Map.Tiles[3].Variant = 1
	c.Map.Tiles[3].Population = 10
	c.Map.Tiles[4].Population = 20
	c.Map.Tiles[5].StoredGoods = 1

	commercial, industrial := c.distributionPass()

	if got := c.Map.Tiles[0].StoredGoods; got != 5 {
		t.Errorf("goods across the gap = %v, want 5", got)
	}
	if got := c.Map.Tiles[5].StoredGoods; got != 0 {
		t.Errorf("goods on the network = %v, want 0", got)
	}
	if industrial != 100 {
		t.Errorf("industrial revenue = %v, want 100", industrial)
	}
	// One good sold, 20 customers on the network, 10 staff
	if got := c.Map.Tiles[3].Production; got != 100 {
		t.Errorf("shop production = %v, want 100", got)
	}
	if commercial != 200 {
		t.Errorf("commercial revenue = %v, want 200", commercial)
	}
}
