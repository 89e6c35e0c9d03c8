package generation

import (
	"testing"

	"citybuilder/components"
)

func TestGenerateIsDeterministic(t *testing.T) {
	atlas := components.DefaultTileAtlas()
	a := NewTerrainGenerator(42).Generate(32, 24, components.DefaultTileSize, atlas)
	b := NewTerrainGenerator(42).Generate(32, 24, components.DefaultTileSize, atlas)

	for i := range a.Tiles {
		if a.Tiles[i].Type != b.Tiles[i].Type {
			t.Fatalf("tile %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerateUsesNaturalTiles(t *testing.T) {
	atlas := components.DefaultTileAtlas()
	m := NewTerrainGenerator(7).Generate(48, 48, components.DefaultTileSize, atlas)

	counts := make(map[components.TileType]int)
	for _, tile := range m.Tiles {
		counts[tile.Type]++
		if tile.Cost != atlas.ForType(tile.Type).Cost {
			t.Fatalf("tile %v does not carry its template cost", tile.Type)
		}
	}

	for tt := range counts {
		if tt != components.TileGrass && tt != components.TileForest && tt != components.TileWater {
			t.Errorf("unexpected tile type %v in generated terrain", tt)
		}
	}
	if counts[components.TileWater] == 0 {
		t.Errorf("no water generated")
	}
	if counts[components.TileGrass] < len(m.Tiles)/3 {
		t.Errorf("only %d of %d cells are buildable grass", counts[components.TileGrass], len(m.Tiles))
	}
	if len(m.Resources) != len(m.Tiles) || m.Resources[0] != components.InitialResources {
		t.Errorf("resources not initialised")
	}
}

func TestGenerateAllGrassWhenThresholdsClosed(t *testing.T) {
	g := NewTerrainGenerator(3)
	g.SetOptions(TerrainOptions{WaterLevel: -1, ForestLevel: 2})
	m := g.Generate(10, 10, components.DefaultTileSize, components.DefaultTileAtlas())

	// Only the scattered trees may break up the grass.
	for _, tile := range m.Tiles {
		if tile.Type == components.TileWater {
			t.Fatalf("water generated with a closed water threshold")
		}
	}
}

func TestGenerateEmptyMap(t *testing.T) {
	m := NewTerrainGenerator(1).Generate(0, 5, components.DefaultTileSize, components.DefaultTileAtlas())
	if len(m.Tiles) != 0 {
		t.Errorf("len(Tiles) = %d, want 0", len(m.Tiles))
	}
}
