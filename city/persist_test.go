package city

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"citybuilder/components"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	atlas := components.DefaultTileAtlas()

	c := newTestCity(t, 5, 4, WithFunds(12345.5))
	setTiles(t, c, components.KeyRoad, components.Point{X: 0, Y: 1}, components.Point{X: 1, Y: 1}, components.Point{X: 2, Y: 1})
	setTiles(t, c, components.KeyForest, components.Point{X: 4, Y: 3})
	res := atlas[components.KeyResidential]
	res.Variant = 2
	res.Population = 37.25
	c.Map.SetTile(0, 0, res)
	ind := atlas[components.KeyIndustrial]
	ind.StoredGoods = 14
	c.Map.SetTile(0, 2, ind)
	c.TileChanged()

	c.Day = 47
	c.Earnings = 321.125
	c.Population = 400.5
	c.Employable = 150.75
	c.PopulationPool = 12.5
	c.EmploymentPool = 3.25
	c.SetTax(TaxResidential, 0.1)
	c.SetTax(TaxCommercial, 0.07)
	c.SetTax(TaxIndustrial, 0.2)

	if err := c.Save(dir, "test"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir, "test", atlas, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := loaded.Summary(), c.Summary(); got.Day != want.Day ||
		got.Width != want.Width || got.Height != want.Height ||
		got.Funds != want.Funds || got.Earnings != want.Earnings ||
		got.Population != want.Population || got.Employable != want.Employable ||
		got.Homeless != want.Homeless || got.Unemployed != want.Unemployed ||
		got.ResidentialTax != want.ResidentialTax || got.CommercialTax != want.CommercialTax ||
		got.IndustrialTax != want.IndustrialTax || got.Regions != want.Regions {
		t.Errorf("ledger changed:\n got %+v\nwant %+v", got, want)
	}

	for i := range c.Map.Tiles {
		a, b := c.Map.Tiles[i], loaded.Map.Tiles[i]
		if a.Type != b.Type || a.Variant != b.Variant || a.Population != b.Population ||
			a.StoredGoods != b.StoredGoods || a.Regions != b.Regions || a.Cost != b.Cost {
			t.Errorf("tile %d: saved %+v, loaded %+v", i, a, b)
		}
	}
}

func TestMapFileRecordSize(t *testing.T) {
	dir := t.TempDir()
	c := newTestCity(t, 3, 2)
	if err := c.Save(dir, "size"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(MapPath(dir, "size"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// type, variant, one region label, population, stored goods
	const recordSize = 4 + 4 + 4*components.RegionSlots + 8 + 4
	if info.Size() != 6*recordSize {
		t.Errorf("map file is %d bytes, want %d", info.Size(), 6*recordSize)
	}
}

func writeSave(t *testing.T, dir, name, cfg string, m *components.Map) {
	t.Helper()
	if err := os.WriteFile(ConfigPath(dir, name), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	f, err := os.Create(MapPath(dir, name))
	if err != nil {
		t.Fatalf("create map: %v", err)
	}
	defer f.Close()
	if err := m.WriteTiles(f); err != nil {
		t.Fatalf("write map: %v", err)
	}
}

func TestLoadToleratesBadConfigLines(t *testing.T) {
	dir := t.TempDir()
	atlas := components.DefaultTileAtlas()
	m := components.NewMap(2, 2, components.DefaultTileSize, atlas[components.KeyGrass])

	cfg := "width=2\n" +
		"height=2\n" +
		"mayor=Bob\n" +
		"funds=\n" +
		"day\n" +
		"earnings=lots\n" +
		"residentialTax=0.2\n" +
		"residentialTax=0.3\n" +
		"\n" +
		"day=9\n"
	writeSave(t, dir, "messy", cfg, m)

	c, err := Load(dir, "messy", atlas, rand.New(rand.NewSource(1)), WithFunds(77))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Day != 9 {
		t.Errorf("Day = %d, want 9", c.Day)
	}
	if c.Funds != 77 {
		t.Errorf("Funds = %v, want the default 77", c.Funds)
	}
	if c.Earnings != 0 {
		t.Errorf("Earnings = %v, want 0", c.Earnings)
	}
	if c.ResidentialTax != 0.3 {
		t.Errorf("ResidentialTax = %v, want last value 0.3", c.ResidentialTax)
	}
	if c.BirthRate != DefaultBirthRate {
		t.Errorf("BirthRate = %v, want default", c.BirthRate)
	}
}

func TestLoadSubstitutesGrassForUnknownTypes(t *testing.T) {
	dir := t.TempDir()
	atlas := components.DefaultTileAtlas()
	m := components.NewMap(3, 1, components.DefaultTileSize, atlas[components.KeyGrass])
	m.Tiles[0].Type = components.TileVoid
	m.Tiles[1].Type = components.TileType(42)
	m.Tiles[2] = atlas[components.KeyRoad]
	writeSave(t, dir, "odd", "width=3\nheight=1\n", m)

	c, err := Load(dir, "odd", atlas, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Map.Tiles[0].Type != components.TileGrass || c.Map.Tiles[1].Type != components.TileGrass {
		t.Errorf("unknown types not replaced with grass: %v %v", c.Map.Tiles[0].Type, c.Map.Tiles[1].Type)
	}
	if c.Map.Tiles[1].Cost != atlas[components.KeyGrass].Cost {
		t.Errorf("substituted tile lacks grass template values")
	}
	if c.Map.RegionOf(2, 0, 0) != 1 {
		t.Errorf("regions not recomputed on load")
	}
	if len(c.TileOrder()) != 3 {
		t.Errorf("tile order not rebuilt on load")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	atlas := components.DefaultTileAtlas()

	if _, err := Load(dir, "missing", atlas, rand.New(rand.NewSource(1))); err == nil {
		t.Errorf("expected error for a missing save")
	}
	if _, err := LoadIfExists(dir, "missing", atlas, rand.New(rand.NewSource(1))); !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadIfExists err = %v, want ErrNoSave", err)
	}

	// Ledger claims a bigger map than the tile file holds.
	small := components.NewMap(1, 1, components.DefaultTileSize, atlas[components.KeyGrass])
	writeSave(t, dir, "short", "width=4\nheight=4\n", small)
	if _, err := Load(dir, "short", atlas, rand.New(rand.NewSource(1))); !errors.Is(err, ErrCorruptSave) {
		t.Errorf("truncated tile file: err = %v, want ErrCorruptSave", err)
	}
}

func TestLoadRejectsImpossibleSizes(t *testing.T) {
	dir := t.TempDir()
	atlas := components.DefaultTileAtlas()
	empty := components.NewMap(0, 0, components.DefaultTileSize, atlas[components.KeyGrass])

	tests := []struct {
		name string
		cfg  string
	}{
		{"overflowing product", "width=4294967296\nheight=4294967296\n"},
		{"huge but representable", "width=100000\nheight=100000\n"},
		{"negative", "width=-3\nheight=2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeSave(t, dir, "bad", tt.cfg, empty)
			_, err := Load(dir, "bad", atlas, rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrCorruptSave) {
				t.Errorf("err = %v, want ErrCorruptSave", err)
			}
		})
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")
	c := newTestCity(t, 1, 1)
	if err := c.Save(dir, "city"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists(dir, "city") {
		t.Errorf("save not found after Save")
	}
}
