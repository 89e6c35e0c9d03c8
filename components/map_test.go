package components

import (
	"math"
	"math/rand"
	"testing"
)

func grassMap(t *testing.T, width, height int) *Map {
	t.Helper()
	atlas := DefaultTileAtlas()
	return NewMap(width, height, 8, atlas[KeyGrass])
}

func countState(m *Map, state SelectState) int {
	count := 0
	for _, s := range m.Selected {
		if s == state {
			count++
		}
	}
	return count
}

func TestNewMapArraysMatch(t *testing.T) {
	m := grassMap(t, 5, 3)
	if len(m.Tiles) != 15 || len(m.Resources) != 15 || len(m.Selected) != 15 {
		t.Fatalf("array lengths = %d/%d/%d, want 15", len(m.Tiles), len(m.Resources), len(m.Selected))
	}
	for i, r := range m.Resources {
		if r != InitialResources {
			t.Fatalf("resource[%d] = %d, want %d", i, r, InitialResources)
		}
	}
	if m.NumRegions[0] != 1 {
		t.Errorf("NumRegions[0] = %d, want 1", m.NumRegions[0])
	}
}

func TestSelectCountsValidCells(t *testing.T) {
	tests := []struct {
		name       string
		start, end Point
		want       int
	}{
		{"single cell", Point{1, 1}, Point{1, 1}, 1},
		{"full rectangle", Point{0, 0}, Point{3, 2}, 12},
		{"inverted corners", Point{3, 2}, Point{1, 0}, 9},
		{"out of grid", Point{-5, -5}, Point{10, 10}, 16},
		{"both corners past edge", Point{7, 7}, Point{9, 9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := grassMap(t, 4, 4)
			m.ClearSelected()
			m.Select(tt.start, tt.end, nil)
			if m.NumSelected != tt.want {
				t.Errorf("NumSelected = %d, want %d", m.NumSelected, tt.want)
			}
			if got := countState(m, SelectedValid); got != m.NumSelected {
				t.Errorf("state-1 cells = %d, NumSelected = %d", got, m.NumSelected)
			}
		})
	}
}

func TestSelectMarksBlacklistedInvalid(t *testing.T) {
	m := grassMap(t, 3, 3)
	atlas := DefaultTileAtlas()
	m.SetTile(1, 1, atlas[KeyWater])
	m.SetTile(2, 2, atlas[KeyRoad])

	m.Select(Point{0, 0}, Point{2, 2}, []TileType{TileWater, TileRoad})

	if m.NumSelected != 7 {
		t.Errorf("NumSelected = %d, want 7", m.NumSelected)
	}
	if m.SelectionAt(1, 1) != SelectedInvalid || m.SelectionAt(2, 2) != SelectedInvalid {
		t.Errorf("blacklisted cells not marked invalid")
	}
	if m.SelectionAt(0, 0) != SelectedValid {
		t.Errorf("grass cell not selected")
	}
}

func TestSelectOverlappingKeepsCount(t *testing.T) {
	m := grassMap(t, 4, 4)
	m.Select(Point{0, 0}, Point{2, 2}, nil)
	m.Select(Point{1, 1}, Point{3, 3}, nil)
	if got := countState(m, SelectedValid); got != m.NumSelected {
		t.Errorf("state-1 cells = %d, NumSelected = %d", got, m.NumSelected)
	}
	m.Select(Point{0, 0}, Point{3, 3}, []TileType{TileGrass})
	if m.NumSelected != 0 {
		t.Errorf("NumSelected = %d after blacklisting everything, want 0", m.NumSelected)
	}
}

func TestClearSelected(t *testing.T) {
	m := grassMap(t, 3, 3)
	m.Select(Point{0, 0}, Point{2, 2}, nil)
	m.ClearSelected()
	if m.NumSelected != 0 || countState(m, Deselected) != 9 {
		t.Errorf("selection not cleared: %d selected", m.NumSelected)
	}
}

func TestSelectOnEmptyMap(t *testing.T) {
	m := grassMap(t, 0, 0)
	m.Select(Point{0, 0}, Point{1, 1}, nil)
	if m.NumSelected != 0 {
		t.Errorf("NumSelected = %d, want 0", m.NumSelected)
	}
}

func placeRoads(m *Map, points ...Point) {
	road := DefaultTileAtlas()[KeyRoad]
	for _, p := range points {
		m.SetTile(p.X, p.Y, road)
	}
}

func TestFindConnectedRegionsLabelsComponents(t *testing.T) {
	m := grassMap(t, 5, 3)
	atlas := DefaultTileAtlas()
	placeRoads(m, Point{0, 0}, Point{1, 0}, Point{4, 0})
	m.SetTile(1, 1, atlas[KeyResidential])
	m.SetTile(4, 2, atlas[KeyIndustrial])

	found := m.FindConnectedRegions(TransportWhitelist, 0)

	if found != 3 {
		t.Fatalf("found %d regions, want 3", found)
	}
	if m.NumRegions[0] != 4 {
		t.Errorf("NumRegions[0] = %d, want 4", m.NumRegions[0])
	}
	if m.RegionOf(0, 0, 0) != 1 || m.RegionOf(1, 0, 0) != 1 || m.RegionOf(1, 1, 0) != 1 {
		t.Errorf("first network not labelled 1")
	}
	if m.RegionOf(4, 0, 0) != 2 {
		t.Errorf("RegionOf(4,0) = %d, want 2", m.RegionOf(4, 0, 0))
	}
	if m.RegionOf(4, 2, 0) != 3 {
		t.Errorf("RegionOf(4,2) = %d, want 3", m.RegionOf(4, 2, 0))
	}
	if m.RegionOf(2, 2, 0) != 0 {
		t.Errorf("grass cell labelled %d", m.RegionOf(2, 2, 0))
	}
}

func TestFindConnectedRegionsIdempotent(t *testing.T) {
	m := grassMap(t, 12, 12)
	rng := rand.New(rand.NewSource(7))
	atlas := DefaultTileAtlas()
	for i := range m.Tiles {
		if rng.Intn(2) == 0 {
			m.Tiles[i] = atlas[KeyRoad]
		}
	}

	m.FindConnectedRegions(TransportWhitelist, 0)
	first := make([]int, len(m.Tiles))
	for i := range m.Tiles {
		first[i] = m.Tiles[i].Regions[0]
	}
	firstCount := m.NumRegions[0]

	m.FindConnectedRegions(TransportWhitelist, 0)
	for i := range m.Tiles {
		if m.Tiles[i].Regions[0] != first[i] {
			t.Fatalf("label of tile %d changed from %d to %d", i, first[i], m.Tiles[i].Regions[0])
		}
	}
	if m.NumRegions[0] != firstCount {
		t.Errorf("NumRegions changed from %d to %d", firstCount, m.NumRegions[0])
	}
}

func TestFindConnectedRegionsLargeRegion(t *testing.T) {
	m := NewMap(300, 300, 8, DefaultTileAtlas()[KeyRoad])
	if found := m.FindConnectedRegions(TransportWhitelist, 0); found != 1 {
		t.Fatalf("found %d regions, want 1", found)
	}
	sizes := m.RegionSizes(0)
	if len(sizes) != 2 || sizes[1] != 300*300 {
		t.Errorf("RegionSizes = %v", sizes)
	}
}

func TestFindConnectedRegionsBadSlot(t *testing.T) {
	m := grassMap(t, 2, 2)
	if got := m.FindConnectedRegions(TransportWhitelist, RegionSlots); got != 0 {
		t.Errorf("bad slot returned %d", got)
	}
	if m.RegionOf(0, 0, 5) != -1 || m.RegionOf(-1, 0, 0) != -1 {
		t.Errorf("invalid lookups should return -1")
	}
}

func TestUpdateDirectionCodes(t *testing.T) {
	tests := []struct {
		name      string
		neighbors []Point
		want      int
	}{
		{"cross", []Point{{1, 0}, {2, 1}, {1, 2}, {0, 1}}, DirCross},
		{"tee missing down", []Point{{0, 1}, {2, 1}, {1, 0}}, DirTeeMissingDown},
		{"tee missing up", []Point{{0, 1}, {2, 1}, {1, 2}}, DirTeeMissingUp},
		{"tee missing east", []Point{{1, 0}, {1, 2}, {0, 1}}, DirTeeMissingEast},
		{"tee missing west", []Point{{1, 0}, {1, 2}, {2, 1}}, DirTeeMissingWest},
		{"horizontal", []Point{{0, 1}, {2, 1}}, DirHorizontal},
		{"vertical", []Point{{1, 0}, {1, 2}}, DirVertical},
		{"down-left", []Point{{1, 2}, {0, 1}}, DirBottomLeft},
		{"up-right", []Point{{1, 0}, {2, 1}}, DirTopRight},
		{"left-up", []Point{{0, 1}, {1, 0}}, DirTopLeft},
		{"down-right", []Point{{1, 2}, {2, 1}}, DirBottomRight},
		{"left only", []Point{{0, 1}}, DirHorizontal},
		{"right only", []Point{{2, 1}}, DirHorizontal},
		{"up only", []Point{{1, 0}}, DirVertical},
		{"down only", []Point{{1, 2}}, DirVertical},
		{"diagonals ignored", []Point{{0, 0}, {2, 2}}, DirHorizontal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := grassMap(t, 3, 3)
			placeRoads(m, Point{1, 1})
			placeRoads(m, tt.neighbors...)
			m.UpdateDirection(TileRoad)
			if got := m.TileAt(1, 1).Variant; got != tt.want {
				t.Errorf("variant = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateDirectionIsolatedAndEdges(t *testing.T) {
	m := grassMap(t, 1, 1)
	placeRoads(m, Point{0, 0})
	m.UpdateDirection(TileRoad)
	if v := m.TileAt(0, 0).Variant; v != 0 && v != 1 {
		t.Errorf("isolated road variant = %d, want 0 or 1", v)
	}

	m = grassMap(t, 3, 1)
	placeRoads(m, Point{0, 0}, Point{1, 0}, Point{2, 0})
	m.UpdateDirection(TileRoad)
	for x := 0; x < 3; x++ {
		if v := m.TileAt(x, 0).Variant; v != DirHorizontal {
			t.Errorf("road %d variant = %d, want %d", x, v, DirHorizontal)
		}
	}
}

func TestUpdateDirectionResetsRoadLeftAlone(t *testing.T) {
	m := grassMap(t, 3, 3)
	placeRoads(m, Point{0, 1}, Point{1, 1}, Point{2, 1}, Point{1, 2})
	m.UpdateDirection(TileRoad)
	if v := m.TileAt(1, 1).Variant; v != DirTeeMissingUp {
		t.Fatalf("tee variant = %d, want %d", v, DirTeeMissingUp)
	}

	grass := DefaultTileAtlas()[KeyGrass]
	for _, p := range []Point{{0, 1}, {2, 1}, {1, 2}} {
		m.SetTile(p.X, p.Y, grass)
	}
	m.UpdateDirection(TileRoad)
	if v := m.TileAt(1, 1).Variant; v != DirHorizontal {
		t.Errorf("isolated road variant = %d, want %d", v, DirHorizontal)
	}
}

func TestUpdateDirectionLeavesOtherTypes(t *testing.T) {
	m := grassMap(t, 3, 3)
	res := DefaultTileAtlas()[KeyResidential]
	res.Variant = 3
	m.SetTile(1, 1, res)
	placeRoads(m, Point{0, 1}, Point{2, 1})
	m.UpdateDirection(TileRoad)
	if v := m.TileAt(1, 1).Variant; v != 3 {
		t.Errorf("residential variant changed to %d", v)
	}
}

func TestPlacementBlacklist(t *testing.T) {
	if got := PlacementBlacklist(TileGrass); len(got) != 2 {
		t.Errorf("grass blacklist = %v", got)
	}
	roads := PlacementBlacklist(TileRoad)
	if !containsType(roads, TileRoad) || !containsType(roads, TileForest) || containsType(roads, TileGrass) {
		t.Errorf("road blacklist = %v", roads)
	}
}

func TestDirectionMaskMatchesLookup(t *testing.T) {
	for variant := DirHorizontal; variant <= DirTeeMissingWest; variant++ {
		mask := DirectionMask(variant)
		if got := DirectionLookup[mask]; got != variant {
			t.Errorf("DirectionLookup[DirectionMask(%d)=%d] = %d", variant, mask, got)
		}
	}
	if DirectionMask(99) != ConnectLeft|ConnectRight {
		t.Errorf("unknown variant should draw horizontal")
	}
}

func TestMapFileSize(t *testing.T) {
	if got, ok := MapFileSize(3, 2); !ok || got != 6*int64(TileRecordSize) {
		t.Errorf("MapFileSize(3, 2) = %d, %v", got, ok)
	}
	if _, ok := MapFileSize(math.MaxInt32+1, math.MaxInt32+1); ok {
		t.Errorf("overflowing size accepted")
	}
	if _, ok := MapFileSize(-1, 4); ok {
		t.Errorf("negative size accepted")
	}
}
