package components

// TransportWhitelist lists the tile types that form the transport network
var TransportWhitelist = []TileType{TileRoad, TileResidential, TileCommercial, TileIndustrial}

// FindConnectedRegions labels every 4-connected group of whitelisted
// tiles in the given region slot. Labels start at 1 in row-major scan
// order; 0 marks tiles outside the whitelist. It returns the number of
// regions found.
func (m *Map) FindConnectedRegions(whitelist []TileType, slot int) int {
	if slot < 0 || slot >= RegionSlots {
		return 0
	}

	for i := range m.Tiles {
		m.Tiles[i].Regions[slot] = 0
	}

	label := 1
	stack := make([]Point, 0, 64)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := &m.Tiles[m.Index(x, y)]
			if tile.Regions[slot] != 0 || !containsType(whitelist, tile.Type) {
				continue
			}
			stack = m.floodFill(stack[:0], whitelist, Point{X: x, Y: y}, label, slot)
			label++
		}
	}

	m.NumRegions[slot] = label
	return label - 1
}

// floodFill assigns label to every whitelisted tile reachable from start.
// It walks an explicit stack so memory is bounded by the grid size rather
// than the call depth.
func (m *Map) floodFill(stack []Point, whitelist []TileType, start Point, label, slot int) []Point {
	stack = append(stack, start)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !m.InBounds(p.X, p.Y) {
			continue
		}
		tile := &m.Tiles[m.Index(p.X, p.Y)]
		if tile.Regions[slot] != 0 || !containsType(whitelist, tile.Type) {
			continue
		}
		tile.Regions[slot] = label

		stack = append(stack,
			Point{X: p.X, Y: p.Y - 1},
			Point{X: p.X + 1, Y: p.Y},
			Point{X: p.X, Y: p.Y + 1},
			Point{X: p.X - 1, Y: p.Y},
		)
	}
	return stack
}

// RegionSizes returns the number of tiles carrying each label in slot.
// Index 0 counts unlabelled tiles.
func (m *Map) RegionSizes(slot int) []int {
	if slot < 0 || slot >= RegionSlots {
		return nil
	}
	sizes := make([]int, m.NumRegions[slot])
	for i := range m.Tiles {
		label := m.Tiles[i].Regions[slot]
		if label >= 0 && label < len(sizes) {
			sizes[label]++
		}
	}
	return sizes
}
