package components

// Select marks every cell in the rectangle spanned by start and end.
// Corners may be given in any order and are clamped onto the map. Cells
// whose type is blacklisted are marked invalid and not counted.
func (m *Map) Select(start, end Point, blacklist []TileType) {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	if end.Y < start.Y {
		start.Y, end.Y = end.Y, start.Y
	}
	if end.X < start.X {
		start.X, end.X = end.X, start.X
	}

	start.X = clamp(start.X, 0, m.Width-1)
	end.X = clamp(end.X, 0, m.Width-1)
	start.Y = clamp(start.Y, 0, m.Height-1)
	end.Y = clamp(end.Y, 0, m.Height-1)

	for y := start.Y; y <= end.Y; y++ {
		for x := start.X; x <= end.X; x++ {
			pos := m.Index(x, y)
			prev := m.Selected[pos]

			next := SelectedValid
			if containsType(blacklist, m.Tiles[pos].Type) {
				next = SelectedInvalid
			}

			// Keep the counter equal to the number of valid cells even when
			// selections overlap.
			if prev == SelectedValid && next != SelectedValid {
				m.NumSelected--
			} else if prev != SelectedValid && next == SelectedValid {
				m.NumSelected++
			}
			m.Selected[pos] = next
		}
	}
}

// ClearSelected deselects all cells
func (m *Map) ClearSelected() {
	for i := range m.Selected {
		m.Selected[i] = Deselected
	}
	m.NumSelected = 0
}

// SelectedIndices returns the indices of validly selected cells in
// row-major order.
func (m *Map) SelectedIndices() []int {
	indices := make([]int, 0, m.NumSelected)
	for i, state := range m.Selected {
		if state == SelectedValid {
			indices = append(indices, i)
		}
	}
	return indices
}

// PlacementBlacklist returns the tile types that may not be replaced when
// placing a tile of type t. Flattening only skips grass and water; every
// other tile needs empty grass.
func PlacementBlacklist(t TileType) []TileType {
	if t == TileGrass {
		return []TileType{TileGrass, TileWater}
	}
	return []TileType{
		t, TileForest,
		TileWater, TileRoad,
		TileResidential, TileCommercial,
		TileIndustrial,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
