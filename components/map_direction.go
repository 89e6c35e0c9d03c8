package components

// Neighbour connection bits used for directional tiles
const (
	ConnectTop    = 1
	ConnectRight  = 2
	ConnectBottom = 4
	ConnectLeft   = 8
)

// Orientation codes stored in Tile.Variant for directional tiles
const (
	DirHorizontal     = 0
	DirVertical       = 1
	DirCross          = 2
	DirBottomLeft     = 3
	DirTopRight       = 4
	DirTopLeft        = 5
	DirBottomRight    = 6
	DirTeeMissingDown = 7
	DirTeeMissingUp   = 8
	DirTeeMissingEast = 9
	DirTeeMissingWest = 10
)

// DirectionLookup maps a neighbour mask to an orientation code
var DirectionLookup = map[int]int{
	0:  DirHorizontal,     // Isolated
	1:  DirVertical,       // Top only
	2:  DirHorizontal,     // Right only
	3:  DirTopRight,       // Top and right
	4:  DirVertical,       // Bottom only
	5:  DirVertical,       // Top and bottom
	6:  DirBottomRight,    // Right and bottom
	7:  DirTeeMissingWest, // Top, right, bottom
	8:  DirHorizontal,     // Left only
	9:  DirTopLeft,        // Top and left
	10: DirHorizontal,     // Left and right
	11: DirTeeMissingDown, // Top, left, right
	12: DirBottomLeft,     // Left and bottom
	13: DirTeeMissingEast, // Top, left, bottom
	14: DirTeeMissingUp,   // Right, bottom, left
	15: DirCross,          // All four neighbours
}

// UpdateDirection orients every tile of the given type towards its
// same-type neighbours. Used for roads and any other linear tile.
func (m *Map) UpdateDirection(tileType TileType) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			pos := m.Index(x, y)
			if m.Tiles[pos].Type != tileType {
				continue
			}
			if variant, ok := DirectionLookup[m.CalculateDirectionMask(x, y)]; ok {
				m.Tiles[pos].Variant = variant
			}
		}
	}
}

// CalculateDirectionMask returns the connection bits of the cardinal
// neighbours sharing the tile type at (x, y).
func (m *Map) CalculateDirectionMask(x, y int) int {
	if !m.InBounds(x, y) {
		return 0
	}
	tileType := m.Tiles[m.Index(x, y)].Type
	mask := 0

	if y > 0 && m.Tiles[m.Index(x, y-1)].Type == tileType {
		mask |= ConnectTop
	}
	if x < m.Width-1 && m.Tiles[m.Index(x+1, y)].Type == tileType {
		mask |= ConnectRight
	}
	if y < m.Height-1 && m.Tiles[m.Index(x, y+1)].Type == tileType {
		mask |= ConnectBottom
	}
	if x > 0 && m.Tiles[m.Index(x-1, y)].Type == tileType {
		mask |= ConnectLeft
	}

	return mask
}

// variantMasks is the canonical neighbour mask drawn for each orientation
var variantMasks = [...]int{
	DirHorizontal:     ConnectLeft | ConnectRight,
	DirVertical:       ConnectTop | ConnectBottom,
	DirCross:          ConnectTop | ConnectRight | ConnectBottom | ConnectLeft,
	DirBottomLeft:     ConnectBottom | ConnectLeft,
	DirTopRight:       ConnectTop | ConnectRight,
	DirTopLeft:        ConnectTop | ConnectLeft,
	DirBottomRight:    ConnectRight | ConnectBottom,
	DirTeeMissingDown: ConnectTop | ConnectRight | ConnectLeft,
	DirTeeMissingUp:   ConnectRight | ConnectBottom | ConnectLeft,
	DirTeeMissingEast: ConnectTop | ConnectBottom | ConnectLeft,
	DirTeeMissingWest: ConnectTop | ConnectRight | ConnectBottom,
}

// DirectionMask returns the sides an orientation code connects to.
// Unknown codes draw as horizontal.
func DirectionMask(variant int) int {
	if variant < 0 || variant >= len(variantMasks) {
		return variantMasks[DirHorizontal]
	}
	return variantMasks[variant]
}
