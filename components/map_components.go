package components

const (
	// InitialResources is the raw resource count of every cell on a new map
	InitialResources = 255
	// DefaultTileSize is the half-height of a tile diamond in world pixels
	DefaultTileSize = 8
)

// SelectState is the selection mark of a cell
type SelectState uint8

// Selection states
const (
	Deselected SelectState = iota
	SelectedValid
	SelectedInvalid
)

// Point is a grid coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is the narrow view of a map used by the editor and renderer
type Grid interface {
	Size() (width, height int)
	TileAt(x, y int) *Tile
	SelectionAt(x, y int) SelectState
	SelectedCount() int
	Select(start, end Point, blacklist []TileType)
	ClearSelected()
}

// Map stores the city grid in row-major order
type Map struct {
	Width    int
	Height   int
	TileSize int

	Tiles     []Tile
	Resources []int

	Selected    []SelectState
	NumSelected int

	// NumRegions is one more than the number of regions found by the
	// last FindConnectedRegions call for each slot.
	NumRegions [RegionSlots]int
}

// NewMap creates a map filled with copies of fill
func NewMap(width, height, tileSize int, fill Tile) *Map {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m := &Map{
		Width:     width,
		Height:    height,
		TileSize:  tileSize,
		Tiles:     make([]Tile, width*height),
		Resources: make([]int, width*height),
		Selected:  make([]SelectState, width*height),
	}
	for i := range m.Tiles {
		m.Tiles[i] = fill
		m.Resources[i] = InitialResources
	}
	for i := range m.NumRegions {
		m.NumRegions[i] = 1
	}
	return m
}

// Index returns the slice index of (x, y)
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

// InBounds reports whether (x, y) lies on the map
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Size returns the map dimensions in tiles
func (m *Map) Size() (int, int) {
	return m.Width, m.Height
}

// TileAt returns the tile at (x, y), or nil when out of bounds
func (m *Map) TileAt(x, y int) *Tile {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.Tiles[m.Index(x, y)]
}

// SetTile replaces the tile at (x, y)
func (m *Map) SetTile(x, y int, tile Tile) {
	if m.InBounds(x, y) {
		m.Tiles[m.Index(x, y)] = tile
	}
}

// SelectionAt returns the selection mark at (x, y)
func (m *Map) SelectionAt(x, y int) SelectState {
	if !m.InBounds(x, y) {
		return Deselected
	}
	return m.Selected[m.Index(x, y)]
}

// SelectedCount returns the number of validly selected cells
func (m *Map) SelectedCount() int {
	return m.NumSelected
}

// RegionOf returns the region label of (x, y) in slot, or -1 when the
// cell or slot does not exist.
func (m *Map) RegionOf(x, y, slot int) int {
	if !m.InBounds(x, y) || slot < 0 || slot >= RegionSlots {
		return -1
	}
	return m.Tiles[m.Index(x, y)].Regions[slot]
}

// CountType returns how many cells hold the given tile type
func (m *Map) CountType(tileType TileType) int {
	count := 0
	for i := range m.Tiles {
		if m.Tiles[i].Type == tileType {
			count++
		}
	}
	return count
}

// containsType reports whether t appears in list
func containsType(list []TileType, t TileType) bool {
	for _, candidate := range list {
		if candidate == t {
			return true
		}
	}
	return false
}
