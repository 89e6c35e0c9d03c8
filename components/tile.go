package components

// TileType identifies the category of a map cell. The ordinals are part of
// the save format and must not be reordered.
type TileType int

// Tile types
const (
	TileVoid TileType = iota
	TileGrass
	TileForest
	TileWater
	TileResidential
	TileCommercial
	TileIndustrial
	TileRoad
)

// RegionSlots is the number of connectivity labels carried by each tile.
// Slot 0 is the transport network.
const RegionSlots = 1

// RNG is the random source threaded through the simulation. *rand.Rand
// satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// String returns the display name used by the editor info bar
func (t TileType) String() string {
	switch t {
	case TileGrass:
		return "Flatten"
	case TileForest:
		return "Forest"
	case TileWater:
		return "Water"
	case TileResidential:
		return "Residential Zone"
	case TileCommercial:
		return "Commercial Zone"
	case TileIndustrial:
		return "Industrial Zone"
	case TileRoad:
		return "Road"
	default:
		return "Void"
	}
}

// IsZone reports whether the type holds population
func (t TileType) IsZone() bool {
	return t == TileResidential || t == TileCommercial || t == TileIndustrial
}

// Tile is a single grid cell
type Tile struct {
	Type TileType
	// Variant is the growth stage for zones and the orientation code for
	// directional tiles such as roads.
	Variant int
	// Regions holds connectivity labels; 0 means not part of a region.
	Regions [RegionSlots]int

	Cost           int
	Population     float64 // current residents or employees
	MaxPopPerLevel int
	MaxLevels      int
	Production     float64 // goods for industry, revenue basis for commerce
	StoredGoods    float64
}

// NewTile creates a tile template
func NewTile(tileType TileType, cost, maxPopPerLevel, maxLevels int) Tile {
	return Tile{
		Type:           tileType,
		Cost:           cost,
		MaxPopPerLevel: maxPopPerLevel,
		MaxLevels:      maxLevels,
	}
}

// Capacity returns the population the tile can hold at its current level
func (t *Tile) Capacity() float64 {
	return float64(t.MaxPopPerLevel * (t.Variant + 1))
}

// Update gives a full zone a small chance to grow to the next level.
// The chance out of 10000 is 100/(Variant+1), so it roughly halves per level.
func (t *Tile) Update(rng RNG) {
	if !t.Type.IsZone() {
		return
	}
	if t.Population < t.Capacity() || t.Variant >= t.MaxLevels {
		return
	}
	if rng.Intn(10000) < 100/(t.Variant+1) {
		t.Variant++
	}
}
