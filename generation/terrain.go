package generation

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"citybuilder/components"
)

// Noise parameters shared by the elevation and moisture fields
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 5
	// noiseSpan is how many noise periods the map spans on its longer side
	noiseSpan = 6.0
)

// TerrainOptions sets the share of the map given to each natural tile
type TerrainOptions struct {
	// WaterLevel is the normalised elevation below which cells are water
	WaterLevel float64
	// ForestLevel is the normalised moisture above which land is forest
	ForestLevel float64
	// SmoothPasses is how many cleanup passes remove lone ponds and fill
	// specks of land inside lakes
	SmoothPasses int
}

// DefaultTerrainOptions leaves most of the map as buildable grass
func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{WaterLevel: 0.15, ForestLevel: 0.75, SmoothPasses: 1}
}

// TerrainGenerator fills new city maps with grass, forest and water
type TerrainGenerator struct {
	seed      int64
	rng       *rand.Rand
	elevation *perlin.Perlin
	moisture  *perlin.Perlin
	options   TerrainOptions
}

// NewTerrainGenerator creates a generator for the given seed
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	g := &TerrainGenerator{options: DefaultTerrainOptions()}
	g.SetSeed(seed)
	return g
}

// SetSeed allows setting a specific seed for reproducible terrain
func (g *TerrainGenerator) SetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	g.elevation = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	g.moisture = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed+1)
}

// SetOptions replaces the terrain thresholds
func (g *TerrainGenerator) SetOptions(opts TerrainOptions) {
	g.options = opts
}

// Seed returns the seed the generator was last given
func (g *TerrainGenerator) Seed() int64 {
	return g.seed
}

// Generate builds a width x height map. Tiles are copies of the atlas
// templates so costs and capacities follow the atlas.
func (g *TerrainGenerator) Generate(width, height, tileSize int, atlas components.TileAtlas) *components.Map {
	m := components.NewMap(width, height, tileSize, atlas.ForType(components.TileGrass))
	if width == 0 || height == 0 {
		return m
	}

	elevation := g.sample(g.elevation, width, height)
	moisture := g.sample(g.moisture, width, height)

	types := make([]components.TileType, len(m.Tiles))
	for i := range types {
		switch {
		case elevation[i] < g.options.WaterLevel:
			types[i] = components.TileWater
		case moisture[i] > g.options.ForestLevel:
			types[i] = components.TileForest
		default:
			types[i] = components.TileGrass
		}
	}
	smooth(types, width, height, g.options.SmoothPasses, components.TileWater, components.TileGrass)

	for i, tt := range types {
		if tt != components.TileGrass {
			m.Tiles[i] = atlas.ForType(tt)
		}
	}

	// Scatter a few lone trees over the open grass
	for i := range m.Tiles {
		if m.Tiles[i].Type == components.TileGrass && g.rng.Intn(100) < 2 {
			m.Tiles[i] = atlas.ForType(components.TileForest)
		}
	}

	return m
}

// sample evaluates p over the grid and normalises the values into [0, 1]
func (g *TerrainGenerator) sample(p *perlin.Perlin, width, height int) []float64 {
	values := make([]float64, width*height)
	span := float64(width)
	if height > width {
		span = float64(height)
	}

	min, max := math.MaxFloat64, -math.MaxFloat64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nx := float64(x) / span * noiseSpan
			ny := float64(y) / span * noiseSpan
			v := p.Noise2D(nx, ny)
			values[y*width+x] = v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	spread := max - min
	for i, v := range values {
		if spread == 0 {
			values[i] = 0.5
			continue
		}
		values[i] = (v - min) / spread
	}
	return values
}
