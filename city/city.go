package city

import (
	"citybuilder/components"
)

// Simulation defaults for a new city
const (
	DefaultBirthRate   = 0.00055
	DefaultDeathRate   = 0.00023
	DefaultPropCanWork = 0.50
	DefaultTax         = 0.05
	DefaultTimePerDay  = 1.0

	// DaysPerMonth is the settlement period of the ledger
	DaysPerMonth = 30

	// moveRate is the most people distributePool moves out of a pool per call
	moveRate = 4
)

// TaxKind selects one of the three tax rates
type TaxKind int

// Tax kinds
const (
	TaxResidential TaxKind = iota
	TaxCommercial
	TaxIndustrial
)

// String returns the tax name used in labels and the API
func (k TaxKind) String() string {
	switch k {
	case TaxResidential:
		return "residential"
	case TaxCommercial:
		return "commercial"
	case TaxIndustrial:
		return "industrial"
	default:
		return "unknown"
	}
}

// ParseTaxKind maps a tax name back to its kind
func ParseTaxKind(name string) (TaxKind, bool) {
	for _, k := range []TaxKind{TaxResidential, TaxCommercial, TaxIndustrial} {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// City is the simulation driver and economic ledger sitting on one map
type City struct {
	Map *components.Map

	// Pools hold residents and workers not housed or employed by any tile
	PopulationPool float64
	EmploymentPool float64
	Population     float64
	Employable     float64

	BirthRate   float64
	DeathRate   float64
	PropCanWork float64

	ResidentialTax float64
	CommercialTax  float64
	IndustrialTax  float64

	Funds    float64
	Earnings float64
	Day      int

	TimePerDay  float64
	currentTime float64

	shuffledTiles []int
	rng           components.RNG

	legacyWorkerGrowth bool
}

// Option configures a City
type Option func(*City)

// WithFunds sets the starting funds
func WithFunds(funds float64) Option {
	return func(c *City) { c.Funds = funds }
}

// WithTimePerDay sets how much accumulated time makes one simulated day
func WithTimePerDay(seconds float64) Option {
	return func(c *City) {
		if seconds > 0 {
			c.TimePerDay = seconds
		}
	}
}

// WithRates overrides the demographic constants
func WithRates(birth, death, propCanWork float64) Option {
	return func(c *City) {
		c.BirthRate = birth
		c.DeathRate = death
		c.PropCanWork = propCanWork
	}
}

// WithTaxes sets the three starting tax rates
func WithTaxes(residential, commercial, industrial float64) Option {
	return func(c *City) {
		c.SetTax(TaxResidential, residential)
		c.SetTax(TaxCommercial, commercial)
		c.SetTax(TaxIndustrial, industrial)
	}
}

// WithLegacyWorkerGrowth makes the daily change in workers always
// positive, so a shrinking population still grows the employable pool.
func WithLegacyWorkerGrowth(enabled bool) Option {
	return func(c *City) { c.legacyWorkerGrowth = enabled }
}

// New creates a city on m. The tile order used by the simulation is
// shuffled once here with rng.
func New(m *components.Map, rng components.RNG, opts ...Option) *City {
	c := &City{
		Map:            m,
		BirthRate:      DefaultBirthRate,
		DeathRate:      DefaultDeathRate,
		PropCanWork:    DefaultPropCanWork,
		ResidentialTax: DefaultTax,
		CommercialTax:  DefaultTax,
		IndustrialTax:  DefaultTax,
		TimePerDay:     DefaultTimePerDay,
		rng:            rng,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ShuffleTiles()
	c.TileChanged()
	return c
}

// ShuffleTiles regenerates the simulation order as a random permutation
// of every tile index.
func (c *City) ShuffleTiles() {
	n := len(c.Map.Tiles)
	if cap(c.shuffledTiles) < n {
		c.shuffledTiles = make([]int, n)
	}
	c.shuffledTiles = c.shuffledTiles[:n]
	for i := range c.shuffledTiles {
		c.shuffledTiles[i] = i
	}
	c.rng.Shuffle(n, func(i, j int) {
		c.shuffledTiles[i], c.shuffledTiles[j] = c.shuffledTiles[j], c.shuffledTiles[i]
	})
}

// TileOrder returns a copy of the current simulation order
func (c *City) TileOrder() []int {
	order := make([]int, len(c.shuffledTiles))
	copy(order, c.shuffledTiles)
	return order
}

// DistributePool moves up to four people from pool into the tile if it
// has room, applies rate as net growth, then pushes anything above the
// tile's capacity back into the pool. It returns the tile population.
func (c *City) DistributePool(pool *float64, tile *components.Tile, rate float64) float64 {
	maxPop := tile.Capacity()

	if *pool > 0 {
		// Whole people only; a fractional remainder stays where it is.
		moving := float64(int(maxPop - tile.Population))
		if moving > moveRate {
			moving = moveRate
		}
		if moving < 0 {
			moving = 0
		}
		if *pool-moving < 0 {
			moving = float64(int(*pool))
		}
		*pool -= moving
		tile.Population += moving
	}

	tile.Population += tile.Population * rate

	if tile.Population > maxPop {
		*pool += tile.Population - maxPop
		tile.Population = maxPop
	}
	if tile.Population < 0 {
		tile.Population = 0
	}

	return tile.Population
}

// Bulldoze replaces every validly selected cell with a fresh copy of
// replacement. Occupants of replaced zones go back to the matching pool.
// Funds and TileChanged are left to the caller. It returns the number of
// cells replaced.
func (c *City) Bulldoze(replacement components.Tile) int {
	replaced := 0
	for pos, state := range c.Map.Selected {
		if state != components.SelectedValid {
			continue
		}
		old := &c.Map.Tiles[pos]
		switch old.Type {
		case components.TileResidential:
			c.PopulationPool += old.Population
		case components.TileCommercial, components.TileIndustrial:
			c.EmploymentPool += old.Population
		}
		c.Map.Tiles[pos] = replacement
		replaced++
	}
	return replaced
}

// TileChanged re-orients roads and recomputes the transport regions.
// Call it after any edit that changes tile types.
func (c *City) TileChanged() int {
	c.Map.UpdateDirection(components.TileRoad)
	return c.Map.FindConnectedRegions(components.TransportWhitelist, 0)
}

// SetTax sets a tax rate clamped to [0, 1]
func (c *City) SetTax(kind TaxKind, rate float64) {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	switch kind {
	case TaxResidential:
		c.ResidentialTax = rate
	case TaxCommercial:
		c.CommercialTax = rate
	case TaxIndustrial:
		c.IndustrialTax = rate
	}
}

// Tax returns the current rate for kind
func (c *City) Tax(kind TaxKind) float64 {
	switch kind {
	case TaxResidential:
		return c.ResidentialTax
	case TaxCommercial:
		return c.CommercialTax
	case TaxIndustrial:
		return c.IndustrialTax
	default:
		return 0
	}
}

// Homeless returns the residents without a home
func (c *City) Homeless() float64 {
	return c.PopulationPool
}

// Unemployed returns the workers without a job
func (c *City) Unemployed() float64 {
	return c.EmploymentPool
}
