package city

import (
	"citybuilder/components"
)

// hiringChance is the base percentage of days a zone hires from the pool
const hiringChance = 15

// DayReport describes one simulated day
type DayReport struct {
	Day               int
	Settled           bool    // funds were paid this day
	Payout            float64 // earnings moved into funds when Settled
	Income            float64 // tax income of this day
	CommercialRevenue float64
	IndustrialRevenue float64
	NewWorkers        float64
}

// Update advances the clock by dt and runs at most one simulated day
// once a day's worth of time has accumulated. Extra time past the day
// boundary is dropped. It reports whether a day ran.
func (c *City) Update(dt float64) bool {
	_, ran := c.Advance(dt)
	return ran
}

// Advance is Update returning the report of the day that ran
func (c *City) Advance(dt float64) (DayReport, bool) {
	c.currentTime += dt
	if c.currentTime < c.TimePerDay {
		return DayReport{}, false
	}
	c.currentTime = 0
	return c.runDay(), true
}

// runDay executes a single day: extraction, manufacture, distribution,
// then the city-wide pool and ledger adjustments.
func (c *City) runDay() DayReport {
	c.Day++
	report := DayReport{Day: c.Day}
	if c.Day%DaysPerMonth == 0 {
		report.Settled = true
		report.Payout = c.Earnings
		c.Funds += c.Earnings
		c.Earnings = 0
	}

	popTotal := c.extractionPass()
	c.manufacturePass()
	report.CommercialRevenue, report.IndustrialRevenue = c.distributionPass()

	// Births and deaths among the homeless
	c.PopulationPool += c.PopulationPool * (c.BirthRate - c.DeathRate)
	popTotal += c.PopulationPool

	newWorkers := (popTotal - c.Population) * c.PropCanWork
	if c.legacyWorkerGrowth && newWorkers < 0 {
		newWorkers = -newWorkers
	}
	c.EmploymentPool += newWorkers
	c.Employable += newWorkers
	if c.EmploymentPool < 0 {
		c.EmploymentPool = 0
	}
	if c.Employable < 0 {
		c.Employable = 0
	}
	report.NewWorkers = newWorkers

	c.Population = popTotal

	report.Income = (c.Population-c.PopulationPool)*15*c.ResidentialTax +
		report.CommercialRevenue*c.CommercialTax +
		report.IndustrialRevenue*c.IndustrialTax
	c.Earnings += report.Income

	return report
}

// extractionPass moves people out of the pools into zones, extracts raw
// resources and lets zones grow. It returns the housed population.
func (c *City) extractionPass() float64 {
	popTotal := 0.0
	for _, pos := range c.shuffledTiles {
		tile := &c.Map.Tiles[pos]

		switch tile.Type {
		case components.TileResidential:
			c.DistributePool(&c.PopulationPool, tile, c.BirthRate-c.DeathRate)
			popTotal += tile.Population

		case components.TileCommercial:
			if c.hires(c.CommercialTax) {
				c.DistributePool(&c.EmploymentPool, tile, 0)
			}

		case components.TileIndustrial:
			if c.Map.Resources[pos] > 0 && float64(c.rng.Intn(100)) < c.Population {
				tile.Production++
				c.Map.Resources[pos]--
			}
			if c.hires(c.IndustrialTax) {
				c.DistributePool(&c.EmploymentPool, tile, 0)
			}
		}

		tile.Update(c.rng)
	}
	return popTotal
}

func (c *City) hires(tax float64) bool {
	return float64(c.rng.Intn(100)) < hiringChance*(1-tax)
}

// manufacturePass lets each industrial zone pull raw production from
// industry on its network and turn it into goods.
func (c *City) manufacturePass() {
	tiles := c.Map.Tiles
	for _, pos := range c.shuffledTiles {
		tile := &tiles[pos]
		if tile.Type != components.TileIndustrial {
			continue
		}

		received := 0
		limit := tile.Variant + 1
		for i := range tiles {
			other := &tiles[i]
			if other.Type != components.TileIndustrial || other.Regions[0] != tile.Regions[0] {
				continue
			}
			if other.Production > 0 {
				received++
				other.Production--
			}
			if received >= limit {
				break
			}
		}

		tile.StoredGoods += (float64(received) + tile.Production) * float64(limit)
	}
}

// distributionPass sells goods through commercial zones to the residents
// on the same network. It returns the commercial and industrial revenue.
func (c *City) distributionPass() (commercial, industrial float64) {
	tiles := c.Map.Tiles
	for _, pos := range c.shuffledTiles {
		tile := &tiles[pos]
		if tile.Type != components.TileCommercial {
			continue
		}

		received := 0
		limit := tile.Variant + 1
		maxCustomers := 0.0
		for i := range tiles {
			other := &tiles[i]
			if other.Regions[0] == tile.Regions[0] {
				if other.Type == components.TileIndustrial && other.StoredGoods > 0 {
					for other.StoredGoods > 0 && received != limit {
						other.StoredGoods--
						received++
						industrial += 100 * (1 - c.IndustrialTax)
					}
				} else if other.Type == components.TileResidential {
					maxCustomers += other.Population
				}
			}
			if received == limit {
				break
			}
		}

		tile.Production = (float64(received)*100 + float64(c.rng.Intn(20))) * (1 - c.CommercialTax)
		commercial += tile.Production * maxCustomers * tile.Population / 100
	}
	return commercial, industrial
}
