package systems

import (
	"time"

	"citybuilder/city"
	"citybuilder/components"
	"citybuilder/ecs"
	"citybuilder/logger"
	"citybuilder/metrics"
)

// CityFromWorld returns the city attached to the entity tagged "city"
func CityFromWorld(world *ecs.World) *city.City {
	c, _ := ecs.Lookup[*city.City](world, "city", components.CityComponentID)
	return c
}

// SimulationSystem advances the city clock every frame and announces
// each simulated day on the world's event bus.
type SimulationSystem struct {
	Paused bool
	// Speed scales frame time before it reaches the city clock
	Speed float64
}

// NewSimulationSystem creates a running simulation at normal speed
func NewSimulationSystem() *SimulationSystem {
	return &SimulationSystem{Speed: 1.0}
}

// Update feeds dt to the city and emits DayPassedEvent when a day ran
func (s *SimulationSystem) Update(world *ecs.World, dt float64) {
	if s.Paused {
		return
	}
	c := CityFromWorld(world)
	if c == nil {
		return
	}

	start := time.Now()
	report, ran := c.Advance(dt * s.Speed)
	if !ran {
		return
	}
	elapsed := time.Since(start)

	summary := c.Summary()
	metrics.ObserveDay(elapsed)
	metrics.Observe(summary)
	logger.L().Debug("day_advanced", "day", report.Day, "population", summary.Population, "income", report.Income)

	world.EmitEvent(DayPassedEvent{Report: report, Summary: summary})
	if report.Settled {
		world.EmitEvent(MonthSettledEvent{Day: report.Day, Payout: report.Payout, Funds: summary.Funds})
	}
}

// TogglePause pauses or resumes the clock
func (s *SimulationSystem) TogglePause() {
	s.Paused = !s.Paused
}
