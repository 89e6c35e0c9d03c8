package components

import (
	"citybuilder/ecs"
)

// Component IDs used by the editor world
const (
	CityComponentID ecs.ComponentID = iota // *city.City driven by the simulation system
	Camera                                 // Camera component for viewport management
	Name                                   // Display name of an entity
)
