package ecs

// EntityID is a unique identifier for an entity within a world
type EntityID uint64

// Entity is a handle to an object of the world; its data lives in the
// world's components
type Entity struct {
	ID EntityID
}

// NewEntity creates a handle for id
func NewEntity(id EntityID) *Entity {
	return &Entity{ID: id}
}
