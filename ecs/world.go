package ecs

// World holds the entities of one screen (the city, its camera), their
// components and the systems that run over them each frame.
type World struct {
	components map[EntityID]ComponentMap
	systems    []System
	// tags maps a tag to its entities in creation order
	tags         map[string][]EntityID
	eventManager *EventManager
	lastID       EntityID
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		components:   make(map[EntityID]ComponentMap),
		tags:         make(map[string][]EntityID),
		eventManager: NewEventManager(),
	}
}

// CreateEntity creates a new entity with no components
func (w *World) CreateEntity() *Entity {
	w.lastID++
	w.components[w.lastID] = make(ComponentMap)
	return NewEntity(w.lastID)
}

// AddComponent sets a component on an entity, replacing any previous
// component with the same ID
func (w *World) AddComponent(entityID EntityID, componentID ComponentID, component Component) {
	if componentMap, exists := w.components[entityID]; exists {
		componentMap[componentID] = component
	}
}

// GetComponent retrieves a component from an entity
func (w *World) GetComponent(entityID EntityID, componentID ComponentID) (Component, bool) {
	component, exists := w.components[entityID][componentID]
	return component, exists
}

// TagEntity adds a tag to an entity
func (w *World) TagEntity(entityID EntityID, tag string) {
	if _, exists := w.components[entityID]; !exists {
		return
	}
	for _, id := range w.tags[tag] {
		if id == entityID {
			return
		}
	}
	w.tags[tag] = append(w.tags[tag], entityID)
}

// FirstWithTag returns the earliest created entity carrying tag, or nil
func (w *World) FirstWithTag(tag string) *Entity {
	ids := w.tags[tag]
	if len(ids) == 0 {
		return nil
	}
	first := ids[0]
	for _, id := range ids[1:] {
		first = min(first, id)
	}
	return NewEntity(first)
}

// Lookup returns the component of the first entity tagged tag, typed as T.
// It reports false when the entity, the component or the type is missing.
func Lookup[T any](w *World, tag string, componentID ComponentID) (T, bool) {
	var zero T
	entity := w.FirstWithTag(tag)
	if entity == nil {
		return zero, false
	}
	component, ok := w.GetComponent(entity.ID, componentID)
	if !ok {
		return zero, false
	}
	typed, ok := component.(T)
	return typed, ok
}

// AddSystem adds a system; systems run in the order they were added
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
}

// Update runs every system once
func (w *World) Update(dt float64) {
	for _, system := range w.systems {
		system.Update(w, dt)
	}
}

// GetEventManager returns the world's event manager
func (w *World) GetEventManager() *EventManager {
	return w.eventManager
}

// EmitEvent dispatches an event to its subscribers
func (w *World) EmitEvent(event Event) {
	w.eventManager.Emit(event)
}
