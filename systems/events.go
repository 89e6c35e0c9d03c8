package systems

import (
	"citybuilder/city"
	"citybuilder/ecs"
)

// Event type constants
const (
	EventDayPassed    ecs.EventType = "day_passed"
	EventMonthSettled ecs.EventType = "month_settled"
	EventTilesPlaced  ecs.EventType = "tiles_placed"
	EventPlaceRefused ecs.EventType = "place_refused"
	EventCitySaved    ecs.EventType = "city_saved"
	EventTaxChanged   ecs.EventType = "tax_changed"
	EventCameraUpdate ecs.EventType = "camera_update"
)

// DayPassedEvent is emitted after every simulated day
type DayPassedEvent struct {
	Report  city.DayReport
	Summary city.Summary
}

// Type returns the event type
func (e DayPassedEvent) Type() ecs.EventType {
	return EventDayPassed
}

// MonthSettledEvent is emitted when the month's earnings are paid into funds
type MonthSettledEvent struct {
	Day    int
	Payout float64
	Funds  float64
}

// Type returns the event type
func (e MonthSettledEvent) Type() ecs.EventType {
	return EventMonthSettled
}

// TilesPlacedEvent is emitted after a successful placement
type TilesPlacedEvent struct {
	Name   string // display name of the placed tile
	Result city.PlaceResult
}

// Type returns the event type
func (e TilesPlacedEvent) Type() ecs.EventType {
	return EventTilesPlaced
}

// PlaceRefusedEvent is emitted when a placement fails
type PlaceRefusedEvent struct {
	Name string
	Err  error
}

// Type returns the event type
func (e PlaceRefusedEvent) Type() ecs.EventType {
	return EventPlaceRefused
}

// CitySavedEvent is emitted after the city was written to disk
type CitySavedEvent struct {
	Name string
	Dir  string
	Err  error
}

// Type returns the event type
func (e CitySavedEvent) Type() ecs.EventType {
	return EventCitySaved
}

// TaxChangedEvent is emitted when the player adjusts a tax rate
type TaxChangedEvent struct {
	Kind city.TaxKind
	Rate float64
}

// Type returns the event type
func (e TaxChangedEvent) Type() ecs.EventType {
	return EventTaxChanged
}

// CameraUpdateEvent is emitted when the camera moves or zooms
type CameraUpdateEvent struct {
	CameraID ecs.EntityID
	X, Y     float64
	Zoom     float64
}

// Type returns the event type
func (e CameraUpdateEvent) Type() ecs.EventType {
	return EventCameraUpdate
}
