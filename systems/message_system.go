package systems

import (
	"errors"
	"fmt"

	"citybuilder/city"
	"citybuilder/ecs"
)

// MessageLog stores player-facing messages
type MessageLog struct {
	Messages    []ColoredMessage
	MaxMessages int
}

// Global message log instance (singleton)
var globalMessageLog *MessageLog

// GetMessageLog returns the global message log instance
func GetMessageLog() *MessageLog {
	if globalMessageLog == nil {
		globalMessageLog = NewMessageLog()
	}
	return globalMessageLog
}

// NewMessageLog creates a new message log
func NewMessageLog() *MessageLog {
	return &MessageLog{
		Messages:    []ColoredMessage{},
		MaxMessages: 100,
	}
}

// Add adds a normal message to the log
func (ml *MessageLog) Add(message string) {
	ml.AddColored(message, MessageTypeNormal)
}

// AddColored adds a message of the given type
func (ml *MessageLog) AddColored(message string, msgType MessageType) {
	ml.Messages = append(ml.Messages, ColoredMessage{Text: message, Type: msgType})

	if len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []ColoredMessage {
	if n > len(ml.Messages) {
		n = len(ml.Messages)
	}

	result := make([]ColoredMessage, n)
	for i := 0; i < n; i++ {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}

	return result
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = []ColoredMessage{}
}

// MessageSystem turns city events into log lines
type MessageSystem struct {
	log  *MessageLog
	subs []ecs.Subscription
}

// NewMessageSystem creates a message system writing to log
func NewMessageSystem(log *MessageLog) *MessageSystem {
	return &MessageSystem{log: log}
}

// Initialize subscribes to the world's events
func (s *MessageSystem) Initialize(world *ecs.World) {
	em := world.GetEventManager()
	s.subs = append(s.subs,
		em.Subscribe(EventMonthSettled, s.onMonthSettled),
		em.Subscribe(EventTilesPlaced, s.onTilesPlaced),
		em.Subscribe(EventPlaceRefused, s.onPlaceRefused),
		em.Subscribe(EventCitySaved, s.onCitySaved),
		em.Subscribe(EventTaxChanged, s.onTaxChanged),
	)
}

// Shutdown removes the subscriptions made by Initialize
func (s *MessageSystem) Shutdown(world *ecs.World) {
	em := world.GetEventManager()
	for _, sub := range s.subs {
		em.Unsubscribe(sub)
	}
	s.subs = nil
}

// Update implements ecs.System; the system is purely event driven
func (s *MessageSystem) Update(world *ecs.World, dt float64) {}

func (s *MessageSystem) onMonthSettled(e ecs.Event) {
	ev := e.(MonthSettledEvent)
	s.log.AddColored(fmt.Sprintf("Day %d: collected $%d in taxes", ev.Day, int64(ev.Payout)), MessageTypeEconomy)
}

func (s *MessageSystem) onTilesPlaced(e ecs.Event) {
	ev := e.(TilesPlacedEvent)
	if ev.Result.Placed == 0 {
		return
	}
	s.log.AddColored(fmt.Sprintf("Built %d x %s for $%d", ev.Result.Placed, ev.Name, int64(ev.Result.Cost)), MessageTypeBuild)
}

func (s *MessageSystem) onPlaceRefused(e ecs.Event) {
	ev := e.(PlaceRefusedEvent)
	switch {
	case errors.Is(ev.Err, city.ErrInsufficientFunds):
		s.log.AddColored(fmt.Sprintf("Not enough funds for %s", ev.Name), MessageTypeAlert)
	default:
		s.log.AddColored(fmt.Sprintf("Cannot build %s: %v", ev.Name, ev.Err), MessageTypeAlert)
	}
}

func (s *MessageSystem) onCitySaved(e ecs.Event) {
	ev := e.(CitySavedEvent)
	if ev.Err != nil {
		s.log.AddColored(fmt.Sprintf("Save failed: %v", ev.Err), MessageTypeAlert)
		return
	}
	s.log.AddColored(fmt.Sprintf("Saved %s", ev.Name), MessageTypeSystem)
}

func (s *MessageSystem) onTaxChanged(e ecs.Event) {
	ev := e.(TaxChangedEvent)
	s.log.AddColored(fmt.Sprintf("%s tax set to %d%%", ev.Kind, int(ev.Rate*100+0.5)), MessageTypeEconomy)
}
