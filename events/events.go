package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeDrinkTaken   EventType = "drink_taken"
	EventTypeLevelChanged EventType = "level_changed"
	EventTypeUserCreated  EventType = "user_created"
	EventTypeGroupCreated EventType = "group_created"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// DrinkTakenEvent represents a recorded drink
type DrinkTakenEvent struct {
	UserID       int64
	GroupID      *int64 // nil when the drink was taken in a direct chat
	TotalDrinks  int
	TodayDrinks  int
	PouredLiters int64
}

func (e DrinkTakenEvent) Type() EventType {
	return EventTypeDrinkTaken
}

// LevelChangedEvent represents a user's level moving to a new tier
type LevelChangedEvent struct {
	UserID   int64
	Username string
	OldLevel int
	NewLevel int
}

func (e LevelChangedEvent) Type() EventType {
	return EventTypeLevelChanged
}

// UserCreatedEvent represents a new user registration
type UserCreatedEvent struct {
	UserID   int64
	Username string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// GroupCreatedEvent represents a group seen for the first time
type GroupCreatedEvent struct {
	GroupID   int64
	GroupName string
}

func (e GroupCreatedEvent) Type() EventType {
	return EventTypeGroupCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit. Events outlive the
// transaction context, so handlers run on a fresh one.
func (b *TransactionalBus) Flush() {
	ctx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
