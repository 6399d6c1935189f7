package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"tycoon/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeUserCreated   EventType = "user_created"
	EventTypeUserArrested  EventType = "user_arrested"
	EventTypeItemPurchased EventType = "item_purchased"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a committed balance mutation
type BalanceChangeEvent struct {
	DiscordID       int64
	GuildID         int64
	Field           entities.BalanceField
	ChangeAmount    int64
	NewValue        int64
	TransactionType entities.TransactionType
}

func (e BalanceChangeEvent) Type() EventType { return EventTypeBalanceChange }

// UserCreatedEvent represents a lazily created user profile
type UserCreatedEvent struct {
	DiscordID int64
	GuildID   int64
	Username  string
}

func (e UserCreatedEvent) Type() EventType { return EventTypeUserCreated }

// UserArrestedEvent represents an arrest taking effect
type UserArrestedEvent struct {
	DiscordID int64
	GuildID   int64
}

func (e UserArrestedEvent) Type() EventType { return EventTypeUserArrested }

// ItemPurchasedEvent represents a completed shop purchase
type ItemPurchasedEvent struct {
	DiscordID int64
	GuildID   int64
	ItemID    int64
	Amount    int64
}

func (e ItemPurchasedEvent) Type() EventType { return EventTypeItemPurchased }

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
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Handlers run asynchronously so a slow subscriber cannot block the
	// emitting command.
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events alongside a unit of work and flushes
// them to the real bus only after the database transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus wraps the given bus.
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush or Discard.
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) {
	// Events outlive the transaction context.
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
