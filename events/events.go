package events

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"betledger/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTicketCreated  EventType = "ticket_created"
	EventTypeTicketSettled  EventType = "ticket_settled"
	EventTypeTicketDeleted  EventType = "ticket_deleted"
	EventTypeProfileUpdated EventType = "profile_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketCreatedEvent represents a newly recorded ticket
type TicketCreatedEvent struct {
	UserID     string
	TicketID   string
	TicketType models.TicketType
	Stake      decimal.Decimal
	LegCount   int
}

func (e TicketCreatedEvent) Type() EventType {
	return EventTypeTicketCreated
}

// TicketSettledEvent represents a ticket whose financials were written
type TicketSettledEvent struct {
	UserID    string
	TicketID  string
	Status    models.TicketStatus
	Payout    decimal.NullDecimal
	Profit    decimal.NullDecimal
	SettledAt *time.Time
}

func (e TicketSettledEvent) Type() EventType {
	return EventTypeTicketSettled
}

// TicketDeletedEvent represents a ticket removal (legs included)
type TicketDeletedEvent struct {
	UserID   string
	TicketID string
}

func (e TicketDeletedEvent) Type() EventType {
	return EventTypeTicketDeleted
}

// ProfileUpdatedEvent represents a starting-bankroll or unit-size change
type ProfileUpdatedEvent struct {
	UserID           string
	StartingBankroll decimal.Decimal
	UnitSize         decimal.Decimal
}

func (e ProfileUpdatedEvent) Type() EventType {
	return EventTypeProfileUpdated
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

	// Call handlers asynchronously to avoid blocking the caller
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

// TransactionalBus stashes events published during a unit of work and
// forwards them to the real bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus over the real bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction; don't tie them to its context.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events. Called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
