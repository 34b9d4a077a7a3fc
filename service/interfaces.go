package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"betledger/events"
	"betledger/models"
)

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// Create inserts a new ticket record
	Create(ctx context.Context, ticket *models.Ticket) error

	// GetByID retrieves a ticket owned by userID, without legs
	GetByID(ctx context.Context, userID, ticketID string) (*models.Ticket, error)

	// ListByUser returns all tickets for a user, oldest first
	ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error)

	// UpdateDetails updates the user-editable ticket fields
	UpdateDetails(ctx context.Context, ticket *models.Ticket) error

	// UpdateSettlement writes status, payout, profit and settled_at
	UpdateSettlement(ctx context.Context, userID, ticketID string, status models.TicketStatus, settlement models.Settlement) error

	// Delete removes a ticket; its legs must already be gone
	Delete(ctx context.Context, userID, ticketID string) error
}

// LegRepository defines the interface for leg data access
type LegRepository interface {
	// Create inserts a new leg record
	Create(ctx context.Context, leg *models.Leg) error

	// GetByTicket returns a ticket's legs in creation order
	GetByTicket(ctx context.Context, ticketID string) ([]*models.Leg, error)

	// GetByTickets returns legs for many tickets keyed by ticket ID
	GetByTickets(ctx context.Context, ticketIDs []string) (map[string][]*models.Leg, error)

	// UpdateStatus updates one leg's status
	UpdateStatus(ctx context.Context, legID string, status models.LegStatus) error

	// DeleteByTicket removes all legs belonging to a ticket
	DeleteByTicket(ctx context.Context, ticketID string) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// GetByID retrieves a profile, nil if absent
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// Create inserts a new profile
	Create(ctx context.Context, profile *models.Profile) error

	// UpdateStartingBankroll updates the user-editable baseline
	UpdateStartingBankroll(ctx context.Context, id string, amount decimal.Decimal) error

	// UpdateUnitSize updates the denormalized recommended unit size
	UpdateUnitSize(ctx context.Context, id string, size decimal.Decimal) error

	// GetAll returns every profile
	GetAll(ctx context.Context) ([]*models.Profile, error)
}

// CreateLegInput describes one selection on an incoming ticket
type CreateLegInput struct {
	Selection    string
	AmericanOdds float64
}

// CreateTicketInput describes an incoming ticket
type CreateTicketInput struct {
	TicketType models.TicketType
	Stake      decimal.Decimal
	League     string
	Book       string
	PlacedAt   time.Time
	Legs       []CreateLegInput
}

// UpdateTicketInput carries the user-editable ticket fields
type UpdateTicketInput struct {
	Stake    decimal.Decimal
	League   string
	Book     string
	PlacedAt time.Time
}

// LegResult sets one parlay leg's outcome during settlement
type LegResult struct {
	LegID  string
	Status models.LegStatus
}

// SettleTicketInput describes a settlement request. For singles Status is
// the user's authoritative choice and LegResults is ignored; for parlays
// the ticket status is derived from the leg results instead.
type SettleTicketInput struct {
	Status         models.TicketStatus
	LegResults     []LegResult
	PayoutOverride *decimal.Decimal
}

// TicketService defines the interface for ticket operations
type TicketService interface {
	// CreateTicket validates and stores a ticket with its legs
	CreateTicket(ctx context.Context, userID string, input CreateTicketInput) (*models.Ticket, error)

	// GetTicket returns a ticket with its legs
	GetTicket(ctx context.Context, userID, ticketID string) (*models.Ticket, error)

	// ListTickets returns the user's tickets with legs, filtered
	ListTickets(ctx context.Context, userID string, filter models.PeriodFilter) ([]*models.Ticket, error)

	// UpdateTicket edits ticket fields and re-runs settlement
	UpdateTicket(ctx context.Context, userID, ticketID string, input UpdateTicketInput) (*models.Ticket, error)

	// SettleTicket applies an outcome and writes the computed financials
	SettleTicket(ctx context.Context, userID, ticketID string, input SettleTicketInput) (*models.Ticket, error)

	// DeleteTicket removes a ticket and its legs
	DeleteTicket(ctx context.Context, userID, ticketID string) error
}

// ProfileService defines the interface for profile operations
type ProfileService interface {
	// GetOrCreateProfile returns the user's profile, creating it with a
	// zero starting bankroll on first access
	GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error)

	// UpdateStartingBankroll sets the bankroll baseline
	UpdateStartingBankroll(ctx context.Context, userID string, amount decimal.Decimal) (*models.Profile, error)

	// RecommendedUnitSize computes the unit size from the bankroll as of
	// the end of the previous calendar month
	RecommendedUnitSize(ctx context.Context, userID string, now time.Time) (decimal.Decimal, error)

	// RefreshUnitSizes recomputes and stores every profile's unit size
	RefreshUnitSizes(ctx context.Context, now time.Time) error
}

// StatsService defines the interface for dashboard aggregation
type StatsService interface {
	// GetPeriodStats computes the bankroll series, period summary and the
	// filter-independent current bankroll for one user
	GetPeriodStats(ctx context.Context, userID string, filter models.PeriodFilter) (*models.PeriodStats, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional access to all repositories
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction; no-op if already committed
	Rollback() error

	// TicketRepository returns the ticket repository bound to this transaction
	TicketRepository() TicketRepository

	// LegRepository returns the leg repository bound to this transaction
	LegRepository() LegRepository

	// ProfileRepository returns the profile repository bound to this transaction
	ProfileRepository() ProfileRepository

	// EventBus returns the transactional event publisher
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
