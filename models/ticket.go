package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketType represents the kind of wager a ticket holds
type TicketType string

const (
	TicketTypeSingle TicketType = "single"
	TicketTypeParlay TicketType = "parlay"
)

// Valid reports whether the ticket type is a known value
func (t TicketType) Valid() bool {
	return t == TicketTypeSingle || t == TicketTypeParlay
}

// TicketStatus represents the aggregate state of a ticket
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusWon     TicketStatus = "won"
	TicketStatusLost    TicketStatus = "lost"
	TicketStatusPush    TicketStatus = "push"
	TicketStatusVoid    TicketStatus = "void"
	TicketStatusPartial TicketStatus = "partial"
)

// Valid reports whether the ticket status is a known value
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusWon, TicketStatusLost,
		TicketStatusPush, TicketStatusVoid, TicketStatusPartial:
		return true
	}
	return false
}

// IsTerminal reports whether the status closes the ticket for accounting.
// Open and partial tickets carry no payout/profit yet.
func (s TicketStatus) IsTerminal() bool {
	switch s {
	case TicketStatusWon, TicketStatusLost, TicketStatusPush, TicketStatusVoid:
		return true
	}
	return false
}

// Ticket represents one wager slip
type Ticket struct {
	ID         string              `db:"id"`
	UserID     string              `db:"user_id"`
	TicketType TicketType          `db:"ticket_type"`
	Stake      decimal.Decimal     `db:"stake"`
	League     string              `db:"league"`
	Book       string              `db:"book"`
	Status     TicketStatus        `db:"status"`
	Payout     decimal.NullDecimal `db:"payout"`
	Profit     decimal.NullDecimal `db:"profit"`
	PlacedAt   time.Time           `db:"placed_at"`
	SettledAt  *time.Time          `db:"settled_at"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
	Legs       []*Leg              `db:"-"`
}

// Validate checks the ticket and its legs against the ledger's invariants
func (t *Ticket) Validate() error {
	if !t.TicketType.Valid() {
		return &ValidationError{Field: "ticket_type", Reason: "must be single or parlay"}
	}
	if !t.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown ticket status"}
	}
	if !t.Stake.IsPositive() {
		return &ValidationError{Field: "stake", Reason: "stake must be positive"}
	}
	switch t.TicketType {
	case TicketTypeSingle:
		if len(t.Legs) != 1 {
			return &ValidationError{Field: "legs", Reason: "single ticket must have exactly one leg"}
		}
	case TicketTypeParlay:
		if len(t.Legs) < 2 {
			return &ValidationError{Field: "legs", Reason: "parlay ticket must have at least two legs"}
		}
	}
	for _, leg := range t.Legs {
		if err := leg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsSettled reports whether the ticket carries settled financials
func (t *Ticket) IsSettled() bool {
	return t.Payout.Valid && t.Profit.Valid
}

// NetProfit returns the ticket's profit, or zero while unsettled
func (t *Ticket) NetProfit() decimal.Decimal {
	if t.Profit.Valid {
		return t.Profit.Decimal
	}
	return decimal.Zero
}
