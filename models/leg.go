package models

import (
	"math"
	"strings"
	"time"
)

// LegStatus represents the state of a single selection.
// It is a strict subset of TicketStatus: legs are never partial.
type LegStatus string

const (
	LegStatusOpen LegStatus = "open"
	LegStatusWon  LegStatus = "won"
	LegStatusLost LegStatus = "lost"
	LegStatusPush LegStatus = "push"
	LegStatusVoid LegStatus = "void"
)

// Valid reports whether the leg status is a known value
func (s LegStatus) Valid() bool {
	switch s {
	case LegStatusOpen, LegStatusWon, LegStatusLost, LegStatusPush, LegStatusVoid:
		return true
	}
	return false
}

// IsNeutral reports whether the leg is excluded from parlay pricing.
// A push or void leg neither inflates nor deflates the remaining price.
func (s LegStatus) IsNeutral() bool {
	return s == LegStatusPush || s == LegStatusVoid
}

// Leg represents one selection within a ticket
type Leg struct {
	ID           string    `db:"id"`
	TicketID     string    `db:"ticket_id"`
	Selection    string    `db:"selection"`
	AmericanOdds float64   `db:"american_odds"`
	Status       LegStatus `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Validate checks the leg's fields
func (l *Leg) Validate() error {
	if strings.TrimSpace(l.Selection) == "" {
		return &ValidationError{Field: "selection", Reason: "selection must not be empty"}
	}
	if l.AmericanOdds == 0 || math.IsNaN(l.AmericanOdds) || math.IsInf(l.AmericanOdds, 0) {
		return ErrInvalidOdds
	}
	if !l.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown leg status"}
	}
	return nil
}
