package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"betledger/models"
)

func legsWithStatuses(statuses ...models.LegStatus) []*models.Leg {
	legs := make([]*models.Leg, 0, len(statuses))
	for _, s := range statuses {
		legs = append(legs, leg(-110, s))
	}
	return legs
}

func TestDeriveParlayStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.LegStatus
		expected models.TicketStatus
	}{
		{"all won", []models.LegStatus{models.LegStatusWon, models.LegStatusWon}, models.TicketStatusWon},
		{"one lost sinks it", []models.LegStatus{models.LegStatusWon, models.LegStatusLost}, models.TicketStatusLost},
		{"pending leg keeps it open", []models.LegStatus{models.LegStatusWon, models.LegStatusOpen}, models.TicketStatusOpen},
		{"all push or void", []models.LegStatus{models.LegStatusPush, models.LegStatusVoid}, models.TicketStatusPush},
		{"won with one push", []models.LegStatus{models.LegStatusWon, models.LegStatusPush}, models.TicketStatusWon},
		{"won with one void", []models.LegStatus{models.LegStatusWon, models.LegStatusVoid}, models.TicketStatusWon},
		{"all open", []models.LegStatus{models.LegStatusOpen, models.LegStatusOpen}, models.TicketStatusOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveParlayStatus(legsWithStatuses(tt.statuses...)))
		})
	}
}

// A loss outranks a pending leg: the ticket is lost even though a leg is
// still open.
func TestDeriveParlayStatus_LostBeatsOpen(t *testing.T) {
	legs := legsWithStatuses(models.LegStatusWon, models.LegStatusLost, models.LegStatusOpen)
	assert.Equal(t, models.TicketStatusLost, DeriveParlayStatus(legs))
}

// The empty leg set hits the defensive fallback. Asserting current behavior
// here, not endorsing it as a business rule.
func TestDeriveParlayStatus_EmptyLegsFallback(t *testing.T) {
	assert.Equal(t, models.TicketStatusPush, DeriveParlayStatus(nil))
}

func TestMirrorSingleStatus(t *testing.T) {
	tests := []struct {
		ticket models.TicketStatus
		leg    models.LegStatus
	}{
		{models.TicketStatusWon, models.LegStatusWon},
		{models.TicketStatusLost, models.LegStatusLost},
		{models.TicketStatusPush, models.LegStatusPush},
		{models.TicketStatusVoid, models.LegStatusVoid},
		{models.TicketStatusOpen, models.LegStatusOpen},
		{models.TicketStatusPartial, models.LegStatusOpen},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.leg, MirrorSingleStatus(tt.ticket), "ticket status %s", tt.ticket)
	}
}
