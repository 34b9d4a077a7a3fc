package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"betledger/models"
)

// CreateTestTicket creates an open single ticket with default values
func CreateTestTicket(userID string) *models.Ticket {
	ticket := &models.Ticket{
		ID:         uuid.NewString(),
		UserID:     userID,
		TicketType: models.TicketTypeSingle,
		Stake:      decimal.NewFromInt(100),
		League:     "NBA",
		Book:       "DraftKings",
		Status:     models.TicketStatusOpen,
		PlacedAt:   time.Now().Truncate(24 * time.Hour),
	}
	ticket.Legs = []*models.Leg{CreateTestLeg(ticket.ID)}
	return ticket
}

// CreateTestParlayTicket creates an open parlay ticket with the given leg count
func CreateTestParlayTicket(userID string, legCount int) *models.Ticket {
	ticket := CreateTestTicket(userID)
	ticket.TicketType = models.TicketTypeParlay
	ticket.Legs = make([]*models.Leg, 0, legCount)
	for i := 0; i < legCount; i++ {
		ticket.Legs = append(ticket.Legs, CreateTestLeg(ticket.ID))
	}
	return ticket
}

// CreateTestLeg creates an open leg with default values
func CreateTestLeg(ticketID string) *models.Leg {
	return &models.Leg{
		ID:           uuid.NewString(),
		TicketID:     ticketID,
		Selection:    "Lakers -4.5",
		AmericanOdds: -110,
		Status:       models.LegStatusOpen,
	}
}

// CreateTestLegWithOdds creates an open leg with specific selection and odds
func CreateTestLegWithOdds(ticketID, selection string, odds float64) *models.Leg {
	leg := CreateTestLeg(ticketID)
	leg.Selection = selection
	leg.AmericanOdds = odds
	return leg
}

// CreateTestProfile creates a profile with a default starting bankroll
func CreateTestProfile(userID string) *models.Profile {
	return &models.Profile{
		ID:               userID,
		StartingBankroll: decimal.NewFromInt(1000),
		UnitSize:         decimal.NewFromInt(50),
	}
}
