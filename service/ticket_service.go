package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"betledger/events"
	"betledger/models"
)

type ticketService struct {
	uowFactory UnitOfWorkFactory
	loc        *time.Location
}

// NewTicketService creates a new ticket service
func NewTicketService(uowFactory UnitOfWorkFactory, loc *time.Location) TicketService {
	return &ticketService{
		uowFactory: uowFactory,
		loc:        loc,
	}
}

func (s *ticketService) CreateTicket(ctx context.Context, userID string, input CreateTicketInput) (*models.Ticket, error) {
	if input.League == "" {
		return nil, &models.ValidationError{Field: "league", Reason: "league must be set"}
	}
	placedAt := input.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now()
	}

	now := time.Now()
	ticket := &models.Ticket{
		ID:         uuid.NewString(),
		UserID:     userID,
		TicketType: input.TicketType,
		Stake:      input.Stake,
		League:     input.League,
		Book:       input.Book,
		Status:     models.TicketStatusOpen,
		// Date-granularity semantics: time of day collapses to local midnight
		PlacedAt:  StartOfDay(placedAt, s.loc),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, legInput := range input.Legs {
		ticket.Legs = append(ticket.Legs, &models.Leg{
			ID:           uuid.NewString(),
			TicketID:     ticket.ID,
			Selection:    legInput.Selection,
			AmericanOdds: legInput.AmericanOdds,
			Status:       models.LegStatusOpen,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.TicketRepository().Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	for _, leg := range ticket.Legs {
		if err := uow.LegRepository().Create(ctx, leg); err != nil {
			return nil, fmt.Errorf("failed to create leg: %w", err)
		}
	}

	uow.EventBus().Publish(events.TicketCreatedEvent{
		UserID:     userID,
		TicketID:   ticket.ID,
		TicketType: ticket.TicketType,
		Stake:      ticket.Stake,
		LegCount:   len(ticket.Legs),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ticket, nil
}

func (s *ticketService) GetTicket(ctx context.Context, userID, ticketID string) (*models.Ticket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return s.loadTicket(ctx, uow, userID, ticketID)
}

func (s *ticketService) loadTicket(ctx context.Context, uow UnitOfWork, userID, ticketID string) (*models.Ticket, error) {
	ticket, err := uow.TicketRepository().GetByID(ctx, userID, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, models.ErrNotFound
	}
	legs, err := uow.LegRepository().GetByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get legs: %w", err)
	}
	ticket.Legs = legs
	return ticket, nil
}

func (s *ticketService) ListTickets(ctx context.Context, userID string, filter models.PeriodFilter) ([]*models.Ticket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tickets, err := uow.TicketRepository().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	filtered := make([]*models.Ticket, 0, len(tickets))
	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		if !filter.MatchesLeague(t) || !filter.MatchesStatus(t) || !filter.Range.Contains(t.PlacedAt) {
			continue
		}
		filtered = append(filtered, t)
		ids = append(ids, t.ID)
	}

	legsByTicket, err := uow.LegRepository().GetByTickets(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get legs: %w", err)
	}
	for _, t := range filtered {
		t.Legs = legsByTicket[t.ID]
	}

	return filtered, nil
}

func (s *ticketService) UpdateTicket(ctx context.Context, userID, ticketID string, input UpdateTicketInput) (*models.Ticket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ticket, err := s.loadTicket(ctx, uow, userID, ticketID)
	if err != nil {
		return nil, err
	}

	ticket.Stake = input.Stake
	ticket.Book = input.Book
	if input.League != "" {
		ticket.League = input.League
	}
	if !input.PlacedAt.IsZero() {
		ticket.PlacedAt = StartOfDay(input.PlacedAt, s.loc)
	}
	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	if err := uow.TicketRepository().UpdateDetails(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	// Editing the stake changes the financials, so settlement re-runs for
	// the current status. A previously entered manual payout is superseded.
	settlement, err := ComputeSettlement(ticket.TicketType, ticket.Stake, ticket.Status, ticket.Legs, nil, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uow.TicketRepository().UpdateSettlement(ctx, userID, ticketID, ticket.Status, settlement); err != nil {
		return nil, fmt.Errorf("failed to update settlement: %w", err)
	}
	ticket.Payout = settlement.Payout
	ticket.Profit = settlement.Profit
	ticket.SettledAt = settlement.SettledAt

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ticket, nil
}

func (s *ticketService) SettleTicket(ctx context.Context, userID, ticketID string, input SettleTicketInput) (*models.Ticket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ticket, err := s.loadTicket(ctx, uow, userID, ticketID)
	if err != nil {
		return nil, err
	}

	var status models.TicketStatus
	switch ticket.TicketType {
	case models.TicketTypeSingle:
		// Ticket status is the user's call; the sole leg mirrors it.
		if !input.Status.Valid() {
			return nil, &models.ValidationError{Field: "status", Reason: "unknown ticket status"}
		}
		status = input.Status
		legStatus := MirrorSingleStatus(status)
		for _, leg := range ticket.Legs {
			leg.Status = legStatus
		}

	case models.TicketTypeParlay:
		// Legs are settled individually; the ticket status is derived.
		if err := applyLegResults(ticket.Legs, input.LegResults); err != nil {
			return nil, err
		}
		status = DeriveParlayStatus(ticket.Legs)

	default:
		return nil, &models.ValidationError{Field: "ticket_type", Reason: "must be single or parlay"}
	}

	settlement, err := ComputeSettlement(ticket.TicketType, ticket.Stake, status, ticket.Legs, input.PayoutOverride, time.Now())
	if err != nil {
		return nil, err
	}

	if err := uow.TicketRepository().UpdateSettlement(ctx, userID, ticketID, status, settlement); err != nil {
		return nil, fmt.Errorf("failed to update settlement: %w", err)
	}
	for _, leg := range ticket.Legs {
		if err := uow.LegRepository().UpdateStatus(ctx, leg.ID, leg.Status); err != nil {
			return nil, fmt.Errorf("failed to update leg %s: %w", leg.ID, err)
		}
	}

	ticket.Status = status
	ticket.Payout = settlement.Payout
	ticket.Profit = settlement.Profit
	ticket.SettledAt = settlement.SettledAt

	uow.EventBus().Publish(events.TicketSettledEvent{
		UserID:    userID,
		TicketID:  ticketID,
		Status:    status,
		Payout:    settlement.Payout,
		Profit:    settlement.Profit,
		SettledAt: settlement.SettledAt,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ticket, nil
}

func applyLegResults(legs []*models.Leg, results []LegResult) error {
	byID := make(map[string]*models.Leg, len(legs))
	for _, leg := range legs {
		byID[leg.ID] = leg
	}
	for _, result := range results {
		leg, ok := byID[result.LegID]
		if !ok {
			return &models.ValidationError{Field: "legs", Reason: fmt.Sprintf("leg %s does not belong to this ticket", result.LegID)}
		}
		if !result.Status.Valid() {
			return &models.ValidationError{Field: "legs", Reason: "unknown leg status"}
		}
		leg.Status = result.Status
	}
	return nil
}

func (s *ticketService) DeleteTicket(ctx context.Context, userID, ticketID string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ticket, err := uow.TicketRepository().GetByID(ctx, userID, ticketID)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return models.ErrNotFound
	}

	// Legs go first so a ticket row never outlives them mid-delete
	if err := uow.LegRepository().DeleteByTicket(ctx, ticketID); err != nil {
		return fmt.Errorf("failed to delete legs: %w", err)
	}
	if err := uow.TicketRepository().Delete(ctx, userID, ticketID); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	uow.EventBus().Publish(events.TicketDeletedEvent{
		UserID:   userID,
		TicketID: ticketID,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
