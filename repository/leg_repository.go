package repository

import (
	"context"
	"fmt"

	"betledger/database"
	"betledger/models"
)

// LegRepository implements the service.LegRepository interface
type LegRepository struct {
	q queryable
}

// NewLegRepository creates a new leg repository
func NewLegRepository(db *database.DB) *LegRepository {
	return &LegRepository{q: db.Pool}
}

// newLegRepositoryWithTx creates a new leg repository with a transaction
func newLegRepositoryWithTx(tx queryable) *LegRepository {
	return &LegRepository{q: tx}
}

// Create inserts a new leg record
func (r *LegRepository) Create(ctx context.Context, leg *models.Leg) error {
	query := `
		INSERT INTO legs (id, ticket_id, selection, american_odds, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		leg.ID,
		leg.TicketID,
		leg.Selection,
		leg.AmericanOdds,
		leg.Status,
	).Scan(&leg.CreatedAt, &leg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create leg %s: %w", leg.ID, err)
	}
	return nil
}

// GetByTicket returns a ticket's legs in creation order
func (r *LegRepository) GetByTicket(ctx context.Context, ticketID string) ([]*models.Leg, error) {
	byTicket, err := r.GetByTickets(ctx, []string{ticketID})
	if err != nil {
		return nil, err
	}
	return byTicket[ticketID], nil
}

// GetByTickets returns legs for many tickets keyed by ticket ID
func (r *LegRepository) GetByTickets(ctx context.Context, ticketIDs []string) (map[string][]*models.Leg, error) {
	byTicket := make(map[string][]*models.Leg)
	if len(ticketIDs) == 0 {
		return byTicket, nil
	}

	query := `
		SELECT id, ticket_id, selection, american_odds, status, created_at, updated_at
		FROM legs
		WHERE ticket_id = ANY($1)
		ORDER BY created_at, id
	`

	rows, err := r.q.Query(ctx, query, ticketIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query legs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var leg models.Leg
		err := rows.Scan(
			&leg.ID,
			&leg.TicketID,
			&leg.Selection,
			&leg.AmericanOdds,
			&leg.Status,
			&leg.CreatedAt,
			&leg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leg: %w", err)
		}
		byTicket[leg.TicketID] = append(byTicket[leg.TicketID], &leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read legs: %w", err)
	}
	return byTicket, nil
}

// UpdateStatus updates one leg's status
func (r *LegRepository) UpdateStatus(ctx context.Context, legID string, status models.LegStatus) error {
	result, err := r.q.Exec(ctx, `UPDATE legs SET status = $1, updated_at = now() WHERE id = $2`, status, legID)
	if err != nil {
		return fmt.Errorf("failed to update leg %s: %w", legID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("leg %s not found", legID)
	}
	return nil
}

// DeleteByTicket removes all legs belonging to a ticket
func (r *LegRepository) DeleteByTicket(ctx context.Context, ticketID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM legs WHERE ticket_id = $1`, ticketID); err != nil {
		return fmt.Errorf("failed to delete legs for ticket %s: %w", ticketID, err)
	}
	return nil
}
