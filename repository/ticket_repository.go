package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"betledger/database"
	"betledger/models"
)

// TicketRepository implements the service.TicketRepository interface
type TicketRepository struct {
	q queryable
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{q: db.Pool}
}

// newTicketRepositoryWithTx creates a new ticket repository with a transaction
func newTicketRepositoryWithTx(tx queryable) *TicketRepository {
	return &TicketRepository{q: tx}
}

const ticketColumns = `id, user_id, ticket_type, stake, league, book, status, payout, profit, placed_at, settled_at, created_at, updated_at`

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.TicketType,
		&t.Stake,
		&t.League,
		&t.Book,
		&t.Status,
		&t.Payout,
		&t.Profit,
		&t.PlacedAt,
		&t.SettledAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new ticket record
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (id, user_id, ticket_type, stake, league, book, status, payout, profit, placed_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.TicketType,
		ticket.Stake,
		ticket.League,
		ticket.Book,
		ticket.Status,
		ticket.Payout,
		ticket.Profit,
		ticket.PlacedAt,
		ticket.SettledAt,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create ticket %s: %w", ticket.ID, err)
	}
	return nil
}

// GetByID retrieves a ticket owned by userID, nil when absent
func (r *TicketRepository) GetByID(ctx context.Context, userID, ticketID string) (*models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE id = $1 AND user_id = $2
	`

	ticket, err := scanTicket(r.q.QueryRow(ctx, query, ticketID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket %s: %w", ticketID, err)
	}
	return ticket, nil
}

// ListByUser returns all tickets for a user ordered by placed date then id
func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1
		ORDER BY placed_at, created_at
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tickets: %w", err)
	}
	return tickets, nil
}

// UpdateDetails updates the user-editable ticket fields
func (r *TicketRepository) UpdateDetails(ctx context.Context, ticket *models.Ticket) error {
	query := `
		UPDATE tickets
		SET stake = $1, league = $2, book = $3, placed_at = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
	`

	result, err := r.q.Exec(ctx, query,
		ticket.Stake,
		ticket.League,
		ticket.Book,
		ticket.PlacedAt,
		ticket.ID,
		ticket.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket %s: %w", ticket.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s not found", ticket.ID)
	}
	return nil
}

// UpdateSettlement writes status and the computed financials in one update
func (r *TicketRepository) UpdateSettlement(ctx context.Context, userID, ticketID string, status models.TicketStatus, settlement models.Settlement) error {
	query := `
		UPDATE tickets
		SET status = $1, payout = $2, profit = $3, settled_at = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
	`

	result, err := r.q.Exec(ctx, query,
		status,
		settlement.Payout,
		settlement.Profit,
		settlement.SettledAt,
		ticketID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement for ticket %s: %w", ticketID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s not found", ticketID)
	}
	return nil
}

// Delete removes a ticket row. Legs must have been deleted first.
func (r *TicketRepository) Delete(ctx context.Context, userID, ticketID string) error {
	result, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE id = $1 AND user_id = $2`, ticketID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete ticket %s: %w", ticketID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s not found", ticketID)
	}
	return nil
}
