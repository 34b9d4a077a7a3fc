package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"betledger/database"
	"betledger/models"
)

// ProfileRepository implements the service.ProfileRepository interface
type ProfileRepository struct {
	q queryable
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{q: db.Pool}
}

// newProfileRepositoryWithTx creates a new profile repository with a transaction
func newProfileRepositoryWithTx(tx queryable) *ProfileRepository {
	return &ProfileRepository{q: tx}
}

// GetByID retrieves a profile, nil when absent
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, starting_bankroll, unit_size, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var profile models.Profile
	err := r.q.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.StartingBankroll,
		&profile.UnitSize,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return &profile, nil
}

// Create inserts a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, starting_bankroll, unit_size)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, profile.ID, profile.StartingBankroll, profile.UnitSize).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile %s: %w", profile.ID, err)
	}
	return nil
}

// UpdateStartingBankroll updates the user-editable baseline
func (r *ProfileRepository) UpdateStartingBankroll(ctx context.Context, id string, amount decimal.Decimal) error {
	result, err := r.q.Exec(ctx, `UPDATE profiles SET starting_bankroll = $1, updated_at = now() WHERE id = $2`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update starting bankroll for %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", id)
	}
	return nil
}

// UpdateUnitSize updates the denormalized recommended unit size
func (r *ProfileRepository) UpdateUnitSize(ctx context.Context, id string, size decimal.Decimal) error {
	result, err := r.q.Exec(ctx, `UPDATE profiles SET unit_size = $1, updated_at = now() WHERE id = $2`, size, id)
	if err != nil {
		return fmt.Errorf("failed to update unit size for %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", id)
	}
	return nil
}

// GetAll returns every profile
func (r *ProfileRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT id, starting_bankroll, unit_size, created_at, updated_at
		FROM profiles
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var profile models.Profile
		err := rows.Scan(
			&profile.ID,
			&profile.StartingBankroll,
			&profile.UnitSize,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}
