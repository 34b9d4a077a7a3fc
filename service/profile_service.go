package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"betledger/events"
	"betledger/models"
)

type profileService struct {
	uowFactory UnitOfWorkFactory
	loc        *time.Location
}

// NewProfileService creates a new profile service
func NewProfileService(uowFactory UnitOfWorkFactory, loc *time.Location) ProfileService {
	return &profileService{
		uowFactory: uowFactory,
		loc:        loc,
	}
}

func (s *profileService) GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	profile, err := uow.ProfileRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	// First dashboard load for this user
	now := time.Now()
	profile = &models.Profile{
		ID:               userID,
		StartingBankroll: decimal.Zero,
		UnitSize:         decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return profile, nil
}

func (s *profileService) UpdateStartingBankroll(ctx context.Context, userID string, amount decimal.Decimal) (*models.Profile, error) {
	profile, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.ProfileRepository().UpdateStartingBankroll(ctx, userID, amount); err != nil {
		return nil, fmt.Errorf("failed to update starting bankroll: %w", err)
	}
	profile.StartingBankroll = amount

	// The baseline moved, so the recommendation moves with it
	unitSize, err := s.unitSizeLocked(ctx, uow, profile, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uow.ProfileRepository().UpdateUnitSize(ctx, userID, unitSize); err != nil {
		return nil, fmt.Errorf("failed to update unit size: %w", err)
	}
	profile.UnitSize = unitSize

	uow.EventBus().Publish(events.ProfileUpdatedEvent{
		UserID:           userID,
		StartingBankroll: profile.StartingBankroll,
		UnitSize:         profile.UnitSize,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return profile, nil
}

func (s *profileService) RecommendedUnitSize(ctx context.Context, userID string, now time.Time) (decimal.Decimal, error) {
	profile, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return s.unitSizeLocked(ctx, uow, profile, now)
}

// unitSizeLocked computes the unit size inside an open unit of work: the
// bankroll as of the previous month's end feeds the capped percentage rule.
func (s *profileService) unitSizeLocked(ctx context.Context, uow UnitOfWork, profile *models.Profile, now time.Time) (decimal.Decimal, error) {
	tickets, err := uow.TicketRepository().ListByUser(ctx, profile.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list tickets: %w", err)
	}
	cutoff := MonthStart(now, s.loc)
	bankroll := BankrollBefore(tickets, profile.StartingBankroll, cutoff)
	return ComputeUnitSize(bankroll), nil
}

func (s *profileService) RefreshUnitSizes(ctx context.Context, now time.Time) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	profiles, err := uow.ProfileRepository().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	for _, profile := range profiles {
		unitSize, err := s.unitSizeLocked(ctx, uow, profile, now)
		if err != nil {
			return err
		}
		if profile.UnitSize.Equal(unitSize) {
			continue
		}
		if err := uow.ProfileRepository().UpdateUnitSize(ctx, profile.ID, unitSize); err != nil {
			return fmt.Errorf("failed to update unit size for %s: %w", profile.ID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
