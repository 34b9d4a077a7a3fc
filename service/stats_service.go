package service

import (
	"context"
	"fmt"
	"time"

	"betledger/models"
)

type statsService struct {
	uowFactory UnitOfWorkFactory
	profiles   ProfileService
	loc        *time.Location
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory, profiles ProfileService, loc *time.Location) StatsService {
	return &statsService{
		uowFactory: uowFactory,
		profiles:   profiles,
		loc:        loc,
	}
}

// GetPeriodStats answers the dashboard. The series and summary honor the
// filter; the current bankroll deliberately ignores it and always covers
// every ticket the user has.
func (s *statsService) GetPeriodStats(ctx context.Context, userID string, filter models.PeriodFilter) (*models.PeriodStats, error) {
	profile, err := s.profiles.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tickets, err := uow.TicketRepository().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return &models.PeriodStats{
		Summary:         SummarizePeriod(tickets, filter),
		Series:          BuildBankrollSeries(tickets, profile.StartingBankroll, filter, s.loc),
		CurrentBankroll: CurrentBankroll(tickets, profile.StartingBankroll),
	}, nil
}
