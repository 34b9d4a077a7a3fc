package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"betledger/api"
	"betledger/config"
	"betledger/database"
	"betledger/events"
	"betledger/repository"
	"betledger/scheduler"
	"betledger/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	log.WithField("environment", cfg.Environment).Info("Starting betledger")

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	eventBus := events.NewBus()
	subscribeAuditLog(eventBus)
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	ticketService := service.NewTicketService(uowFactory, loc)
	profileService := service.NewProfileService(uowFactory, loc)
	statsService := service.NewStatsService(uowFactory, profileService, loc)

	jobs := scheduler.New(profileService, loc)
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer jobs.Stop()

	server := api.NewServer(cfg, loc, ticketService, profileService, statsService)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	server.Stop()

	// Give in-flight event handlers a moment to finish
	time.Sleep(1 * time.Second)
	return nil
}

// subscribeAuditLog logs ledger mutations after their transactions commit
func subscribeAuditLog(bus *events.Bus) {
	bus.Subscribe(events.EventTypeTicketCreated, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TicketCreatedEvent); ok {
			log.WithFields(log.Fields{
				"userID":   e.UserID,
				"ticketID": e.TicketID,
				"type":     e.TicketType,
				"stake":    e.Stake,
				"legs":     e.LegCount,
			}).Info("Ticket created")
		}
	})
	bus.Subscribe(events.EventTypeTicketSettled, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TicketSettledEvent); ok {
			log.WithFields(log.Fields{
				"userID":   e.UserID,
				"ticketID": e.TicketID,
				"status":   e.Status,
			}).Info("Ticket settled")
		}
	})
	bus.Subscribe(events.EventTypeTicketDeleted, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TicketDeletedEvent); ok {
			log.WithFields(log.Fields{
				"userID":   e.UserID,
				"ticketID": e.TicketID,
			}).Info("Ticket deleted")
		}
	})
	bus.Subscribe(events.EventTypeProfileUpdated, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.ProfileUpdatedEvent); ok {
			log.WithFields(log.Fields{
				"userID":           e.UserID,
				"startingBankroll": e.StartingBankroll,
				"unitSize":         e.UnitSize,
			}).Info("Profile updated")
		}
	})
}
