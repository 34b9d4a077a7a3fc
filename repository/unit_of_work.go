package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"betledger/database"
	"betledger/events"
	"betledger/service"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	ticketRepo       service.TicketRepository
	legRepo          service.LegRepository
	profileRepo      service.ProfileRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.ticketRepo = newTicketRepositoryWithTx(tx)
	u.legRepo = newLegRepositoryWithTx(tx)
	u.profileRepo = newProfileRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction; no-op after commit
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// TicketRepository returns the ticket repository bound to this transaction
func (u *unitOfWork) TicketRepository() service.TicketRepository {
	return u.ticketRepo
}

// LegRepository returns the leg repository bound to this transaction
func (u *unitOfWork) LegRepository() service.LegRepository {
	return u.legRepo
}

// ProfileRepository returns the profile repository bound to this transaction
func (u *unitOfWork) ProfileRepository() service.ProfileRepository {
	return u.profileRepo
}

// EventBus returns the transactional event publisher
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
