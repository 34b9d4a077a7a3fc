package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"betledger/events"
	"betledger/models"
)

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, userID, ticketID string) (*models.Ticket, error) {
	args := m.Called(ctx, userID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListByUser(ctx context.Context, userID string) ([]*models.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) UpdateDetails(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) UpdateSettlement(ctx context.Context, userID, ticketID string, status models.TicketStatus, settlement models.Settlement) error {
	args := m.Called(ctx, userID, ticketID, status, settlement)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, userID, ticketID string) error {
	args := m.Called(ctx, userID, ticketID)
	return args.Error(0)
}

// MockLegRepository is a mock implementation of LegRepository
type MockLegRepository struct {
	mock.Mock
}

func (m *MockLegRepository) Create(ctx context.Context, leg *models.Leg) error {
	args := m.Called(ctx, leg)
	return args.Error(0)
}

func (m *MockLegRepository) GetByTicket(ctx context.Context, ticketID string) ([]*models.Leg, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Leg), args.Error(1)
}

func (m *MockLegRepository) GetByTickets(ctx context.Context, ticketIDs []string) (map[string][]*models.Leg, error) {
	args := m.Called(ctx, ticketIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*models.Leg), args.Error(1)
}

func (m *MockLegRepository) UpdateStatus(ctx context.Context, legID string, status models.LegStatus) error {
	args := m.Called(ctx, legID, status)
	return args.Error(0)
}

func (m *MockLegRepository) DeleteByTicket(ctx context.Context, ticketID string) error {
	args := m.Called(ctx, ticketID)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateStartingBankroll(ctx context.Context, id string, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateUnitSize(ctx context.Context, id string, size decimal.Decimal) error {
	args := m.Called(ctx, id, size)
	return args.Error(0)
}

func (m *MockProfileRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories so tests can share mocks across units.
type MockUnitOfWork struct {
	mock.Mock

	ticketRepo  TicketRepository
	legRepo     LegRepository
	profileRepo ProfileRepository
	eventBus    EventPublisher
}

// SetRepositories configures the repositories this unit of work returns
func (m *MockUnitOfWork) SetRepositories(tickets TicketRepository, legs LegRepository, profiles ProfileRepository, bus EventPublisher) {
	m.ticketRepo = tickets
	m.legRepo = legs
	m.profileRepo = profiles
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) TicketRepository() TicketRepository {
	return m.ticketRepo
}

func (m *MockUnitOfWork) LegRepository() LegRepository {
	return m.legRepo
}

func (m *MockUnitOfWork) ProfileRepository() ProfileRepository {
	return m.profileRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return &noopPublisher{}
	}
	return m.eventBus
}

type noopPublisher struct{}

func (n *noopPublisher) Publish(events.Event) {}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
