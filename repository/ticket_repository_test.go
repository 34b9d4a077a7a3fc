package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betledger/models"
	"betledger/repository/testutil"
)

// createTicketWithLegs persists a ticket and its legs
func createTicketWithLegs(t *testing.T, ctx context.Context, tickets *TicketRepository, legs *LegRepository, ticket *models.Ticket) {
	t.Helper()
	require.NoError(t, tickets.Create(ctx, ticket))
	for _, leg := range ticket.Legs {
		require.NoError(t, legs.Create(ctx, leg))
	}
}

func TestTicketRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	tickets := NewTicketRepository(testDB.DB)
	legs := NewLegRepository(testDB.DB)
	ctx := context.Background()

	t.Run("ticket not found", func(t *testing.T) {
		ticket, err := tickets.GetByID(ctx, "alice", "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("ticket found", func(t *testing.T) {
		created := testutil.CreateTestTicket("alice")
		createTicketWithLegs(t, ctx, tickets, legs, created)

		ticket, err := tickets.GetByID(ctx, "alice", created.ID)
		require.NoError(t, err)
		require.NotNil(t, ticket)

		assert.Equal(t, created.ID, ticket.ID)
		assert.Equal(t, models.TicketTypeSingle, ticket.TicketType)
		assert.Equal(t, models.TicketStatusOpen, ticket.Status)
		assert.True(t, ticket.Stake.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "NBA", ticket.League)
		assert.False(t, ticket.Payout.Valid)
		assert.False(t, ticket.Profit.Valid)
		assert.Nil(t, ticket.SettledAt)
		assert.False(t, ticket.CreatedAt.IsZero())
	})

	t.Run("scoped to owner", func(t *testing.T) {
		created := testutil.CreateTestTicket("alice")
		createTicketWithLegs(t, ctx, tickets, legs, created)

		ticket, err := tickets.GetByID(ctx, "bob", created.ID)
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})
}

func TestTicketRepository_ListByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	tickets := NewTicketRepository(testDB.DB)
	legs := NewLegRepository(testDB.DB)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	later := testutil.CreateTestTicket("alice")
	later.PlacedAt = day(15)
	createTicketWithLegs(t, ctx, tickets, legs, later)

	earlier := testutil.CreateTestTicket("alice")
	earlier.PlacedAt = day(3)
	createTicketWithLegs(t, ctx, tickets, legs, earlier)

	other := testutil.CreateTestTicket("bob")
	other.PlacedAt = day(10)
	createTicketWithLegs(t, ctx, tickets, legs, other)

	listed, err := tickets.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, earlier.ID, listed[0].ID)
	assert.Equal(t, later.ID, listed[1].ID)
}

func TestTicketRepository_UpdateDetails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	tickets := NewTicketRepository(testDB.DB)
	legs := NewLegRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful update", func(t *testing.T) {
		created := testutil.CreateTestTicket("alice")
		createTicketWithLegs(t, ctx, tickets, legs, created)

		created.Stake = decimal.RequireFromString("55.50")
		created.League = "NFL"
		created.Book = "FanDuel"
		require.NoError(t, tickets.UpdateDetails(ctx, created))

		ticket, err := tickets.GetByID(ctx, "alice", created.ID)
		require.NoError(t, err)
		require.NotNil(t, ticket)
		assert.True(t, ticket.Stake.Equal(decimal.RequireFromString("55.50")))
		assert.Equal(t, "NFL", ticket.League)
		assert.Equal(t, "FanDuel", ticket.Book)
	})

	t.Run("missing ticket", func(t *testing.T) {
		missing := testutil.CreateTestTicket("alice")
		err := tickets.UpdateDetails(ctx, missing)
		assert.Error(t, err)
	})
}

func TestTicketRepository_UpdateSettlement(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	tickets := NewTicketRepository(testDB.DB)
	legs := NewLegRepository(testDB.DB)
	ctx := context.Background()

	t.Run("settle won", func(t *testing.T) {
		created := testutil.CreateTestTicket("alice")
		createTicketWithLegs(t, ctx, tickets, legs, created)

		settledAt := time.Date(2026, time.March, 5, 22, 0, 0, 0, time.UTC)
		settlement := models.Settlement{
			Payout:    decimal.NewNullDecimal(decimal.RequireFromString("190.91")),
			Profit:    decimal.NewNullDecimal(decimal.RequireFromString("90.91")),
			SettledAt: &settledAt,
		}
		require.NoError(t, tickets.UpdateSettlement(ctx, "alice", created.ID, models.TicketStatusWon, settlement))

		ticket, err := tickets.GetByID(ctx, "alice", created.ID)
		require.NoError(t, err)
		require.NotNil(t, ticket)
		assert.Equal(t, models.TicketStatusWon, ticket.Status)
		require.True(t, ticket.Payout.Valid)
		require.True(t, ticket.Profit.Valid)
		assert.True(t, ticket.Payout.Decimal.Equal(decimal.RequireFromString("190.91")))
		assert.True(t, ticket.Profit.Decimal.Equal(decimal.RequireFromString("90.91")))
		require.NotNil(t, ticket.SettledAt)
		assert.True(t, ticket.SettledAt.Equal(settledAt))
	})

	t.Run("reopen clears financials", func(t *testing.T) {
		created := testutil.CreateTestTicket("alice")
		createTicketWithLegs(t, ctx, tickets, legs, created)

		settledAt := time.Now().UTC()
		won := models.Settlement{
			Payout:    decimal.NewNullDecimal(decimal.NewFromInt(200)),
			Profit:    decimal.NewNullDecimal(decimal.NewFromInt(100)),
			SettledAt: &settledAt,
		}
		require.NoError(t, tickets.UpdateSettlement(ctx, "alice", created.ID, models.TicketStatusWon, won))

		require.NoError(t, tickets.UpdateSettlement(ctx, "alice", created.ID, models.TicketStatusOpen, models.Settlement{}))

		ticket, err := tickets.GetByID(ctx, "alice", created.ID)
		require.NoError(t, err)
		require.NotNil(t, ticket)
		assert.Equal(t, models.TicketStatusOpen, ticket.Status)
		assert.False(t, ticket.Payout.Valid)
		assert.False(t, ticket.Profit.Valid)
		assert.Nil(t, ticket.SettledAt)
	})

	t.Run("missing ticket", func(t *testing.T) {
		err := tickets.UpdateSettlement(ctx, "alice", "00000000-0000-0000-0000-000000000000", models.TicketStatusWon, models.Settlement{})
		assert.Error(t, err)
	})
}

func TestTicketRepository_Delete(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	tickets := NewTicketRepository(testDB.DB)
	legs := NewLegRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		created := testutil.CreateTestTicket("alice")
		createTicketWithLegs(t, ctx, tickets, legs, created)

		require.NoError(t, legs.DeleteByTicket(ctx, created.ID))
		require.NoError(t, tickets.Delete(ctx, "alice", created.ID))

		ticket, err := tickets.GetByID(ctx, "alice", created.ID)
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("legs block delete", func(t *testing.T) {
		created := testutil.CreateTestTicket("alice")
		createTicketWithLegs(t, ctx, tickets, legs, created)

		err := tickets.Delete(ctx, "alice", created.ID)
		assert.Error(t, err)
	})

	t.Run("missing ticket", func(t *testing.T) {
		err := tickets.Delete(ctx, "alice", "00000000-0000-0000-0000-000000000000")
		assert.Error(t, err)
	})
}
