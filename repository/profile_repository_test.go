package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betledger/repository/testutil"
)

func TestProfileRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewProfileRepository(testDB.DB)
	ctx := context.Background()

	t.Run("profile not found", func(t *testing.T) {
		profile, err := repo.GetByID(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("profile found", func(t *testing.T) {
		created := testutil.CreateTestProfile("alice")
		require.NoError(t, repo.Create(ctx, created))

		profile, err := repo.GetByID(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "alice", profile.ID)
		assert.True(t, profile.StartingBankroll.Equal(decimal.NewFromInt(1000)))
		assert.True(t, profile.UnitSize.Equal(decimal.NewFromInt(50)))
		assert.False(t, profile.CreatedAt.IsZero())
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := repo.Create(ctx, testutil.CreateTestProfile("alice"))
		assert.Error(t, err)
	})
}

func TestProfileRepository_Updates(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewProfileRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.CreateTestProfile("alice")))

	t.Run("starting bankroll", func(t *testing.T) {
		require.NoError(t, repo.UpdateStartingBankroll(ctx, "alice", decimal.RequireFromString("2500.00")))

		profile, err := repo.GetByID(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.True(t, profile.StartingBankroll.Equal(decimal.RequireFromString("2500.00")))
	})

	t.Run("unit size", func(t *testing.T) {
		require.NoError(t, repo.UpdateUnitSize(ctx, "alice", decimal.NewFromInt(100)))

		profile, err := repo.GetByID(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.True(t, profile.UnitSize.Equal(decimal.NewFromInt(100)))
	})

	t.Run("missing profile", func(t *testing.T) {
		assert.Error(t, repo.UpdateStartingBankroll(ctx, "nobody", decimal.NewFromInt(1)))
		assert.Error(t, repo.UpdateUnitSize(ctx, "nobody", decimal.NewFromInt(1)))
	})
}

func TestProfileRepository_GetAll(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewProfileRepository(testDB.DB)
	ctx := context.Background()

	profiles, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	require.NoError(t, repo.Create(ctx, testutil.CreateTestProfile("bob")))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestProfile("alice")))

	profiles, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alice", profiles[0].ID)
	assert.Equal(t, "bob", profiles[1].ID)
}
