package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tycoon/domain/entities"
	"tycoon/repository/testutil"
)

func TestUserRepository_GetOrCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("first reference inserts", func(t *testing.T) {
		user, created, err := repo.GetOrCreate(ctx, 1, "alice")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, int64(0), user.Diamonds)
	})

	t.Run("second reference updates the username", func(t *testing.T) {
		user, created, err := repo.GetOrCreate(ctx, 1, "alice_renamed")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "alice_renamed", user.Username)
	})

	t.Run("lookup of unknown user is nil", func(t *testing.T) {
		user, err := repo.GetByDiscordID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_AdjustDiamonds(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, _, err := repo.GetOrCreate(ctx, 1, "alice")
	require.NoError(t, err)

	t.Run("credit and debit", func(t *testing.T) {
		newValue, err := repo.AdjustDiamonds(ctx, 1, 25)
		require.NoError(t, err)
		assert.Equal(t, int64(25), newValue)

		newValue, err = repo.AdjustDiamonds(ctx, 1, -10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), newValue)
	})

	t.Run("overdraw is rejected atomically", func(t *testing.T) {
		_, err := repo.AdjustDiamonds(ctx, 1, -100)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		user, err := repo.GetByDiscordID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(15), user.Diamonds)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.AdjustDiamonds(ctx, 999, 10)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestUserRepository_Arrests(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, _, err := repo.GetOrCreate(ctx, 1, "alice")
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(ctx, 2, "bob")
	require.NoError(t, err)

	t.Run("set and clear", func(t *testing.T) {
		until := time.Now().UTC().Add(30 * time.Minute)
		require.NoError(t, repo.SetArrestedUntil(ctx, 1, &until))

		user, err := repo.GetByDiscordID(ctx, 1)
		require.NoError(t, err)
		assert.True(t, user.IsArrested(time.Now().UTC()))

		require.NoError(t, repo.SetArrestedUntil(ctx, 1, nil))
		user, err = repo.GetByDiscordID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, user.ArrestedUntil)
	})

	t.Run("sweep clears only expired stamps", func(t *testing.T) {
		now := time.Now().UTC()
		expired := now.Add(-time.Minute)
		active := now.Add(time.Hour)
		require.NoError(t, repo.SetArrestedUntil(ctx, 1, &expired))
		require.NoError(t, repo.SetArrestedUntil(ctx, 2, &active))

		cleared, err := repo.ClearExpiredArrests(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), cleared)

		alice, err := repo.GetByDiscordID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, alice.ArrestedUntil)

		bob, err := repo.GetByDiscordID(ctx, 2)
		require.NoError(t, err)
		assert.NotNil(t, bob.ArrestedUntil)
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.ErrorIs(t, repo.SetArrestedUntil(ctx, 999, nil), entities.ErrNotFound)
	})
}
