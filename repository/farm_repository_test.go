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

func TestFarmRepository_Plant(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewFarmRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	seedUser(t, testDB, 1)
	seed := catalogItem(t, testDB, "wheat_seed")

	t.Run("occupies an empty slot", func(t *testing.T) {
		require.NoError(t, repo.Plant(ctx, 1, 0, seed, time.Now().UTC()))

		plots, err := repo.ListPlots(ctx, 1)
		require.NoError(t, err)
		require.Len(t, plots, 1)
		assert.Equal(t, 0, plots[0].Slot)
		assert.Equal(t, "wheat_seed", plots[0].ItemSlug)
		assert.Equal(t, 0, plots[0].GrowthRate)
	})

	t.Run("second plant on the same slot loses", func(t *testing.T) {
		err := repo.Plant(ctx, 1, 0, seed, time.Now().UTC())
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})

	t.Run("rejects out-of-range slots", func(t *testing.T) {
		assert.Error(t, repo.Plant(ctx, 1, entities.FarmSize, seed, time.Now().UTC()))
		assert.Error(t, repo.Plant(ctx, 1, -1, seed, time.Now().UTC()))
	})

	t.Run("rejects non-plantable items", func(t *testing.T) {
		crop := catalogItem(t, testDB, "wheat")
		err := repo.Plant(ctx, 1, 1, crop, time.Now().UTC())
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})
}

func TestFarmRepository_RecomputeGrowth(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewFarmRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	seedUser(t, testDB, 1)
	seed := catalogItem(t, testDB, "wheat_seed") // 30 minutes to full growth

	now := time.Now().UTC()
	require.NoError(t, repo.Plant(ctx, 1, 0, seed, now.Add(-15*time.Minute)))
	require.NoError(t, repo.Plant(ctx, 1, 1, seed, now.Add(-2*time.Hour)))

	affected, err := repo.RecomputeGrowth(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	plots, err := repo.ListPlots(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plots, 2)
	assert.Equal(t, 50, plots[0].GrowthRate)
	assert.Equal(t, 100, plots[1].GrowthRate)
	assert.True(t, plots[1].IsRipe())

	t.Run("ripe plots are settled and skipped", func(t *testing.T) {
		affected, err := repo.RecomputeGrowth(ctx, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected, "only the growing plot updates")
	})

	t.Run("growth never moves backwards", func(t *testing.T) {
		// A recompute with an earlier clock must not undo progress.
		_, err := repo.RecomputeGrowth(ctx, now.Add(-10*time.Minute))
		require.NoError(t, err)

		plots, err := repo.ListPlots(ctx, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, plots[0].GrowthRate, 50)
	})
}

func TestFarmRepository_ClearPlots(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewFarmRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	seedUser(t, testDB, 1)
	seed := catalogItem(t, testDB, "wheat_seed")

	require.NoError(t, repo.Plant(ctx, 1, 0, seed, time.Now().UTC()))
	require.NoError(t, repo.Plant(ctx, 1, 1, seed, time.Now().UTC()))

	plots, err := repo.ListPlots(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plots, 2)

	require.NoError(t, repo.ClearPlots(ctx, []int64{plots[0].ID}))
	require.NoError(t, repo.ClearPlots(ctx, nil))

	plots, err = repo.ListPlots(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plots, 1)
	assert.Equal(t, 1, plots[0].Slot)

	t.Run("cleared slot can be replanted", func(t *testing.T) {
		assert.NoError(t, repo.Plant(ctx, 1, 0, seed, time.Now().UTC()))
	})
}
