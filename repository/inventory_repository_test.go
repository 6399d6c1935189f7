package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tycoon/domain/entities"
	"tycoon/repository/testutil"
)

// catalogItem resolves one of the migration-seeded catalog rows.
func catalogItem(t *testing.T, testDB *testutil.TestDatabase, slug string) *entities.Item {
	t.Helper()
	item, err := NewItemRepository(testDB.DB).GetBySlug(context.Background(), slug)
	require.NoError(t, err)
	require.NotNil(t, item, "catalog slug %q must be seeded", slug)
	return item
}

func TestInventoryRepository_AddItem(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewInventoryRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	seedUser(t, testDB, 1)
	ration := catalogItem(t, testDB, "ration")

	t.Run("creates then accumulates one stack", func(t *testing.T) {
		require.NoError(t, repo.AddItem(ctx, 1, ration.ID, 3, nil))
		require.NoError(t, repo.AddItem(ctx, 1, ration.ID, 2, nil))

		stack, err := repo.FindStack(ctx, 1, ration.ID)
		require.NoError(t, err)
		require.NotNil(t, stack)
		assert.Equal(t, int64(5), stack.Amount)
	})

	t.Run("stores per-stack payload", func(t *testing.T) {
		shovel := catalogItem(t, testDB, "shovel")
		durability := 100
		require.NoError(t, repo.AddItem(ctx, 1, shovel.ID, 1, &entities.StackData{Durability: &durability}))

		stack, err := repo.FindStack(ctx, 1, shovel.ID)
		require.NoError(t, err)
		require.NotNil(t, stack)
		require.NotNil(t, stack.Data)
		require.NotNil(t, stack.Data.Durability)
		assert.Equal(t, 100, *stack.Data.Durability)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		assert.Error(t, repo.AddItem(ctx, 1, ration.ID, 0, nil))
	})
}

func TestInventoryRepository_RemoveItem(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewInventoryRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	seedUser(t, testDB, 1)
	ration := catalogItem(t, testDB, "ration")
	require.NoError(t, repo.AddItem(ctx, 1, ration.ID, 3, nil))

	t.Run("decrements the stack", func(t *testing.T) {
		require.NoError(t, repo.RemoveItem(ctx, 1, ration.ID, 2))

		stack, err := repo.FindStack(ctx, 1, ration.ID)
		require.NoError(t, err)
		require.NotNil(t, stack)
		assert.Equal(t, int64(1), stack.Amount)
	})

	t.Run("short stack is left untouched", func(t *testing.T) {
		err := repo.RemoveItem(ctx, 1, ration.ID, 5)
		assert.ErrorIs(t, err, entities.ErrInsufficientQuantity)

		stack, err := repo.FindStack(ctx, 1, ration.ID)
		require.NoError(t, err)
		require.NotNil(t, stack)
		assert.Equal(t, int64(1), stack.Amount)
	})

	t.Run("reaching zero deletes the row", func(t *testing.T) {
		require.NoError(t, repo.RemoveItem(ctx, 1, ration.ID, 1))

		stack, err := repo.FindStack(ctx, 1, ration.ID)
		require.NoError(t, err)
		assert.Nil(t, stack)
	})

	t.Run("absent stack", func(t *testing.T) {
		err := repo.RemoveItem(ctx, 1, ration.ID, 1)
		assert.ErrorIs(t, err, entities.ErrInsufficientQuantity)
	})
}

func TestInventoryRepository_ListStacks(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewInventoryRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	seedUser(t, testDB, 1)
	seedUser(t, testDB, 2)
	ration := catalogItem(t, testDB, "ration")
	vaccine := catalogItem(t, testDB, "vaccine")

	require.NoError(t, repo.AddItem(ctx, 1, ration.ID, 2, nil))
	require.NoError(t, repo.AddItem(ctx, 1, vaccine.ID, 1, nil))
	require.NoError(t, repo.AddItem(ctx, 2, ration.ID, 9, nil))

	stacks, err := repo.ListStacks(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stacks, 2, "only the owner's stacks are listed")

	otherGuild := NewInventoryRepository(testDB.DB, testGuildID+1)
	stacks, err = otherGuild.ListStacks(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, stacks, "stacks are guild-scoped")
}
