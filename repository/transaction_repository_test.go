package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tycoon/domain/entities"
	"tycoon/repository/testutil"
)

func TestTransactionRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewTransactionRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	t.Run("stamps id and created_at", func(t *testing.T) {
		tx := &entities.Transaction{
			DiscordID: 1,
			Type:      entities.TransactionTypeSalary,
			Status:    entities.TransactionStatusCompleted,
			Amount:    180,
			Metadata:  map[string]any{"job": "Courier"},
		}
		require.NoError(t, repo.Record(ctx, tx))
		assert.NotZero(t, tx.ID)
		assert.False(t, tx.CreatedAt.IsZero())
	})

	t.Run("rejects invalid entries", func(t *testing.T) {
		err := repo.Record(ctx, &entities.Transaction{DiscordID: 1, Amount: 0})
		assert.Error(t, err)
	})
}

func TestTransactionRepository_ListByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewTransactionRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	amounts := []int64{10, 20, 30, 40}
	for _, amount := range amounts {
		require.NoError(t, repo.Record(ctx, &entities.Transaction{
			DiscordID: 1,
			Type:      entities.TransactionTypeTransferIn,
			Status:    entities.TransactionStatusCompleted,
			Amount:    amount,
		}))
	}
	require.NoError(t, repo.Record(ctx, &entities.Transaction{
		DiscordID: 2,
		Type:      entities.TransactionTypeTransferIn,
		Status:    entities.TransactionStatusCompleted,
		Amount:    999,
	}))

	t.Run("newest first, capped at limit", func(t *testing.T) {
		txs, err := repo.ListByUser(ctx, 1, 3)
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, int64(40), txs[0].Amount)
		assert.Equal(t, int64(20), txs[2].Amount)
	})

	t.Run("scoped to the user", func(t *testing.T) {
		txs, err := repo.ListByUser(ctx, 2, 10)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, int64(999), txs[0].Amount)
	})
}
