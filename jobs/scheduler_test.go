package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/events"
	"tycoon/repository"
	"tycoon/repository/testutil"
)

func TestScheduler_SweepBankFeesRecordsTransactions(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	cfg := config.NewTestConfig()
	ctx := context.Background()

	guildID := int64(900300)
	factory := repository.NewUnitOfWorkFactory(testDB.DB, events.NewBus(), cfg.StartingBalance, cfg.MaxEnergy)
	s := NewScheduler(testDB.DB, factory, cfg)

	users := repository.NewUserRepository(testDB.DB)
	_, _, err := users.GetOrCreate(ctx, 1, "saver")
	require.NoError(t, err)
	_, _, err = users.GetOrCreate(ctx, 2, "broke")
	require.NoError(t, err)

	profiles := repository.NewProfileRepository(testDB.DB, guildID, cfg.StartingBalance, cfg.MaxEnergy)
	_, err = profiles.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	_, err = profiles.GetOrCreate(ctx, 2)
	require.NoError(t, err)
	_, err = profiles.AdjustBalance(ctx, 1, entities.BalanceBank, 1000)
	require.NoError(t, err)

	require.NoError(t, s.sweepBankFees(ctx))

	profile, err := profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(980), profile.Bank, "two percent of 1000 swept")

	txs := repository.NewTransactionRepository(testDB.DB, guildID)
	records, err := txs.ListByUser(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entities.TransactionTypeBankFee, records[0].Type)
	assert.Equal(t, entities.TransactionStatusCompleted, records[0].Status)
	assert.Equal(t, int64(20), records[0].Amount)

	empty, err := txs.ListByUser(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty, "accounts with nothing banked are not charged")
}
