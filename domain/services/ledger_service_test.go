package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/events"
	"tycoon/domain/testhelpers"
)

func TestLedgerService_Balances_NewUserPublishesEvent(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockProfileRepo := new(testhelpers.MockProfileRepository)
	mockTxRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	service := NewLedgerService(mockUserRepo, mockProfileRepo, mockTxRepo, mockEventPublisher, config.NewTestConfig())

	mockUserRepo.On("GetOrCreate", ctx, int64(123456), "testuser").
		Return(&entities.User{DiscordID: 123456, Username: "testuser", Diamonds: 3}, true, nil)
	mockProfileRepo.On("GetOrCreate", ctx, int64(123456)).
		Return(&entities.GuildProfile{DiscordID: 123456, Cash: 500, Bank: 100, Dirty: 50, Energy: 80}, nil)
	mockEventPublisher.On("Publish", mock.AnythingOfType("events.UserCreatedEvent")).Return()

	balances, err := service.Balances(ctx, 123456, "testuser")

	assert.NoError(t, err)
	assert.Equal(t, int64(500), balances.Cash)
	assert.Equal(t, int64(100), balances.Bank)
	assert.Equal(t, int64(50), balances.Dirty)
	assert.Equal(t, int64(3), balances.Diamonds)
	assert.Equal(t, 80, balances.Energy)

	assert.Len(t, mockEventPublisher.Events, 1)
	created, ok := mockEventPublisher.Events[0].(events.UserCreatedEvent)
	assert.True(t, ok)
	assert.Equal(t, int64(123456), created.DiscordID)

	mockUserRepo.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
}

func TestLedgerService_Balances_ExistingUserNoEvent(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockProfileRepo := new(testhelpers.MockProfileRepository)
	mockTxRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	service := NewLedgerService(mockUserRepo, mockProfileRepo, mockTxRepo, mockEventPublisher, config.NewTestConfig())

	mockUserRepo.On("GetOrCreate", ctx, int64(123456), "testuser").
		Return(&entities.User{DiscordID: 123456, Username: "testuser"}, false, nil)
	mockProfileRepo.On("GetOrCreate", ctx, int64(123456)).
		Return(&entities.GuildProfile{DiscordID: 123456}, nil)

	_, err := service.Balances(ctx, 123456, "testuser")

	assert.NoError(t, err)
	assert.Empty(t, mockEventPublisher.Events)
	mockEventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestLedgerService_Adjust_RoutesDiamondsToUserRepo(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockProfileRepo := new(testhelpers.MockProfileRepository)
	mockTxRepo := new(testhelpers.MockTransactionRepository)

	service := NewLedgerService(mockUserRepo, mockProfileRepo, mockTxRepo, testhelpers.NoopEventPublisher{}, config.NewTestConfig())

	mockUserRepo.On("AdjustDiamonds", ctx, int64(123456), int64(5)).Return(int64(8), nil)

	newValue, err := service.Adjust(ctx, 123456, entities.BalanceDiamonds, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(8), newValue)
	mockProfileRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertExpectations(t)
}

func TestLedgerService_Adjust_RejectsBadInput(t *testing.T) {
	ctx := context.Background()

	service := NewLedgerService(
		new(testhelpers.MockUserRepository),
		new(testhelpers.MockProfileRepository),
		new(testhelpers.MockTransactionRepository),
		testhelpers.NoopEventPublisher{},
		config.NewTestConfig(),
	)

	_, err := service.Adjust(ctx, 123456, entities.BalanceField("bogus"), 10)
	assert.Error(t, err)

	_, err = service.Adjust(ctx, 123456, entities.BalanceCash, 0)
	assert.Error(t, err)
}

func TestLedgerService_AdjustAudited_RecordsCompletedTransaction(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockProfileRepo := new(testhelpers.MockProfileRepository)
	mockTxRepo := new(testhelpers.MockTransactionRepository)

	service := NewLedgerService(mockUserRepo, mockProfileRepo, mockTxRepo, testhelpers.NoopEventPublisher{}, config.NewTestConfig())

	mockProfileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-100)).Return(int64(400), nil)
	mockTxRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.DiscordID == 123456 &&
			tx.Type == entities.TransactionTypeWager &&
			tx.Status == entities.TransactionStatusCompleted &&
			tx.Amount == -100
	})).Return(nil)

	newValue, err := service.AdjustAudited(ctx, 123456, entities.BalanceCash, -100, entities.TransactionTypeWager, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(400), newValue)
	mockTxRepo.AssertExpectations(t)
}

func TestLedgerService_AdjustAudited_RecordsRejectedAttempt(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockProfileRepo := new(testhelpers.MockProfileRepository)
	mockTxRepo := new(testhelpers.MockTransactionRepository)

	service := NewLedgerService(mockUserRepo, mockProfileRepo, mockTxRepo, testhelpers.NoopEventPublisher{}, config.NewTestConfig())

	mockProfileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-9999)).
		Return(int64(0), entities.ErrInsufficientFunds)
	mockTxRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Status == entities.TransactionStatusRejected && tx.Amount == -9999
	})).Return(nil)

	_, err := service.AdjustAudited(ctx, 123456, entities.BalanceCash, -9999, entities.TransactionTypeWager, nil)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	mockTxRepo.AssertExpectations(t)
}

func TestLedgerService_Deposit_TakesConfiguredFee(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockProfileRepo := new(testhelpers.MockProfileRepository)
	mockTxRepo := new(testhelpers.MockTransactionRepository)

	cfg := config.NewTestConfig()
	cfg.BankFeePercent = 2
	service := NewLedgerService(mockUserRepo, mockProfileRepo, mockTxRepo, testhelpers.NoopEventPublisher{}, cfg)

	mockProfileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-100)).Return(int64(400), nil)
	mockProfileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceBank, int64(98)).Return(int64(98), nil)
	mockTxRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Type == entities.TransactionTypeBankFee && tx.Amount == -2
	})).Return(nil)

	banked, fee, err := service.Deposit(ctx, 123456, 100)

	assert.NoError(t, err)
	assert.Equal(t, int64(98), banked)
	assert.Equal(t, int64(2), fee)
	mockProfileRepo.AssertExpectations(t)
	mockTxRepo.AssertExpectations(t)
}

func TestLedgerService_Withdraw_InsufficientBank(t *testing.T) {
	ctx := context.Background()

	mockProfileRepo := new(testhelpers.MockProfileRepository)

	service := NewLedgerService(
		new(testhelpers.MockUserRepository),
		mockProfileRepo,
		new(testhelpers.MockTransactionRepository),
		testhelpers.NoopEventPublisher{},
		config.NewTestConfig(),
	)

	mockProfileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceBank, int64(-500)).
		Return(int64(0), entities.ErrInsufficientFunds)

	_, err := service.Withdraw(ctx, 123456, 500)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	mockProfileRepo.AssertNotCalled(t, "AdjustBalance", ctx, int64(123456), entities.BalanceCash, mock.Anything)
}

func TestLedgerService_Transfer_DebitFailureStopsCredit(t *testing.T) {
	ctx := context.Background()

	mockProfileRepo := new(testhelpers.MockProfileRepository)
	mockTxRepo := new(testhelpers.MockTransactionRepository)

	service := NewLedgerService(
		new(testhelpers.MockUserRepository),
		mockProfileRepo,
		mockTxRepo,
		testhelpers.NoopEventPublisher{},
		config.NewTestConfig(),
	)

	mockProfileRepo.On("AdjustBalance", ctx, int64(111), entities.BalanceCash, int64(-300)).
		Return(int64(0), entities.ErrInsufficientFunds)
	mockTxRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)

	err := service.Transfer(ctx, 111, 222, 300)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	mockProfileRepo.AssertNotCalled(t, "AdjustBalance", ctx, int64(222), mock.Anything, mock.Anything)
}

func TestLedgerService_Transfer_RejectsSelfAndNonPositive(t *testing.T) {
	ctx := context.Background()

	service := NewLedgerService(
		new(testhelpers.MockUserRepository),
		new(testhelpers.MockProfileRepository),
		new(testhelpers.MockTransactionRepository),
		testhelpers.NoopEventPublisher{},
		config.NewTestConfig(),
	)

	assert.Error(t, service.Transfer(ctx, 111, 111, 100))
	assert.Error(t, service.Transfer(ctx, 111, 222, 0))
	assert.Error(t, service.Transfer(ctx, 111, 222, -5))
}
