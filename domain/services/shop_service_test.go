package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
	"tycoon/domain/testhelpers"
)

type shopServiceMocks struct {
	itemRepo      *testhelpers.MockItemRepository
	inventoryRepo *testhelpers.MockInventoryRepository
	profileRepo   *testhelpers.MockProfileRepository
	userRepo      *testhelpers.MockUserRepository
	txRepo        *testhelpers.MockTransactionRepository
	publisher     *testhelpers.MockEventPublisher
}

func newShopServiceForTest() (interfaces.ShopService, *shopServiceMocks) {
	m := &shopServiceMocks{
		itemRepo:      new(testhelpers.MockItemRepository),
		inventoryRepo: new(testhelpers.MockInventoryRepository),
		profileRepo:   new(testhelpers.MockProfileRepository),
		userRepo:      new(testhelpers.MockUserRepository),
		txRepo:        new(testhelpers.MockTransactionRepository),
		publisher:     new(testhelpers.MockEventPublisher),
	}
	ledger := NewLedgerService(m.userRepo, m.profileRepo, m.txRepo, testhelpers.NoopEventPublisher{}, config.NewTestConfig())
	return NewShopService(m.itemRepo, m.inventoryRepo, ledger, m.publisher), m
}

func TestShopService_Purchase_DebitsCashAndCreditsStack(t *testing.T) {
	ctx := context.Background()

	service, m := newShopServiceForTest()

	wheat := &entities.Item{ID: 3, Slug: "wheat-seed", Name: "Wheat seed", Kind: entities.ItemKindSeed, Price: 40, Currency: entities.CurrencyCash}
	m.itemRepo.On("GetBySlug", ctx, "wheat-seed").Return(wheat, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-120)).Return(int64(380), nil)
	m.txRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)
	m.inventoryRepo.On("AddItem", ctx, int64(123456), int64(3), int64(3), (*entities.StackData)(nil)).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.ItemPurchasedEvent")).Return()

	item, total, err := service.Purchase(ctx, 123456, "wheat-seed", 3)

	assert.NoError(t, err)
	assert.Equal(t, wheat, item)
	assert.Equal(t, int64(120), total)
	m.inventoryRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestShopService_Purchase_PremiumItemSpendsDiamonds(t *testing.T) {
	ctx := context.Background()

	service, m := newShopServiceForTest()

	crown := &entities.Item{ID: 9, Slug: "crown", Kind: entities.ItemKindMisc, Price: 5, Currency: entities.CurrencyDiamonds}
	m.itemRepo.On("GetBySlug", ctx, "crown").Return(crown, nil)
	m.userRepo.On("AdjustDiamonds", ctx, int64(123456), int64(-5)).Return(int64(12), nil)
	m.txRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)
	m.inventoryRepo.On("AddItem", ctx, int64(123456), int64(9), int64(1), (*entities.StackData)(nil)).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.ItemPurchasedEvent")).Return()

	_, total, err := service.Purchase(ctx, 123456, "crown", 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	m.userRepo.AssertExpectations(t)
	m.profileRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShopService_Purchase_ToolStartsAtFullDurability(t *testing.T) {
	ctx := context.Background()

	service, m := newShopServiceForTest()

	hoe := &entities.Item{ID: 7, Slug: "hoe", Kind: entities.ItemKindTool, Price: 100, Currency: entities.CurrencyCash}
	m.itemRepo.On("GetBySlug", ctx, "hoe").Return(hoe, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-100)).Return(int64(400), nil)
	m.txRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)
	m.inventoryRepo.On("AddItem", ctx, int64(123456), int64(7), int64(1), mock.MatchedBy(func(data *entities.StackData) bool {
		return data != nil && data.Durability != nil && *data.Durability == 100
	})).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.ItemPurchasedEvent")).Return()

	_, _, err := service.Purchase(ctx, 123456, "hoe", 1)

	assert.NoError(t, err)
	m.inventoryRepo.AssertExpectations(t)
}

func TestShopService_Purchase_InsufficientFundsLeavesInventoryAlone(t *testing.T) {
	ctx := context.Background()

	service, m := newShopServiceForTest()

	wheat := &entities.Item{ID: 3, Slug: "wheat-seed", Kind: entities.ItemKindSeed, Price: 40, Currency: entities.CurrencyCash}
	m.itemRepo.On("GetBySlug", ctx, "wheat-seed").Return(wheat, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-40)).
		Return(int64(0), entities.ErrInsufficientFunds)
	m.txRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)

	_, _, err := service.Purchase(ctx, 123456, "wheat-seed", 1)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	m.inventoryRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestShopService_Purchase_UnknownItem(t *testing.T) {
	ctx := context.Background()

	service, m := newShopServiceForTest()

	m.itemRepo.On("GetBySlug", ctx, "ray-gun").Return((*entities.Item)(nil), nil)

	_, _, err := service.Purchase(ctx, 123456, "ray-gun", 1)

	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestShopService_Purchase_RejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()

	service, _ := newShopServiceForTest()

	_, _, err := service.Purchase(ctx, 123456, "wheat-seed", 0)
	assert.Error(t, err)
}

func TestInventoryService_AddItem_RejectsUnknownItem(t *testing.T) {
	ctx := context.Background()

	itemRepo := new(testhelpers.MockItemRepository)
	inventoryRepo := new(testhelpers.MockInventoryRepository)
	service := NewInventoryService(inventoryRepo, itemRepo)

	itemRepo.On("GetByID", ctx, int64(99)).Return((*entities.Item)(nil), nil)

	err := service.AddItem(ctx, 123456, 99, 1, nil)

	assert.ErrorIs(t, err, entities.ErrNotFound)
	inventoryRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryService_RemoveItem_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()

	service := NewInventoryService(new(testhelpers.MockInventoryRepository), new(testhelpers.MockItemRepository))

	err := service.RemoveItem(ctx, 123456, 3, 0)
	assert.Error(t, err)
}
