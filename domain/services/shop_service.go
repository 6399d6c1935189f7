package services

import (
	"context"
	"fmt"

	"tycoon/domain/entities"
	"tycoon/domain/events"
	"tycoon/domain/interfaces"
)

type shopService struct {
	itemRepo       interfaces.ItemRepository
	inventoryRepo  interfaces.InventoryRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
}

// NewShopService creates a new shop service. Repositories must come from
// one unit of work: the debit and the stack credit commit together or
// not at all.
func NewShopService(itemRepo interfaces.ItemRepository, inventoryRepo interfaces.InventoryRepository, ledger interfaces.LedgerService, eventPublisher interfaces.EventPublisher) interfaces.ShopService {
	return &shopService{
		itemRepo:       itemRepo,
		inventoryRepo:  inventoryRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
	}
}

func (s *shopService) Catalog(ctx context.Context) ([]*entities.Item, error) {
	return s.itemRepo.List(ctx)
}

func (s *shopService) Purchase(ctx context.Context, discordID int64, slug string, quantity int64) (*entities.Item, int64, error) {
	if quantity <= 0 {
		return nil, 0, fmt.Errorf("quantity must be positive")
	}

	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to look up item %q: %w", slug, err)
	}
	if item == nil {
		return nil, 0, fmt.Errorf("item %q: %w", slug, entities.ErrNotFound)
	}

	total := item.Price * quantity
	field := entities.BalanceCash
	if item.IsPremium() {
		field = entities.BalanceDiamonds
	}

	if _, err := s.ledger.AdjustAudited(ctx, discordID, field, -total, entities.TransactionTypePurchase, map[string]any{
		"item":     item.Slug,
		"quantity": quantity,
	}); err != nil {
		return nil, 0, err
	}

	var data *entities.StackData
	if item.Kind == entities.ItemKindTool {
		durability := 100
		data = &entities.StackData{Durability: &durability}
	}
	if err := s.inventoryRepo.AddItem(ctx, discordID, item.ID, quantity, data); err != nil {
		return nil, 0, fmt.Errorf("failed to credit purchased stack: %w", err)
	}

	s.eventPublisher.Publish(events.ItemPurchasedEvent{
		DiscordID: discordID,
		ItemID:    item.ID,
		Amount:    quantity,
	})
	return item, total, nil
}
