package services

import (
	"context"
	"fmt"

	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
)

type inventoryService struct {
	inventoryRepo interfaces.InventoryRepository
	itemRepo      interfaces.ItemRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo interfaces.InventoryRepository, itemRepo interfaces.ItemRepository) interfaces.InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
	}
}

func (s *inventoryService) AddItem(ctx context.Context, discordID, itemID, amount int64, data *entities.StackData) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	// Reject unknown catalog references up front.
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to look up item %d: %w", itemID, err)
	}
	if item == nil {
		return fmt.Errorf("item %d: %w", itemID, entities.ErrNotFound)
	}
	return s.inventoryRepo.AddItem(ctx, discordID, itemID, amount, data)
}

func (s *inventoryService) RemoveItem(ctx context.Context, discordID, itemID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return s.inventoryRepo.RemoveItem(ctx, discordID, itemID, amount)
}

func (s *inventoryService) FindStack(ctx context.Context, discordID, itemID int64) (*entities.InventoryStack, error) {
	return s.inventoryRepo.FindStack(ctx, discordID, itemID)
}

func (s *inventoryService) ListStacks(ctx context.Context, discordID int64) ([]*entities.InventoryStack, error) {
	return s.inventoryRepo.ListStacks(ctx, discordID)
}
