package services

import (
	"context"
	"fmt"
	"time"

	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
)

type farmService struct {
	farmRepo      interfaces.FarmRepository
	itemRepo      interfaces.ItemRepository
	inventoryRepo interfaces.InventoryRepository
}

// NewFarmService creates a new farm service.
func NewFarmService(farmRepo interfaces.FarmRepository, itemRepo interfaces.ItemRepository, inventoryRepo interfaces.InventoryRepository) interfaces.FarmService {
	return &farmService{
		farmRepo:      farmRepo,
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
	}
}

// View recomputes growth before reading so the caller always sees
// up-to-date percentages even between scheduler passes.
func (s *farmService) View(ctx context.Context, discordID int64) ([]*entities.FarmPlot, error) {
	if _, err := s.farmRepo.RecomputeGrowth(ctx, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to recompute growth: %w", err)
	}
	return s.farmRepo.ListPlots(ctx, discordID)
}

func (s *farmService) Plant(ctx context.Context, discordID int64, slot int, seedSlug string) (*entities.Item, error) {
	if slot < 0 || slot >= entities.FarmSize {
		return nil, fmt.Errorf("slot must be within [0, %d)", entities.FarmSize)
	}

	seed, err := s.itemRepo.GetBySlug(ctx, seedSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up seed %q: %w", seedSlug, err)
	}
	if seed == nil {
		return nil, fmt.Errorf("seed %q: %w", seedSlug, entities.ErrNotFound)
	}
	if !seed.IsPlantable() {
		return nil, fmt.Errorf("%s is not plantable: %w", seed.Name, entities.ErrInvalidState)
	}

	plots, err := s.farmRepo.ListPlots(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", err)
	}
	for _, p := range plots {
		if p.Slot == slot {
			return nil, fmt.Errorf("plot %d is already planted: %w", slot, entities.ErrInvalidState)
		}
	}

	// Consume the seed first: the atomic decrement is what prevents
	// planting more seeds than owned under concurrent commands.
	if err := s.inventoryRepo.RemoveItem(ctx, discordID, seed.ID, 1); err != nil {
		return nil, err
	}
	if err := s.farmRepo.Plant(ctx, discordID, slot, seed, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to plant: %w", err)
	}
	return seed, nil
}

// Harvest clears every ripe plot and credits the corresponding crop
// stacks. Unripe plots stay untouched; harvesting with nothing ripe is
// an invalid state the caller reports to the user.
func (s *farmService) Harvest(ctx context.Context, discordID int64) (*entities.HarvestResult, error) {
	plots, err := s.View(ctx, discordID)
	if err != nil {
		return nil, err
	}

	var ripeIDs []int64
	yields := make(map[int64]int64)
	for _, p := range plots {
		if !p.IsRipe() {
			continue
		}
		seed, err := s.itemRepo.GetByID(ctx, p.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up planted item %d: %w", p.ItemID, err)
		}
		if seed == nil || seed.YieldItemID == nil {
			return nil, fmt.Errorf("planted item %d has no yield: %w", p.ItemID, entities.ErrNotFound)
		}
		ripeIDs = append(ripeIDs, p.ID)
		yields[*seed.YieldItemID]++
	}

	if len(ripeIDs) == 0 {
		return nil, fmt.Errorf("nothing is ripe yet: %w", entities.ErrInvalidState)
	}

	for itemID, amount := range yields {
		if err := s.inventoryRepo.AddItem(ctx, discordID, itemID, amount, nil); err != nil {
			return nil, fmt.Errorf("failed to credit harvest: %w", err)
		}
	}
	if err := s.farmRepo.ClearPlots(ctx, ripeIDs); err != nil {
		return nil, fmt.Errorf("failed to clear harvested plots: %w", err)
	}

	return &entities.HarvestResult{Harvested: len(ripeIDs), Yields: yields}, nil
}
