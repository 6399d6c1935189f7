package services

import (
	"context"
	"errors"
	"fmt"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
)

// Catalog slugs the husbandry flows consume.
const (
	rationSlug  = "ration"
	vaccineSlug = "vaccine"
)

type animalService struct {
	animalRepo    interfaces.AnimalRepository
	itemRepo      interfaces.ItemRepository
	inventoryRepo interfaces.InventoryRepository
	ledger        interfaces.LedgerService
	picker        *random.Picker
	cfg           *config.Config
}

// NewAnimalService creates a new animal service.
func NewAnimalService(animalRepo interfaces.AnimalRepository, itemRepo interfaces.ItemRepository, inventoryRepo interfaces.InventoryRepository, ledger interfaces.LedgerService, picker *random.Picker, cfg *config.Config) interfaces.AnimalService {
	return &animalService{
		animalRepo:    animalRepo,
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		ledger:        ledger,
		picker:        picker,
		cfg:           cfg,
	}
}

// speciesPrices is the fixed purchase table for livestock.
var speciesPrices = map[string]int64{
	"chicken": 300,
	"pig":     800,
	"cow":     1500,
	"horse":   4000,
}

// diseaseTable weights which illness an unvaccinated animal contracts.
var diseaseTable = []random.Weighted[entities.Disease]{
	{Value: entities.DiseaseFlu, Weight: 60},
	{Value: entities.DiseaseParasite, Weight: 30},
	{Value: entities.DiseaseRabies, Weight: 10},
}

func (s *animalService) Buy(ctx context.Context, discordID int64, species, name string) (*entities.Animal, error) {
	price, ok := speciesPrices[species]
	if !ok {
		return nil, fmt.Errorf("species %q: %w", species, entities.ErrNotFound)
	}
	if name == "" {
		return nil, fmt.Errorf("animal name is required")
	}

	existing, err := s.animalRepo.GetByName(ctx, discordID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check animal name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("you already own an animal named %q: %w", name, entities.ErrInvalidState)
	}

	if _, err := s.ledger.Adjust(ctx, discordID, entities.BalanceCash, -price); err != nil {
		return nil, err
	}

	animal := &entities.Animal{
		DiscordID: discordID,
		Species:   species,
		Name:      name,
		Energy:    s.cfg.AnimalMaxEnergy / 2,
	}
	if err := s.animalRepo.Create(ctx, animal); err != nil {
		return nil, fmt.Errorf("failed to create animal: %w", err)
	}
	return animal, nil
}

func (s *animalService) List(ctx context.Context, discordID int64) ([]*entities.Animal, error) {
	return s.animalRepo.ListByOwner(ctx, discordID)
}

func (s *animalService) Feed(ctx context.Context, discordID int64, name string) (*entities.Animal, bool, error) {
	animal, err := s.getOwned(ctx, discordID, name)
	if err != nil {
		return nil, false, err
	}
	if animal.IsSick() {
		return nil, false, fmt.Errorf("%s is sick and refuses to eat: %w", animal.Name, entities.ErrInvalidState)
	}
	if animal.AtMaxEnergy(s.cfg.AnimalMaxEnergy) {
		return nil, false, fmt.Errorf("%s is already full: %w", animal.Name, entities.ErrInvalidState)
	}

	ration, err := s.requireItem(ctx, rationSlug)
	if err != nil {
		return nil, false, err
	}
	if err := s.inventoryRepo.RemoveItem(ctx, discordID, ration.ID, 1); err != nil {
		return nil, false, err
	}

	newEnergy, err := s.animalRepo.AdjustEnergy(ctx, animal.ID, s.cfg.AnimalFeedEnergy, s.cfg.AnimalMaxEnergy)
	if err != nil {
		return nil, false, fmt.Errorf("failed to feed animal: %w", err)
	}
	animal.Energy = newEnergy

	// Unvaccinated animals risk catching something with every meal.
	gotSick := false
	if !animal.Vaccinated && s.picker.Chance(s.cfg.DiseaseChance) {
		disease, _ := random.WeightedPick(s.picker, diseaseTable)
		if err := s.animalRepo.SetDisease(ctx, animal.ID, disease); err != nil {
			return nil, false, fmt.Errorf("failed to record disease: %w", err)
		}
		animal.Disease = disease
		gotSick = true
	}
	return animal, gotSick, nil
}

func (s *animalService) Vaccinate(ctx context.Context, discordID int64, name string) error {
	animal, err := s.getOwned(ctx, discordID, name)
	if err != nil {
		return err
	}
	if animal.Vaccinated {
		return fmt.Errorf("%s is already vaccinated: %w", animal.Name, entities.ErrInvalidState)
	}

	vaccine, err := s.requireItem(ctx, vaccineSlug)
	if err != nil {
		return err
	}
	if err := s.inventoryRepo.RemoveItem(ctx, discordID, vaccine.ID, 1); err != nil {
		return err
	}
	return s.animalRepo.SetVaccinated(ctx, animal.ID, true)
}

func (s *animalService) Treat(ctx context.Context, discordID int64, name string) error {
	animal, err := s.getOwned(ctx, discordID, name)
	if err != nil {
		return err
	}
	if !animal.IsSick() {
		return fmt.Errorf("%s is healthy: %w", animal.Name, entities.ErrInvalidState)
	}

	if _, err := s.ledger.Adjust(ctx, discordID, entities.BalanceCash, -s.cfg.VetFee); err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) {
			return fmt.Errorf("vet fee is %d: %w", s.cfg.VetFee, err)
		}
		return fmt.Errorf("failed to charge vet fee: %w", err)
	}
	return s.animalRepo.SetDisease(ctx, animal.ID, entities.DiseaseNone)
}

func (s *animalService) getOwned(ctx context.Context, discordID int64, name string) (*entities.Animal, error) {
	animal, err := s.animalRepo.GetByName(ctx, discordID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up animal %q: %w", name, err)
	}
	if animal == nil {
		return nil, fmt.Errorf("no animal named %q: %w", name, entities.ErrNotFound)
	}
	return animal, nil
}

func (s *animalService) requireItem(ctx context.Context, slug string) (*entities.Item, error) {
	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up item %q: %w", slug, err)
	}
	if item == nil {
		return nil, fmt.Errorf("item %q: %w", slug, entities.ErrNotFound)
	}
	return item, nil
}
