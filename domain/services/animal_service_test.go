package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
	"tycoon/domain/testhelpers"
)

type animalServiceMocks struct {
	animalRepo    *testhelpers.MockAnimalRepository
	itemRepo      *testhelpers.MockItemRepository
	inventoryRepo *testhelpers.MockInventoryRepository
	profileRepo   *testhelpers.MockProfileRepository
	userRepo      *testhelpers.MockUserRepository
	txRepo        *testhelpers.MockTransactionRepository
}

func newAnimalServiceForTest(src *fixedSource) (interfaces.AnimalService, *animalServiceMocks) {
	m := &animalServiceMocks{
		animalRepo:    new(testhelpers.MockAnimalRepository),
		itemRepo:      new(testhelpers.MockItemRepository),
		inventoryRepo: new(testhelpers.MockInventoryRepository),
		profileRepo:   new(testhelpers.MockProfileRepository),
		userRepo:      new(testhelpers.MockUserRepository),
		txRepo:        new(testhelpers.MockTransactionRepository),
	}
	cfg := config.NewTestConfig()
	ledger := NewLedgerService(m.userRepo, m.profileRepo, m.txRepo, testhelpers.NoopEventPublisher{}, cfg)
	return NewAnimalService(m.animalRepo, m.itemRepo, m.inventoryRepo, ledger, random.NewPicker(src), cfg), m
}

func TestAnimalService_Buy_ChargesSpeciesPrice(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").Return((*entities.Animal)(nil), nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-300)).Return(int64(200), nil)
	m.animalRepo.On("Create", ctx, mock.MatchedBy(func(a *entities.Animal) bool {
		return a.Species == "chicken" && a.Name == "Clucky" && a.Energy == 50
	})).Return(nil)

	animal, err := service.Buy(ctx, 123456, "chicken", "Clucky")

	assert.NoError(t, err)
	assert.Equal(t, "Clucky", animal.Name)
	m.animalRepo.AssertExpectations(t)
}

func TestAnimalService_Buy_RejectsDuplicateName(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{Name: "Clucky"}, nil)

	_, err := service.Buy(ctx, 123456, "chicken", "Clucky")

	assert.ErrorIs(t, err, entities.ErrInvalidState)
	m.profileRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnimalService_Buy_UnknownSpecies(t *testing.T) {
	ctx := context.Background()

	service, _ := newAnimalServiceForTest(&fixedSource{})

	_, err := service.Buy(ctx, 123456, "dragon", "Smauglet")

	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestAnimalService_Feed_ConsumesRationAndRestoresEnergy(t *testing.T) {
	ctx := context.Background()

	// 0.9 stays above the disease chance, so the meal is safe.
	service, m := newAnimalServiceForTest(&fixedSource{floats: []float64{0.9}})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Energy: 40}, nil)
	m.itemRepo.On("GetBySlug", ctx, "ration").
		Return(&entities.Item{ID: 11, Slug: "ration", Kind: entities.ItemKindFood}, nil)
	m.inventoryRepo.On("RemoveItem", ctx, int64(123456), int64(11), int64(1)).Return(nil)
	m.animalRepo.On("AdjustEnergy", ctx, int64(5), 25, 100).Return(65, nil)

	animal, gotSick, err := service.Feed(ctx, 123456, "Clucky")

	assert.NoError(t, err)
	assert.False(t, gotSick)
	assert.Equal(t, 65, animal.Energy)
	m.animalRepo.AssertNotCalled(t, "SetDisease", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnimalService_Feed_UnvaccinatedAnimalCanGetSick(t *testing.T) {
	ctx := context.Background()

	// 0.0 wins the disease roll and then picks the first table entry.
	service, m := newAnimalServiceForTest(&fixedSource{floats: []float64{0.0, 0.0}})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Energy: 40}, nil)
	m.itemRepo.On("GetBySlug", ctx, "ration").
		Return(&entities.Item{ID: 11, Slug: "ration"}, nil)
	m.inventoryRepo.On("RemoveItem", ctx, int64(123456), int64(11), int64(1)).Return(nil)
	m.animalRepo.On("AdjustEnergy", ctx, int64(5), 25, 100).Return(65, nil)
	m.animalRepo.On("SetDisease", ctx, int64(5), entities.DiseaseFlu).Return(nil)

	animal, gotSick, err := service.Feed(ctx, 123456, "Clucky")

	assert.NoError(t, err)
	assert.True(t, gotSick)
	assert.Equal(t, entities.DiseaseFlu, animal.Disease)
	m.animalRepo.AssertExpectations(t)
}

func TestAnimalService_Feed_VaccinatedAnimalSkipsDiseaseRoll(t *testing.T) {
	ctx := context.Background()

	// A losing roll would infect; vaccination must never consume it.
	service, m := newAnimalServiceForTest(&fixedSource{floats: []float64{0.0}})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Energy: 40, Vaccinated: true}, nil)
	m.itemRepo.On("GetBySlug", ctx, "ration").
		Return(&entities.Item{ID: 11, Slug: "ration"}, nil)
	m.inventoryRepo.On("RemoveItem", ctx, int64(123456), int64(11), int64(1)).Return(nil)
	m.animalRepo.On("AdjustEnergy", ctx, int64(5), 25, 100).Return(65, nil)

	_, gotSick, err := service.Feed(ctx, 123456, "Clucky")

	assert.NoError(t, err)
	assert.False(t, gotSick)
	m.animalRepo.AssertNotCalled(t, "SetDisease", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnimalService_Feed_SickAnimalRefuses(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Energy: 40, Disease: entities.DiseaseFlu}, nil)

	_, _, err := service.Feed(ctx, 123456, "Clucky")

	assert.ErrorIs(t, err, entities.ErrInvalidState)
	m.inventoryRepo.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnimalService_Feed_FullAnimalRejectsMeal(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Energy: 100}, nil)

	_, _, err := service.Feed(ctx, 123456, "Clucky")

	assert.ErrorIs(t, err, entities.ErrInvalidState)
}

func TestAnimalService_Vaccinate_ConsumesVaccine(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky"}, nil)
	m.itemRepo.On("GetBySlug", ctx, "vaccine").
		Return(&entities.Item{ID: 12, Slug: "vaccine", Kind: entities.ItemKindVaccine}, nil)
	m.inventoryRepo.On("RemoveItem", ctx, int64(123456), int64(12), int64(1)).Return(nil)
	m.animalRepo.On("SetVaccinated", ctx, int64(5), true).Return(nil)

	err := service.Vaccinate(ctx, 123456, "Clucky")

	assert.NoError(t, err)
	m.animalRepo.AssertExpectations(t)
}

func TestAnimalService_Vaccinate_AlreadyVaccinated(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Vaccinated: true}, nil)

	err := service.Vaccinate(ctx, 123456, "Clucky")

	assert.ErrorIs(t, err, entities.ErrInvalidState)
}

func TestAnimalService_Treat_ChargesVetFeeAndCures(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Disease: entities.DiseaseFlu}, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-200)).Return(int64(300), nil)
	m.animalRepo.On("SetDisease", ctx, int64(5), entities.DiseaseNone).Return(nil)

	err := service.Treat(ctx, 123456, "Clucky")

	assert.NoError(t, err)
	m.animalRepo.AssertExpectations(t)
}

func TestAnimalService_Treat_BrokeOwnerKeepsSickAnimal(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky", Disease: entities.DiseaseFlu}, nil)
	m.profileRepo.On("AdjustBalance", ctx, int64(123456), entities.BalanceCash, int64(-200)).
		Return(int64(0), entities.ErrInsufficientFunds)

	err := service.Treat(ctx, 123456, "Clucky")

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	m.animalRepo.AssertNotCalled(t, "SetDisease", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnimalService_Treat_HealthyAnimal(t *testing.T) {
	ctx := context.Background()

	service, m := newAnimalServiceForTest(&fixedSource{})

	m.animalRepo.On("GetByName", ctx, int64(123456), "Clucky").
		Return(&entities.Animal{ID: 5, Name: "Clucky"}, nil)

	err := service.Treat(ctx, 123456, "Clucky")

	assert.ErrorIs(t, err, entities.ErrInvalidState)
}
