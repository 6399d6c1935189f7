package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tycoon/domain/entities"
	"tycoon/domain/events"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.User, bool, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entities.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) AdjustDiamonds(ctx context.Context, discordID int64, delta int64) (int64, error) {
	args := m.Called(ctx, discordID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SetArrestedUntil(ctx context.Context, discordID int64, until *time.Time) error {
	args := m.Called(ctx, discordID, until)
	return args.Error(0)
}

func (m *MockUserRepository) ClearExpiredArrests(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.GuildProfile, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildProfile), args.Error(1)
}

func (m *MockProfileRepository) Get(ctx context.Context, discordID int64) (*entities.GuildProfile, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildProfile), args.Error(1)
}

func (m *MockProfileRepository) AdjustBalance(ctx context.Context, discordID int64, field entities.BalanceField, delta int64) (int64, error) {
	args := m.Called(ctx, discordID, field, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) CheckAndConsumeCooldown(ctx context.Context, discordID int64, key entities.CooldownKey, duration time.Duration) (entities.CooldownStatus, error) {
	args := m.Called(ctx, discordID, key, duration)
	return args.Get(0).(entities.CooldownStatus), args.Error(1)
}

func (m *MockProfileRepository) AdjustEnergy(ctx context.Context, discordID int64, delta, max int) (int, error) {
	args := m.Called(ctx, discordID, delta, max)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) SetJob(ctx context.Context, discordID int64, jobID *int64) error {
	args := m.Called(ctx, discordID, jobID)
	return args.Error(0)
}

func (m *MockProfileRepository) SetEmployees(ctx context.Context, discordID int64, employees []entities.Employee) error {
	args := m.Called(ctx, discordID, employees)
	return args.Error(0)
}

func (m *MockProfileRepository) SetVaccinatedAt(ctx context.Context, discordID int64, at time.Time) error {
	args := m.Called(ctx, discordID, at)
	return args.Error(0)
}

func (m *MockProfileRepository) RegenerateEnergy(ctx context.Context, delta, max int) (int64, error) {
	args := m.Called(ctx, delta, max)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) SweepBankFees(ctx context.Context, feePercent int) ([]entities.BankFeeSweep, error) {
	args := m.Called(ctx, feePercent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BankFeeSweep), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) AddItem(ctx context.Context, discordID, itemID, amount int64, data *entities.StackData) error {
	args := m.Called(ctx, discordID, itemID, amount, data)
	return args.Error(0)
}

func (m *MockInventoryRepository) RemoveItem(ctx context.Context, discordID, itemID, amount int64) error {
	args := m.Called(ctx, discordID, itemID, amount)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindStack(ctx context.Context, discordID, itemID int64) (*entities.InventoryStack, error) {
	args := m.Called(ctx, discordID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InventoryStack), args.Error(1)
}

func (m *MockInventoryRepository) ListStacks(ctx context.Context, discordID int64) ([]*entities.InventoryStack, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryStack), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*entities.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemRepository) GetBySlug(ctx context.Context, slug string) (*entities.Item, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context) ([]*entities.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

func (m *MockItemRepository) ListByKind(ctx context.Context, kind entities.ItemKind) ([]*entities.Item, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

// MockJobRepository is a mock implementation of JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) GetByID(ctx context.Context, id int64) (*entities.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Job), args.Error(1)
}

func (m *MockJobRepository) List(ctx context.Context) ([]*entities.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Job), args.Error(1)
}

// MockFarmRepository is a mock implementation of FarmRepository
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) ListPlots(ctx context.Context, discordID int64) ([]*entities.FarmPlot, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FarmPlot), args.Error(1)
}

func (m *MockFarmRepository) Plant(ctx context.Context, discordID int64, slot int, item *entities.Item, at time.Time) error {
	args := m.Called(ctx, discordID, slot, item, at)
	return args.Error(0)
}

func (m *MockFarmRepository) ClearPlots(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockFarmRepository) RecomputeGrowth(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnimalRepository is a mock implementation of AnimalRepository
type MockAnimalRepository struct {
	mock.Mock
}

func (m *MockAnimalRepository) Create(ctx context.Context, animal *entities.Animal) error {
	args := m.Called(ctx, animal)
	return args.Error(0)
}

func (m *MockAnimalRepository) GetByID(ctx context.Context, id int64) (*entities.Animal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Animal), args.Error(1)
}

func (m *MockAnimalRepository) GetByName(ctx context.Context, discordID int64, name string) (*entities.Animal, error) {
	args := m.Called(ctx, discordID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Animal), args.Error(1)
}

func (m *MockAnimalRepository) ListByOwner(ctx context.Context, discordID int64) ([]*entities.Animal, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Animal), args.Error(1)
}

func (m *MockAnimalRepository) AdjustEnergy(ctx context.Context, id int64, delta, max int) (int, error) {
	args := m.Called(ctx, id, delta, max)
	return args.Int(0), args.Error(1)
}

func (m *MockAnimalRepository) SetDisease(ctx context.Context, id int64, disease entities.Disease) error {
	args := m.Called(ctx, id, disease)
	return args.Error(0)
}

func (m *MockAnimalRepository) SetVaccinated(ctx context.Context, id int64, vaccinated bool) error {
	args := m.Called(ctx, id, vaccinated)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Record(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

// MockBlacklistRepository is a mock implementation of BlacklistRepository
type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) Add(ctx context.Context, entry *entities.BlacklistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBlacklistRepository) Remove(ctx context.Context, discordID int64) error {
	args := m.Called(ctx, discordID)
	return args.Error(0)
}

func (m *MockBlacklistRepository) IsBlacklisted(ctx context.Context, discordID int64) (bool, error) {
	args := m.Called(ctx, discordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlacklistRepository) List(ctx context.Context) ([]*entities.BlacklistEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BlacklistEntry), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher that
// records every published event for assertions.
type MockEventPublisher struct {
	mock.Mock
	Events []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
	m.Events = append(m.Events, event)
}

// NoopEventPublisher swallows events for tests that do not assert on them.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(events.Event) {}
