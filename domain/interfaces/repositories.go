package interfaces

import (
	"context"
	"time"

	"tycoon/domain/entities"
	"tycoon/domain/events"
)

// UserRepository defines data access for account-global user state.
type UserRepository interface {
	// GetOrCreate returns the user, creating the row on first reference.
	// The username is refreshed on every call. created reports whether
	// this call inserted the row.
	GetOrCreate(ctx context.Context, discordID int64, username string) (user *entities.User, created bool, err error)

	// GetByDiscordID retrieves a user, or nil when unknown.
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error)

	// AdjustDiamonds applies a signed delta to the premium balance as a
	// single atomic statement. Returns entities.ErrInsufficientFunds if
	// the result would be negative, leaving the balance unchanged.
	AdjustDiamonds(ctx context.Context, discordID int64, delta int64) (int64, error)

	// SetArrestedUntil stamps or clears (nil) the arrest expiry.
	SetArrestedUntil(ctx context.Context, discordID int64, until *time.Time) error

	// ClearExpiredArrests nils out arrest stamps that have passed and
	// returns how many rows were cleared.
	ClearExpiredArrests(ctx context.Context, now time.Time) (int64, error)
}

// ProfileRepository defines data access for per-(user, guild) economy
// state. Implementations are guild-scoped by the unit of work.
type ProfileRepository interface {
	// GetOrCreate returns the profile for the scoped guild, creating it
	// lazily on first interaction.
	GetOrCreate(ctx context.Context, discordID int64) (*entities.GuildProfile, error)

	// Get retrieves the profile, or nil when absent.
	Get(ctx context.Context, discordID int64) (*entities.GuildProfile, error)

	// AdjustBalance applies a signed delta to one monetary field as a
	// single atomic check-and-update. Returns the new value, or
	// entities.ErrInsufficientFunds when the result would be negative.
	// Only guild-scoped fields (cash, bank, dirty) are addressable.
	AdjustBalance(ctx context.Context, discordID int64, field entities.BalanceField, delta int64) (int64, error)

	// CheckAndConsumeCooldown atomically stamps "now" on the keyed
	// cooldown column iff the previous stamp is at least duration old.
	// Check and stamp are one statement, so two concurrent calls can
	// never both report ready.
	CheckAndConsumeCooldown(ctx context.Context, discordID int64, key entities.CooldownKey, duration time.Duration) (entities.CooldownStatus, error)

	// AdjustEnergy applies a delta clamped to [0, max] and returns the
	// new value. Returns entities.ErrInvalidState when the profile has
	// no energy left to spend (delta < 0 and energy already 0).
	AdjustEnergy(ctx context.Context, discordID int64, delta, max int) (int, error)

	// SetJob assigns (or clears, with nil) the profile's job.
	SetJob(ctx context.Context, discordID int64, jobID *int64) error

	// SetEmployees replaces the employment slots. The slice length is
	// capped at entities.EmployeeSlots.
	SetEmployees(ctx context.Context, discordID int64, employees []entities.Employee) error

	// SetVaccinatedAt records a vaccination.
	SetVaccinatedAt(ctx context.Context, discordID int64, at time.Time) error

	// RegenerateEnergy adds delta energy (capped at max) to every
	// profile in the scoped guild. Used by the scheduler.
	RegenerateEnergy(ctx context.Context, delta, max int) (int64, error)

	// SweepBankFees deducts feePercent of each positive bank balance in
	// the scoped guild and returns the charged profiles so the caller
	// can record audit entries.
	SweepBankFees(ctx context.Context, feePercent int) ([]entities.BankFeeSweep, error)
}

// InventoryRepository defines stack storage. Implementations are
// guild-scoped by the unit of work and enforce the one-stack-per-item
// invariant at the store boundary.
type InventoryRepository interface {
	// AddItem increments the stack for (owner, item), creating it when
	// absent. Concurrent adds accumulate; they never clobber. A non-nil
	// data replaces the per-stack payload.
	AddItem(ctx context.Context, discordID, itemID, amount int64, data *entities.StackData) error

	// RemoveItem decrements the stack, deleting it when it reaches
	// exactly zero. Returns entities.ErrInsufficientQuantity when the
	// stack is absent or smaller than amount; nothing changes then.
	RemoveItem(ctx context.Context, discordID, itemID, amount int64) error

	// FindStack returns the stack for (owner, item), or nil.
	FindStack(ctx context.Context, discordID, itemID int64) (*entities.InventoryStack, error)

	// ListStacks returns all stacks owned by the user in this guild.
	ListStacks(ctx context.Context, discordID int64) ([]*entities.InventoryStack, error)
}

// ItemRepository reads the item catalog.
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Item, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Item, error)
	List(ctx context.Context) ([]*entities.Item, error)
	ListByKind(ctx context.Context, kind entities.ItemKind) ([]*entities.Item, error)
}

// JobRepository reads the job catalog.
type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Job, error)
	List(ctx context.Context) ([]*entities.Job, error)
}

// FarmRepository defines plot storage for the fixed 3x3 grid.
type FarmRepository interface {
	// ListPlots returns the occupied plots for one farm, ordered by slot.
	ListPlots(ctx context.Context, discordID int64) ([]*entities.FarmPlot, error)

	// Plant occupies a slot. Fails if the slot already holds a plant.
	Plant(ctx context.Context, discordID int64, slot int, item *entities.Item, at time.Time) error

	// ClearPlots removes the given plots after harvest.
	ClearPlots(ctx context.Context, ids []int64) error

	// RecomputeGrowth advances growth_rate for every plot in the scoped
	// guild from elapsed time. Growth never decreases.
	RecomputeGrowth(ctx context.Context, now time.Time) (int64, error)
}

// AnimalRepository defines animal storage.
type AnimalRepository interface {
	Create(ctx context.Context, animal *entities.Animal) error
	GetByID(ctx context.Context, id int64) (*entities.Animal, error)
	GetByName(ctx context.Context, discordID int64, name string) (*entities.Animal, error)
	ListByOwner(ctx context.Context, discordID int64) ([]*entities.Animal, error)

	// AdjustEnergy applies a delta clamped to [0, max], atomically.
	// Returns entities.ErrInvalidState when feeding an animal already
	// at max.
	AdjustEnergy(ctx context.Context, id int64, delta, max int) (int, error)

	SetDisease(ctx context.Context, id int64, disease entities.Disease) error
	SetVaccinated(ctx context.Context, id int64, vaccinated bool) error
}

// TransactionRepository appends audit ledger entries.
type TransactionRepository interface {
	// Record appends one entry. Entries are never updated or deleted.
	Record(ctx context.Context, tx *entities.Transaction) error

	// ListByUser returns the most recent entries for a user.
	ListByUser(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error)
}

// BlacklistRepository defines per-guild command bans.
type BlacklistRepository interface {
	Add(ctx context.Context, entry *entities.BlacklistEntry) error
	Remove(ctx context.Context, discordID int64) error
	IsBlacklisted(ctx context.Context, discordID int64) (bool, error)
	List(ctx context.Context) ([]*entities.BlacklistEntry, error)
}

// EventPublisher publishes domain events, deferred until commit when
// running inside a unit of work.
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork groups repository mutations into one database transaction.
// Events published through EventBus are flushed only after Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	ProfileRepository() ProfileRepository
	InventoryRepository() InventoryRepository
	ItemRepository() ItemRepository
	JobRepository() JobRepository
	FarmRepository() FarmRepository
	AnimalRepository() AnimalRepository
	TransactionRepository() TransactionRepository
	BlacklistRepository() BlacklistRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates guild-scoped units of work.
type UnitOfWorkFactory interface {
	CreateForGuild(guildID int64) UnitOfWork
}
