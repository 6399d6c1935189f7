package interfaces

import (
	"context"
	"time"

	"tycoon/domain/entities"
	"tycoon/domain/games"
)

// LedgerService owns balance reads and atomic mutations.
type LedgerService interface {
	// Balances auto-vivifies the user and profile, then returns a
	// snapshot of every balance field.
	Balances(ctx context.Context, discordID int64, username string) (*entities.Balances, error)

	// Adjust applies a signed delta to one balance field. The check and
	// update are one atomic store-side statement.
	Adjust(ctx context.Context, discordID int64, field entities.BalanceField, delta int64) (int64, error)

	// AdjustAudited is Adjust plus an appended transaction record, for
	// flows that opt in to the audit ledger.
	AdjustAudited(ctx context.Context, discordID int64, field entities.BalanceField, delta int64, txType entities.TransactionType, metadata map[string]any) (int64, error)

	// Transfer moves cash between users as one all-or-nothing unit: if
	// the debit fails the credit never happens.
	Transfer(ctx context.Context, fromID, toID, amount int64) error

	// Deposit moves cash into the bank, charging the configured fee.
	// Returns the amount banked and the fee taken.
	Deposit(ctx context.Context, discordID, amount int64) (banked, fee int64, err error)

	// Withdraw moves bank funds back to cash.
	Withdraw(ctx context.Context, discordID, amount int64) (int64, error)
}

// InventoryService owns item stacks.
type InventoryService interface {
	AddItem(ctx context.Context, discordID, itemID, amount int64, data *entities.StackData) error
	RemoveItem(ctx context.Context, discordID, itemID, amount int64) error
	FindStack(ctx context.Context, discordID, itemID int64) (*entities.InventoryStack, error)
	ListStacks(ctx context.Context, discordID int64) ([]*entities.InventoryStack, error)
}

// CooldownService gates repeatable actions.
type CooldownService interface {
	// CheckAndConsume reports readiness and, when ready, consumes the
	// cooldown in the same atomic operation.
	CheckAndConsume(ctx context.Context, discordID int64, key entities.CooldownKey, duration time.Duration) (entities.CooldownStatus, error)
}

// WorkService owns jobs and recurring income.
type WorkService interface {
	ListJobs(ctx context.Context) ([]*entities.Job, error)
	AssignJob(ctx context.Context, discordID, jobID int64) (*entities.Job, error)
	Resign(ctx context.Context, discordID int64) error

	// Work runs one cooldown-gated shift: consumes energy, pays salary.
	Work(ctx context.Context, discordID int64) (*entities.WorkResult, error)

	// Daily grants the configured daily amount once per 24h window.
	Daily(ctx context.Context, discordID int64) (int64, error)

	// Hire and Fire manage the profile's employment slots.
	Hire(ctx context.Context, employerID, employeeID int64) error
	Fire(ctx context.Context, employerID, employeeID int64) error
}

// CrimeService owns illegal income and its consequences.
type CrimeService interface {
	Crime(ctx context.Context, discordID int64) (*entities.CrimeResult, error)
	Rob(ctx context.Context, robberID, victimID int64) (*entities.RobResult, error)

	// Launder converts dirty cash to clean cash at the configured fee.
	Launder(ctx context.Context, discordID, amount int64) (clean, fee int64, err error)
}

// FarmService owns the 3x3 plant grid.
type FarmService interface {
	// View recomputes growth from elapsed time and returns the plots.
	View(ctx context.Context, discordID int64) ([]*entities.FarmPlot, error)

	// Plant consumes one seed from inventory and occupies the slot.
	Plant(ctx context.Context, discordID int64, slot int, seedSlug string) (*entities.Item, error)

	// Harvest clears every ripe plot and credits its yield.
	Harvest(ctx context.Context, discordID int64) (*entities.HarvestResult, error)
}

// ShopService sells catalog items.
type ShopService interface {
	Catalog(ctx context.Context) ([]*entities.Item, error)

	// Purchase debits the item's currency and credits the stack as one
	// transactional unit.
	Purchase(ctx context.Context, discordID int64, slug string, quantity int64) (*entities.Item, int64, error)
}

// AnimalService owns husbandry: feeding, diseases, vaccination.
type AnimalService interface {
	Buy(ctx context.Context, discordID int64, species, name string) (*entities.Animal, error)
	List(ctx context.Context, discordID int64) ([]*entities.Animal, error)

	// Feed consumes a ration and raises energy. Unvaccinated animals
	// risk a weighted disease roll. Returns the fed animal and whether
	// it got sick this feeding.
	Feed(ctx context.Context, discordID int64, name string) (*entities.Animal, bool, error)

	Vaccinate(ctx context.Context, discordID int64, name string) error

	// Treat cures a sick animal at the configured vet fee.
	Treat(ctx context.Context, discordID int64, name string) error
}

// GamesService owns games of chance. Bets are debited before the game
// resolves and payouts credited at settlement, both as atomic deltas.
type GamesService interface {
	// Coinflip resolves a single flip against the player's pick.
	Coinflip(ctx context.Context, discordID, bet int64, pick entities.CoinSide) (*entities.GameResult, error)

	// RPS resolves one throw against a uniformly random house move.
	RPS(ctx context.Context, discordID, bet int64, move entities.RPSMove) (*entities.GameResult, error)

	// StartBlackjack debits the bet and deals the opening hands. The
	// returned game is settled with SettleBlackjack once finished.
	StartBlackjack(ctx context.Context, discordID, bet int64) (*games.Blackjack, error)

	// SettleBlackjack credits the payout for a finished hand and records
	// the audit entry.
	SettleBlackjack(ctx context.Context, discordID int64, game *games.Blackjack) (*entities.GameResult, error)
}

// ModerationService owns arrests and blacklists.
type ModerationService interface {
	Arrest(ctx context.Context, discordID int64, duration time.Duration) (time.Time, error)
	Release(ctx context.Context, discordID int64) error
	Blacklist(ctx context.Context, targetID, moderatorID int64, reason string) error
	Unblacklist(ctx context.Context, targetID int64) error
	IsBlacklisted(ctx context.Context, discordID int64) (bool, error)
}
