package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/events"
	"tycoon/domain/interfaces"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	guildID          int64
	startingBalance  int64
	startingEnergy   int
	transactionalBus *events.TransactionalBus

	userRepo      interfaces.UserRepository
	profileRepo   interfaces.ProfileRepository
	inventoryRepo interfaces.InventoryRepository
	itemRepo      interfaces.ItemRepository
	jobRepo       interfaces.JobRepository
	farmRepo      interfaces.FarmRepository
	animalRepo    interfaces.AnimalRepository
	txRepo        interfaces.TransactionRepository
	blacklistRepo interfaces.BlacklistRepository
}

type unitOfWorkFactory struct {
	db              *database.DB
	eventBus        *events.Bus
	startingBalance int64
	startingEnergy  int
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. New profiles
// created inside a unit of work start with the given balance and energy.
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus, startingBalance int64, startingEnergy int) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:              db,
		eventBus:        eventBus,
		startingBalance: startingBalance,
		startingEnergy:  startingEnergy,
	}
}

func (f *unitOfWorkFactory) CreateForGuild(guildID int64) interfaces.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		guildID:          guildID,
		startingBalance:  f.startingBalance,
		startingEnergy:   f.startingEnergy,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction and guild scope
	u.userRepo = newUserRepositoryWithTx(tx)
	u.profileRepo = newProfileRepository(tx, u.guildID, u.startingBalance, u.startingEnergy)
	u.inventoryRepo = newInventoryRepository(tx, u.guildID)
	u.itemRepo = newItemRepositoryWithTx(tx)
	u.jobRepo = newJobRepositoryWithTx(tx)
	u.farmRepo = newFarmRepository(tx, u.guildID)
	u.animalRepo = newAnimalRepository(tx, u.guildID)
	u.txRepo = newTransactionRepository(tx, u.guildID)
	u.blacklistRepo = newBlacklistRepository(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// ProfileRepository returns the profile repository for this unit of work
func (u *unitOfWork) ProfileRepository() interfaces.ProfileRepository {
	if u.profileRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.profileRepo
}

// InventoryRepository returns the inventory repository for this unit of work
func (u *unitOfWork) InventoryRepository() interfaces.InventoryRepository {
	if u.inventoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.inventoryRepo
}

// ItemRepository returns the item repository for this unit of work
func (u *unitOfWork) ItemRepository() interfaces.ItemRepository {
	if u.itemRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.itemRepo
}

// JobRepository returns the job repository for this unit of work
func (u *unitOfWork) JobRepository() interfaces.JobRepository {
	if u.jobRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.jobRepo
}

// FarmRepository returns the farm repository for this unit of work
func (u *unitOfWork) FarmRepository() interfaces.FarmRepository {
	if u.farmRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.farmRepo
}

// AnimalRepository returns the animal repository for this unit of work
func (u *unitOfWork) AnimalRepository() interfaces.AnimalRepository {
	if u.animalRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.animalRepo
}

// TransactionRepository returns the transaction repository for this unit of work
func (u *unitOfWork) TransactionRepository() interfaces.TransactionRepository {
	if u.txRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.txRepo
}

// BlacklistRepository returns the blacklist repository for this unit of work
func (u *unitOfWork) BlacklistRepository() interfaces.BlacklistRepository {
	if u.blacklistRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.blacklistRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
