package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"tycoon/config"
	"tycoon/database"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
	"tycoon/repository"
)

// Scheduler runs the recurring maintenance jobs: crop growth, energy
// regeneration, arrest expiry and the bank fee sweep.
type Scheduler struct {
	cron       *cron.Cron
	db         *database.DB
	uowFactory interfaces.UnitOfWorkFactory
	cfg        *config.Config
}

func NewScheduler(db *database.DB, uowFactory interfaces.UnitOfWorkFactory, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		db:         db,
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// Start registers the maintenance jobs and begins running them on
// their configured schedules.
func (s *Scheduler) Start() error {
	entries := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
	}{
		{"crop growth", s.cfg.GrowthCronSpec, s.recomputeGrowth},
		{"energy regen", s.cfg.EnergyRegenCronSpec, s.regenerateEnergy},
		{"arrest expiry", s.cfg.ArrestExpiryCron, s.clearExpiredArrests},
		{"bank fees", s.cfg.BankFeeCronSpec, s.sweepBankFees},
	}
	for _, entry := range entries {
		entry := entry
		_, err := s.cron.AddFunc(entry.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := entry.run(ctx); err != nil {
				log.WithError(err).Errorf("Scheduled job %q failed", entry.name)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %q with spec %q: %w", entry.name, entry.spec, err)
		}
	}

	s.cron.Start()
	log.Info("Scheduler started")
	return nil
}

// Stop halts the schedule and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Scheduler stopped")
}

// guildIDs enumerates every guild with at least one profile.
func (s *Scheduler) guildIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.Query(ctx, "SELECT DISTINCT guild_id FROM guild_profiles")
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan guild ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Scheduler) recomputeGrowth(ctx context.Context) error {
	guilds, err := s.guildIDs(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, guildID := range guilds {
		farms := repository.NewFarmRepository(s.db, guildID)
		advanced, err := farms.RecomputeGrowth(ctx, now)
		if err != nil {
			return fmt.Errorf("guild %d: %w", guildID, err)
		}
		if advanced > 0 {
			log.WithFields(log.Fields{"guild_id": guildID, "plots": advanced}).Debug("Advanced crop growth")
		}
	}
	return nil
}

func (s *Scheduler) regenerateEnergy(ctx context.Context) error {
	guilds, err := s.guildIDs(ctx)
	if err != nil {
		return err
	}
	for _, guildID := range guilds {
		profiles := repository.NewProfileRepository(s.db, guildID, s.cfg.StartingBalance, s.cfg.MaxEnergy)
		updated, err := profiles.RegenerateEnergy(ctx, s.cfg.EnergyRegen, s.cfg.MaxEnergy)
		if err != nil {
			return fmt.Errorf("guild %d: %w", guildID, err)
		}
		if updated > 0 {
			log.WithFields(log.Fields{"guild_id": guildID, "profiles": updated}).Debug("Regenerated energy")
		}
	}
	return nil
}

func (s *Scheduler) clearExpiredArrests(ctx context.Context) error {
	users := repository.NewUserRepository(s.db)
	released, err := users.ClearExpiredArrests(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if released > 0 {
		log.WithField("released", released).Info("Cleared expired arrests")
	}
	return nil
}

func (s *Scheduler) sweepBankFees(ctx context.Context) error {
	guilds, err := s.guildIDs(ctx)
	if err != nil {
		return err
	}
	for _, guildID := range guilds {
		if err := s.sweepGuildFees(ctx, guildID); err != nil {
			return fmt.Errorf("guild %d: %w", guildID, err)
		}
	}
	return nil
}

// sweepGuildFees charges one guild's fees and records an audit entry
// per charged profile, committed together.
func (s *Scheduler) sweepGuildFees(ctx context.Context, guildID int64) error {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	swept, err := uow.ProfileRepository().SweepBankFees(ctx, s.cfg.BankFeePercent)
	if err != nil {
		return err
	}
	for _, fee := range swept {
		record := &entities.Transaction{
			DiscordID: fee.DiscordID,
			Type:      entities.TransactionTypeBankFee,
			Status:    entities.TransactionStatusCompleted,
			Amount:    fee.Amount,
			Metadata:  map[string]any{"percent": s.cfg.BankFeePercent},
		}
		if err := uow.TransactionRepository().Record(ctx, record); err != nil {
			return err
		}
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	if len(swept) > 0 {
		log.WithFields(log.Fields{"guild_id": guildID, "accounts": len(swept)}).Info("Swept bank fees")
	}
	return nil
}
