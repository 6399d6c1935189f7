package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/events"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
)

type crimeService struct {
	userRepo       interfaces.UserRepository
	profileRepo    interfaces.ProfileRepository
	ledger         interfaces.LedgerService
	cooldowns      interfaces.CooldownService
	eventPublisher interfaces.EventPublisher
	picker         *random.Picker
	cfg            *config.Config
}

// NewCrimeService creates a new crime service.
func NewCrimeService(userRepo interfaces.UserRepository, profileRepo interfaces.ProfileRepository, ledger interfaces.LedgerService, cooldowns interfaces.CooldownService, eventPublisher interfaces.EventPublisher, picker *random.Picker, cfg *config.Config) interfaces.CrimeService {
	return &crimeService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		ledger:         ledger,
		cooldowns:      cooldowns,
		eventPublisher: eventPublisher,
		picker:         picker,
		cfg:            cfg,
	}
}

// crimeTable weights the possible crime outcomes. Arrest is rare, a
// score is likelier than walking away empty-handed.
var crimeTable = []random.Weighted[entities.CrimeOutcome]{
	{Value: entities.CrimeOutcomeScore, Weight: 45},
	{Value: entities.CrimeOutcomeNothing, Weight: 25},
	{Value: entities.CrimeOutcomeFined, Weight: 20},
	{Value: entities.CrimeOutcomeArrested, Weight: 10},
}

func (s *crimeService) Crime(ctx context.Context, discordID int64) (*entities.CrimeResult, error) {
	if err := s.ensureAtLarge(ctx, discordID); err != nil {
		return nil, err
	}

	status, err := s.cooldowns.CheckAndConsume(ctx, discordID, entities.CooldownCrime, s.cfg.CrimeCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check crime cooldown: %w", err)
	}
	if !status.Ready {
		return nil, fmt.Errorf("laying low for another %s: %w", status.RetryAfter.Round(time.Second), entities.ErrInvalidState)
	}

	outcome, _ := random.WeightedPick(s.picker, crimeTable)
	result := &entities.CrimeResult{Outcome: outcome}

	switch outcome {
	case entities.CrimeOutcomeScore:
		gain := int64(s.picker.IntBetween(int(s.cfg.CrimeMinGain), int(s.cfg.CrimeMaxGain)))
		if _, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceDirty, gain, entities.TransactionTypeCrimeGain, nil); err != nil {
			return nil, fmt.Errorf("failed to credit crime gain: %w", err)
		}
		result.Amount = gain

	case entities.CrimeOutcomeNothing:
		// The attempt still consumed the cooldown.

	case entities.CrimeOutcomeFined:
		fine := s.cfg.CrimeFine
		_, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceCash, -fine, entities.TransactionTypeCrimeFine, nil)
		if err != nil && !errors.Is(err, entities.ErrInsufficientFunds) {
			return nil, fmt.Errorf("failed to apply fine: %w", err)
		}
		if errors.Is(err, entities.ErrInsufficientFunds) {
			// Broke offenders get arrested instead of fined.
			return s.arrest(ctx, discordID, result)
		}
		result.Amount = fine

	case entities.CrimeOutcomeArrested:
		return s.arrest(ctx, discordID, result)
	}

	return result, nil
}

func (s *crimeService) arrest(ctx context.Context, discordID int64, result *entities.CrimeResult) (*entities.CrimeResult, error) {
	until := time.Now().UTC().Add(s.cfg.ArrestDuration)
	if err := s.userRepo.SetArrestedUntil(ctx, discordID, &until); err != nil {
		return nil, fmt.Errorf("failed to arrest user: %w", err)
	}
	s.eventPublisher.Publish(events.UserArrestedEvent{DiscordID: discordID})
	result.Outcome = entities.CrimeOutcomeArrested
	result.ArrestedUntil = &until
	return result, nil
}

func (s *crimeService) Rob(ctx context.Context, robberID, victimID int64) (*entities.RobResult, error) {
	if robberID == victimID {
		return nil, fmt.Errorf("cannot rob yourself")
	}
	if err := s.ensureAtLarge(ctx, robberID); err != nil {
		return nil, err
	}

	status, err := s.cooldowns.CheckAndConsume(ctx, robberID, entities.CooldownRob, s.cfg.RobCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rob cooldown: %w", err)
	}
	if !status.Ready {
		return nil, fmt.Errorf("laying low for another %s: %w", status.RetryAfter.Round(time.Second), entities.ErrInvalidState)
	}

	victim, err := s.profileRepo.Get(ctx, victimID)
	if err != nil {
		return nil, fmt.Errorf("failed to get victim profile: %w", err)
	}
	if victim == nil || victim.Cash == 0 {
		return nil, fmt.Errorf("target has no cash on hand: %w", entities.ErrInvalidState)
	}

	if !s.picker.Chance(s.cfg.RobSuccessChance) {
		// Failed attempt: pay the fine, take the cooldown.
		fine := s.cfg.CrimeFine
		_, err := s.ledger.AdjustAudited(ctx, robberID, entities.BalanceCash, -fine, entities.TransactionTypeRobLoss, map[string]any{"victim": victimID})
		if err != nil && !errors.Is(err, entities.ErrInsufficientFunds) {
			return nil, fmt.Errorf("failed to apply robbery fine: %w", err)
		}
		return &entities.RobResult{Success: false, Amount: fine}, nil
	}

	// Cap the take at a configured share of the victim's visible cash.
	take := victim.Cash * int64(s.cfg.RobMaxSharePct) / 100
	if take < 1 {
		take = 1
	}
	take = int64(s.picker.IntBetween(1, int(take)))

	// The victim may already have spent the cash we just observed; the
	// atomic debit is the arbiter, not the read above.
	if _, err := s.ledger.AdjustAudited(ctx, victimID, entities.BalanceCash, -take, entities.TransactionTypeRobLoss, map[string]any{"robber": robberID}); err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) {
			return &entities.RobResult{Success: false}, nil
		}
		return nil, fmt.Errorf("failed to debit victim: %w", err)
	}
	if _, err := s.ledger.AdjustAudited(ctx, robberID, entities.BalanceDirty, take, entities.TransactionTypeRobGain, map[string]any{"victim": victimID}); err != nil {
		return nil, fmt.Errorf("failed to credit robber: %w", err)
	}

	return &entities.RobResult{Success: true, Amount: take}, nil
}

func (s *crimeService) Launder(ctx context.Context, discordID, amount int64) (int64, int64, error) {
	if amount <= 0 {
		return 0, 0, fmt.Errorf("launder amount must be positive")
	}

	fee := amount * int64(s.cfg.LaunderFeePercent) / 100
	clean := amount - fee

	if _, err := s.ledger.AdjustAudited(ctx, discordID, entities.BalanceDirty, -amount, entities.TransactionTypeLaunder, map[string]any{"fee": fee}); err != nil {
		return 0, 0, err
	}
	if clean > 0 {
		if _, err := s.ledger.Adjust(ctx, discordID, entities.BalanceCash, clean); err != nil {
			return 0, 0, fmt.Errorf("failed to credit laundered cash: %w", err)
		}
	}
	return clean, fee, nil
}

// ensureAtLarge rejects actions from users serving an arrest.
func (s *crimeService) ensureAtLarge(ctx context.Context, discordID int64) error {
	user, err := s.userRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil && user.IsArrested(time.Now().UTC()) {
		return fmt.Errorf("arrested for another %s: %w", user.ArrestRemaining(time.Now().UTC()).Round(time.Second), entities.ErrInvalidState)
	}
	return nil
}
