package services

import (
	"context"
	"errors"
	"fmt"

	"tycoon/config"
	"tycoon/domain/entities"
	"tycoon/domain/events"
	"tycoon/domain/interfaces"
)

type ledgerService struct {
	userRepo       interfaces.UserRepository
	profileRepo    interfaces.ProfileRepository
	txRepo         interfaces.TransactionRepository
	eventPublisher interfaces.EventPublisher
	cfg            *config.Config
}

// NewLedgerService creates a new ledger service. Repositories must come
// from the same unit of work so composite operations commit atomically.
func NewLedgerService(userRepo interfaces.UserRepository, profileRepo interfaces.ProfileRepository, txRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher, cfg *config.Config) interfaces.LedgerService {
	return &ledgerService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		txRepo:         txRepo,
		eventPublisher: eventPublisher,
		cfg:            cfg,
	}
}

func (s *ledgerService) Balances(ctx context.Context, discordID int64, username string) (*entities.Balances, error) {
	user, created, err := s.userRepo.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}
	if created {
		s.eventPublisher.Publish(events.UserCreatedEvent{
			DiscordID: discordID,
			Username:  username,
		})
	}
	profile, err := s.profileRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile: %w", err)
	}

	return &entities.Balances{
		Cash:     profile.Cash,
		Bank:     profile.Bank,
		Dirty:    profile.Dirty,
		Diamonds: user.Diamonds,
		Energy:   profile.Energy,
	}, nil
}

// Adjust routes to the right store: diamonds are account-global, the
// rest are guild-scoped. Both paths are single-statement atomic deltas.
func (s *ledgerService) Adjust(ctx context.Context, discordID int64, field entities.BalanceField, delta int64) (int64, error) {
	if !field.Valid() {
		return 0, fmt.Errorf("unknown balance field %q", field)
	}
	if delta == 0 {
		return 0, fmt.Errorf("delta must be non-zero")
	}

	var newValue int64
	var err error
	if field == entities.BalanceDiamonds {
		newValue, err = s.userRepo.AdjustDiamonds(ctx, discordID, delta)
	} else {
		newValue, err = s.profileRepo.AdjustBalance(ctx, discordID, field, delta)
	}
	if err != nil {
		return 0, err
	}

	s.eventPublisher.Publish(events.BalanceChangeEvent{
		DiscordID:    discordID,
		Field:        field,
		ChangeAmount: delta,
		NewValue:     newValue,
	})
	return newValue, nil
}

func (s *ledgerService) AdjustAudited(ctx context.Context, discordID int64, field entities.BalanceField, delta int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	newValue, err := s.Adjust(ctx, discordID, field, delta)
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) {
			// Rejected attempts are still part of the audit trail.
			rejected := &entities.Transaction{
				DiscordID: discordID,
				Type:      txType,
				Status:    entities.TransactionStatusRejected,
				Amount:    delta,
				Metadata:  metadata,
			}
			if recErr := s.txRepo.Record(ctx, rejected); recErr != nil {
				return 0, fmt.Errorf("failed to record rejected transaction: %w", recErr)
			}
		}
		return 0, err
	}

	record := &entities.Transaction{
		DiscordID: discordID,
		Type:      txType,
		Status:    entities.TransactionStatusCompleted,
		Amount:    delta,
		Metadata:  metadata,
	}
	if err := s.txRepo.Record(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to record transaction: %w", err)
	}
	return newValue, nil
}

// Transfer debits then credits within the surrounding unit of work; a
// failed debit aborts before any credit is attempted.
func (s *ledgerService) Transfer(ctx context.Context, fromID, toID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}
	if fromID == toID {
		return fmt.Errorf("cannot transfer to yourself")
	}

	if _, err := s.AdjustAudited(ctx, fromID, entities.BalanceCash, -amount, entities.TransactionTypeTransferOut, map[string]any{"to": toID}); err != nil {
		return fmt.Errorf("failed to debit sender: %w", err)
	}
	if _, err := s.AdjustAudited(ctx, toID, entities.BalanceCash, amount, entities.TransactionTypeTransferIn, map[string]any{"from": fromID}); err != nil {
		return fmt.Errorf("failed to credit recipient: %w", err)
	}
	return nil
}

func (s *ledgerService) Deposit(ctx context.Context, discordID, amount int64) (int64, int64, error) {
	if amount <= 0 {
		return 0, 0, fmt.Errorf("deposit amount must be positive")
	}

	fee := amount * int64(s.cfg.BankFeePercent) / 100
	banked := amount - fee

	if _, err := s.Adjust(ctx, discordID, entities.BalanceCash, -amount); err != nil {
		return 0, 0, err
	}
	if _, err := s.Adjust(ctx, discordID, entities.BalanceBank, banked); err != nil {
		return 0, 0, fmt.Errorf("failed to credit bank: %w", err)
	}
	if fee > 0 {
		record := &entities.Transaction{
			DiscordID: discordID,
			Type:      entities.TransactionTypeBankFee,
			Status:    entities.TransactionStatusCompleted,
			Amount:    -fee,
		}
		if err := s.txRepo.Record(ctx, record); err != nil {
			return 0, 0, fmt.Errorf("failed to record bank fee: %w", err)
		}
	}
	return banked, fee, nil
}

func (s *ledgerService) Withdraw(ctx context.Context, discordID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("withdraw amount must be positive")
	}

	if _, err := s.Adjust(ctx, discordID, entities.BalanceBank, -amount); err != nil {
		return 0, err
	}
	newCash, err := s.Adjust(ctx, discordID, entities.BalanceCash, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit cash: %w", err)
	}
	return newCash, nil
}
