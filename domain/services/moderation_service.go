package services

import (
	"context"
	"fmt"
	"time"

	"tycoon/domain/entities"
	"tycoon/domain/events"
	"tycoon/domain/interfaces"
)

type moderationService struct {
	userRepo       interfaces.UserRepository
	blacklistRepo  interfaces.BlacklistRepository
	eventPublisher interfaces.EventPublisher
}

// NewModerationService creates a new moderation service.
func NewModerationService(userRepo interfaces.UserRepository, blacklistRepo interfaces.BlacklistRepository, eventPublisher interfaces.EventPublisher) interfaces.ModerationService {
	return &moderationService{
		userRepo:       userRepo,
		blacklistRepo:  blacklistRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *moderationService) Arrest(ctx context.Context, discordID int64, duration time.Duration) (time.Time, error) {
	if duration <= 0 {
		return time.Time{}, fmt.Errorf("arrest duration must be positive")
	}
	user, err := s.userRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return time.Time{}, fmt.Errorf("user %d: %w", discordID, entities.ErrNotFound)
	}

	until := time.Now().UTC().Add(duration)
	if err := s.userRepo.SetArrestedUntil(ctx, discordID, &until); err != nil {
		return time.Time{}, fmt.Errorf("failed to set arrest: %w", err)
	}

	s.eventPublisher.Publish(events.UserArrestedEvent{DiscordID: discordID})
	return until, nil
}

func (s *moderationService) Release(ctx context.Context, discordID int64) error {
	user, err := s.userRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", discordID, entities.ErrNotFound)
	}
	if !user.IsArrested(time.Now().UTC()) {
		return fmt.Errorf("user is not under arrest: %w", entities.ErrInvalidState)
	}
	if err := s.userRepo.SetArrestedUntil(ctx, discordID, nil); err != nil {
		return fmt.Errorf("failed to clear arrest: %w", err)
	}
	return nil
}

func (s *moderationService) Blacklist(ctx context.Context, targetID, moderatorID int64, reason string) error {
	if targetID == moderatorID {
		return fmt.Errorf("cannot blacklist yourself")
	}
	banned, err := s.blacklistRepo.IsBlacklisted(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to check blacklist: %w", err)
	}
	if banned {
		return fmt.Errorf("user is already blacklisted: %w", entities.ErrInvalidState)
	}

	entry := &entities.BlacklistEntry{
		DiscordID: targetID,
		Reason:    reason,
		CreatedBy: moderatorID,
	}
	if err := s.blacklistRepo.Add(ctx, entry); err != nil {
		return fmt.Errorf("failed to add blacklist entry: %w", err)
	}
	return nil
}

func (s *moderationService) Unblacklist(ctx context.Context, targetID int64) error {
	banned, err := s.blacklistRepo.IsBlacklisted(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to check blacklist: %w", err)
	}
	if !banned {
		return fmt.Errorf("user is not blacklisted: %w", entities.ErrInvalidState)
	}
	if err := s.blacklistRepo.Remove(ctx, targetID); err != nil {
		return fmt.Errorf("failed to remove blacklist entry: %w", err)
	}
	return nil
}

func (s *moderationService) IsBlacklisted(ctx context.Context, discordID int64) (bool, error) {
	return s.blacklistRepo.IsBlacklisted(ctx, discordID)
}
