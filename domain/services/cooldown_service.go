package services

import (
	"context"
	"fmt"
	"time"

	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
)

type cooldownService struct {
	profileRepo interfaces.ProfileRepository
}

// NewCooldownService creates a new cooldown service.
func NewCooldownService(profileRepo interfaces.ProfileRepository) interfaces.CooldownService {
	return &cooldownService{profileRepo: profileRepo}
}

// CheckAndConsume delegates to the store, which stamps "now" in the same
// atomic statement that reports readiness. A second concurrent call for
// the same key can therefore never also report ready.
func (s *cooldownService) CheckAndConsume(ctx context.Context, discordID int64, key entities.CooldownKey, duration time.Duration) (entities.CooldownStatus, error) {
	if !key.Valid() {
		return entities.CooldownStatus{}, fmt.Errorf("unknown cooldown key %q", key)
	}
	if duration <= 0 {
		return entities.CooldownStatus{}, fmt.Errorf("cooldown duration must be positive")
	}
	// The profile must exist before its cooldown columns can be stamped.
	if _, err := s.profileRepo.GetOrCreate(ctx, discordID); err != nil {
		return entities.CooldownStatus{}, fmt.Errorf("failed to ensure profile: %w", err)
	}
	return s.profileRepo.CheckAndConsumeCooldown(ctx, discordID, key, duration)
}
