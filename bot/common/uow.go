package common

import (
	"context"
	"fmt"

	"tycoon/domain/interfaces"
)

// WithGuildTx runs fn inside a guild-scoped unit of work, committing on success
func WithGuildTx(ctx context.Context, factory interfaces.UnitOfWorkFactory, guildID int64, fn func(uow interfaces.UnitOfWork) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit()
}
