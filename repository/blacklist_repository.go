package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/entities"
)

// BlacklistRepository implements the BlacklistRepository interface.
type BlacklistRepository struct {
	q       queryable
	guildID int64
}

// NewBlacklistRepository creates a new guild-scoped blacklist repository
func NewBlacklistRepository(db *database.DB, guildID int64) *BlacklistRepository {
	return &BlacklistRepository{q: db.Pool, guildID: guildID}
}

// newBlacklistRepository creates a new blacklist repository with a transaction and guild scope
func newBlacklistRepository(tx queryable, guildID int64) *BlacklistRepository {
	return &BlacklistRepository{q: tx, guildID: guildID}
}

// Add inserts a blacklist entry for the scoped guild
func (r *BlacklistRepository) Add(ctx context.Context, entry *entities.BlacklistEntry) error {
	query := `
		INSERT INTO blacklist (guild_id, discord_id, reason, created_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, discord_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, r.guildID, entry.DiscordID, entry.Reason, entry.CreatedBy).
		Scan(&entry.ID, &entry.CreatedAt)
	if err == pgx.ErrNoRows {
		// Lost a race with a concurrent blacklist of the same user.
		return fmt.Errorf("user %d is already blacklisted: %w", entry.DiscordID, entities.ErrInvalidState)
	}
	if err != nil {
		return fmt.Errorf("failed to blacklist user %d: %w", entry.DiscordID, err)
	}

	entry.GuildID = r.guildID
	return nil
}

// Remove deletes the entry for a user
func (r *BlacklistRepository) Remove(ctx context.Context, discordID int64) error {
	query := `DELETE FROM blacklist WHERE guild_id = $1 AND discord_id = $2`

	result, err := r.q.Exec(ctx, query, r.guildID, discordID)
	if err != nil {
		return fmt.Errorf("failed to unblacklist user %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("blacklist entry for user %d: %w", discordID, entities.ErrNotFound)
	}

	return nil
}

// IsBlacklisted reports whether the user is banned in the scoped guild
func (r *BlacklistRepository) IsBlacklisted(ctx context.Context, discordID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blacklist WHERE guild_id = $1 AND discord_id = $2)`

	var banned bool
	if err := r.q.QueryRow(ctx, query, r.guildID, discordID).Scan(&banned); err != nil {
		return false, fmt.Errorf("failed to check blacklist for user %d: %w", discordID, err)
	}

	return banned, nil
}

// List returns every entry for the scoped guild
func (r *BlacklistRepository) List(ctx context.Context) ([]*entities.BlacklistEntry, error) {
	query := `
		SELECT id, guild_id, discord_id, reason, created_by, created_at
		FROM blacklist
		WHERE guild_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blacklist: %w", err)
	}
	defer rows.Close()

	var entries []*entities.BlacklistEntry
	for rows.Next() {
		var entry entities.BlacklistEntry
		err := rows.Scan(
			&entry.ID,
			&entry.GuildID,
			&entry.DiscordID,
			&entry.Reason,
			&entry.CreatedBy,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blacklist: %w", err)
	}

	return entries, nil
}
