package entities

import "time"

// BlacklistEntry bars a user from all commands in a guild until removed.
type BlacklistEntry struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	DiscordID int64     `db:"discord_id"`
	Reason    string    `db:"reason"`
	CreatedBy int64     `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}
