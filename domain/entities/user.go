package entities

import (
	"time"
)

// User represents a Discord user known to the bot. Balances that are
// guild-scoped live on GuildProfile; diamonds are account-global.
type User struct {
	DiscordID     int64      `db:"discord_id"`
	Username      string     `db:"username"`
	Diamonds      int64      `db:"diamonds"`
	ArrestedUntil *time.Time `db:"arrested_until"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// IsArrested reports whether the user is currently serving an arrest.
func (u *User) IsArrested(now time.Time) bool {
	return u.ArrestedUntil != nil && u.ArrestedUntil.After(now)
}

// ArrestRemaining returns the time left on the user's arrest, or zero.
func (u *User) ArrestRemaining(now time.Time) time.Duration {
	if !u.IsArrested(now) {
		return 0
	}
	return u.ArrestedUntil.Sub(now)
}

// CanAffordDiamonds checks the account-global premium balance.
func (u *User) CanAffordDiamonds(amount int64) bool {
	return u.Diamonds >= amount
}
