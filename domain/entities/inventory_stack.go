package entities

import "time"

// StackData is optional per-stack mutable state, stored as JSONB and
// decoded once at the repository boundary.
type StackData struct {
	Durability *int `json:"durability,omitempty"`
}

// InventoryStack is the quantity of one item held by one user in one
// guild. Amount is always positive: a stack that would reach zero is
// deleted instead of retained, and two stacks for the same
// (owner, item) pair never coexist.
type InventoryStack struct {
	ID        int64      `db:"id"`
	DiscordID int64      `db:"discord_id"`
	GuildID   int64      `db:"guild_id"`
	ItemID    int64      `db:"item_id"`
	Amount    int64      `db:"amount"`
	Data      *StackData `db:"-"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// Has reports whether the stack covers the requested amount.
func (s *InventoryStack) Has(amount int64) bool {
	return s.Amount >= amount
}
