package entities

import (
	"errors"
	"time"
)

// Transaction is one append-only audit ledger entry. Rows are written for
// audited flows (gambling, crime, transfers, fees) and never mutated or
// deleted afterwards.
type Transaction struct {
	ID        int64             `db:"id"`
	DiscordID int64             `db:"discord_id"`
	GuildID   int64             `db:"guild_id"`
	Type      TransactionType   `db:"type"`
	Status    TransactionStatus `db:"status"`
	Amount    int64             `db:"amount"`
	Metadata  map[string]any    `db:"metadata"`
	CreatedAt time.Time         `db:"created_at"`
}

// Validate performs basic sanity checks before the entry is recorded.
func (t *Transaction) Validate() error {
	if t.Type == "" {
		return errors.New("transaction type is required")
	}
	if t.Status == "" {
		return errors.New("transaction status is required")
	}
	if t.Amount == 0 {
		return errors.New("transaction amount cannot be zero")
	}
	return nil
}
