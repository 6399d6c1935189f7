package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tycoon/database"
	"tycoon/domain/entities"
)

// TransactionRepository implements the TransactionRepository interface.
// The table is append-only; there are no update or delete paths.
type TransactionRepository struct {
	q       queryable
	guildID int64
}

// NewTransactionRepository creates a new guild-scoped transaction repository
func NewTransactionRepository(db *database.DB, guildID int64) *TransactionRepository {
	return &TransactionRepository{q: db.Pool, guildID: guildID}
}

// newTransactionRepository creates a new transaction repository with a transaction and guild scope
func newTransactionRepository(tx queryable, guildID int64) *TransactionRepository {
	return &TransactionRepository{q: tx, guildID: guildID}
}

// Record appends one audit ledger entry
func (r *TransactionRepository) Record(ctx context.Context, tx *entities.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	metadataJSON, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	query := `
		INSERT INTO transactions (discord_id, guild_id, type, status, amount, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		tx.DiscordID,
		r.guildID,
		tx.Type,
		tx.Status,
		tx.Amount,
		metadataJSON,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", tx.DiscordID, err)
	}

	tx.GuildID = r.guildID
	return nil
}

// ListByUser returns the most recent entries for a user
func (r *TransactionRepository) ListByUser(ctx context.Context, discordID int64, limit int) ([]*entities.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, discord_id, guild_id, type, status, amount, metadata, created_at
		FROM transactions
		WHERE discord_id = $1 AND guild_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		var tx entities.Transaction
		var metadataJSON []byte
		err := rows.Scan(
			&tx.ID,
			&tx.DiscordID,
			&tx.GuildID,
			&tx.Type,
			&tx.Status,
			&tx.Amount,
			&metadataJSON,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &tx.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}
		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
