package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/entities"
)

// InventoryRepository implements the InventoryRepository interface.
// The (discord_id, guild_id, item_id) unique constraint enforces the
// one-stack-per-item invariant at the store boundary.
type InventoryRepository struct {
	q       queryable
	guildID int64
}

// NewInventoryRepository creates a new guild-scoped inventory repository
func NewInventoryRepository(db *database.DB, guildID int64) *InventoryRepository {
	return &InventoryRepository{q: db.Pool, guildID: guildID}
}

// newInventoryRepository creates a new inventory repository with a transaction and guild scope
func newInventoryRepository(tx queryable, guildID int64) *InventoryRepository {
	return &InventoryRepository{q: tx, guildID: guildID}
}

// AddItem increments the stack for (owner, item), creating it when
// absent. The conflict path accumulates, so concurrent adds never
// clobber each other. A non-nil data replaces the per-stack payload.
func (r *InventoryRepository) AddItem(ctx context.Context, discordID, itemID, amount int64, data *entities.StackData) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	var dataJSON []byte
	if data != nil {
		var err error
		dataJSON, err = json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal stack data: %w", err)
		}
	}

	query := `
		INSERT INTO inventory_stacks (discord_id, guild_id, item_id, amount, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (discord_id, guild_id, item_id) DO UPDATE
		SET amount = inventory_stacks.amount + EXCLUDED.amount,
		    data = COALESCE(EXCLUDED.data, inventory_stacks.data),
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, discordID, r.guildID, itemID, amount, dataJSON); err != nil {
		return fmt.Errorf("failed to add item %d for user %d: %w", itemID, discordID, err)
	}

	return nil
}

// RemoveItem decrements the stack, deleting the row when it reaches
// exactly zero. The floor check and the decrement are one statement;
// an absent or short stack leaves everything unchanged.
func (r *InventoryRepository) RemoveItem(ctx context.Context, discordID, itemID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE inventory_stacks
		SET amount = amount - $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3 AND item_id = $4 AND amount >= $1
		RETURNING amount
	`

	var remaining int64
	err := r.q.QueryRow(ctx, query, amount, discordID, r.guildID, itemID).Scan(&remaining)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("item %d, need %d: %w", itemID, amount, entities.ErrInsufficientQuantity)
	}
	if err != nil {
		return fmt.Errorf("failed to remove item %d for user %d: %w", itemID, discordID, err)
	}

	if remaining == 0 {
		deleteQuery := `
			DELETE FROM inventory_stacks
			WHERE discord_id = $1 AND guild_id = $2 AND item_id = $3 AND amount = 0
		`
		if _, err := r.q.Exec(ctx, deleteQuery, discordID, r.guildID, itemID); err != nil {
			return fmt.Errorf("failed to delete empty stack for item %d: %w", itemID, err)
		}
	}

	return nil
}

// FindStack returns the stack for (owner, item), or nil
func (r *InventoryRepository) FindStack(ctx context.Context, discordID, itemID int64) (*entities.InventoryStack, error) {
	query := `
		SELECT id, discord_id, guild_id, item_id, amount, data, created_at, updated_at
		FROM inventory_stacks
		WHERE discord_id = $1 AND guild_id = $2 AND item_id = $3
	`

	stack, err := scanStack(r.q.QueryRow(ctx, query, discordID, r.guildID, itemID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find stack for item %d: %w", itemID, err)
	}

	return stack, nil
}

// ListStacks returns all stacks owned by the user in this guild
func (r *InventoryRepository) ListStacks(ctx context.Context, discordID int64) ([]*entities.InventoryStack, error) {
	query := `
		SELECT id, discord_id, guild_id, item_id, amount, data, created_at, updated_at
		FROM inventory_stacks
		WHERE discord_id = $1 AND guild_id = $2
		ORDER BY item_id
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stacks for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var stacks []*entities.InventoryStack
	for rows.Next() {
		stack, err := scanStack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stack: %w", err)
		}
		stacks = append(stacks, stack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stacks: %w", err)
	}

	return stacks, nil
}

// scanStack reads one stack row, decoding the data JSONB blob exactly
// once at the store boundary.
func scanStack(row pgx.Row) (*entities.InventoryStack, error) {
	var stack entities.InventoryStack
	var dataJSON []byte
	err := row.Scan(
		&stack.ID,
		&stack.DiscordID,
		&stack.GuildID,
		&stack.ItemID,
		&stack.Amount,
		&dataJSON,
		&stack.CreatedAt,
		&stack.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(dataJSON) > 0 {
		var data entities.StackData
		if err := json.Unmarshal(dataJSON, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stack data: %w", err)
		}
		stack.Data = &data
	}

	return &stack, nil
}
