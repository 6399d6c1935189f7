package repository

import (
	"context"
	"fmt"
	"time"

	"tycoon/database"
	"tycoon/domain/entities"
)

// FarmRepository implements the FarmRepository interface. An empty plot
// has no row; the (discord_id, guild_id, slot) unique constraint keeps
// concurrent plants from doubling up on a slot.
type FarmRepository struct {
	q       queryable
	guildID int64
}

// NewFarmRepository creates a new guild-scoped farm repository
func NewFarmRepository(db *database.DB, guildID int64) *FarmRepository {
	return &FarmRepository{q: db.Pool, guildID: guildID}
}

// newFarmRepository creates a new farm repository with a transaction and guild scope
func newFarmRepository(tx queryable, guildID int64) *FarmRepository {
	return &FarmRepository{q: tx, guildID: guildID}
}

// ListPlots returns the occupied plots for one farm, ordered by slot
func (r *FarmRepository) ListPlots(ctx context.Context, discordID int64) ([]*entities.FarmPlot, error) {
	query := `
		SELECT fp.id, fp.discord_id, fp.guild_id, fp.slot, fp.item_id, i.slug,
		       fp.planted_at, fp.growth_rate, fp.created_at
		FROM farm_plots fp
		JOIN items i ON i.id = fp.item_id
		WHERE fp.discord_id = $1 AND fp.guild_id = $2
		ORDER BY fp.slot
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var plots []*entities.FarmPlot
	for rows.Next() {
		var plot entities.FarmPlot
		err := rows.Scan(
			&plot.ID,
			&plot.DiscordID,
			&plot.GuildID,
			&plot.Slot,
			&plot.ItemID,
			&plot.ItemSlug,
			&plot.PlantedAt,
			&plot.GrowthRate,
			&plot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot: %w", err)
		}
		plots = append(plots, &plot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plots: %w", err)
	}

	return plots, nil
}

// Plant occupies a slot. The ON CONFLICT DO NOTHING path turns a lost
// race for the same slot into ErrInvalidState instead of a double plant.
func (r *FarmRepository) Plant(ctx context.Context, discordID int64, slot int, item *entities.Item, at time.Time) error {
	if slot < 0 || slot >= entities.FarmSize {
		return fmt.Errorf("slot %d out of range [0, %d)", slot, entities.FarmSize)
	}
	if item == nil || !item.IsPlantable() {
		return fmt.Errorf("item is not plantable: %w", entities.ErrInvalidState)
	}

	query := `
		INSERT INTO farm_plots (discord_id, guild_id, slot, item_id, planted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (discord_id, guild_id, slot) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, discordID, r.guildID, slot, item.ID, at)
	if err != nil {
		return fmt.Errorf("failed to plant slot %d for user %d: %w", slot, discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %d is already planted: %w", slot, entities.ErrInvalidState)
	}

	return nil
}

// ClearPlots removes the given plots after harvest
func (r *FarmRepository) ClearPlots(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM farm_plots WHERE guild_id = $1 AND id = ANY($2)`

	if _, err := r.q.Exec(ctx, query, r.guildID, ids); err != nil {
		return fmt.Errorf("failed to clear plots: %w", err)
	}

	return nil
}

// RecomputeGrowth advances growth_rate for every plot in the scoped
// guild from elapsed time. GREATEST keeps growth from ever moving
// backwards.
func (r *FarmRepository) RecomputeGrowth(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE farm_plots fp
		SET growth_rate = GREATEST(fp.growth_rate, LEAST(100,
			FLOOR(EXTRACT(EPOCH FROM ($1::timestamptz - fp.planted_at)) * 100 / (i.growth_minutes * 60))::int))
		FROM items i
		WHERE i.id = fp.item_id
		  AND fp.guild_id = $2
		  AND fp.growth_rate < 100
		  AND i.growth_minutes > 0
	`

	result, err := r.q.Exec(ctx, query, now, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute growth: %w", err)
	}

	return result.RowsAffected(), nil
}
