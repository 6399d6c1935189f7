package entities

import (
	"time"
)

// FarmSize is the number of plots in the fixed 3x3 farm grid.
const FarmSize = 9

// FarmPlot is one occupied cell of a user's farm grid. An empty cell has
// no row. GrowthRate is recomputed from elapsed time and is monotonically
// non-decreasing while the plot is occupied.
type FarmPlot struct {
	ID         int64     `db:"id"`
	DiscordID  int64     `db:"discord_id"`
	GuildID    int64     `db:"guild_id"`
	Slot       int       `db:"slot"` // 0..FarmSize-1
	ItemID     int64     `db:"item_id"`
	ItemSlug   string    `db:"item_slug"`
	PlantedAt  time.Time `db:"planted_at"`
	GrowthRate int       `db:"growth_rate"` // 0..100
	CreatedAt  time.Time `db:"created_at"`
}

// IsRipe reports whether the plot is ready to harvest.
func (p *FarmPlot) IsRipe() bool {
	return p.GrowthRate >= 100
}

// ComputeGrowth returns the growth percentage for a plot planted at
// plantedAt given the seed's full-growth duration. The result is clamped
// to [0, 100] and never below the currently stored rate, so growth only
// moves forward.
func ComputeGrowth(plantedAt time.Time, growthMinutes int, current int, now time.Time) int {
	if growthMinutes <= 0 {
		return 100
	}
	elapsed := now.Sub(plantedAt)
	total := time.Duration(growthMinutes) * time.Minute
	rate := int(elapsed * 100 / total)
	if rate > 100 {
		rate = 100
	}
	if rate < current {
		rate = current
	}
	if rate < 0 {
		rate = 0
	}
	return rate
}
