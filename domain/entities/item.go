package entities

import "time"

// ItemKind categorizes catalog items.
type ItemKind string

const (
	ItemKindSeed    ItemKind = "seed"
	ItemKindCrop    ItemKind = "crop"
	ItemKindTool    ItemKind = "tool"
	ItemKindFood    ItemKind = "food"
	ItemKindVaccine ItemKind = "vaccine"
	ItemKindMisc    ItemKind = "misc"
)

// Currency identifies which balance an item is priced in.
type Currency string

const (
	CurrencyCash     Currency = "cash"
	CurrencyDiamonds Currency = "diamonds"
)

// Item is a catalog entity. The catalog is seeded by migrations and read
// by the shop, farm and animal services; it is never mutated at runtime.
type Item struct {
	ID            int64     `db:"id"`
	Slug          string    `db:"slug"`
	Name          string    `db:"name"`
	Kind          ItemKind  `db:"kind"`
	Price         int64     `db:"price"`
	Currency      Currency  `db:"currency"`
	GrowthMinutes int       `db:"growth_minutes"` // seeds only; full-growth duration
	YieldItemID   *int64    `db:"yield_item_id"`  // seeds only; crop produced at harvest
	CreatedAt     time.Time `db:"created_at"`
}

// IsPlantable reports whether the item can go into a farm plot.
func (i *Item) IsPlantable() bool {
	return i.Kind == ItemKindSeed && i.GrowthMinutes > 0
}

// IsPremium reports whether the item is priced in diamonds.
func (i *Item) IsPremium() bool {
	return i.Currency == CurrencyDiamonds
}
