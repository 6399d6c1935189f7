package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/entities"
)

// ItemRepository implements the ItemRepository interface. The catalog
// is seeded by migrations and read-only at runtime.
type ItemRepository struct {
	q queryable
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *database.DB) *ItemRepository {
	return &ItemRepository{q: db.Pool}
}

// newItemRepositoryWithTx creates a new item repository with a transaction
func newItemRepositoryWithTx(tx queryable) *ItemRepository {
	return &ItemRepository{q: tx}
}

const itemColumns = `id, slug, name, kind, price, currency, growth_minutes, yield_item_id, created_at`

// GetByID retrieves an item by ID, or nil when unknown
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

// GetBySlug retrieves an item by slug, or nil when unknown
func (r *ItemRepository) GetBySlug(ctx context.Context, slug string) (*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE slug = $1`

	item, err := scanItem(r.q.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %q: %w", slug, err)
	}
	return item, nil
}

// List returns the full catalog ordered by price
func (r *ItemRepository) List(ctx context.Context) ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY price, slug`
	return r.list(ctx, query)
}

// ListByKind returns the catalog entries of one kind
func (r *ItemRepository) ListByKind(ctx context.Context, kind entities.ItemKind) ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE kind = $1 ORDER BY price, slug`
	return r.list(ctx, query, kind)
}

func (r *ItemRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*entities.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

func scanItem(row pgx.Row) (*entities.Item, error) {
	var item entities.Item
	err := row.Scan(
		&item.ID,
		&item.Slug,
		&item.Name,
		&item.Kind,
		&item.Price,
		&item.Currency,
		&item.GrowthMinutes,
		&item.YieldItemID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
