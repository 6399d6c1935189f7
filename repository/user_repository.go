package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/entities"
)

// UserRepository implements the UserRepository interface for the
// account-global users table.
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetOrCreate returns the user, inserting the row on first reference.
// The upsert keeps the username current; created reports whether this
// call inserted the row.
func (r *UserRepository) GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.User, bool, error) {
	// xmax = 0 distinguishes a fresh insert from a conflict-update.
	query := `
		INSERT INTO users (discord_id, username)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO UPDATE
		SET username = EXCLUDED.username, updated_at = NOW()
		RETURNING discord_id, username, diamonds, arrested_until, created_at, updated_at, (xmax = 0) AS inserted
	`

	var user entities.User
	var created bool
	err := r.q.QueryRow(ctx, query, discordID, username).Scan(
		&user.DiscordID,
		&user.Username,
		&user.Diamonds,
		&user.ArrestedUntil,
		&user.CreatedAt,
		&user.UpdatedAt,
		&created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get or create user %d: %w", discordID, err)
	}

	return &user, created, nil
}

// GetByDiscordID retrieves a user by their Discord ID
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	query := `
		SELECT discord_id, username, diamonds, arrested_until, created_at, updated_at
		FROM users
		WHERE discord_id = $1
	`

	var user entities.User
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&user.DiscordID,
		&user.Username,
		&user.Diamonds,
		&user.ArrestedUntil,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by discord ID %d: %w", discordID, err)
	}

	return &user, nil
}

// AdjustDiamonds applies a signed delta to the premium balance. The
// check and update are one statement so a concurrent adjust can never
// drive the balance negative.
func (r *UserRepository) AdjustDiamonds(ctx context.Context, discordID int64, delta int64) (int64, error) {
	query := `
		UPDATE users
		SET diamonds = diamonds + $1, updated_at = NOW()
		WHERE discord_id = $2 AND diamonds + $1 >= 0
		RETURNING diamonds
	`

	var newValue int64
	err := r.q.QueryRow(ctx, query, delta, discordID).Scan(&newValue)
	if err == pgx.ErrNoRows {
		// Distinguish an unknown user from an overdraw.
		user, getErr := r.GetByDiscordID(ctx, discordID)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check user: %w", getErr)
		}
		if user == nil {
			return 0, fmt.Errorf("user %d: %w", discordID, entities.ErrNotFound)
		}
		return 0, fmt.Errorf("diamonds balance %d, delta %d: %w", user.Diamonds, delta, entities.ErrInsufficientFunds)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust diamonds for user %d: %w", discordID, err)
	}

	return newValue, nil
}

// SetArrestedUntil stamps or clears (nil) the arrest expiry
func (r *UserRepository) SetArrestedUntil(ctx context.Context, discordID int64, until *time.Time) error {
	query := `
		UPDATE users
		SET arrested_until = $1, updated_at = NOW()
		WHERE discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, until, discordID)
	if err != nil {
		return fmt.Errorf("failed to set arrest for user %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", discordID, entities.ErrNotFound)
	}

	return nil
}

// ClearExpiredArrests nils out arrest stamps that have passed
func (r *UserRepository) ClearExpiredArrests(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE users
		SET arrested_until = NULL, updated_at = NOW()
		WHERE arrested_until IS NOT NULL AND arrested_until <= $1
	`

	result, err := r.q.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired arrests: %w", err)
	}

	return result.RowsAffected(), nil
}
