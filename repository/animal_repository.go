package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/entities"
)

// AnimalRepository implements the AnimalRepository interface.
type AnimalRepository struct {
	q       queryable
	guildID int64
}

// NewAnimalRepository creates a new guild-scoped animal repository
func NewAnimalRepository(db *database.DB, guildID int64) *AnimalRepository {
	return &AnimalRepository{q: db.Pool, guildID: guildID}
}

// newAnimalRepository creates a new animal repository with a transaction and guild scope
func newAnimalRepository(tx queryable, guildID int64) *AnimalRepository {
	return &AnimalRepository{q: tx, guildID: guildID}
}

const animalColumns = `id, discord_id, guild_id, species, name, energy, disease, vaccinated, created_at, updated_at`

// Create inserts a new animal. Names are unique per owner per guild.
func (r *AnimalRepository) Create(ctx context.Context, animal *entities.Animal) error {
	query := `
		INSERT INTO animals (discord_id, guild_id, species, name, energy, disease, vaccinated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		animal.DiscordID,
		r.guildID,
		animal.Species,
		animal.Name,
		animal.Energy,
		animal.Disease,
		animal.Vaccinated,
	).Scan(&animal.ID, &animal.CreatedAt, &animal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create animal %q: %w", animal.Name, err)
	}

	animal.GuildID = r.guildID
	return nil
}

// GetByID retrieves an animal by ID, or nil when unknown
func (r *AnimalRepository) GetByID(ctx context.Context, id int64) (*entities.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1 AND guild_id = $2`

	animal, err := scanAnimal(r.q.QueryRow(ctx, query, id, r.guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get animal %d: %w", id, err)
	}
	return animal, nil
}

// GetByName retrieves an owner's animal by name, or nil when unknown
func (r *AnimalRepository) GetByName(ctx context.Context, discordID int64, name string) (*entities.Animal, error) {
	query := `
		SELECT ` + animalColumns + `
		FROM animals
		WHERE discord_id = $1 AND guild_id = $2 AND LOWER(name) = LOWER($3)
	`

	animal, err := scanAnimal(r.q.QueryRow(ctx, query, discordID, r.guildID, name))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get animal %q: %w", name, err)
	}
	return animal, nil
}

// ListByOwner returns all animals owned by the user in this guild
func (r *AnimalRepository) ListByOwner(ctx context.Context, discordID int64) ([]*entities.Animal, error) {
	query := `
		SELECT ` + animalColumns + `
		FROM animals
		WHERE discord_id = $1 AND guild_id = $2
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list animals for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var animals []*entities.Animal
	for rows.Next() {
		animal, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan animal: %w", err)
		}
		animals = append(animals, animal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate animals: %w", err)
	}

	return animals, nil
}

// AdjustEnergy applies a delta clamped to [0, max]. Feeding an animal
// already at max is ErrInvalidState so a ration is never wasted.
func (r *AnimalRepository) AdjustEnergy(ctx context.Context, id int64, delta, max int) (int, error) {
	query := `
		UPDATE animals
		SET energy = LEAST($3, GREATEST(0, energy + $1)), updated_at = NOW()
		WHERE id = $2 AND guild_id = $4
		  AND NOT ($1 > 0 AND energy >= $3)
		RETURNING energy
	`

	var newValue int
	err := r.q.QueryRow(ctx, query, delta, id, max, r.guildID).Scan(&newValue)
	if err == pgx.ErrNoRows {
		animal, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check animal: %w", getErr)
		}
		if animal == nil {
			return 0, fmt.Errorf("animal %d: %w", id, entities.ErrNotFound)
		}
		return 0, fmt.Errorf("animal %d already at max energy: %w", id, entities.ErrInvalidState)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust energy for animal %d: %w", id, err)
	}

	return newValue, nil
}

// SetDisease stamps or clears (DiseaseNone) the animal's disease
func (r *AnimalRepository) SetDisease(ctx context.Context, id int64, disease entities.Disease) error {
	query := `
		UPDATE animals
		SET disease = $1, updated_at = NOW()
		WHERE id = $2 AND guild_id = $3
	`

	result, err := r.q.Exec(ctx, query, disease, id, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to set disease for animal %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("animal %d: %w", id, entities.ErrNotFound)
	}

	return nil
}

// SetVaccinated records a vaccination
func (r *AnimalRepository) SetVaccinated(ctx context.Context, id int64, vaccinated bool) error {
	query := `
		UPDATE animals
		SET vaccinated = $1, updated_at = NOW()
		WHERE id = $2 AND guild_id = $3
	`

	result, err := r.q.Exec(ctx, query, vaccinated, id, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to set vaccination for animal %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("animal %d: %w", id, entities.ErrNotFound)
	}

	return nil
}

func scanAnimal(row pgx.Row) (*entities.Animal, error) {
	var animal entities.Animal
	err := row.Scan(
		&animal.ID,
		&animal.DiscordID,
		&animal.GuildID,
		&animal.Species,
		&animal.Name,
		&animal.Energy,
		&animal.Disease,
		&animal.Vaccinated,
		&animal.CreatedAt,
		&animal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &animal, nil
}
