package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/entities"
)

// balanceColumns maps addressable balance fields to their columns.
// Diamonds are account-global and deliberately absent.
var balanceColumns = map[entities.BalanceField]string{
	entities.BalanceCash:  "cash",
	entities.BalanceBank:  "bank",
	entities.BalanceDirty: "dirty",
}

// cooldownColumns maps cooldown keys to their timestamp columns.
var cooldownColumns = map[entities.CooldownKey]string{
	entities.CooldownWork:  "last_worked_at",
	entities.CooldownDaily: "last_daily_at",
	entities.CooldownCrime: "last_crime_at",
	entities.CooldownRob:   "last_rob_at",
}

// ProfileRepository implements the ProfileRepository interface for
// per-(user, guild) economy state. All queries are scoped to one guild.
type ProfileRepository struct {
	q               queryable
	guildID         int64
	startingBalance int64
	startingEnergy  int
}

// NewProfileRepository creates a new guild-scoped profile repository
func NewProfileRepository(db *database.DB, guildID, startingBalance int64, startingEnergy int) *ProfileRepository {
	return &ProfileRepository{q: db.Pool, guildID: guildID, startingBalance: startingBalance, startingEnergy: startingEnergy}
}

// newProfileRepository creates a new profile repository with a transaction and guild scope
func newProfileRepository(tx queryable, guildID, startingBalance int64, startingEnergy int) *ProfileRepository {
	return &ProfileRepository{q: tx, guildID: guildID, startingBalance: startingBalance, startingEnergy: startingEnergy}
}

const profileColumns = `
	id, discord_id, guild_id, cash, bank, dirty, energy, job_id,
	last_worked_at, last_daily_at, last_crime_at, last_rob_at,
	employees, vaccinated_at, vet_treated_at, created_at, updated_at
`

// GetOrCreate returns the profile for the scoped guild, inserting it
// with the configured starting balance on first interaction.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.GuildProfile, error) {
	query := `
		INSERT INTO guild_profiles (discord_id, guild_id, cash, energy)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (discord_id, guild_id) DO UPDATE
		SET updated_at = NOW()
		RETURNING ` + profileColumns

	row := r.q.QueryRow(ctx, query, discordID, r.guildID, r.startingBalance, r.startingEnergy)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile for user %d: %w", discordID, err)
	}
	return profile, nil
}

// Get retrieves the profile, or nil when absent
func (r *ProfileRepository) Get(ctx context.Context, discordID int64) (*entities.GuildProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM guild_profiles
		WHERE discord_id = $1 AND guild_id = $2
	`

	row := r.q.QueryRow(ctx, query, discordID, r.guildID)
	profile, err := scanProfile(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for user %d: %w", discordID, err)
	}
	return profile, nil
}

// AdjustBalance applies a signed delta to one monetary column. The
// floor check and the update are one statement, so concurrent spends
// race for the same funds safely; the loser gets ErrInsufficientFunds.
func (r *ProfileRepository) AdjustBalance(ctx context.Context, discordID int64, field entities.BalanceField, delta int64) (int64, error) {
	column, ok := balanceColumns[field]
	if !ok {
		return 0, fmt.Errorf("balance field %q is not guild-scoped", field)
	}

	query := fmt.Sprintf(`
		UPDATE guild_profiles
		SET %s = %s + $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3 AND %s + $1 >= 0
		RETURNING %s
	`, column, column, column, column)

	var newValue int64
	err := r.q.QueryRow(ctx, query, delta, discordID, r.guildID).Scan(&newValue)
	if err == pgx.ErrNoRows {
		profile, getErr := r.Get(ctx, discordID)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check profile: %w", getErr)
		}
		if profile == nil {
			return 0, fmt.Errorf("profile for user %d: %w", discordID, entities.ErrNotFound)
		}
		have, _ := profile.Balance(field)
		return 0, fmt.Errorf("%s balance %d, delta %d: %w", field, have, delta, entities.ErrInsufficientFunds)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust %s for user %d: %w", field, discordID, err)
	}

	return newValue, nil
}

// CheckAndConsumeCooldown stamps "now" on the keyed column iff the
// previous stamp is at least duration old. Check and stamp are one
// statement, so two concurrent calls can never both report ready.
func (r *ProfileRepository) CheckAndConsumeCooldown(ctx context.Context, discordID int64, key entities.CooldownKey, duration time.Duration) (entities.CooldownStatus, error) {
	column, ok := cooldownColumns[key]
	if !ok {
		return entities.CooldownStatus{}, fmt.Errorf("unknown cooldown key %q", key)
	}

	query := fmt.Sprintf(`
		UPDATE guild_profiles
		SET %s = NOW(), updated_at = NOW()
		WHERE discord_id = $1 AND guild_id = $2
		  AND (%s IS NULL OR %s <= NOW() - make_interval(secs => $3))
		RETURNING %s
	`, column, column, column, column)

	var stamped time.Time
	err := r.q.QueryRow(ctx, query, discordID, r.guildID, duration.Seconds()).Scan(&stamped)
	if err == nil {
		return entities.CooldownStatus{Ready: true}, nil
	}
	if err != pgx.ErrNoRows {
		return entities.CooldownStatus{}, fmt.Errorf("failed to consume %s cooldown for user %d: %w", key, discordID, err)
	}

	// Not ready (or no profile). Read the stamp to report the wait.
	profile, err := r.Get(ctx, discordID)
	if err != nil {
		return entities.CooldownStatus{}, fmt.Errorf("failed to check profile: %w", err)
	}
	if profile == nil {
		return entities.CooldownStatus{}, fmt.Errorf("profile for user %d: %w", discordID, entities.ErrNotFound)
	}

	stamp := profile.CooldownStamp(key)
	if stamp == nil {
		return entities.CooldownStatus{}, fmt.Errorf("cooldown %s for user %d changed concurrently", key, discordID)
	}
	remaining := time.Until(stamp.Add(duration))
	if remaining < 0 {
		remaining = 0
	}
	return entities.CooldownStatus{Ready: false, RetryAfter: remaining}, nil
}

// AdjustEnergy applies a delta clamped to [0, max] and returns the new
// value. Spending from an empty tank is ErrInvalidState.
func (r *ProfileRepository) AdjustEnergy(ctx context.Context, discordID int64, delta, max int) (int, error) {
	query := `
		UPDATE guild_profiles
		SET energy = LEAST($3, GREATEST(0, energy + $1)), updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $4
		  AND NOT ($1 < 0 AND energy + $1 < 0)
		RETURNING energy
	`

	var newValue int
	err := r.q.QueryRow(ctx, query, delta, discordID, max, r.guildID).Scan(&newValue)
	if err == pgx.ErrNoRows {
		profile, getErr := r.Get(ctx, discordID)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check profile: %w", getErr)
		}
		if profile == nil {
			return 0, fmt.Errorf("profile for user %d: %w", discordID, entities.ErrNotFound)
		}
		return 0, fmt.Errorf("energy %d, need %d: %w", profile.Energy, -delta, entities.ErrInvalidState)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust energy for user %d: %w", discordID, err)
	}

	return newValue, nil
}

// SetJob assigns (or clears, with nil) the profile's job
func (r *ProfileRepository) SetJob(ctx context.Context, discordID int64, jobID *int64) error {
	query := `
		UPDATE guild_profiles
		SET job_id = $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3
	`

	result, err := r.q.Exec(ctx, query, jobID, discordID, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to set job for user %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile for user %d: %w", discordID, entities.ErrNotFound)
	}

	return nil
}

// SetEmployees replaces the employment slots
func (r *ProfileRepository) SetEmployees(ctx context.Context, discordID int64, employees []entities.Employee) error {
	if len(employees) > entities.EmployeeSlots {
		return fmt.Errorf("at most %d employees allowed", entities.EmployeeSlots)
	}
	if employees == nil {
		employees = []entities.Employee{}
	}

	employeesJSON, err := json.Marshal(employees)
	if err != nil {
		return fmt.Errorf("failed to marshal employees: %w", err)
	}

	query := `
		UPDATE guild_profiles
		SET employees = $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3
	`

	result, err := r.q.Exec(ctx, query, employeesJSON, discordID, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to set employees for user %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile for user %d: %w", discordID, entities.ErrNotFound)
	}

	return nil
}

// SetVaccinatedAt records a vaccination
func (r *ProfileRepository) SetVaccinatedAt(ctx context.Context, discordID int64, at time.Time) error {
	query := `
		UPDATE guild_profiles
		SET vaccinated_at = $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3
	`

	result, err := r.q.Exec(ctx, query, at, discordID, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to set vaccination for user %d: %w", discordID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile for user %d: %w", discordID, entities.ErrNotFound)
	}

	return nil
}

// RegenerateEnergy adds delta energy (capped at max) to every profile
// in the scoped guild. Used by the scheduler.
func (r *ProfileRepository) RegenerateEnergy(ctx context.Context, delta, max int) (int64, error) {
	query := `
		UPDATE guild_profiles
		SET energy = LEAST($2, energy + $1), updated_at = NOW()
		WHERE guild_id = $3 AND energy < $2
	`

	result, err := r.q.Exec(ctx, query, delta, max, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to regenerate energy: %w", err)
	}

	return result.RowsAffected(), nil
}

// SweepBankFees deducts feePercent of each positive bank balance in the
// scoped guild and returns the charged profiles so the caller can
// record audit entries.
func (r *ProfileRepository) SweepBankFees(ctx context.Context, feePercent int) ([]entities.BankFeeSweep, error) {
	if feePercent <= 0 {
		return nil, nil
	}

	query := `
		WITH charged AS (
			SELECT discord_id, bank * $1 / 100 AS fee
			FROM guild_profiles
			WHERE guild_id = $2 AND bank * $1 / 100 > 0
			FOR UPDATE
		)
		UPDATE guild_profiles p
		SET bank = p.bank - c.fee, updated_at = NOW()
		FROM charged c
		WHERE p.guild_id = $2 AND p.discord_id = c.discord_id
		RETURNING c.discord_id, c.fee
	`

	rows, err := r.q.Query(ctx, query, feePercent, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep bank fees: %w", err)
	}
	defer rows.Close()

	var swept []entities.BankFeeSweep
	for rows.Next() {
		var s entities.BankFeeSweep
		if err := rows.Scan(&s.DiscordID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan swept profile: %w", err)
		}
		swept = append(swept, s)
	}
	return swept, rows.Err()
}

// scanProfile reads one profile row, decoding the employees JSONB blob
// exactly once at the store boundary.
func scanProfile(row pgx.Row) (*entities.GuildProfile, error) {
	var profile entities.GuildProfile
	var employeesJSON []byte
	err := row.Scan(
		&profile.ID,
		&profile.DiscordID,
		&profile.GuildID,
		&profile.Cash,
		&profile.Bank,
		&profile.Dirty,
		&profile.Energy,
		&profile.JobID,
		&profile.LastWorkedAt,
		&profile.LastDailyAt,
		&profile.LastCrimeAt,
		&profile.LastRobAt,
		&employeesJSON,
		&profile.VaccinatedAt,
		&profile.VetTreatedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(employeesJSON) > 0 {
		if err := json.Unmarshal(employeesJSON, &profile.Employees); err != nil {
			return nil, fmt.Errorf("failed to unmarshal employees: %w", err)
		}
	}

	return &profile, nil
}
