package entities

import (
	"fmt"
	"time"
)

// BalanceField identifies one of the mutable monetary fields on a profile.
type BalanceField string

const (
	BalanceCash     BalanceField = "cash"
	BalanceBank     BalanceField = "bank"
	BalanceDirty    BalanceField = "dirty"
	BalanceDiamonds BalanceField = "diamonds"
)

// Valid reports whether the field is one of the known balance columns.
func (f BalanceField) Valid() bool {
	switch f {
	case BalanceCash, BalanceBank, BalanceDirty, BalanceDiamonds:
		return true
	}
	return false
}

func (f BalanceField) String() string { return string(f) }

// CooldownKey identifies a per-profile cooldown timestamp.
type CooldownKey string

const (
	CooldownWork  CooldownKey = "work"
	CooldownDaily CooldownKey = "daily"
	CooldownCrime CooldownKey = "crime"
	CooldownRob   CooldownKey = "rob"
)

// Valid reports whether the key maps to a known cooldown column.
func (k CooldownKey) Valid() bool {
	switch k {
	case CooldownWork, CooldownDaily, CooldownCrime, CooldownRob:
		return true
	}
	return false
}

func (k CooldownKey) String() string { return string(k) }

// EmployeeSlots is the fixed number of employees a profile can hire.
const EmployeeSlots = 3

// GuildProfile is the per-(user, guild) economy state. At most one row
// exists per pair; it is created lazily on first interaction in a guild.
type GuildProfile struct {
	ID           int64        `db:"id"`
	DiscordID    int64        `db:"discord_id"`
	GuildID      int64        `db:"guild_id"`
	Cash         int64        `db:"cash"`
	Bank         int64        `db:"bank"`
	Dirty        int64        `db:"dirty"`
	Energy       int          `db:"energy"`
	JobID        *int64       `db:"job_id"`
	LastWorkedAt *time.Time   `db:"last_worked_at"`
	LastDailyAt  *time.Time   `db:"last_daily_at"`
	LastCrimeAt  *time.Time   `db:"last_crime_at"`
	LastRobAt    *time.Time   `db:"last_rob_at"`
	Employees    []Employee   `db:"-"` // decoded from JSONB at the repository edge
	VaccinatedAt *time.Time   `db:"vaccinated_at"`
	VetTreatedAt *time.Time   `db:"vet_treated_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// Employee is one hired worker occupying an employment slot.
type Employee struct {
	DiscordID int64     `json:"discord_id"`
	HiredAt   time.Time `json:"hired_at"`
}

// BankFeeSweep is one profile charged by a bank fee sweep, so the
// caller can audit the deduction.
type BankFeeSweep struct {
	DiscordID int64
	Amount    int64
}

// Balance returns the value of the requested guild-scoped field.
// Diamonds are not guild-scoped and are not addressable here.
func (p *GuildProfile) Balance(field BalanceField) (int64, error) {
	switch field {
	case BalanceCash:
		return p.Cash, nil
	case BalanceBank:
		return p.Bank, nil
	case BalanceDirty:
		return p.Dirty, nil
	}
	return 0, fmt.Errorf("balance field %q not tracked on guild profile", field)
}

// HasJob reports whether a job is assigned.
func (p *GuildProfile) HasJob() bool {
	return p.JobID != nil
}

// CanAfford checks the cash balance against an amount.
func (p *GuildProfile) CanAfford(amount int64) bool {
	return p.Cash >= amount
}

// NetWorth is the sum of clean holdings (cash + bank).
func (p *GuildProfile) NetWorth() int64 {
	return p.Cash + p.Bank
}

// HasFreeEmployeeSlot reports whether another employee can be hired.
func (p *GuildProfile) HasFreeEmployeeSlot() bool {
	return len(p.Employees) < EmployeeSlots
}

// Employs reports whether the given user occupies one of the slots.
func (p *GuildProfile) Employs(discordID int64) bool {
	for _, e := range p.Employees {
		if e.DiscordID == discordID {
			return true
		}
	}
	return false
}

// IsVaccinated reports whether a vaccination is on record.
func (p *GuildProfile) IsVaccinated() bool {
	return p.VaccinatedAt != nil
}

// CooldownStamp returns the recorded timestamp for the given key.
func (p *GuildProfile) CooldownStamp(key CooldownKey) *time.Time {
	switch key {
	case CooldownWork:
		return p.LastWorkedAt
	case CooldownDaily:
		return p.LastDailyAt
	case CooldownCrime:
		return p.LastCrimeAt
	case CooldownRob:
		return p.LastRobAt
	}
	return nil
}
