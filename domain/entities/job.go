package entities

import (
	"time"
)

// Job is a catalog entity describing salaried work. A profile holds
// zero or one job at a time.
type Job struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	Salary          int64     `db:"salary"`
	CooldownMinutes int       `db:"cooldown_minutes"`
	EnergyCost      int       `db:"energy_cost"`
	CreatedAt       time.Time `db:"created_at"`
}

// Cooldown returns the wait between shifts as a duration.
func (j *Job) Cooldown() time.Duration {
	return time.Duration(j.CooldownMinutes) * time.Minute
}
