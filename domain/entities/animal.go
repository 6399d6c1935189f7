package entities

import (
	"time"
)

// Disease is an illness an unvaccinated animal can contract.
type Disease string

const (
	DiseaseNone     Disease = ""
	DiseaseFlu      Disease = "flu"
	DiseaseRabies   Disease = "rabies"
	DiseaseParasite Disease = "parasite"
)

// Animal is a pet or livestock owned by one user in one guild.
type Animal struct {
	ID         int64     `db:"id"`
	DiscordID  int64     `db:"discord_id"`
	GuildID    int64     `db:"guild_id"`
	Species    string    `db:"species"`
	Name       string    `db:"name"`
	Energy     int       `db:"energy"`
	Disease    Disease   `db:"disease"`
	Vaccinated bool      `db:"vaccinated"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// IsSick reports whether the animal currently carries a disease.
func (a *Animal) IsSick() bool {
	return a.Disease != DiseaseNone
}

// AtMaxEnergy reports whether feeding would overshoot the cap.
func (a *Animal) AtMaxEnergy(max int) bool {
	return a.Energy >= max
}
