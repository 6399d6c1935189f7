package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration. Every economy tunable is
// injectable per deployment; nothing numeric is hardcoded in the core.
type Config struct {
	// Discord
	DiscordToken string `envconfig:"DISCORD_TOKEN"`
	GuildID      string `envconfig:"GUILD_ID"`
	AdminRoleID  string `envconfig:"ADMIN_ROLE_ID"`

	// Database
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DatabaseName string `envconfig:"DATABASE_NAME"`

	// Environment: "development", "production" or "test"
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Economy
	StartingBalance   int64 `envconfig:"STARTING_BALANCE" default:"500"`
	DailyAmount       int64 `envconfig:"DAILY_AMOUNT" default:"250"`
	BankFeePercent    int   `envconfig:"BANK_FEE_PERCENT" default:"2"`
	LaunderFeePercent int   `envconfig:"LAUNDER_FEE_PERCENT" default:"25"`
	MaxEnergy         int   `envconfig:"MAX_ENERGY" default:"100"`
	EnergyRegen       int   `envconfig:"ENERGY_REGEN" default:"10"`

	// Cooldowns
	DailyCooldown time.Duration `envconfig:"DAILY_COOLDOWN" default:"24h"`
	CrimeCooldown time.Duration `envconfig:"CRIME_COOLDOWN" default:"1h"`
	RobCooldown   time.Duration `envconfig:"ROB_COOLDOWN" default:"2h"`

	// Crime tuning
	CrimeMinGain     int64         `envconfig:"CRIME_MIN_GAIN" default:"50"`
	CrimeMaxGain     int64         `envconfig:"CRIME_MAX_GAIN" default:"400"`
	CrimeFine        int64         `envconfig:"CRIME_FINE" default:"150"`
	RobSuccessChance float64       `envconfig:"ROB_SUCCESS_CHANCE" default:"0.35"`
	RobMaxSharePct   int           `envconfig:"ROB_MAX_SHARE_PCT" default:"20"`
	ArrestDuration   time.Duration `envconfig:"ARREST_DURATION" default:"30m"`

	// Husbandry
	DiseaseChance    float64 `envconfig:"DISEASE_CHANCE" default:"0.15"`
	VetFee           int64   `envconfig:"VET_FEE" default:"200"`
	AnimalMaxEnergy  int     `envconfig:"ANIMAL_MAX_ENERGY" default:"100"`
	AnimalFeedEnergy int     `envconfig:"ANIMAL_FEED_ENERGY" default:"25"`

	// Collector deadlines. Call sites take these, never literals.
	SelectTimeout  time.Duration `envconfig:"SELECT_TIMEOUT" default:"60s"`
	ConfirmTimeout time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"30s"`
	GameTimeout    time.Duration `envconfig:"GAME_TIMEOUT" default:"120s"`

	// Scheduler cron specs
	GrowthCronSpec      string `envconfig:"GROWTH_CRON" default:"*/5 * * * *"`
	EnergyRegenCronSpec string `envconfig:"ENERGY_REGEN_CRON" default:"*/30 * * * *"`
	ArrestExpiryCron    string `envconfig:"ARREST_EXPIRY_CRON" default:"* * * * *"`
	BankFeeCronSpec     string `envconfig:"BANK_FEE_CRON" default:"0 0 * * 0"`
}

// Load reads configuration from the environment and validates it. The
// result is passed down explicitly; nothing holds a global instance.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields outside test environments.
func (c *Config) Validate() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	if c.BankFeePercent < 0 || c.BankFeePercent > 100 {
		return fmt.Errorf("BANK_FEE_PERCENT must be within [0, 100]")
	}
	if c.LaunderFeePercent < 0 || c.LaunderFeePercent > 100 {
		return fmt.Errorf("LAUNDER_FEE_PERCENT must be within [0, 100]")
	}
	return nil
}

// NewTestConfig creates a minimal config suitable for unit tests.
func NewTestConfig() *Config {
	return &Config{
		Environment:       "test",
		StartingBalance:   500,
		DailyAmount:       250,
		BankFeePercent:    2,
		LaunderFeePercent: 25,
		MaxEnergy:         100,
		EnergyRegen:       10,
		DailyCooldown:     24 * time.Hour,
		CrimeCooldown:     time.Hour,
		RobCooldown:       2 * time.Hour,
		CrimeMinGain:      50,
		CrimeMaxGain:      400,
		CrimeFine:         150,
		RobSuccessChance:  0.35,
		RobMaxSharePct:    20,
		ArrestDuration:    30 * time.Minute,
		DiseaseChance:     0.15,
		VetFee:            200,
		AnimalMaxEnergy:   100,
		AnimalFeedEnergy:  25,
		SelectTimeout:     60 * time.Second,
		ConfirmTimeout:    30 * time.Second,
		GameTimeout:       120 * time.Second,
	}
}
