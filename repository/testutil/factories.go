package testutil

import (
	"time"

	"tycoon/domain/entities"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(discordID int64, username string) *entities.User {
	now := time.Now()
	return &entities.User{
		DiscordID: discordID,
		Username:  username,
		Diamonds:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestProfile creates a test guild profile with default balances
func CreateTestProfile(discordID, guildID int64) *entities.GuildProfile {
	now := time.Now()
	return &entities.GuildProfile{
		DiscordID: discordID,
		GuildID:   guildID,
		Cash:      500,
		Energy:    100,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestJob creates a test job
func CreateTestJob(id int64, name string, salary int64) *entities.Job {
	return &entities.Job{
		ID:              id,
		Name:            name,
		Salary:          salary,
		CooldownMinutes: 60,
		EnergyCost:      10,
		CreatedAt:       time.Now(),
	}
}

// CreateTestItem creates a test catalog item
func CreateTestItem(id int64, slug string, kind entities.ItemKind, price int64) *entities.Item {
	return &entities.Item{
		ID:        id,
		Slug:      slug,
		Name:      slug,
		Kind:      kind,
		Price:     price,
		Currency:  entities.CurrencyCash,
		CreatedAt: time.Now(),
	}
}

// CreateTestSeed creates a plantable seed yielding the given crop
func CreateTestSeed(id int64, slug string, growthMinutes int, yieldItemID int64) *entities.Item {
	item := CreateTestItem(id, slug, entities.ItemKindSeed, 15)
	item.GrowthMinutes = growthMinutes
	item.YieldItemID = &yieldItemID
	return item
}

// CreateTestAnimal creates a healthy test animal
func CreateTestAnimal(discordID int64, species, name string) *entities.Animal {
	now := time.Now()
	return &entities.Animal{
		DiscordID: discordID,
		Species:   species,
		Name:      name,
		Energy:    100,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
