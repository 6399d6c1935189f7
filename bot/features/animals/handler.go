package animals

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
)

func parseIDs(s *discordgo.Session, i *discordgo.InteractionCreate) (discordID, guildID int64, ok bool) {
	discordID, err := common.MemberID(i)
	if err != nil {
		log.Errorf("Error parsing member ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return 0, 0, false
	}
	guildID, err = common.GuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return 0, 0, false
	}
	return discordID, guildID, true
}

var speciesEmoji = map[string]string{
	"chicken": "🐔",
	"pig":     "🐷",
	"cow":     "🐮",
	"horse":   "🐴",
}

func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	species := opts["species"].StringValue()
	name := opts["name"].StringValue()

	var animal *entities.Animal
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		animal, err = f.newAnimalService(uow).Buy(ctx, discordID, species, name)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error buying %s %q for %d: %v", species, name, discordID, err)
		common.RespondWithError(s, i, "Unable to buy the animal. Please try again.")
		return
	}

	msg := fmt.Sprintf("%s **%s** the %s joined your farm.",
		speciesEmoji[animal.Species], animal.Name, animal.Species)
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to animal buy command: %v", err)
	}
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var animals []*entities.Animal
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		animals, err = f.newAnimalService(uow).List(ctx, discordID)
		return err
	})
	if err != nil {
		log.Errorf("Error listing animals for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve your animals. Please try again.")
		return
	}

	if len(animals) == 0 {
		if err := common.RespondWithContent(s, i, "You don't own any animals yet. Try /animal buy.", true); err != nil {
			log.Errorf("Error responding to animal list command: %v", err)
		}
		return
	}

	var sb strings.Builder
	for _, animal := range animals {
		status := "healthy"
		if animal.IsSick() {
			status = fmt.Sprintf("sick (%s)", animal.Disease)
		} else if animal.Vaccinated {
			status = "vaccinated"
		}
		sb.WriteString(fmt.Sprintf("%s **%s** — ⚡ %d/%d · %s\n",
			speciesEmoji[animal.Species], animal.Name,
			animal.Energy, f.cfg.AnimalMaxEnergy, status))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Your animals",
		Description: sb.String(),
		Color:       0x57F287,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to animal list command: %v", err)
	}
}

func (f *Feature) handleFeed(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	name := opts["name"].StringValue()

	var (
		animal  *entities.Animal
		gotSick bool
	)
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		animal, gotSick, err = f.newAnimalService(uow).Feed(ctx, discordID, name)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error feeding %q for %d: %v", name, discordID, err)
		common.RespondWithError(s, i, "Unable to feed the animal. Please try again.")
		return
	}

	msg := fmt.Sprintf("**%s** ate a ration. ⚡ %d/%d.", animal.Name, animal.Energy, f.cfg.AnimalMaxEnergy)
	if gotSick {
		msg += fmt.Sprintf(" 🤒 The food didn't sit well — **%s** caught %s. Pay the vet with /animal treat.",
			animal.Name, animal.Disease)
	}
	if err := common.RespondWithContent(s, i, msg, false); err != nil {
		log.Errorf("Error responding to animal feed command: %v", err)
	}
}

func (f *Feature) handleVaccinate(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	name := opts["name"].StringValue()

	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newAnimalService(uow).Vaccinate(ctx, discordID, name)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error vaccinating %q for %d: %v", name, discordID, err)
		common.RespondWithError(s, i, "Unable to vaccinate the animal. Please try again.")
		return
	}

	msg := fmt.Sprintf("💉 **%s** is now vaccinated and safe from disease.", name)
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to animal vaccinate command: %v", err)
	}
}

func (f *Feature) handleTreat(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	name := opts["name"].StringValue()

	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newAnimalService(uow).Treat(ctx, discordID, name)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error treating %q for %d: %v", name, discordID, err)
		common.RespondWithError(s, i, "Unable to treat the animal. Please try again.")
		return
	}

	msg := fmt.Sprintf("🏥 The vet cured **%s** for %s.", name, common.FormatCoins(f.cfg.VetFee))
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to animal treat command: %v", err)
	}
}
