package crime

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
	"tycoon/collector"
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

func (f *Feature) handleCrime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var result *entities.CrimeResult
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = f.newCrimeService(uow).Crime(ctx, discordID)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error committing crime for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var msg string
	switch result.Outcome {
	case entities.CrimeOutcomeScore:
		msg = fmt.Sprintf("🕶️ The job paid off: %s in dirty cash.", common.FormatCoins(result.Amount))
	case entities.CrimeOutcomeNothing:
		msg = "You cased the joint all night and came away with nothing."
	case entities.CrimeOutcomeFined:
		msg = fmt.Sprintf("🚓 Caught red-handed and fined %s.", common.FormatCoins(result.Amount))
	case entities.CrimeOutcomeArrested:
		msg = fmt.Sprintf("🔒 Busted. You're locked up until %s.",
			common.FormatDiscordTimestamp(*result.ArrestedUntil, "t"))
	}
	if err := common.RespondWithContent(s, i, msg, false); err != nil {
		log.Errorf("Error responding to crime command: %v", err)
	}
}

const robPrefix = "rob"

func (f *Feature) handleRob(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	victimID, err := common.UserOptionID(common.Options(i)["user"])
	if err != nil {
		log.Errorf("Error parsing target user: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if victimID == discordID {
		common.RespondWithError(s, i, "You can't rob yourself.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Attempt a robbery?",
		Description: fmt.Sprintf("Rob <@%d> of up to %d%% of their cash. Fail and you pay them instead.",
			victimID, f.cfg.RobMaxSharePct),
		Color: 0xED4245,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Do it",
				Style:    discordgo.DangerButton,
				CustomID: common.ComponentID(robPrefix, discordID, "confirm"),
			},
			discordgo.Button{
				Label:    "Walk away",
				Style:    discordgo.SecondaryButton,
				CustomID: common.ComponentID(robPrefix, discordID, "cancel"),
			},
		}},
	}
	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to rob command: %v", err)
		return
	}

	key := common.CollectorKey(robPrefix, discordID)
	c := collector.New(f.cfg.ConfirmTimeout, common.OwnerAction(discordID, "confirm", "cancel"))
	f.collectors.Register(key, c)
	defer f.collectors.Unregister(key)

	result := c.Await(ctx)
	switch result.Outcome {
	case collector.Resolved:
		if result.Response.Action == "cancel" {
			f.finishRob(s, i, &discordgo.MessageEmbed{
				Title: "Robbery called off", Color: 0x99AAB5,
			})
			return
		}
		f.resolveRob(ctx, s, i, discordID, guildID, victimID)
	case collector.TimedOut:
		f.finishRob(s, i, &discordgo.MessageEmbed{
			Title: "You hesitated too long", Color: 0x99AAB5,
		})
	case collector.Cancelled:
		// shutdown; leave the message as-is
	}
}

func (f *Feature) resolveRob(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, robberID, guildID, victimID int64) {
	var result *entities.RobResult
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = f.newCrimeService(uow).Rob(ctx, robberID, victimID)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			f.finishRob(s, i, &discordgo.MessageEmbed{
				Title:       "Robbery failed",
				Description: common.UserFacingMessage(err),
				Color:       0x99AAB5,
			})
			return
		}
		log.Errorf("Error robbing %d by %d: %v", victimID, robberID, err)
		f.finishRob(s, i, &discordgo.MessageEmbed{
			Title: "Something went wrong. No money moved.", Color: 0x99AAB5,
		})
		return
	}

	embed := &discordgo.MessageEmbed{}
	if result.Success {
		embed.Title = "Robbery succeeded"
		embed.Description = fmt.Sprintf("<@%d> lifted %s off <@%d>.",
			robberID, common.FormatCoins(result.Amount), victimID)
		embed.Color = 0x57F287
	} else {
		embed.Title = "Robbery failed"
		embed.Description = fmt.Sprintf("<@%d> got caught and paid <@%d> %s in damages.",
			robberID, victimID, common.FormatCoins(result.Amount))
		embed.Color = 0xED4245
	}
	f.finishRob(s, i, embed)
}

// finishRob edits the confirmation message into its terminal state.
func (f *Feature) finishRob(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := common.UpdateMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating rob message: %v", err)
	}
}

func (f *Feature) handleLaunder(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	amount := common.Options(i)["amount"].IntValue()

	var clean, fee int64
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		clean, fee, err = f.newCrimeService(uow).Launder(ctx, discordID, amount)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error laundering %d for %d: %v", amount, discordID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	msg := fmt.Sprintf("Washed %s of dirty cash into %s clean. The cleaner kept %s.",
		common.FormatCoins(amount), common.FormatCoins(clean), common.FormatCoins(fee))
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to launder command: %v", err)
	}
}
