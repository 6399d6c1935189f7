package games

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

// resultLine summarizes a settled game for the player.
func resultLine(result *entities.GameResult) string {
	switch {
	case result.Push:
		return fmt.Sprintf("%s Push — your %s bet came back. Cash: %s.",
			result.Detail, common.FormatCoins(result.Bet), common.FormatCoins(result.NewBalance))
	case result.Won:
		return fmt.Sprintf("%s You won %s! Cash: %s.",
			result.Detail, common.FormatCoins(result.Payout), common.FormatCoins(result.NewBalance))
	default:
		return fmt.Sprintf("%s You lost %s. Cash: %s.",
			result.Detail, common.FormatCoins(result.Bet), common.FormatCoins(result.NewBalance))
	}
}

func (f *Feature) handleCoinflip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	opts := common.Options(i)
	bet := opts["bet"].IntValue()
	pick := entities.CoinSide(opts["side"].StringValue())

	var result *entities.GameResult
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = f.newGamesService(uow).Coinflip(ctx, discordID, bet, pick)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error flipping coin for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to play. Please try again.")
		return
	}

	if err := common.RespondWithContent(s, i, "🪙 "+resultLine(result), false); err != nil {
		log.Errorf("Error responding to coinflip command: %v", err)
	}
}

const rpsPrefix = "rps"

var rpsEmoji = map[entities.RPSMove]string{
	entities.RPSRock:     "🪨",
	entities.RPSPaper:    "📄",
	entities.RPSScissors: "✂️",
}

func (f *Feature) handleRPS(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	bet := common.Options(i)["bet"].IntValue()

	embed := &discordgo.MessageEmbed{
		Title:       "Rock, paper, scissors",
		Description: fmt.Sprintf("Betting %s. Pick your throw.", common.FormatCoins(bet)),
		Color:       0x5865F2,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Rock",
				Emoji:    &discordgo.ComponentEmoji{Name: "🪨"},
				Style:    discordgo.SecondaryButton,
				CustomID: common.ComponentID(rpsPrefix, discordID, string(entities.RPSRock)),
			},
			discordgo.Button{
				Label:    "Paper",
				Emoji:    &discordgo.ComponentEmoji{Name: "📄"},
				Style:    discordgo.SecondaryButton,
				CustomID: common.ComponentID(rpsPrefix, discordID, string(entities.RPSPaper)),
			},
			discordgo.Button{
				Label:    "Scissors",
				Emoji:    &discordgo.ComponentEmoji{Name: "✂️"},
				Style:    discordgo.SecondaryButton,
				CustomID: common.ComponentID(rpsPrefix, discordID, string(entities.RPSScissors)),
			},
		}},
	}
	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to rps command: %v", err)
		return
	}

	key := common.CollectorKey(rpsPrefix, discordID)
	c := collector.New(f.cfg.SelectTimeout, common.OwnerAction(discordID,
		string(entities.RPSRock), string(entities.RPSPaper), string(entities.RPSScissors)))
	f.collectors.Register(key, c)
	defer f.collectors.Unregister(key)

	outcome := c.Await(ctx)
	switch outcome.Outcome {
	case collector.Resolved:
		f.resolveRPS(ctx, s, i, discordID, guildID, bet, entities.RPSMove(outcome.Response.Action))
	case collector.TimedOut:
		expired := &discordgo.MessageEmbed{
			Title:       "Rock, paper, scissors",
			Description: "No throw picked in time. Bet not taken.",
			Color:       0x99AAB5,
		}
		if err := common.UpdateMessage(s, i, expired, []discordgo.MessageComponent{}); err != nil {
			log.Errorf("Error expiring rps message: %v", err)
		}
	case collector.Cancelled:
		// shutdown; leave the message as-is
	}
}

func (f *Feature) resolveRPS(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, discordID, guildID, bet int64, move entities.RPSMove) {
	var result *entities.GameResult
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = f.newGamesService(uow).RPS(ctx, discordID, bet, move)
		return err
	})
	if err != nil {
		msg := "Unable to play. Please try again."
		if common.IsUserError(err) {
			msg = common.UserFacingMessage(err)
		} else {
			log.Errorf("Error playing rps for %d: %v", discordID, err)
		}
		failed := &discordgo.MessageEmbed{
			Title:       "Rock, paper, scissors",
			Description: msg,
			Color:       0x99AAB5,
		}
		if err := common.UpdateMessage(s, i, failed, []discordgo.MessageComponent{}); err != nil {
			log.Errorf("Error updating rps message: %v", err)
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Rock, paper, scissors",
		Description: fmt.Sprintf("You threw %s. %s", rpsEmoji[move], resultLine(result)),
		Color:       resultColor(result),
	}
	if err := common.UpdateMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating rps message: %v", err)
	}
}

func resultColor(result *entities.GameResult) int {
	switch {
	case result.Push:
		return 0x99AAB5
	case result.Won:
		return 0x57F287
	default:
		return 0xED4245
	}
}
