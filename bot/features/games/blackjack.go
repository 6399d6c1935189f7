package games

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
	"tycoon/collector"
	"tycoon/domain/entities"
	domaingames "tycoon/domain/games"
	"tycoon/domain/interfaces"
)

const blackjackPrefix = "bj"

func (f *Feature) handleBlackjack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	bet := common.Options(i)["bet"].IntValue()

	// The bet is debited here; the payout is credited at settlement.
	var game *domaingames.Blackjack
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		game, err = f.newGamesService(uow).StartBlackjack(ctx, discordID, bet)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error starting blackjack for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to deal. Please try again.")
		return
	}

	if game.Finished() {
		// Natural blackjack on the deal.
		result, err := f.settleBlackjack(ctx, discordID, guildID, game)
		if err != nil {
			log.Errorf("Error settling blackjack for %d: %v", discordID, err)
			common.RespondWithError(s, i, "Unable to settle the hand. Please contact a moderator.")
			return
		}
		if err := common.RespondWithEmbed(s, i, blackjackEmbed(game, result), nil, false); err != nil {
			log.Errorf("Error responding to blackjack command: %v", err)
		}
		return
	}

	if err := common.RespondWithEmbed(s, i, blackjackEmbed(game, nil), blackjackButtons(discordID), false); err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
		return
	}

	// The hand stays open until the player stands, busts, or the
	// collector times out. A timeout stands automatically so the bet is
	// never stranded.
	key := common.CollectorKey(blackjackPrefix, discordID)
	lastS, lastI := s, i
	for !game.Finished() {
		c := collector.New(f.cfg.GameTimeout, common.OwnerAction(discordID, "hit", "stand"))
		f.collectors.Register(key, c)
		outcome := c.Await(ctx)
		f.collectors.Unregister(key)

		switch outcome.Outcome {
		case collector.Resolved:
			lastS, lastI = outcome.Response.Session, outcome.Response.Interaction
			if outcome.Response.Action == "hit" {
				if err := game.Hit(); err != nil {
					log.Errorf("Error hitting blackjack hand for %d: %v", discordID, err)
					game.Stand()
				}
			} else {
				game.Stand()
			}
			if !game.Finished() {
				if err := common.UpdateMessage(lastS, lastI, blackjackEmbed(game, nil), blackjackButtons(discordID)); err != nil {
					log.Errorf("Error updating blackjack message: %v", err)
				}
			}
		case collector.TimedOut, collector.Cancelled:
			game.Stand()
		}
	}

	result, err := f.settleBlackjack(ctx, discordID, guildID, game)
	if err != nil {
		log.Errorf("Error settling blackjack for %d: %v", discordID, err)
		if err := common.UpdateMessage(lastS, lastI, &discordgo.MessageEmbed{
			Title:       "Blackjack",
			Description: "Unable to settle the hand. Please contact a moderator.",
			Color:       0x99AAB5,
		}, []discordgo.MessageComponent{}); err != nil {
			log.Errorf("Error updating blackjack message: %v", err)
		}
		return
	}
	if err := common.UpdateMessage(lastS, lastI, blackjackEmbed(game, result), []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating blackjack message: %v", err)
	}
}

func (f *Feature) settleBlackjack(ctx context.Context, discordID, guildID int64, game *domaingames.Blackjack) (*entities.GameResult, error) {
	var result *entities.GameResult
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = f.newGamesService(uow).SettleBlackjack(ctx, discordID, game)
		return err
	})
	return result, err
}

func blackjackButtons(discordID int64) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Hit",
				Style:    discordgo.PrimaryButton,
				CustomID: common.ComponentID(blackjackPrefix, discordID, "hit"),
			},
			discordgo.Button{
				Label:    "Stand",
				Style:    discordgo.SecondaryButton,
				CustomID: common.ComponentID(blackjackPrefix, discordID, "stand"),
			},
		}},
	}
}

// blackjackEmbed renders the table. With a nil result the hand is still
// open and the dealer's hole card stays hidden.
func blackjackEmbed(game *domaingames.Blackjack, result *entities.GameResult) *discordgo.MessageEmbed {
	dealer := fmt.Sprintf("%s 🂠", game.Dealer[0])
	if result != nil {
		dealer = fmt.Sprintf("%s (%d)",
			domaingames.DescribeHand(game.Dealer), domaingames.HandValue(game.Dealer))
	}

	embed := &discordgo.MessageEmbed{
		Title: "Blackjack",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Your hand",
				Value: fmt.Sprintf("%s (%d)",
					domaingames.DescribeHand(game.Player), domaingames.HandValue(game.Player)),
			},
			{Name: "Dealer", Value: dealer},
			{Name: "Bet", Value: common.FormatCoins(game.Bet), Inline: true},
		},
	}
	if result != nil {
		embed.Description = resultLine(result)
		embed.Color = resultColor(result)
	}
	return embed
}
