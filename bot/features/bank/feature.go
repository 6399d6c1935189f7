package bank

import (
	"github.com/bwmarrin/discordgo"

	"tycoon/bot/common"
	"tycoon/config"
	"tycoon/domain/interfaces"
)

type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	cfg        *config.Config
}

func New(uowFactory interfaces.UnitOfWorkFactory, cfg *config.Config) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "balance":
		f.handleBalance(s, i)
	case "deposit":
		f.handleDeposit(s, i)
	case "withdraw":
		f.handleWithdraw(s, i)
	case "pay":
		f.handlePay(s, i)
	case "history":
		f.handleHistory(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command.")
	}
}
