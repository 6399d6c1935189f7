package games

import (
	"github.com/bwmarrin/discordgo"

	"tycoon/bot/common"
	"tycoon/collector"
	"tycoon/config"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
	"tycoon/domain/services"
)

type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	cfg        *config.Config
	picker     *random.Picker
	collectors *collector.Registry[common.ComponentResponse]
}

func New(uowFactory interfaces.UnitOfWorkFactory, cfg *config.Config, picker *random.Picker, collectors *collector.Registry[common.ComponentResponse]) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		cfg:        cfg,
		picker:     picker,
		collectors: collectors,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "coinflip":
		f.handleCoinflip(s, i)
	case "rps":
		f.handleRPS(s, i)
	case "blackjack":
		f.handleBlackjack(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command.")
	}
}

// newGamesService wires the games service from a begun unit of work.
func (f *Feature) newGamesService(uow interfaces.UnitOfWork) interfaces.GamesService {
	ledger := services.NewLedgerService(
		uow.UserRepository(),
		uow.ProfileRepository(),
		uow.TransactionRepository(),
		uow.EventBus(),
		f.cfg,
	)
	return services.NewGamesService(ledger, f.picker, f.cfg)
}
