package crime

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
	case "crime":
		f.handleCrime(s, i)
	case "rob":
		f.handleRob(s, i)
	case "launder":
		f.handleLaunder(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command.")
	}
}

// newCrimeService wires the crime service from a begun unit of work.
func (f *Feature) newCrimeService(uow interfaces.UnitOfWork) interfaces.CrimeService {
	ledger := services.NewLedgerService(
		uow.UserRepository(),
		uow.ProfileRepository(),
		uow.TransactionRepository(),
		uow.EventBus(),
		f.cfg,
	)
	cooldowns := services.NewCooldownService(uow.ProfileRepository())
	return services.NewCrimeService(
		uow.UserRepository(),
		uow.ProfileRepository(),
		ledger,
		cooldowns,
		uow.EventBus(),
		f.picker,
		f.cfg,
	)
}
