package work

import (
	"github.com/bwmarrin/discordgo"

	"tycoon/bot/common"
	"tycoon/collector"
	"tycoon/config"
	"tycoon/domain/interfaces"
	"tycoon/domain/services"
)

type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	cfg        *config.Config
	collectors *collector.Registry[common.ComponentResponse]
}

func New(uowFactory interfaces.UnitOfWorkFactory, cfg *config.Config, collectors *collector.Registry[common.ComponentResponse]) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		cfg:        cfg,
		collectors: collectors,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "job":
		sub, opts := common.Subcommand(i)
		switch sub {
		case "list":
			f.handleJobList(s, i)
		case "apply":
			f.handleJobApply(s, i, opts)
		case "resign":
			f.handleJobResign(s, i)
		default:
			common.RespondWithError(s, i, "Unknown subcommand.")
		}
	case "work":
		f.handleWork(s, i)
	case "daily":
		f.handleDaily(s, i)
	case "hire":
		f.handleHire(s, i)
	case "fire":
		f.handleFire(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command.")
	}
}

// newWorkService wires the work service from a begun unit of work.
func (f *Feature) newWorkService(uow interfaces.UnitOfWork) interfaces.WorkService {
	cooldowns := services.NewCooldownService(uow.ProfileRepository())
	return services.NewWorkService(
		uow.ProfileRepository(),
		uow.JobRepository(),
		uow.TransactionRepository(),
		cooldowns,
		f.cfg,
	)
}
