package farm

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
	sub, opts := common.Subcommand(i)
	switch sub {
	case "view":
		f.handleView(s, i)
	case "plant":
		f.handlePlant(s, i, opts)
	case "harvest":
		f.handleHarvest(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

// newFarmService wires the farm service from a begun unit of work.
func (f *Feature) newFarmService(uow interfaces.UnitOfWork) interfaces.FarmService {
	return services.NewFarmService(
		uow.FarmRepository(),
		uow.ItemRepository(),
		uow.InventoryRepository(),
	)
}
