package animals

import (
	"github.com/bwmarrin/discordgo"

	"tycoon/bot/common"
	"tycoon/config"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
	"tycoon/domain/services"
)

type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	cfg        *config.Config
	picker     *random.Picker
}

func New(uowFactory interfaces.UnitOfWorkFactory, cfg *config.Config, picker *random.Picker) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		cfg:        cfg,
		picker:     picker,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.Subcommand(i)
	switch sub {
	case "buy":
		f.handleBuy(s, i, opts)
	case "list":
		f.handleList(s, i)
	case "feed":
		f.handleFeed(s, i, opts)
	case "vaccinate":
		f.handleVaccinate(s, i, opts)
	case "treat":
		f.handleTreat(s, i, opts)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

// newAnimalService wires the animal service from a begun unit of work.
func (f *Feature) newAnimalService(uow interfaces.UnitOfWork) interfaces.AnimalService {
	ledger := services.NewLedgerService(
		uow.UserRepository(),
		uow.ProfileRepository(),
		uow.TransactionRepository(),
		uow.EventBus(),
		f.cfg,
	)
	return services.NewAnimalService(
		uow.AnimalRepository(),
		uow.ItemRepository(),
		uow.InventoryRepository(),
		ledger,
		f.picker,
		f.cfg,
	)
}
