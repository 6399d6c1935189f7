package shop

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
	case "shop":
		f.handleShop(s, i)
	case "buy":
		f.handleBuy(s, i)
	case "inventory":
		f.handleInventory(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command.")
	}
}

// newShopService wires the shop service from a begun unit of work.
func (f *Feature) newShopService(uow interfaces.UnitOfWork) interfaces.ShopService {
	ledger := services.NewLedgerService(
		uow.UserRepository(),
		uow.ProfileRepository(),
		uow.TransactionRepository(),
		uow.EventBus(),
		f.cfg,
	)
	return services.NewShopService(
		uow.ItemRepository(),
		uow.InventoryRepository(),
		ledger,
		uow.EventBus(),
	)
}
