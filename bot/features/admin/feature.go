package admin

import (
	"github.com/bwmarrin/discordgo"

	"tycoon/bot/common"
	"tycoon/config"
	"tycoon/domain/interfaces"
	"tycoon/domain/services"
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
	sub, opts := common.Subcommand(i)
	switch sub {
	case "arrest":
		f.handleArrest(s, i, opts)
	case "release":
		f.handleRelease(s, i, opts)
	case "blacklist":
		f.handleBlacklist(s, i, opts)
	case "unblacklist":
		f.handleUnblacklist(s, i, opts)
	case "give":
		f.handleGive(s, i, opts)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

// newModerationService wires the moderation service from a begun unit of work.
func (f *Feature) newModerationService(uow interfaces.UnitOfWork) interfaces.ModerationService {
	return services.NewModerationService(
		uow.UserRepository(),
		uow.BlacklistRepository(),
		uow.EventBus(),
	)
}
