package bot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
	"tycoon/bot/features/admin"
	"tycoon/bot/features/animals"
	"tycoon/bot/features/bank"
	"tycoon/bot/features/crime"
	"tycoon/bot/features/farm"
	"tycoon/bot/features/games"
	"tycoon/bot/features/shop"
	"tycoon/bot/features/work"
	"tycoon/collector"
	"tycoon/config"
	"tycoon/domain/events"
	"tycoon/domain/interfaces"
	"tycoon/domain/random"
)

type Bot struct {
	cfg        *config.Config
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	eventBus   *events.Bus
	collectors *collector.Registry[common.ComponentResponse]

	bank    *bank.Feature
	work    *work.Feature
	crime   *crime.Feature
	shop    *shop.Feature
	farm    *farm.Feature
	games   *games.Feature
	animals *animals.Feature
	admin   *admin.Feature
}

// New builds the Discord session, wires every feature, opens the
// websocket and registers the slash commands.
func New(cfg *config.Config, uowFactory interfaces.UnitOfWorkFactory, eventBus *events.Bus, picker *random.Picker) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	collectors := collector.NewRegistry[common.ComponentResponse]()

	bot := &Bot{
		cfg:        cfg,
		session:    dg,
		uowFactory: uowFactory,
		eventBus:   eventBus,
		collectors: collectors,
		bank:       bank.New(uowFactory, cfg),
		work:       work.New(uowFactory, cfg, collectors),
		crime:      crime.New(uowFactory, cfg, picker, collectors),
		shop:       shop.New(uowFactory, cfg, collectors),
		farm:       farm.New(uowFactory, cfg, collectors),
		games:      games.New(uowFactory, cfg, picker, collectors),
		animals:    animals.New(uowFactory, cfg, picker),
		admin:      admin.New(uowFactory, cfg),
	}

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleComponents)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	b.collectors.CancelAll()
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	// Guild-only bot; ignore DMs.
	if i.Member == nil || i.GuildID == "" {
		return
	}

	if b.rejectBlacklisted(s, i) {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance", "deposit", "withdraw", "pay", "history":
		b.bank.HandleCommand(s, i)
	case "job", "work", "daily", "hire", "fire":
		b.work.HandleCommand(s, i)
	case "crime", "rob", "launder":
		b.crime.HandleCommand(s, i)
	case "shop", "buy", "inventory":
		b.shop.HandleCommand(s, i)
	case "farm":
		b.farm.HandleCommand(s, i)
	case "blackjack", "coinflip", "rps":
		b.games.HandleCommand(s, i)
	case "animal":
		b.animals.HandleCommand(s, i)
	case "admin":
		b.admin.HandleCommand(s, i)
	}
}

// handleComponents routes button presses to the collector armed for the
// owning flow. Presses from non-owners are ignored and the flow keeps
// waiting.
func (b *Bot) handleComponents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if i.Member == nil {
		return
	}

	prefix, ownerID, action, ok := common.ParseComponentID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	presserID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		return
	}

	if err := common.AcknowledgeComponent(s, i); err != nil {
		log.Errorf("Error acknowledging component: %v", err)
	}

	key := prefix + ":" + ownerID
	delivered := b.collectors.Dispatch(key, common.ComponentResponse{
		UserID:      presserID,
		Action:      action,
		Values:      i.MessageComponentData().Values,
		Session:     s,
		Interaction: i,
	})
	if !delivered {
		log.WithFields(log.Fields{"key": key, "action": action}).Debug("Component press with no armed collector")
	}
}

// rejectBlacklisted blocks every command for blacklisted users.
func (b *Bot) rejectBlacklisted(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	ctx := context.Background()

	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return false
	}
	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return false
	}

	uow := b.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning blacklist check: %v", err)
		return false
	}
	defer uow.Rollback()

	banned, err := uow.BlacklistRepository().IsBlacklisted(ctx, discordID)
	if err != nil {
		log.Errorf("Error checking blacklist for %d: %v", discordID, err)
		return false
	}

	if banned {
		common.RespondWithError(s, i, "You are blacklisted from using this bot in this server.")
		return true
	}
	return false
}
