package farm

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
	"tycoon/collector"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
)

func parseIDs(s *discordgo.Session, i *discordgo.InteractionCreate) (discordID, guildID int64, ok bool) {
	discordID, err := common.MemberID(i)
	if err != nil {
		log.Errorf("Error parsing member ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return 0, 0, false
	}
	guildID, err = common.GuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return 0, 0, false
	}
	return discordID, guildID, true
}

func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var plots []*entities.FarmPlot
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		plots, err = f.newFarmService(uow).View(ctx, discordID)
		return err
	})
	if err != nil {
		log.Errorf("Error viewing farm for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to load your farm. Please try again.")
		return
	}

	bySlot := make(map[int]*entities.FarmPlot, len(plots))
	for _, plot := range plots {
		bySlot[plot.Slot] = plot
	}

	var sb strings.Builder
	for slot := 0; slot < entities.FarmSize; slot++ {
		plot, occupied := bySlot[slot]
		switch {
		case !occupied:
			sb.WriteString("⬛")
		case plot.IsRipe():
			sb.WriteString("🌾")
		default:
			sb.WriteString("🌱")
		}
		if slot%3 == 2 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	for slot := 0; slot < entities.FarmSize; slot++ {
		if plot, occupied := bySlot[slot]; occupied {
			sb.WriteString(fmt.Sprintf("`%d` %s — %d%%\n", slot+1, plot.ItemSlug, plot.GrowthRate))
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Your farm",
		Description: sb.String(),
		Color:       0x57F287,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Plant with /farm plant, collect with /farm harvest"},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to farm view command: %v", err)
	}
}

const plantPrefix = "plant"

// handlePlant offers the caller's seed stacks in a select menu; the
// chosen seed is consumed and planted only after the menu resolves.
func (f *Feature) handlePlant(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	// Slots display 1-based, store 0-based.
	slot := int(opts["slot"].IntValue()) - 1

	type seedStack struct {
		item   *entities.Item
		amount int64
	}
	var seeds []seedStack
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		stacks, err := uow.InventoryRepository().ListStacks(ctx, discordID)
		if err != nil {
			return err
		}
		for _, stack := range stacks {
			item, err := uow.ItemRepository().GetByID(ctx, stack.ItemID)
			if err != nil {
				return err
			}
			if item != nil && item.IsPlantable() {
				seeds = append(seeds, seedStack{item: item, amount: stack.Amount})
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error listing seeds for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to plant. Please try again.")
		return
	}
	if len(seeds) == 0 {
		common.RespondWithError(s, i, "You don't have any seeds. Buy some with /buy.")
		return
	}

	options := make([]discordgo.SelectMenuOption, 0, len(seeds))
	for _, seed := range seeds {
		options = append(options, discordgo.SelectMenuOption{
			Label:       seed.item.Name,
			Value:       seed.item.Slug,
			Description: fmt.Sprintf("× %d · ready in about %dm", seed.amount, seed.item.GrowthMinutes),
		})
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Plant in plot %d", slot+1),
		Description: "Pick a seed from your inventory.",
		Color:       0x57F287,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    common.ComponentID(plantPrefix, discordID, "select"),
				Placeholder: "Choose a seed",
				Options:     options,
			},
		}},
	}
	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to farm plant command: %v", err)
		return
	}

	key := common.CollectorKey(plantPrefix, discordID)
	c := collector.New(f.cfg.SelectTimeout, common.OwnerAction(discordID, "select"))
	f.collectors.Register(key, c)
	defer f.collectors.Unregister(key)

	result := c.Await(ctx)
	switch result.Outcome {
	case collector.Resolved:
		if len(result.Response.Values) == 0 {
			return
		}
		f.resolvePlant(ctx, s, i, discordID, guildID, slot, result.Response.Values[0])
	case collector.TimedOut:
		f.finishPlant(s, i, &discordgo.MessageEmbed{
			Title: "No seed picked in time", Color: 0x99AAB5,
		})
	case collector.Cancelled:
		// shutdown; leave the message as-is
	}
}

func (f *Feature) resolvePlant(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, discordID, guildID int64, slot int, seedSlug string) {
	var seed *entities.Item
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		seed, err = f.newFarmService(uow).Plant(ctx, discordID, slot, seedSlug)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			f.finishPlant(s, i, &discordgo.MessageEmbed{
				Title:       "Couldn't plant",
				Description: common.UserFacingMessage(err),
				Color:       0xED4245,
			})
			return
		}
		log.Errorf("Error planting %q in slot %d for %d: %v", seedSlug, slot, discordID, err)
		f.finishPlant(s, i, &discordgo.MessageEmbed{
			Title: "Something went wrong. Nothing was planted.", Color: 0x99AAB5,
		})
		return
	}

	f.finishPlant(s, i, &discordgo.MessageEmbed{
		Title:       "Planted",
		Description: fmt.Sprintf("**%s** in plot %d. Ready in about %dm.", seed.Name, slot+1, seed.GrowthMinutes),
		Color:       0x57F287,
	})
}

// finishPlant edits the seed menu message into its terminal state.
func (f *Feature) finishPlant(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := common.UpdateMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating farm plant message: %v", err)
	}
}

func (f *Feature) handleHarvest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var (
		result *entities.HarvestResult
		names  = map[int64]string{}
	)
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = f.newFarmService(uow).Harvest(ctx, discordID)
		if err != nil {
			return err
		}
		for itemID := range result.Yields {
			item, err := uow.ItemRepository().GetByID(ctx, itemID)
			if err != nil {
				return err
			}
			if item != nil {
				names[itemID] = item.Name
			}
		}
		return nil
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error harvesting for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to harvest. Please try again.")
		return
	}

	if result.Harvested == 0 {
		if err := common.RespondWithContent(s, i, "Nothing is ripe yet.", true); err != nil {
			log.Errorf("Error responding to farm harvest command: %v", err)
		}
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Harvested %d plot(s):\n", result.Harvested))
	for itemID, amount := range result.Yields {
		name, ok := names[itemID]
		if !ok {
			name = fmt.Sprintf("item #%d", itemID)
		}
		sb.WriteString(fmt.Sprintf("**%s** × %d\n", name, amount))
	}
	if err := common.RespondWithSuccess(s, i, sb.String(), false); err != nil {
		log.Errorf("Error responding to farm harvest command: %v", err)
	}
}
