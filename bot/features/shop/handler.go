package shop

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
	"tycoon/domain/services"
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

// formatPrice renders an item price in its native currency.
func formatPrice(item *entities.Item) string {
	if item.IsPremium() {
		return common.FormatDiamonds(item.Price)
	}
	return common.FormatCoins(item.Price)
}

func (f *Feature) handleShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	_, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var items []*entities.Item
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		items, err = f.newShopService(uow).Catalog(ctx)
		return err
	})
	if err != nil {
		log.Errorf("Error loading catalog: %v", err)
		common.RespondWithError(s, i, "Unable to load the shop. Please try again.")
		return
	}

	// Group the catalog by kind so seeds, tools and premium goods read
	// as separate sections.
	sections := map[entities.ItemKind]*strings.Builder{}
	order := []entities.ItemKind{
		entities.ItemKindSeed, entities.ItemKindCrop, entities.ItemKindFood,
		entities.ItemKindVaccine, entities.ItemKindTool, entities.ItemKindMisc,
	}
	for _, item := range items {
		sb, ok := sections[item.Kind]
		if !ok {
			sb = &strings.Builder{}
			sections[item.Kind] = sb
		}
		sb.WriteString(fmt.Sprintf("`%s` **%s** — %s\n", item.Slug, item.Name, formatPrice(item)))
	}

	embed := &discordgo.MessageEmbed{
		Title:  "Shop",
		Color:  0xFEE75C,
		Footer: &discordgo.MessageEmbedFooter{Text: "Buy with /buy <slug>"},
	}
	for _, kind := range order {
		sb, ok := sections[kind]
		if !ok {
			continue
		}
		name := string(kind)
		name = strings.ToUpper(name[:1]) + name[1:] + "s"
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: sb.String(),
		})
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to shop command: %v", err)
	}
}

const buyPrefix = "buy"

// handleBuy asks for confirmation before charging; the purchase is
// committed only after the buyer presses Confirm.
func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	opts := common.Options(i)
	slug := opts["item"].StringValue()
	quantity := int64(1)
	if opt, ok := opts["quantity"]; ok {
		quantity = opt.IntValue()
	}

	var item *entities.Item
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		item, err = uow.ItemRepository().GetBySlug(ctx, slug)
		return err
	})
	if err != nil {
		log.Errorf("Error looking up item %q for %d: %v", slug, discordID, err)
		common.RespondWithError(s, i, "Unable to complete the purchase. Please try again.")
		return
	}
	if item == nil {
		log.Warnf("Unknown shop slug %q requested by %d", slug, discordID)
		common.RespondWithError(s, i, "Unable to complete the purchase. Please try again.")
		return
	}

	total := item.Price * quantity
	totalPrice := common.FormatCoins(total)
	if item.IsPremium() {
		totalPrice = common.FormatDiamonds(total)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Confirm purchase",
		Description: fmt.Sprintf("%d × **%s** for %s.", quantity, item.Name, totalPrice),
		Color:       0xFEE75C,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Confirm",
				Style:    discordgo.SuccessButton,
				CustomID: common.ComponentID(buyPrefix, discordID, "confirm"),
			},
			discordgo.Button{
				Label:    "Cancel",
				Style:    discordgo.SecondaryButton,
				CustomID: common.ComponentID(buyPrefix, discordID, "cancel"),
			},
		}},
	}
	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to buy command: %v", err)
		return
	}

	key := common.CollectorKey(buyPrefix, discordID)
	c := collector.New(f.cfg.ConfirmTimeout, common.OwnerAction(discordID, "confirm", "cancel"))
	f.collectors.Register(key, c)
	defer f.collectors.Unregister(key)

	result := c.Await(ctx)
	switch result.Outcome {
	case collector.Resolved:
		if result.Response.Action == "cancel" {
			f.finishBuy(s, i, &discordgo.MessageEmbed{Title: "Purchase cancelled", Color: 0x99AAB5})
			return
		}
		f.resolveBuy(ctx, s, i, discordID, guildID, slug, quantity)
	case collector.TimedOut:
		f.finishBuy(s, i, &discordgo.MessageEmbed{Title: "Offer expired", Color: 0x99AAB5})
	case collector.Cancelled:
		// shutdown; leave the message as-is
	}
}

func (f *Feature) resolveBuy(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, discordID, guildID int64, slug string, quantity int64) {
	var (
		item  *entities.Item
		total int64
	)
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		item, total, err = f.newShopService(uow).Purchase(ctx, discordID, slug, quantity)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			f.finishBuy(s, i, &discordgo.MessageEmbed{
				Title:       "Purchase failed",
				Description: common.UserFacingMessage(err),
				Color:       0xED4245,
			})
			return
		}
		log.Errorf("Error purchasing %q x%d for %d: %v", slug, quantity, discordID, err)
		f.finishBuy(s, i, &discordgo.MessageEmbed{
			Title: "Something went wrong. You were not charged.", Color: 0x99AAB5,
		})
		return
	}

	price := common.FormatCoins(total)
	if item.IsPremium() {
		price = common.FormatDiamonds(total)
	}
	f.finishBuy(s, i, &discordgo.MessageEmbed{
		Title:       "Purchase complete",
		Description: fmt.Sprintf("Bought %d × **%s** for %s.", quantity, item.Name, price),
		Color:       0x57F287,
	})
}

// finishBuy edits the confirmation message into its terminal state.
func (f *Feature) finishBuy(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := common.UpdateMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating buy message: %v", err)
	}
}

func (f *Feature) handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var (
		stacks []*entities.InventoryStack
		items  = map[int64]*entities.Item{}
	)
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		inventory := services.NewInventoryService(uow.InventoryRepository(), uow.ItemRepository())
		var err error
		stacks, err = inventory.ListStacks(ctx, discordID)
		if err != nil {
			return err
		}
		for _, stack := range stacks {
			item, err := uow.ItemRepository().GetByID(ctx, stack.ItemID)
			if err != nil {
				return err
			}
			if item != nil {
				items[stack.ItemID] = item
			}
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error listing inventory for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve your inventory. Please try again.")
		return
	}

	if len(stacks) == 0 {
		if err := common.RespondWithContent(s, i, "Your inventory is empty.", true); err != nil {
			log.Errorf("Error responding to inventory command: %v", err)
		}
		return
	}

	var sb strings.Builder
	for _, stack := range stacks {
		name := fmt.Sprintf("item #%d", stack.ItemID)
		if item, ok := items[stack.ItemID]; ok {
			name = item.Name
		}
		sb.WriteString(fmt.Sprintf("**%s** × %d\n", name, stack.Amount))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Inventory",
		Description: sb.String(),
		Color:       0x5865F2,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to inventory command: %v", err)
	}
}
