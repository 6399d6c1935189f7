package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
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

func targetID(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (int64, bool) {
	id, err := common.UserOptionID(opts["user"])
	if err != nil {
		log.Errorf("Error parsing target user: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return 0, false
	}
	return id, true
}

func (f *Feature) handleArrest(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	_, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	target, ok := targetID(s, i, opts)
	if !ok {
		return
	}
	duration := time.Duration(opts["minutes"].IntValue()) * time.Minute

	var until time.Time
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		until, err = f.newModerationService(uow).Arrest(ctx, target, duration)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error arresting %d: %v", target, err)
		common.RespondWithError(s, i, "Unable to arrest. Please try again.")
		return
	}

	msg := fmt.Sprintf("🔒 <@%d> is locked up until %s.",
		target, common.FormatDiscordTimestamp(until, "t"))
	if err := common.RespondWithContent(s, i, msg, false); err != nil {
		log.Errorf("Error responding to arrest command: %v", err)
	}
}

func (f *Feature) handleRelease(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	_, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	target, ok := targetID(s, i, opts)
	if !ok {
		return
	}

	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newModerationService(uow).Release(ctx, target)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error releasing %d: %v", target, err)
		common.RespondWithError(s, i, "Unable to release. Please try again.")
		return
	}

	if err := common.RespondWithContent(s, i, fmt.Sprintf("🔓 <@%d> has been released.", target), false); err != nil {
		log.Errorf("Error responding to release command: %v", err)
	}
}

func (f *Feature) handleBlacklist(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	moderatorID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	target, ok := targetID(s, i, opts)
	if !ok {
		return
	}
	reason := ""
	if opt, exists := opts["reason"]; exists {
		reason = opt.StringValue()
	}

	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newModerationService(uow).Blacklist(ctx, target, moderatorID, reason)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error blacklisting %d: %v", target, err)
		common.RespondWithError(s, i, "Unable to blacklist. Please try again.")
		return
	}

	if err := common.RespondWithContent(s, i, fmt.Sprintf("⛔ <@%d> is blacklisted from all commands.", target), false); err != nil {
		log.Errorf("Error responding to blacklist command: %v", err)
	}
}

func (f *Feature) handleUnblacklist(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	_, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	target, ok := targetID(s, i, opts)
	if !ok {
		return
	}

	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newModerationService(uow).Unblacklist(ctx, target)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error unblacklisting %d: %v", target, err)
		common.RespondWithError(s, i, "Unable to unblacklist. Please try again.")
		return
	}

	if err := common.RespondWithContent(s, i, fmt.Sprintf("✅ <@%d> may use commands again.", target), false); err != nil {
		log.Errorf("Error responding to unblacklist command: %v", err)
	}
}

func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	_, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	target, ok := targetID(s, i, opts)
	if !ok {
		return
	}
	field := entities.BalanceField(opts["field"].StringValue())
	amount := opts["amount"].IntValue()

	if !field.Valid() || field == entities.BalanceDirty {
		common.RespondWithError(s, i, "Unknown balance field.")
		return
	}
	if amount == 0 {
		common.RespondWithError(s, i, "Amount cannot be zero.")
		return
	}

	var newValue int64
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		ledger := services.NewLedgerService(
			uow.UserRepository(),
			uow.ProfileRepository(),
			uow.TransactionRepository(),
			uow.EventBus(),
			f.cfg,
		)
		var err error
		newValue, err = ledger.Adjust(ctx, target, field, amount)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error granting %d %s to %d: %v", amount, field, target, err)
		common.RespondWithError(s, i, "Unable to grant currency. Please try again.")
		return
	}

	msg := fmt.Sprintf("Adjusted <@%d>'s %s by %s. New value: %s.",
		target, field, common.FormatAmount(amount), common.FormatAmount(newValue))
	if err := common.RespondWithContent(s, i, msg, true); err != nil {
		log.Errorf("Error responding to give command: %v", err)
	}
}
