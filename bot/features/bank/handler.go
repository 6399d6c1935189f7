package bank

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
	"tycoon/domain/services"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.MemberID(i)
	if err != nil {
		log.Errorf("Error parsing member ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, err := common.GuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Default to the caller; the optional user option switches the target.
	targetID := discordID
	username := i.Member.User.Username
	if opt, ok := common.Options(i)["user"]; ok {
		targetID, err = common.UserOptionID(opt)
		if err != nil {
			log.Errorf("Error parsing target user: %v", err)
			common.RespondWithError(s, i, "Unable to process request. Please try again.")
			return
		}
		username = opt.UserValue(s).Username
	}

	var balances *entities.Balances
	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		ledger := services.NewLedgerService(
			uow.UserRepository(),
			uow.ProfileRepository(),
			uow.TransactionRepository(),
			uow.EventBus(),
			f.cfg,
		)
		balances, err = ledger.Balances(ctx, targetID, username)
		return err
	})
	if err != nil {
		log.Errorf("Error fetching balances for %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to retrieve balances. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's wallet", username),
		Color: 0x57F287,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Cash", Value: common.FormatCoins(balances.Cash), Inline: true},
			{Name: "Bank", Value: common.FormatCoins(balances.Bank), Inline: true},
			{Name: "Dirty", Value: common.FormatCoins(balances.Dirty), Inline: true},
			{Name: "Diamonds", Value: common.FormatDiamonds(balances.Diamonds), Inline: true},
			{Name: "Energy", Value: fmt.Sprintf("⚡ %d", balances.Energy), Inline: true},
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleDeposit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.MemberID(i)
	if err != nil {
		log.Errorf("Error parsing member ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, err := common.GuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	amount := common.Options(i)["amount"].IntValue()

	var banked, fee int64
	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		ledger := services.NewLedgerService(
			uow.UserRepository(),
			uow.ProfileRepository(),
			uow.TransactionRepository(),
			uow.EventBus(),
			f.cfg,
		)
		banked, fee, err = ledger.Deposit(ctx, discordID, amount)
		return err
	})
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) {
			common.RespondWithError(s, i, "You don't have that much cash on hand.")
			return
		}
		log.Errorf("Error depositing %d for %d: %v", amount, discordID, err)
		common.RespondWithError(s, i, "Unable to process deposit. Please try again.")
		return
	}

	msg := fmt.Sprintf("Deposited %s into your bank.", common.FormatCoins(banked))
	if fee > 0 {
		msg += fmt.Sprintf(" The bank took a %s fee.", common.FormatCoins(fee))
	}
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to deposit command: %v", err)
	}
}

func (f *Feature) handleWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.MemberID(i)
	if err != nil {
		log.Errorf("Error parsing member ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, err := common.GuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	amount := common.Options(i)["amount"].IntValue()

	var newCash int64
	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		ledger := services.NewLedgerService(
			uow.UserRepository(),
			uow.ProfileRepository(),
			uow.TransactionRepository(),
			uow.EventBus(),
			f.cfg,
		)
		newCash, err = ledger.Withdraw(ctx, discordID, amount)
		return err
	})
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) {
			common.RespondWithError(s, i, "Your bank balance doesn't cover that.")
			return
		}
		log.Errorf("Error withdrawing %d for %d: %v", amount, discordID, err)
		common.RespondWithError(s, i, "Unable to process withdrawal. Please try again.")
		return
	}

	msg := fmt.Sprintf("Withdrew %s. You now carry %s in cash.",
		common.FormatCoins(amount), common.FormatCoins(newCash))
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to withdraw command: %v", err)
	}
}

func (f *Feature) handlePay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.MemberID(i)
	if err != nil {
		log.Errorf("Error parsing member ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, err := common.GuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	opts := common.Options(i)
	targetID, err := common.UserOptionID(opts["user"])
	if err != nil {
		log.Errorf("Error parsing target user: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	amount := opts["amount"].IntValue()

	if targetID == discordID {
		common.RespondWithError(s, i, "You can't pay yourself.")
		return
	}

	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		ledger := services.NewLedgerService(
			uow.UserRepository(),
			uow.ProfileRepository(),
			uow.TransactionRepository(),
			uow.EventBus(),
			f.cfg,
		)
		return ledger.Transfer(ctx, discordID, targetID, amount)
	})
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientFunds) {
			common.RespondWithError(s, i, "You don't have that much cash to send.")
			return
		}
		log.Errorf("Error transferring %d from %d to %d: %v", amount, discordID, targetID, err)
		common.RespondWithError(s, i, "Unable to process payment. Please try again.")
		return
	}

	msg := fmt.Sprintf("Sent %s to <@%d>.", common.FormatCoins(amount), targetID)
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to pay command: %v", err)
	}
}

const historyLimit = 10

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := common.MemberID(i)
	if err != nil {
		log.Errorf("Error parsing member ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	guildID, err := common.GuildID(i)
	if err != nil {
		log.Errorf("Error parsing guild ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var entries []*entities.Transaction
	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		entries, err = uow.TransactionRepository().ListByUser(ctx, discordID, historyLimit)
		return err
	})
	if err != nil {
		log.Errorf("Error listing transactions for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve history. Please try again.")
		return
	}

	if len(entries) == 0 {
		if err := common.RespondWithContent(s, i, "No recorded transactions yet.", true); err != nil {
			log.Errorf("Error responding to history command: %v", err)
		}
		return
	}

	var sb strings.Builder
	for _, tx := range entries {
		sign := "+"
		if tx.Amount < 0 {
			sign = ""
		}
		sb.WriteString(fmt.Sprintf("%s · **%s%s** · %s\n",
			common.FormatDiscordTimestamp(tx.CreatedAt, "R"),
			sign, common.FormatAmount(tx.Amount), tx.Type))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Recent transactions",
		Description: sb.String(),
		Color:       0x5865F2,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to history command: %v", err)
	}
}
