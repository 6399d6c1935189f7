package work

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tycoon/bot/common"
	"tycoon/collector"
	"tycoon/domain/entities"
	"tycoon/domain/interfaces"
)

// parseIDs extracts the caller's Discord ID and the guild ID, responding
// with a generic error on failure.
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

func (f *Feature) handleJobList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	_, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var jobs []*entities.Job
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		jobs, err = f.newWorkService(uow).ListJobs(ctx)
		return err
	})
	if err != nil {
		log.Errorf("Error listing jobs: %v", err)
		common.RespondWithError(s, i, "Unable to retrieve jobs. Please try again.")
		return
	}

	var sb strings.Builder
	for _, job := range jobs {
		sb.WriteString(fmt.Sprintf("`#%d` **%s** — %s per shift · every %dm · ⚡ %d\n",
			job.ID, job.Name, common.FormatCoins(job.Salary), job.CooldownMinutes, job.EnergyCost))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Job board",
		Description: sb.String(),
		Color:       0x5865F2,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Apply with /job apply"},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to job list command: %v", err)
	}
}

func (f *Feature) handleJobApply(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	jobID := opts["id"].IntValue()

	var job *entities.Job
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		job, err = f.newWorkService(uow).AssignJob(ctx, discordID, jobID)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error assigning job %d to %d: %v", jobID, discordID, err)
		common.RespondWithError(s, i, "Unable to apply for job. Please try again.")
		return
	}

	msg := fmt.Sprintf("You are now working as a **%s**. Shift pay: %s.",
		job.Name, common.FormatCoins(job.Salary))
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to job apply command: %v", err)
	}
}

func (f *Feature) handleJobResign(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newWorkService(uow).Resign(ctx, discordID)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error resigning job for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to resign. Please try again.")
		return
	}

	if err := common.RespondWithSuccess(s, i, "You handed in your resignation.", false); err != nil {
		log.Errorf("Error responding to job resign command: %v", err)
	}
}

func (f *Feature) handleWork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var profile *entities.GuildProfile
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		profile, err = uow.ProfileRepository().GetOrCreate(ctx, discordID)
		return err
	})
	if err != nil {
		log.Errorf("Error loading profile for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if !profile.HasJob() {
		f.handleJobSelection(ctx, s, i, discordID, guildID)
		return
	}

	var result *entities.WorkResult
	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = f.newWorkService(uow).Work(ctx, discordID)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error working for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to complete the shift. Please try again.")
		return
	}

	msg := fmt.Sprintf("You worked a shift as a **%s** and earned %s. Cash: %s · ⚡ %d left.",
		result.JobName, common.FormatCoins(result.Salary),
		common.FormatCoins(result.NewCash), result.EnergyLeft)
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to work command: %v", err)
	}
}

const jobPrefix = "jobpick"

// handleJobSelection walks a jobless caller through taking a job: a
// select menu to pick one, then a confirmation. Nothing is written
// until the confirming press resolves.
func (f *Feature) handleJobSelection(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, discordID, guildID int64) {
	var jobs []*entities.Job
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		jobs, err = f.newWorkService(uow).ListJobs(ctx)
		return err
	})
	if err != nil {
		log.Errorf("Error listing jobs: %v", err)
		common.RespondWithError(s, i, "Unable to retrieve jobs. Please try again.")
		return
	}

	options := make([]discordgo.SelectMenuOption, 0, len(jobs))
	for _, job := range jobs {
		options = append(options, discordgo.SelectMenuOption{
			Label: job.Name,
			Value: strconv.FormatInt(job.ID, 10),
			Description: fmt.Sprintf("%s per shift · every %dm · ⚡ %d",
				common.FormatCoins(job.Salary), job.CooldownMinutes, job.EnergyCost),
		})
	}
	embed := &discordgo.MessageEmbed{
		Title:       "You don't have a job yet",
		Description: "Pick one to start working.",
		Color:       0x5865F2,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    common.ComponentID(jobPrefix, discordID, "select"),
				Placeholder: "Choose a job",
				Options:     options,
			},
		}},
	}
	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to work command: %v", err)
		return
	}

	key := common.CollectorKey(jobPrefix, discordID)
	c := collector.New(f.cfg.SelectTimeout, common.OwnerAction(discordID, "select"))
	f.collectors.Register(key, c)
	selected := c.Await(ctx)
	f.collectors.Unregister(key)

	switch selected.Outcome {
	case collector.TimedOut:
		f.finishJobSelection(s, i, &discordgo.MessageEmbed{
			Title: "No job picked in time", Color: 0x99AAB5,
		})
		return
	case collector.Cancelled:
		// shutdown; leave the message as-is
		return
	}
	if len(selected.Response.Values) == 0 {
		return
	}
	jobID, err := strconv.ParseInt(selected.Response.Values[0], 10, 64)
	if err != nil {
		log.Errorf("Error parsing job selection %q: %v", selected.Response.Values[0], err)
		return
	}

	var picked *entities.Job
	for _, job := range jobs {
		if job.ID == jobID {
			picked = job
			break
		}
	}
	if picked == nil {
		return
	}

	confirm := &discordgo.MessageEmbed{
		Title: "Take this job?",
		Description: fmt.Sprintf("**%s** — %s per shift, every %dm, ⚡ %d.",
			picked.Name, common.FormatCoins(picked.Salary), picked.CooldownMinutes, picked.EnergyCost),
		Color: 0x5865F2,
	}
	buttons := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Take it",
				Style:    discordgo.SuccessButton,
				CustomID: common.ComponentID(jobPrefix, discordID, "confirm"),
			},
			discordgo.Button{
				Label:    "Keep looking",
				Style:    discordgo.SecondaryButton,
				CustomID: common.ComponentID(jobPrefix, discordID, "cancel"),
			},
		}},
	}
	if err := common.UpdateMessage(s, i, confirm, buttons); err != nil {
		log.Errorf("Error updating work message: %v", err)
		return
	}

	c = collector.New(f.cfg.ConfirmTimeout, common.OwnerAction(discordID, "confirm", "cancel"))
	f.collectors.Register(key, c)
	confirmed := c.Await(ctx)
	f.collectors.Unregister(key)

	switch confirmed.Outcome {
	case collector.Resolved:
		if confirmed.Response.Action == "cancel" {
			f.finishJobSelection(s, i, &discordgo.MessageEmbed{
				Title: "No job taken", Color: 0x99AAB5,
			})
			return
		}
	case collector.TimedOut:
		f.finishJobSelection(s, i, &discordgo.MessageEmbed{
			Title: "Offer expired", Color: 0x99AAB5,
		})
		return
	case collector.Cancelled:
		return
	}

	var job *entities.Job
	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		job, err = f.newWorkService(uow).AssignJob(ctx, discordID, jobID)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			f.finishJobSelection(s, i, &discordgo.MessageEmbed{
				Title:       "Couldn't take the job",
				Description: common.UserFacingMessage(err),
				Color:       0xED4245,
			})
			return
		}
		log.Errorf("Error assigning job %d to %d: %v", jobID, discordID, err)
		f.finishJobSelection(s, i, &discordgo.MessageEmbed{
			Title: "Something went wrong. Try again.", Color: 0x99AAB5,
		})
		return
	}

	f.finishJobSelection(s, i, &discordgo.MessageEmbed{
		Title:       "You're hired",
		Description: fmt.Sprintf("You now work as a **%s**. Run /work to start a shift.", job.Name),
		Color:       0x57F287,
	})
}

// finishJobSelection edits the selection message into its terminal state.
func (f *Feature) finishJobSelection(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := common.UpdateMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating work message: %v", err)
	}
}

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}

	var newCash int64
	err := common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		var err error
		newCash, err = f.newWorkService(uow).Daily(ctx, discordID)
		return err
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error claiming daily for %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to claim daily reward. Please try again.")
		return
	}

	msg := fmt.Sprintf("Daily reward claimed: %s. Cash: %s.",
		common.FormatCoins(f.cfg.DailyAmount), common.FormatCoins(newCash))
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}

func (f *Feature) handleHire(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	targetID, err := common.UserOptionID(common.Options(i)["user"])
	if err != nil {
		log.Errorf("Error parsing target user: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if targetID == discordID {
		common.RespondWithError(s, i, "You can't hire yourself.")
		return
	}

	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newWorkService(uow).Hire(ctx, discordID, targetID)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error hiring %d for %d: %v", targetID, discordID, err)
		common.RespondWithError(s, i, "Unable to hire. Please try again.")
		return
	}

	msg := fmt.Sprintf("<@%d> now works for you.", targetID)
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to hire command: %v", err)
	}
}

func (f *Feature) handleFire(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, guildID, ok := parseIDs(s, i)
	if !ok {
		return
	}
	targetID, err := common.UserOptionID(common.Options(i)["user"])
	if err != nil {
		log.Errorf("Error parsing target user: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	err = common.WithGuildTx(ctx, f.uowFactory, guildID, func(uow interfaces.UnitOfWork) error {
		return f.newWorkService(uow).Fire(ctx, discordID, targetID)
	})
	if err != nil {
		if common.IsUserError(err) {
			common.RespondWithError(s, i, common.UserFacingMessage(err))
			return
		}
		log.Errorf("Error firing %d for %d: %v", targetID, discordID, err)
		common.RespondWithError(s, i, "Unable to fire. Please try again.")
		return
	}

	msg := fmt.Sprintf("<@%d> no longer works for you.", targetID)
	if err := common.RespondWithSuccess(s, i, msg, false); err != nil {
		log.Errorf("Error responding to fire command: %v", err)
	}
}
