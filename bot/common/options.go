package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Options flattens top-level command options into a map by name
func Options(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// Subcommand returns the invoked subcommand name and its options
func Subcommand(i *discordgo.InteractionCreate) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 0 || opts[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", nil
	}
	sub := opts[0]
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		m[opt.Name] = opt
	}
	return sub.Name, m
}

// MemberID parses the invoking member's Discord ID
func MemberID(i *discordgo.InteractionCreate) (int64, error) {
	if i.Member == nil || i.Member.User == nil {
		return 0, fmt.Errorf("interaction has no member")
	}
	id, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse member ID %q: %w", i.Member.User.ID, err)
	}
	return id, nil
}

// GuildID parses the interaction's guild ID
func GuildID(i *discordgo.InteractionCreate) (int64, error) {
	id, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse guild ID %q: %w", i.GuildID, err)
	}
	return id, nil
}

// UserOptionID parses a user option's Discord ID
func UserOptionID(opt *discordgo.ApplicationCommandInteractionDataOption) (int64, error) {
	user := opt.UserValue(nil)
	if user == nil {
		return 0, fmt.Errorf("option has no user value")
	}
	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse user ID %q: %w", user.ID, err)
	}
	return id, nil
}
