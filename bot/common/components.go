package common

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ComponentResponse is one button or select press routed to an armed
// collector. Session and Interaction let the awaiting flow edit the
// prompt message. Values carries the selection of a select menu.
type ComponentResponse struct {
	UserID      int64
	Action      string
	Values      []string
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

// OwnerAction builds a collector predicate that accepts only the flow
// owner pressing one of the listed actions. Presses by anyone else
// never qualify, so a stranger cannot resolve another user's prompt.
func OwnerAction(ownerID int64, actions ...string) func(ComponentResponse) bool {
	return func(r ComponentResponse) bool {
		if r.UserID != ownerID {
			return false
		}
		for _, action := range actions {
			if r.Action == action {
				return true
			}
		}
		return false
	}
}

// ComponentID builds a custom ID of the form "prefix:ownerID:action".
// The prefix doubles as the collector registry key together with the
// owner, so concurrent flows by different users never cross wires.
func ComponentID(prefix string, ownerID int64, action string) string {
	return fmt.Sprintf("%s:%d:%s", prefix, ownerID, action)
}

// ParseComponentID splits a custom ID produced by ComponentID. ok is
// false for IDs that belong to other handlers.
func ParseComponentID(customID string) (prefix string, ownerID string, action string, ok bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// CollectorKey is the registry key for a flow owned by one user.
func CollectorKey(prefix string, ownerID int64) string {
	return fmt.Sprintf("%s:%d", prefix, ownerID)
}
