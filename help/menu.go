package help

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Menu sends a set of pages and drives their navigation
type Menu interface {
	// SendPages sends the first page to channelID, or answers
	// inv.Interaction, and starts a session when there is more than one page
	SendPages(ctx context.Context, m Messenger, inv Invocation, channelID string, pages []*discordgo.MessageEmbed) error
	// Sessions returns the menu's running sessions
	Sessions() *SessionManager
}

// reactionMenu is a menu navigated with reactions
type reactionMenu interface {
	HandleReaction(m Messenger, r *discordgo.MessageReaction, selfID string) bool
}

// componentMenu is a menu navigated with message components
type componentMenu interface {
	HandleComponent(m Messenger, i *discordgo.Interaction) bool
}

// interactionUser returns the user behind an interaction in a guild or a DM
func interactionUser(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
