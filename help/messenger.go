package help

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Messenger is the part of *discordgo.Session the menus talk to
type Messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

var _ Messenger = (*discordgo.Session)(nil)

// Invocation describes where and by whom help was asked for
type Invocation struct {
	GuildID   string
	ChannelID string
	AuthorID  string
	// MessageID is the invoking message, empty for slash commands
	MessageID string
	// Prefix and InvokedWith feed the ending note
	Prefix      string
	InvokedWith string
	// Interaction is set when help was invoked as a slash command
	Interaction *discordgo.Interaction
}

// isForbidden reports whether Discord refused the request for lack of
// permissions
func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusForbidden
}
