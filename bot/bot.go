package bot

import (
	"context"
	"fmt"

	"PrettyHelp/store"

	"github.com/bwmarrin/discordgo"
)

// Bot bundles the Discord session with the optional disabled-command store
type Bot struct {
	Client *discordgo.Session
	Store  *store.Store
}

// Intents needed for prefixed commands and reaction navigation
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsDirectMessageReactions |
	discordgo.IntentsMessageContent

// NewBot creates the Discord session and, when dbURL is set, opens and
// migrates the store.
func NewBot(token string, dbURL string) (*Bot, error) {
	client, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	client.Identify.Intents = Intents

	b := &Bot{Client: client}
	if dbURL == "" {
		return b, nil
	}

	st, err := store.Open(dbURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(context.Background()); err != nil {
		st.Close()
		return nil, err
	}
	b.Store = st
	return b, nil
}

// SelfID returns the bot user's ID once the session is ready
func (b *Bot) SelfID() string {
	if b.Client == nil || b.Client.State == nil || b.Client.State.User == nil {
		return ""
	}
	return b.Client.State.User.ID
}

// Close closes the store and the gateway connection
func (b *Bot) Close() error {
	var err error
	if b.Client != nil {
		err = b.Client.Close()
	}
	if b.Store != nil {
		if cerr := b.Store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
