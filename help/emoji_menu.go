package help

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// EmojiMenuOptions configures reaction navigation
type EmojiMenuOptions struct {
	// ActiveTime is how long the menu stays active without a reaction
	ActiveTime time.Duration
	// DeleteAfterTimeout deletes the message when ActiveTime runs out,
	// otherwise only the navigation reactions are removed
	DeleteAfterTimeout bool
	Navigation         Navigation
	Wrap               bool
}

// DefaultEmojiMenuOptions returns 30 seconds of ◀ ▶ ❌ with wrap-around
func DefaultEmojiMenuOptions() EmojiMenuOptions {
	return EmojiMenuOptions{
		ActiveTime: 30 * time.Second,
		Navigation: DefaultNavigation,
		Wrap:       true,
	}
}

// EmojiMenu navigates pages with reactions added under the help message
type EmojiMenu struct {
	opts     EmojiMenuOptions
	sessions *SessionManager
}

// NewEmojiMenu validates the options and creates the menu
func NewEmojiMenu(opts EmojiMenuOptions) (*EmojiMenu, error) {
	if opts.ActiveTime <= 0 {
		return nil, fmt.Errorf("%w: active time must be positive, got %s", ErrInvalidOptions, opts.ActiveTime)
	}
	nav, err := opts.Navigation.normalize()
	if err != nil {
		return nil, err
	}
	opts.Navigation = nav

	return &EmojiMenu{opts: opts, sessions: NewSessionManager()}, nil
}

// Navigation returns the glyphs in API form
func (e *EmojiMenu) Navigation() Navigation {
	return e.opts.Navigation
}

// Sessions returns the running sessions, keyed by message ID
func (e *EmojiMenu) Sessions() *SessionManager {
	return e.sessions
}

// SendPages sends the first page and adds the navigation reactions
func (e *EmojiMenu) SendPages(ctx context.Context, m Messenger, inv Invocation, channelID string, pages []*discordgo.MessageEmbed) error {
	if len(pages) == 0 {
		return fmt.Errorf("send pages: no pages")
	}

	// Reaction menus live in a normal channel message, so a slash
	// invocation only gets a deferred response that is removed again
	if inv.Interaction != nil {
		err := m.InteractionRespond(inv.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}, discordgo.WithContext(ctx))
		if err != nil {
			log.Printf("Error deferring help interaction: %v", err)
		} else if err := m.InteractionResponseDelete(inv.Interaction, discordgo.WithContext(ctx)); err != nil {
			log.Printf("Error deleting deferred help response: %v", err)
		}
	}

	msg, err := m.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{pages[0]},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send help message: %w", err)
	}
	if len(pages) == 1 {
		return nil
	}

	// presses arriving while the glyphs are still being added are routed
	view := &emojiView{m: m, opts: e.opts}
	s, err := newSession(msg.ID, inv.AuthorID, channelID, msg.ID, pages, e.opts.ActiveTime, e.opts.Wrap, view)
	if err != nil {
		return err
	}
	e.sessions.Start(context.WithoutCancel(ctx), s)

	for _, glyph := range e.opts.Navigation.Glyphs() {
		if err := m.MessageReactionAdd(channelID, msg.ID, glyph, discordgo.WithContext(ctx)); err != nil {
			log.Printf("Error adding reaction %s: %v", glyph, err)
		}
	}
	return nil
}

// HandleReaction routes a reaction to its session. It reports whether the
// reaction was a navigation request from the session owner.
func (e *EmojiMenu) HandleReaction(m Messenger, r *discordgo.MessageReaction, selfID string) bool {
	if r.UserID == selfID {
		return false
	}

	s, exists := e.sessions.Get(r.MessageID)
	if !exists {
		return false
	}

	// Only allow the user who asked for help to navigate
	if r.UserID != s.OwnerID {
		return false
	}

	emoji := r.Emoji.APIName()
	action := e.opts.Navigation.Action(emoji)
	if action == ActionNone {
		return false
	}

	return s.Dispatch(Event{Action: action, UserID: r.UserID, Emoji: emoji})
}

type emojiView struct {
	m    Messenger
	opts EmojiMenuOptions
}

func (v *emojiView) show(ctx context.Context, s *Session, ev Event, index int, changed bool) {
	if changed {
		edit := discordgo.NewMessageEdit(s.ChannelID, s.MessageID).
			SetEmbeds([]*discordgo.MessageEmbed{s.Pages[index]})
		if _, err := v.m.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
			log.Printf("Error editing help message: %v", err)
		}
	}

	// Remove the user's reaction so the same arrow can be pressed again
	err := v.m.MessageReactionRemove(s.ChannelID, s.MessageID, ev.Emoji, ev.UserID, discordgo.WithContext(ctx))
	switch {
	case err == nil:
	case isForbidden(err):
		log.Printf("Missing permission to remove reactions in channel %s", s.ChannelID)
	default:
		log.Printf("Error removing reaction: %v", err)
	}
}

func (v *emojiView) close(ctx context.Context, s *Session, ev *Event, reason CloseReason) {
	if reason == CloseRequested || (reason == CloseTimeout && v.opts.DeleteAfterTimeout) {
		if err := v.m.ChannelMessageDelete(s.ChannelID, s.MessageID, discordgo.WithContext(ctx)); err != nil {
			log.Printf("Error deleting help message: %v", err)
		}
		return
	}

	for _, glyph := range v.opts.Navigation.Glyphs() {
		err := v.m.MessageReactionRemove(s.ChannelID, s.MessageID, glyph, "@me", discordgo.WithContext(ctx))
		if err != nil && !isForbidden(err) {
			log.Printf("Error removing reaction %s: %v", glyph, err)
		}
	}
}
