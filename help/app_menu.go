package help

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const componentPrefix = "pretty_help"

// component actions encoded in custom IDs
const (
	componentPrevious = "previous"
	componentNext     = "next"
	componentDelete   = "delete"
	componentSelect   = "select"
)

// ephemeralTimeout bounds private menus configured without a timeout.
// Interaction tokens expire after 15 minutes and an ephemeral message
// cannot be edited or deleted after that.
const ephemeralTimeout = 14 * time.Minute

// Discord component limits
const (
	selectOptionLimit = 25
	selectTextLimit   = 100
)

// AppMenuOptions configures button navigation
type AppMenuOptions struct {
	// Timeout is the inactivity window. Zero keeps public controls forever,
	// ephemeral menus then close after ephemeralTimeout.
	Timeout time.Duration
	// Ephemeral answers slash invocations privately and hides Delete
	Ephemeral bool
	Wrap      bool
}

// DefaultAppMenuOptions returns a public menu without timeout that wraps
func DefaultAppMenuOptions() AppMenuOptions {
	return AppMenuOptions{Wrap: true}
}

// AppMenu navigates pages with Previous/Next/Delete buttons and a page
// select menu
type AppMenu struct {
	opts     AppMenuOptions
	sessions *SessionManager
}

// NewAppMenu validates the options and creates the menu
func NewAppMenu(opts AppMenuOptions) (*AppMenu, error) {
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("%w: timeout must not be negative, got %s", ErrInvalidOptions, opts.Timeout)
	}
	return &AppMenu{opts: opts, sessions: NewSessionManager()}, nil
}

// Sessions returns the running sessions, keyed by component token
func (a *AppMenu) Sessions() *SessionManager {
	return a.sessions
}

func componentID(action, token string) string {
	return componentPrefix + ":" + action + ":" + token
}

func parseComponentID(id string) (action, token string, ok bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[0] != componentPrefix {
		return "", "", false
	}
	switch parts[1] {
	case componentPrevious, componentNext, componentDelete, componentSelect:
		return parts[1], parts[2], true
	}
	return "", "", false
}

// components builds the controls for the page at index
func (a *AppMenu) components(token string, pages []*discordgo.MessageEmbed, index int, ephemeral bool) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	if len(pages) > 1 {
		buttons = append(buttons,
			discordgo.Button{
				Label:    "Previous",
				Style:    discordgo.SuccessButton,
				CustomID: componentID(componentPrevious, token),
			},
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.PrimaryButton,
				CustomID: componentID(componentNext, token),
			},
		)
	}
	if !ephemeral {
		buttons = append(buttons, discordgo.Button{
			Label:    "Delete",
			Style:    discordgo.DangerButton,
			CustomID: componentID(componentDelete, token),
		})
	}

	var rows []discordgo.MessageComponent
	if len(buttons) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}

	if len(pages) > 1 && len(pages) <= selectOptionLimit {
		options := make([]discordgo.SelectMenuOption, 0, len(pages))
		for i, page := range pages {
			label := page.Title
			if label == "" {
				label = fmt.Sprintf("Page %d", i+1)
			}
			description := strings.ReplaceAll(page.Description, "`", "")
			if description == "" {
				description = noDescription
			}
			options = append(options, discordgo.SelectMenuOption{
				Label:       truncate(label, selectTextLimit),
				Value:       strconv.Itoa(i),
				Description: truncate(description, selectTextLimit),
				Default:     i == index,
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType: discordgo.StringSelectMenu,
				CustomID: componentID(componentSelect, token),
				Options:  options,
			},
		}})
	}
	return rows
}

// SendPages answers the interaction, or sends to channelID for prefixed
// invocations, with the first page and its controls
func (a *AppMenu) SendPages(ctx context.Context, m Messenger, inv Invocation, channelID string, pages []*discordgo.MessageEmbed) error {
	if len(pages) == 0 {
		return fmt.Errorf("send pages: no pages")
	}

	token := uuid.NewString()
	ephemeral := a.opts.Ephemeral && inv.Interaction != nil
	components := a.components(token, pages, 0, ephemeral)

	var messageID string
	if inv.Interaction != nil {
		data := &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{pages[0]},
			Components: components,
		}
		if ephemeral {
			data.Flags = discordgo.MessageFlagsEphemeral
		}
		err := m.InteractionRespond(inv.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("respond with help: %w", err)
		}
		channelID = inv.Interaction.ChannelID
	} else {
		msg, err := m.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{pages[0]},
			Components: components,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("send help message: %w", err)
		}
		messageID = msg.ID
	}

	// With a single page only Delete is shown, which works without a session
	if len(pages) == 1 {
		return nil
	}

	view := &appView{m: m, menu: a, token: token, ephemeral: ephemeral, origin: inv.Interaction}
	timeout := a.opts.Timeout
	if ephemeral && timeout == 0 {
		timeout = ephemeralTimeout
	}
	s, err := newSession(token, inv.AuthorID, channelID, messageID, pages, timeout, a.opts.Wrap, view)
	if err != nil {
		return err
	}
	a.sessions.Start(context.WithoutCancel(ctx), s)
	return nil
}

// HandleComponent routes a component press to its session. It reports
// whether the interaction belonged to a help menu; every such interaction is
// answered.
func (a *AppMenu) HandleComponent(m Messenger, i *discordgo.Interaction) bool {
	if i.Type != discordgo.InteractionMessageComponent {
		return false
	}
	data := i.MessageComponentData()
	action, token, ok := parseComponentID(data.CustomID)
	if !ok {
		return false
	}

	s, exists := a.sessions.Get(token)
	if !exists {
		a.handleStale(m, i, action)
		return true
	}

	if interactionUser(i) != s.OwnerID {
		err := m.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Only the user who asked for help can use these controls.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			log.Printf("Error refusing help interaction: %v", err)
		}
		return true
	}

	ev := Event{UserID: interactionUser(i), Interaction: i}
	switch action {
	case componentPrevious:
		ev.Action = ActionPrev
	case componentNext:
		ev.Action = ActionNext
	case componentDelete:
		ev.Action = ActionClose
	case componentSelect:
		ev.Action = ActionJump
		ev.Page = -1
		if len(data.Values) > 0 {
			if page, err := strconv.Atoi(data.Values[0]); err == nil {
				ev.Page = page
			}
		}
	}

	if !s.Dispatch(ev) {
		a.handleStale(m, i, action)
	}
	return true
}

// handleStale answers a press on a message whose session is gone. Delete
// still works, anything else strips the controls.
func (a *AppMenu) handleStale(m Messenger, i *discordgo.Interaction, action string) {
	if action == componentDelete {
		deleteComponentMessage(context.Background(), m, i)
		return
	}

	var embeds []*discordgo.MessageEmbed
	if i.Message != nil {
		embeds = i.Message.Embeds
	}
	err := m.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Printf("Error removing stale help controls: %v", err)
	}
}

func deleteComponentMessage(ctx context.Context, m Messenger, i *discordgo.Interaction) {
	err := m.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Printf("Error acknowledging help delete: %v", err)
	}
	if i.Message == nil {
		return
	}
	if err := m.ChannelMessageDelete(i.ChannelID, i.Message.ID, discordgo.WithContext(ctx)); err != nil {
		log.Printf("Error deleting help message: %v", err)
	}
}

type appView struct {
	m         Messenger
	menu      *AppMenu
	token     string
	ephemeral bool
	// origin is the slash invocation the menu answered, if any
	origin *discordgo.Interaction
}

func (v *appView) show(ctx context.Context, s *Session, ev Event, index int, changed bool) {
	if ev.Interaction == nil {
		return
	}

	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	if changed {
		resp = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{s.Pages[index]},
				Components: v.menu.components(v.token, s.Pages, index, v.ephemeral),
			},
		}
	}
	if err := v.m.InteractionRespond(ev.Interaction, resp, discordgo.WithContext(ctx)); err != nil {
		log.Printf("Error updating help message: %v", err)
	}
}

func (v *appView) close(ctx context.Context, s *Session, ev *Event, reason CloseReason) {
	if ev != nil && ev.Interaction != nil {
		deleteComponentMessage(ctx, v.m, ev.Interaction)
		return
	}

	// Timed out or disposed: leave the page, drop the controls
	none := []discordgo.MessageComponent{}
	if v.origin != nil {
		_, err := v.m.InteractionResponseEdit(v.origin, &discordgo.WebhookEdit{Components: &none}, discordgo.WithContext(ctx))
		if err != nil {
			log.Printf("Error removing help controls: %v", err)
		}
		return
	}

	edit := &discordgo.MessageEdit{ID: s.MessageID, Channel: s.ChannelID, Components: &none}
	if _, err := v.m.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		log.Printf("Error removing help controls: %v", err)
	}
}
