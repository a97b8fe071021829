package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"PrettyHelp/bot"
	"PrettyHelp/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/google/shlex"
)

// ErrNotCommand is returned for messages that do not invoke a command
var ErrNotCommand = errors.New("not a command")

// ParseInvocation splits a prefixed message into the lowercased command name
// and its arguments. Quotes group words. args[0] is the command as typed.
func ParseInvocation(content, prefix string) (string, []string, error) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, ErrNotCommand
	}

	args, err := shlex.Split(content)
	if err != nil {
		return "", nil, fmt.Errorf("split arguments: %w", err)
	}
	if len(args) == 0 {
		return "", nil, ErrNotCommand
	}

	name := strings.ToLower(strings.TrimPrefix(args[0], prefix))
	if name == "" {
		return "", nil, ErrNotCommand
	}
	return name, args, nil
}

// Dispatcher routes gateway events to registered handlers
type Dispatcher struct {
	Bot      *bot.Bot
	Registry *Registry
	Prefix   string
	// Limiter is optional
	Limiter *utils.RateLimiter
}

// HandleMessage runs the prefixed command a message invokes, if any
func (d *Dispatcher) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	name, args, err := ParseInvocation(m.Content, d.Prefix)
	if errors.Is(err, ErrNotCommand) {
		return
	}
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not read that command, check your quotes.")
		return
	}

	handler, exists := d.Registry.Handler(name)
	if !exists {
		return
	}
	info, _ := d.Registry.Resolve(name, false)
	if info.Name == "" {
		info.Name = name
	}

	if d.disabled(m.GuildID, info) {
		s.ChannelMessageSend(m.ChannelID, "This command is disabled in this server.")
		return
	}

	if d.Limiter != nil && !d.Limiter.Allow(m.Author.ID, info.Name) {
		wait := d.Limiter.RetryAfter(m.Author.ID, info.Name)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Slow down! Try again in %d seconds.", int(math.Ceil(wait.Seconds()))))
		return
	}

	handler(d.Bot, s, m, args)
}

// HandleInteraction runs the slash command an interaction invokes
func (d *Dispatcher) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	handler, exists := d.Registry.SlashHandler(i.ApplicationCommandData().Name)
	if !exists {
		return
	}
	handler(d.Bot, s, i)
}

// disabled reports whether the command or its category is disabled in the
// guild. Lookup errors leave the command enabled.
func (d *Dispatcher) disabled(guildID string, info CommandInfo) bool {
	if d.Bot == nil || d.Bot.Store == nil || guildID == "" {
		return false
	}

	disabled, err := d.Bot.Store.Disabled(context.Background(), guildID)
	if err != nil {
		log.Printf("Error getting disabled commands for guild %s: %v", guildID, err)
		return false
	}
	return disabled.Command(info.Name) || (info.Category != "" && disabled.Category(info.Category))
}
