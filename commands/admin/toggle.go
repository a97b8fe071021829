package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"PrettyHelp/bot"
	"PrettyHelp/commands"
	"PrettyHelp/store"
	"PrettyHelp/utils"

	"github.com/bwmarrin/discordgo"
)

// protected commands can never be disabled
var protected = map[string]bool{
	"help":    true,
	"enable":  true,
	"disable": true,
}

var (
	errUnknownTarget = errors.New("unknown target")
	errProtected     = errors.New("protected")
)

// DisableCommand disables a command or category in the current server
func DisableCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	kind, name, ok := toggleArgs(b, s, m, args, "disable")
	if !ok {
		return
	}

	target, err := resolveTarget(commands.Default, kind, name)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, targetMessage(kind, name, err))
		return
	}

	if err := b.Store.Disable(context.Background(), m.GuildID, target, kind); err != nil {
		log.Printf("Error disabling %s %s for guild %s: %v", kind, target, m.GuildID, err)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Error disabling %s.", kind))
		return
	}

	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Successfully disabled %s `%s`.", kind, target))
}

// EnableCommand re-enables a disabled command or category in the current server
func EnableCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	kind, name, ok := toggleArgs(b, s, m, args, "enable")
	if !ok {
		return
	}

	// unknown names are still removed so stale entries can be cleaned up
	target := name
	if resolved, err := resolveTarget(commands.Default, kind, name); err == nil || errors.Is(err, errProtected) {
		target = resolved
	}

	removed, err := b.Store.Enable(context.Background(), m.GuildID, target, kind)
	if err != nil {
		log.Printf("Error enabling %s %s for guild %s: %v", kind, target, m.GuildID, err)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Error enabling %s.", kind))
		return
	}

	if !removed {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("%s `%s` was not disabled.", titleKind(kind), target))
		return
	}
	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Successfully enabled %s `%s`.", kind, target))
}

// toggleArgs checks the caller and parses "<command|category> <name>"
func toggleArgs(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string, verb string) (store.Kind, string, bool) {
	if m.GuildID == "" {
		s.ChannelMessageSend(m.ChannelID, "This command only works in a server.")
		return "", "", false
	}

	isAdmin, err := utils.IsGuildAdmin(s.State, m.GuildID, m.Author.ID)
	if err != nil {
		log.Printf("Error checking admin status for user %s in guild %s: %v", m.Author.ID, m.GuildID, err)
		s.ChannelMessageSend(m.ChannelID, "Error checking admin status.")
		return "", "", false
	}
	if !isAdmin {
		s.ChannelMessageSend(m.ChannelID, "You must be an administrator to use this command.")
		return "", "", false
	}

	if b == nil || b.Store == nil {
		s.ChannelMessageSend(m.ChannelID, "No database is configured, commands cannot be toggled.")
		return "", "", false
	}

	if len(args) < 3 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Usage: `%s command <command>` or `%s category <category>`", args[0], args[0]))
		return "", "", false
	}

	kind, err := store.ParseKind(args[1])
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Invalid type. Use 'command' or 'category'.")
		return "", "", false
	}
	return kind, strings.Join(args[2:], " "), true
}

// resolveTarget returns the registered name for a command or category.
// The name is returned alongside errProtected.
func resolveTarget(r *commands.Registry, kind store.Kind, name string) (string, error) {
	switch kind {
	case store.KindCommand:
		cmd, found := r.Resolve(name, true)
		if !found {
			return "", errUnknownTarget
		}
		if protected[cmd.Name] {
			return cmd.Name, errProtected
		}
		return cmd.Name, nil

	case store.KindCategory:
		category := ""
		holdsProtected := false
		for _, cmd := range r.Commands() {
			if !strings.EqualFold(cmd.Category, name) {
				continue
			}
			category = cmd.Category
			if protected[cmd.Name] {
				holdsProtected = true
			}
		}
		if category == "" {
			return "", errUnknownTarget
		}
		if holdsProtected {
			return category, errProtected
		}
		return category, nil
	}
	return "", fmt.Errorf("%w: %q", store.ErrUnknownKind, kind)
}

func targetMessage(kind store.Kind, name string, err error) string {
	switch {
	case errors.Is(err, errProtected) && kind == store.KindCategory:
		return "You cannot disable a category that holds help, enable or disable."
	case errors.Is(err, errProtected):
		return "You cannot disable this command."
	case errors.Is(err, errUnknownTarget):
		return fmt.Sprintf("Invalid %s `%s`.", kind, name)
	}
	return "Invalid type. Use 'command' or 'category'."
}

func titleKind(kind store.Kind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
