// Package help renders the bot's commands as paginated embeds and lets the
// invoking user page through them with reactions or message components.
package help

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"text/template"

	"PrettyHelp/bot"
	"PrettyHelp/commands"
	"PrettyHelp/store"

	"github.com/agnivade/levenshtein"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNotFound is matched by every NotFoundError
	ErrNotFound = errors.New("help entry not found")
	// ErrDisabled is matched by every DisabledError
	ErrDisabled = errors.New("help entry disabled")
)

// NotFoundError is returned for a query that names no visible command,
// subcommand or category
type NotFoundError struct {
	Query string
	// Parent is the qualified name of the command searched for a subcommand
	Parent string
	// NoSubcommands is set when Parent has no subcommands at all
	NoSubcommands bool
	Suggestion    string
}

func (e *NotFoundError) Error() string {
	var msg string
	switch {
	case e.Parent == "":
		msg = fmt.Sprintf("No command called %q found.", e.Query)
	case e.NoSubcommands:
		msg = fmt.Sprintf("Command %q has no subcommands.", e.Parent)
	default:
		msg = fmt.Sprintf("Command %q has no subcommand named %s", e.Parent, e.Query)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf("\nDid you mean `%s`?", e.Suggestion)
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DisabledError is returned when the query names something disabled in the
// guild
type DisabledError struct {
	Name     string
	Category bool
}

func (e *DisabledError) Error() string {
	if e.Category {
		return fmt.Sprintf("The %s category is disabled in this server.", e.Name)
	}
	return fmt.Sprintf("The `%s` command is disabled in this server.", e.Name)
}

func (e *DisabledError) Is(target error) bool {
	return target == ErrDisabled
}

// CommandSource provides the commands to document
type CommandSource interface {
	Commands() []commands.CommandInfo
	Resolve(name string, fold bool) (commands.CommandInfo, bool)
}

// moduleSource is implemented by sources that know their modules, whose
// descriptions become category descriptions
type moduleSource interface {
	Modules() []*commands.ModuleInfo
}

// Filter reports what is disabled in a guild
type Filter interface {
	Disabled(ctx context.Context, guildID string) (store.Disabled, error)
}

// Help is the help command
type Help struct {
	opts   Options
	note   *template.Template
	source CommandSource
	filter Filter
	menu   Menu
}

// New validates opts and builds the help command. filter may be nil.
func New(opts Options, source CommandSource, filter Filter) (*Help, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	note, err := parseEndingNote(opts.EndingNote)
	if err != nil {
		return nil, err
	}

	menu := opts.Menu
	if menu == nil {
		menu, err = NewAppMenu(DefaultAppMenuOptions())
		if err != nil {
			return nil, err
		}
	}

	return &Help{
		opts:   opts,
		note:   note,
		source: source,
		filter: filter,
		menu:   menu,
	}, nil
}

// Options returns the configured options
func (h *Help) Options() Options {
	return h.opts
}

// Menu returns the menu pages are sent with
func (h *Help) Menu() Menu {
	return h.menu
}

// Sessions returns the running navigation sessions
func (h *Help) Sessions() *SessionManager {
	return h.menu.Sessions()
}

// Close disposes every running session
func (h *Help) Close() {
	h.menu.Sessions().CloseAll()
}

// EndingNote renders the ending note for an invocation
func (h *Help) EndingNote(inv Invocation) (string, error) {
	var b strings.Builder
	data := struct{ Prefix, InvokedWith string }{inv.Prefix, inv.InvokedWith}
	if err := h.note.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render ending note: %w", err)
	}
	return b.String(), nil
}

// Pages resolves a query into pages. An empty query documents every visible
// command, otherwise the first word names a category or a command and the
// rest walk down its subcommands.
func (h *Help) Pages(ctx context.Context, inv Invocation, query []string) ([]*discordgo.MessageEmbed, error) {
	disabled := h.disabled(ctx, inv.GuildID)

	note, err := h.EndingNote(inv)
	if err != nil {
		return nil, err
	}
	pageOpts := h.opts.PageOptions
	pageOpts.Footer = note

	cmds := h.visible(disabled)
	categories := GroupByCategory(cmds, h.opts.NoCategory, h.opts.SortCommands)
	h.describe(categories)

	if len(query) == 0 {
		return BuildPages(categories, pageOpts), nil
	}

	name := query[0]
	if len(query) == 1 {
		if c, found := h.findCategory(categories, name); found {
			p := newPaginator(pageOpts)
			p.addCategory(c)
			return p.render(false), nil
		}
		if disabled.Category(name) {
			return nil, &DisabledError{Name: name, Category: true}
		}
	}

	cmd, found := h.source.Resolve(name, h.opts.CaseInsensitive)
	if !found || cmd.Hidden {
		return nil, &NotFoundError{Query: name, Suggestion: h.suggest(name, categories)}
	}
	if disabled.Command(cmd.Name) {
		return nil, &DisabledError{Name: cmd.Name}
	}
	if cmd.Category != "" && disabled.Category(cmd.Category) {
		return nil, &DisabledError{Name: cmd.Category, Category: true}
	}

	qualified := cmd.Name
	cmd.Subcommands = visibleSubcommands(cmd.Subcommands)
	for _, q := range query[1:] {
		if !cmd.IsGroup() {
			return nil, &NotFoundError{Query: q, Parent: qualified, NoSubcommands: true}
		}
		sub, found := cmd.Subcommand(q, h.opts.CaseInsensitive)
		if !found {
			return nil, &NotFoundError{Query: q, Parent: qualified, Suggestion: suggestSubcommand(q, cmd.Subcommands)}
		}
		cmd = sub
		qualified += " " + sub.Name
	}

	p := newPaginator(pageOpts)
	if cmd.IsGroup() {
		p.addGroup(cmd, qualified)
	} else {
		p.addCommand(cmd, qualified, signature(inv.Prefix, qualified, cmd.Usage))
	}
	return p.render(false), nil
}

// Send resolves the query and sends the result through the menu. Unknown and
// disabled queries are answered with a plain message.
func (h *Help) Send(ctx context.Context, m Messenger, inv Invocation, query []string) error {
	channelID := inv.ChannelID
	if h.opts.DMHelp && inv.Interaction == nil {
		dm, err := m.UserChannelCreate(inv.AuthorID, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("open dm channel: %w", err)
		}
		channelID = dm.ID
	}

	if h.opts.DeleteInvoke && inv.MessageID != "" {
		if err := m.ChannelMessageDelete(inv.ChannelID, inv.MessageID, discordgo.WithContext(ctx)); err != nil {
			log.Printf("Error deleting help invocation: %v", err)
		}
	}

	pages, err := h.Pages(ctx, inv, query)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDisabled) {
		return h.sendError(ctx, m, inv, channelID, err)
	}
	if err != nil {
		return err
	}
	return h.menu.SendPages(ctx, m, inv, channelID, pages)
}

func (h *Help) sendError(ctx context.Context, m Messenger, inv Invocation, channelID string, cause error) error {
	if inv.Interaction != nil {
		err := m.InteractionRespond(inv.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: cause.Error(),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		}, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("respond with help error: %w", err)
		}
		return nil
	}

	_, err := m.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{Content: cause.Error()}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send help error: %w", err)
	}
	return nil
}

func (h *Help) disabled(ctx context.Context, guildID string) store.Disabled {
	if h.filter == nil || guildID == "" {
		return store.Disabled{}
	}
	d, err := h.filter.Disabled(ctx, guildID)
	if err != nil {
		log.Printf("Error getting disabled commands for guild %s: %v", guildID, err)
		return store.Disabled{}
	}
	return d
}

// visible drops hidden and disabled commands. help itself is only listed
// when there is nothing else to list.
func (h *Help) visible(disabled store.Disabled) []commands.CommandInfo {
	var cmds []commands.CommandInfo
	for _, cmd := range h.source.Commands() {
		if cmd.Hidden || disabled.Command(cmd.Name) {
			continue
		}
		if cmd.Category != "" && disabled.Category(cmd.Category) {
			continue
		}
		cmd.Subcommands = visibleSubcommands(cmd.Subcommands)
		cmds = append(cmds, cmd)
	}

	if len(cmds) > 1 {
		others := cmds[:0]
		for _, cmd := range cmds {
			if cmd.Name != "help" {
				others = append(others, cmd)
			}
		}
		cmds = others
	}
	return cmds
}

// describe fills category descriptions from the modules that declare them
func (h *Help) describe(categories []Category) {
	src, ok := h.source.(moduleSource)
	if !ok {
		return
	}
	descriptions := make(map[string]string)
	for _, module := range src.Modules() {
		if module.Category == "" || module.Description == "" {
			continue
		}
		if _, exists := descriptions[module.Category]; !exists {
			descriptions[module.Category] = module.Description
		}
	}
	for i := range categories {
		if categories[i].Description == "" {
			categories[i].Description = descriptions[categories[i].Name]
		}
	}
}

func (h *Help) findCategory(categories []Category, name string) (Category, bool) {
	titled := cases.Title(language.Und).String(name)
	for _, c := range categories {
		if c.Name == name || c.Name == titled {
			return c, true
		}
		if h.opts.CaseInsensitive && strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// suggest picks the closest command, alias or category name
func (h *Help) suggest(query string, categories []Category) string {
	var candidates []string
	for _, c := range categories {
		candidates = append(candidates, c.Name)
		for _, cmd := range c.Commands {
			candidates = append(candidates, cmd.Name)
			candidates = append(candidates, cmd.Aliases...)
		}
	}
	return closest(query, candidates)
}

func suggestSubcommand(query string, subs []commands.CommandInfo) string {
	candidates := make([]string, 0, len(subs))
	for _, sub := range subs {
		candidates = append(candidates, sub.Name)
		candidates = append(candidates, sub.Aliases...)
	}
	return closest(query, candidates)
}

// closest returns the candidate with the smallest edit distance, provided it
// is within a third of the query's length (at least 2)
func closest(query string, candidates []string) string {
	query = strings.ToLower(query)
	limit := max(2, len([]rune(query))/3)

	best, bestDistance := "", limit+1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(query, strings.ToLower(candidate))
		if d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

func signature(prefix, qualified, usage string) string {
	sig := prefix + qualified
	if usage != "" {
		sig += " " + usage
	}
	return sig
}

// Command is the prefixed help command handler. args[0] is the command as
// typed, the rest is the query.
func (h *Help) Command(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	invoked, query := "help", args
	if len(args) > 0 {
		invoked, query = strings.TrimPrefix(args[0], h.opts.Prefix), args[1:]
	}

	inv := Invocation{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		AuthorID:    m.Author.ID,
		MessageID:   m.ID,
		Prefix:      h.opts.Prefix,
		InvokedWith: invoked,
	}
	if err := h.Send(context.Background(), s, inv, query); err != nil {
		log.Printf("Error sending help: %v", err)
	}
}

// SlashCommand is the /help handler
func (h *Help) SlashCommand(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	var query []string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "command" {
			query = strings.Fields(opt.StringValue())
		}
	}

	inv := Invocation{
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		AuthorID:    interactionUser(i.Interaction),
		Prefix:      "/",
		InvokedWith: "help",
		Interaction: i.Interaction,
	}
	if err := h.Send(context.Background(), s, inv, query); err != nil {
		log.Printf("Error sending help: %v", err)
	}
}

// HandleReaction routes reactions to reaction menus
func (h *Help) HandleReaction(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	menu, ok := h.menu.(reactionMenu)
	if !ok || s.State == nil || s.State.User == nil {
		return
	}
	menu.HandleReaction(s, r.MessageReaction, s.State.User.ID)
}

// HandleInteraction routes component presses to component menus
func (h *Help) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	menu, ok := h.menu.(componentMenu)
	if !ok {
		return
	}
	menu.HandleComponent(s, i.Interaction)
}

// Module describes the help command for registration
func (h *Help) Module() *commands.ModuleInfo {
	return &commands.ModuleInfo{
		Name:        "Help",
		Description: "Paginated help for every command",
		Version:     "1.0.0",
		Author:      "PrettyHelp",
		Category:    "Help",
		Commands: []commands.CommandInfo{
			{
				Name:        "help",
				Aliases:     []string{"h"},
				Description: "Shows this message",
				Help:        "Give a category or a command, with subcommands, for details.",
				Usage:       "[category|command] [subcommand...]",
			},
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "help",
				Description: "Shows help for the bot's commands",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "command",
						Description: "Category, command or group and subcommand",
						Required:    false,
					},
				},
				Handler: h.SlashCommand,
			},
		},
	}
}
