package commands

import (
	"strings"
	"sync"

	"PrettyHelp/bot"

	"github.com/bwmarrin/discordgo"
)

// CommandFunc defines the signature for command handlers
type CommandFunc func(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// SlashFunc defines the signature for slash command handlers
type SlashFunc func(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate)

// CommandInfo holds detailed information about a command
type CommandInfo struct {
	Name        string        `json:"name"`
	Aliases     []string      `json:"aliases"`
	Description string        `json:"description"`
	Help        string        `json:"help"`
	Usage       string        `json:"usage"`
	Category    string        `json:"category"`
	Hidden      bool          `json:"hidden"`
	Subcommands []CommandInfo `json:"subcommands"`
}

// ShortDoc returns the first line of the description, or of the help text when
// there is no description.
func (c CommandInfo) ShortDoc() string {
	doc := c.Description
	if doc == "" {
		doc = c.Help
	}
	first, _, _ := strings.Cut(strings.TrimSpace(doc), "\n")
	return strings.TrimSpace(first)
}

// IsGroup reports whether the command has subcommands.
func (c CommandInfo) IsGroup() bool {
	return len(c.Subcommands) > 0
}

// Subcommand looks up a direct subcommand by name or alias.
func (c CommandInfo) Subcommand(name string, fold bool) (CommandInfo, bool) {
	for _, sub := range c.Subcommands {
		if matchName(sub.Name, name, fold) {
			return sub, true
		}
		for _, alias := range sub.Aliases {
			if matchName(alias, name, fold) {
				return sub, true
			}
		}
	}
	return CommandInfo{}, false
}

// Walk visits every subcommand depth first. qualified is the space separated
// path from c down to the visited command.
func (c CommandInfo) Walk(fn func(qualified string, cmd CommandInfo, depth int)) {
	var walk func(prefix string, cmds []CommandInfo, depth int)
	walk = func(prefix string, cmds []CommandInfo, depth int) {
		for _, sub := range cmds {
			qualified := prefix + " " + sub.Name
			fn(qualified, sub, depth)
			walk(qualified, sub.Subcommands, depth+1)
		}
	}
	walk(c.Name, c.Subcommands, 1)
}

// SlashCommandInfo holds information about slash commands
type SlashCommandInfo struct {
	Name        string                                `json:"name"`
	Description string                                `json:"description"`
	Options     []*discordgo.ApplicationCommandOption `json:"options"`
	Handler     SlashFunc                             `json:"-"`
}

// ModuleInfo represents a complete module with its commands and metadata
type ModuleInfo struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Version       string             `json:"version"`
	Author        string             `json:"author"`
	Category      string             `json:"category"`
	Commands      []CommandInfo      `json:"commands"`
	SlashCommands []SlashCommandInfo `json:"slash_commands"`
}

// Registry holds the registered modules, command details and handlers.
// Commands keep their registration order.
type Registry struct {
	mu       sync.RWMutex
	modules  []*ModuleInfo
	order    []string
	details  map[string]CommandInfo
	handlers map[string]CommandFunc
	aliases  map[string]string
	slash    map[string]SlashCommandInfo
	slashSeq []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		details:  make(map[string]CommandInfo),
		handlers: make(map[string]CommandFunc),
		aliases:  make(map[string]string),
		slash:    make(map[string]SlashCommandInfo),
	}
}

// Default is the registry modules register themselves into from init.
var Default = NewRegistry()

// RegisterModule registers a module with the default registry
func RegisterModule(module *ModuleInfo) {
	Default.RegisterModule(module)
}

// RegisterCommand registers a command handler with the default registry
func RegisterCommand(name string, handler CommandFunc, aliases ...string) {
	Default.RegisterCommand(name, handler, aliases...)
}

// RegisterModule registers a complete module and compiles its command info.
// Commands without a category inherit the module's category.
func (r *Registry) RegisterModule(module *ModuleInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules = append(r.modules, module)

	for _, cmd := range module.Commands {
		if cmd.Category == "" {
			cmd.Category = module.Category
		}
		if _, exists := r.details[cmd.Name]; !exists {
			r.order = append(r.order, cmd.Name)
		}
		r.details[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			r.aliases[alias] = cmd.Name
		}
	}

	for _, slashCmd := range module.SlashCommands {
		if _, exists := r.slash[slashCmd.Name]; !exists {
			r.slashSeq = append(r.slashSeq, slashCmd.Name)
		}
		r.slash[slashCmd.Name] = slashCmd
	}
}

// RegisterCommand registers a handler for a command name and its aliases
func (r *Registry) RegisterCommand(name string, handler CommandFunc, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[name] = handler
	for _, alias := range aliases {
		r.aliases[alias] = name
	}
}

// RegisterSlash registers or replaces a single slash command outside of a module
func (r *Registry) RegisterSlash(info SlashCommandInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.slash[info.Name]; !exists {
		r.slashSeq = append(r.slashSeq, info.Name)
	}
	r.slash[info.Name] = info
}

// Commands returns every registered command in registration order
func (r *Registry) Commands() []CommandInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]CommandInfo, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.details[name])
	}
	return cmds
}

// Modules returns the registered modules in registration order
func (r *Registry) Modules() []*ModuleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*ModuleInfo(nil), r.modules...)
}

// Resolve finds a command by name or alias. With fold set the comparison
// ignores case.
func (r *Registry) Resolve(name string, fold bool) (CommandInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if actual, isAlias := r.aliases[name]; isAlias {
		name = actual
	}
	if cmd, exists := r.details[name]; exists {
		return cmd, true
	}
	if !fold {
		return CommandInfo{}, false
	}

	for _, cmdName := range r.order {
		if strings.EqualFold(cmdName, name) {
			return r.details[cmdName], true
		}
	}
	for alias, actual := range r.aliases {
		if strings.EqualFold(alias, name) {
			cmd, exists := r.details[actual]
			return cmd, exists
		}
	}
	return CommandInfo{}, false
}

// Handler returns the handler registered for a command name or alias
func (r *Registry) Handler(name string) (CommandFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if actual, isAlias := r.aliases[name]; isAlias {
		name = actual
	}
	handler, exists := r.handlers[name]
	return handler, exists
}

// SlashHandler returns the handler for a slash command
func (r *Registry) SlashHandler(name string) (SlashFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, exists := r.slash[name]
	if !exists || info.Handler == nil {
		return nil, false
	}
	return info.Handler, true
}

// SlashCommands returns all registered slash commands for registration
func (r *Registry) SlashCommands() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]*discordgo.ApplicationCommand, 0, len(r.slashSeq))
	for _, name := range r.slashSeq {
		info := r.slash[name]
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        info.Name,
			Description: info.Description,
			Options:     info.Options,
		})
	}
	return cmds
}

func matchName(have, want string, fold bool) bool {
	if fold {
		return strings.EqualFold(have, want)
	}
	return have == want
}
