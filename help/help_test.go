package help

import (
	"context"
	"errors"
	"strings"
	"testing"

	"PrettyHelp/commands"
	"PrettyHelp/store"

	"github.com/bwmarrin/discordgo"
)

type fakeFilter struct {
	disabled store.Disabled
	err      error
}

func (f fakeFilter) Disabled(ctx context.Context, guildID string) (store.Disabled, error) {
	return f.disabled, f.err
}

func testRegistry() *commands.Registry {
	r := commands.NewRegistry()
	r.RegisterModule(&commands.ModuleInfo{
		Name:        "General",
		Description: "Everyday commands",
		Category:    "General",
		Commands: []commands.CommandInfo{
			{Name: "ping", Aliases: []string{"p"}, Description: "Check latency"},
			{Name: "about", Description: "About the bot"},
			{Name: "secret", Description: "Hidden", Hidden: true},
		},
	})
	r.RegisterModule(&commands.ModuleInfo{
		Name:     "Admin",
		Category: "Admin",
		Commands: []commands.CommandInfo{
			{
				Name:        "config",
				Description: "Configure the bot",
				Subcommands: []commands.CommandInfo{
					{Name: "prefix", Description: "Change the prefix", Usage: "<prefix>"},
					{Name: "debug", Description: "Hidden switch", Hidden: true},
				},
			},
			{Name: "disable", Description: "Disable a command", Usage: "<command|category> <name>"},
		},
	})
	r.RegisterModule(&commands.ModuleInfo{
		Name:     "Help",
		Category: "Help",
		Commands: []commands.CommandInfo{{Name: "help", Aliases: []string{"h"}, Description: "Shows this message"}},
	})
	return r
}

func newTestHelp(t *testing.T, mutate func(*Options), filter Filter) *Help {
	t.Helper()
	opts := DefaultOptions()
	opts.Color = 0x123456
	if mutate != nil {
		mutate(&opts)
	}
	h, err := New(opts, testRegistry(), filter)
	if err != nil {
		t.Fatalf("new help: %v", err)
	}
	t.Cleanup(h.Close)
	return h
}

var testInvocation = Invocation{GuildID: "g1", ChannelID: "chan", AuthorID: "owner", Prefix: ".", InvokedWith: "help"}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"color too large", func(o *Options) { o.Color = 0x1000000 }},
		{"color negative", func(o *Options) { o.Color = -2 }},
		{"empty index title", func(o *Options) { o.IndexTitle = "" }},
		{"empty no category", func(o *Options) { o.NoCategory = "" }},
		{"bad template", func(o *Options) { o.EndingNote = "{{.Prefix" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if _, err := New(opts, testRegistry(), nil); !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestEndingNote(t *testing.T) {
	h := newTestHelp(t, nil, nil)
	note, err := h.EndingNote(Invocation{Prefix: "!", InvokedWith: "h"})
	if err != nil {
		t.Fatalf("ending note: %v", err)
	}
	want := "Type !h command for more info on a command.\nYou can also type !h category for more info on a category."
	if note != want {
		t.Fatalf("expected %q, got %q", want, note)
	}
}

func TestPagesBotHelp(t *testing.T) {
	h := newTestHelp(t, nil, nil)
	pages, err := h.Pages(context.Background(), testInvocation, nil)
	if err != nil {
		t.Fatalf("pages: %v", err)
	}

	// index, Admin, General; help is hidden next to other commands
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[1].Title != "Admin" || pages[2].Title != "General" {
		t.Fatalf("unexpected titles %q, %q", pages[1].Title, pages[2].Title)
	}
	if !strings.Contains(pages[2].Description, "Everyday commands") {
		t.Fatalf("module description missing: %q", pages[2].Description)
	}
	for _, f := range pages[2].Fields {
		if f.Name == "secret" {
			t.Fatal("hidden command listed")
		}
	}
	if strings.Contains(pages[1].Fields[0].Value, "debug") {
		t.Fatal("hidden subcommand listed")
	}
	if !strings.HasPrefix(pages[0].Footer.Text, "Type .help command") {
		t.Fatalf("unexpected footer %q", pages[0].Footer.Text)
	}
}

func TestPagesCategory(t *testing.T) {
	tests := []struct {
		query           string
		caseInsensitive bool
		found           bool
	}{
		{query: "General", found: true},
		{query: "general", found: true},
		{query: "GENERAL", found: true},
		{query: "Gen", caseInsensitive: true, found: false},
		{query: "generel", found: false},
	}

	for _, tt := range tests {
		h := newTestHelp(t, func(o *Options) { o.CaseInsensitive = tt.caseInsensitive }, nil)
		pages, err := h.Pages(context.Background(), testInvocation, []string{tt.query})
		if !tt.found {
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("%q: expected ErrNotFound, got %v", tt.query, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.query, err)
		}
		if len(pages) != 1 || pages[0].Title != "General" {
			t.Fatalf("%q: expected the General page, got %d pages", tt.query, len(pages))
		}
	}
}

func TestPagesCommand(t *testing.T) {
	h := newTestHelp(t, nil, nil)

	pages, err := h.Pages(context.Background(), testInvocation, []string{"p"})
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	page := pages[0]
	if page.Title != "ping" {
		t.Fatalf("alias should resolve to ping, got %q", page.Title)
	}
	if page.Fields[0].Name != "Aliases" || page.Fields[1].Value != "```.ping```" {
		t.Fatalf("unexpected fields %+v %+v", page.Fields[0], page.Fields[1])
	}
}

func TestPagesGroupAndSubcommand(t *testing.T) {
	h := newTestHelp(t, nil, nil)

	pages, err := h.Pages(context.Background(), testInvocation, []string{"config"})
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	group := pages[0]
	if len(group.Fields) != 1 || group.Fields[0].Name != "🔗 prefix" {
		t.Fatalf("expected only the visible subcommand, got %+v", group.Fields)
	}

	pages, err = h.Pages(context.Background(), testInvocation, []string{"config", "prefix"})
	if err != nil {
		t.Fatalf("subcommand: %v", err)
	}
	if pages[0].Title != "config prefix" {
		t.Fatalf("unexpected title %q", pages[0].Title)
	}
	if pages[0].Fields[0].Value != "```.config prefix <prefix>```" {
		t.Fatalf("unexpected usage %q", pages[0].Fields[0].Value)
	}
}

func TestPagesNotFound(t *testing.T) {
	h := newTestHelp(t, nil, nil)
	ctx := context.Background()

	_, err := h.Pages(ctx, testInvocation, []string{"pnig"})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Suggestion != "ping" {
		t.Fatalf("expected ping as suggestion, got %q", nf.Suggestion)
	}
	if err.Error() != "No command called \"pnig\" found.\nDid you mean `ping`?" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	_, err = h.Pages(ctx, testInvocation, []string{"zzzzzzzz"})
	if !errors.As(err, &nf) || nf.Suggestion != "" {
		t.Fatalf("distant queries get no suggestion, got %v", err)
	}

	_, err = h.Pages(ctx, testInvocation, []string{"secret"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("hidden commands are not found, got %v", err)
	}

	_, err = h.Pages(ctx, testInvocation, []string{"config", "debug"})
	if !errors.As(err, &nf) || nf.Parent != "config" {
		t.Fatalf("hidden subcommands are not found, got %v", err)
	}

	_, err = h.Pages(ctx, testInvocation, []string{"ping", "fast"})
	if !errors.As(err, &nf) || !nf.NoSubcommands {
		t.Fatalf("expected no subcommands error, got %v", err)
	}
	if err.Error() != `Command "ping" has no subcommands.` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestPagesDisabled(t *testing.T) {
	filter := fakeFilter{disabled: store.Disabled{
		Commands:   map[string]bool{"ping": true},
		Categories: map[string]bool{"admin": true},
	}}
	h := newTestHelp(t, nil, filter)
	ctx := context.Background()

	pages, err := h.Pages(ctx, testInvocation, nil)
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if len(pages) != 2 || pages[1].Title != "General" {
		t.Fatalf("disabled category still listed: %d pages", len(pages))
	}
	for _, f := range pages[1].Fields {
		if f.Name == "ping" {
			t.Fatal("disabled command listed")
		}
	}

	if _, err := h.Pages(ctx, testInvocation, []string{"ping"}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled for ping, got %v", err)
	}
	if _, err := h.Pages(ctx, testInvocation, []string{"config"}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled for a command in a disabled category, got %v", err)
	}
	if _, err := h.Pages(ctx, testInvocation, []string{"admin"}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled for the admin category, got %v", err)
	}

	// outside a guild nothing is disabled
	dm := testInvocation
	dm.GuildID = ""
	if _, err := h.Pages(ctx, dm, []string{"ping"}); err != nil {
		t.Fatalf("dm lookup: %v", err)
	}
}

func TestPagesFilterErrorShowsEverything(t *testing.T) {
	h := newTestHelp(t, nil, fakeFilter{err: errors.New("database is down")})
	pages, err := h.Pages(context.Background(), testInvocation, nil)
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected every category, got %d pages", len(pages))
	}
}

func TestSendNotFoundMessage(t *testing.T) {
	h := newTestHelp(t, nil, nil)
	m := &fakeMessenger{}

	if err := h.Send(context.Background(), m, testInvocation, []string{"nope"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(m.sent) != 1 || !strings.HasPrefix(m.sent[0].Content, `No command called "nope" found.`) {
		t.Fatalf("expected a not found message, got %+v", m.sent)
	}

	slash := testInvocation
	slash.Interaction = &discordgo.Interaction{}
	if err := h.Send(context.Background(), m, slash, []string{"nope"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp := lastResponse(m); resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Fatal("slash errors should be ephemeral")
	}
}

func TestSendDMAndDeleteInvoke(t *testing.T) {
	h := newTestHelp(t, func(o *Options) {
		o.DMHelp = true
		o.DeleteInvoke = true
	}, nil)
	m := &fakeMessenger{}

	inv := testInvocation
	inv.MessageID = "invoke"
	if err := h.Send(context.Background(), m, inv, nil); err != nil {
		t.Fatalf("send: %v", err)
	}

	m.snapshot(func(f *fakeMessenger) {
		if len(f.dmFor) != 1 || f.dmFor[0] != "owner" {
			t.Fatalf("expected a dm channel for owner, got %v", f.dmFor)
		}
		if len(f.sentTo) != 1 || f.sentTo[0] != "dm-owner" {
			t.Fatalf("expected help in the dm, got %v", f.sentTo)
		}
		if len(f.deleted) != 1 || f.deleted[0] != "invoke" {
			t.Fatalf("expected the invocation deleted, got %v", f.deleted)
		}
	})
	if h.Sessions().Len() != 1 {
		t.Fatalf("expected one running session, got %d", h.Sessions().Len())
	}
}

func TestSendWithEmojiMenu(t *testing.T) {
	menu, err := NewEmojiMenu(DefaultEmojiMenuOptions())
	if err != nil {
		t.Fatalf("emoji menu: %v", err)
	}
	h := newTestHelp(t, func(o *Options) { o.Menu = menu }, nil)
	m := &fakeMessenger{}

	if err := h.Send(context.Background(), m, testInvocation, nil); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(m.added) != 3 {
		t.Fatalf("expected navigation reactions, got %v", m.added)
	}
	if _, ok := h.Sessions().Get("msg-1"); !ok {
		t.Fatal("expected a session for the help message")
	}
}

func TestOnlyHelpIsListed(t *testing.T) {
	r := commands.NewRegistry()
	r.RegisterModule(&commands.ModuleInfo{
		Name:     "Help",
		Commands: []commands.CommandInfo{{Name: "help", Description: "Shows this message"}},
	})
	h, err := New(DefaultOptions(), r, nil)
	if err != nil {
		t.Fatalf("new help: %v", err)
	}

	pages, err := h.Pages(context.Background(), testInvocation, nil)
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if len(pages) != 2 || pages[1].Title != "No Category" || pages[1].Fields[0].Name != "help" {
		t.Fatalf("help should be listed when it is the only command")
	}
}

func TestModule(t *testing.T) {
	h := newTestHelp(t, nil, nil)
	module := h.Module()

	if module.Commands[0].Name != "help" || module.Commands[0].Aliases[0] != "h" {
		t.Fatalf("unexpected help command %+v", module.Commands[0])
	}
	slash := module.SlashCommands[0]
	if slash.Name != "help" || slash.Handler == nil || slash.Options[0].Name != "command" {
		t.Fatalf("unexpected slash command %+v", slash)
	}
}
