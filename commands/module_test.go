package commands

import (
	"testing"

	"PrettyHelp/bot"

	"github.com/bwmarrin/discordgo"
)

func testModules() *Registry {
	r := NewRegistry()
	r.RegisterModule(&ModuleInfo{
		Name:     "General",
		Category: "General",
		Commands: []CommandInfo{
			{Name: "ping", Aliases: []string{"p"}},
			{Name: "about", Category: "Info"},
		},
		SlashCommands: []SlashCommandInfo{{Name: "ping", Description: "Check latency"}},
	})
	r.RegisterModule(&ModuleInfo{
		Name:     "Admin",
		Category: "Admin",
		Commands: []CommandInfo{
			{
				Name: "config",
				Subcommands: []CommandInfo{
					{Name: "prefix", Aliases: []string{"pre"}, Subcommands: []CommandInfo{{Name: "reset"}}},
					{Name: "debug"},
				},
			},
		},
	})
	return r
}

func TestRegistryKeepsOrderAndCategory(t *testing.T) {
	r := testModules()
	cmds := r.Commands()

	want := []struct{ name, category string }{
		{"ping", "General"},
		{"about", "Info"},
		{"config", "Admin"},
	}
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(cmds))
	}
	for i, w := range want {
		if cmds[i].Name != w.name || cmds[i].Category != w.category {
			t.Fatalf("command %d = %s/%s, want %s/%s", i, cmds[i].Name, cmds[i].Category, w.name, w.category)
		}
	}
	if len(r.Modules()) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(r.Modules()))
	}
}

func TestRegistryResolve(t *testing.T) {
	r := testModules()

	tests := []struct {
		name  string
		fold  bool
		want  string
		found bool
	}{
		{name: "ping", want: "ping", found: true},
		{name: "p", want: "ping", found: true},
		{name: "PING", found: false},
		{name: "PING", fold: true, want: "ping", found: true},
		{name: "P", fold: true, want: "ping", found: true},
		{name: "nope", fold: true, found: false},
	}
	for _, tt := range tests {
		cmd, found := r.Resolve(tt.name, tt.fold)
		if found != tt.found || cmd.Name != tt.want {
			t.Fatalf("Resolve(%q, %v) = %q, %v", tt.name, tt.fold, cmd.Name, found)
		}
	}
}

func TestRegistryHandlers(t *testing.T) {
	r := testModules()
	r.RegisterCommand("ping", nil, "pong")

	if _, ok := r.Handler("pong"); !ok {
		t.Fatal("handler alias not registered")
	}
	if _, ok := r.Handler("about"); ok {
		t.Fatal("about has no handler")
	}
	if _, ok := r.SlashHandler("ping"); ok {
		t.Fatal("slash command without handler should not resolve")
	}

	cmds := r.SlashCommands()
	if len(cmds) != 1 || cmds[0].Name != "ping" || cmds[0].Description != "Check latency" {
		t.Fatalf("unexpected slash commands %+v", cmds)
	}

	r.RegisterSlash(SlashCommandInfo{Name: "ping", Description: "Latency", Handler: func(*bot.Bot, *discordgo.Session, *discordgo.InteractionCreate) {}})
	if _, ok := r.SlashHandler("ping"); !ok {
		t.Fatal("replaced slash command should resolve")
	}
	if len(r.SlashCommands()) != 1 {
		t.Fatal("replacing a slash command must not duplicate it")
	}
}

func TestCommandInfoHelpers(t *testing.T) {
	cmd := CommandInfo{Name: "x", Help: "\n  First line\nsecond line"}
	if cmd.ShortDoc() != "First line" {
		t.Fatalf("unexpected short doc %q", cmd.ShortDoc())
	}
	cmd.Description = "Described"
	if cmd.ShortDoc() != "Described" {
		t.Fatalf("description should win, got %q", cmd.ShortDoc())
	}

	config, _ := testModules().Resolve("config", false)
	if !config.IsGroup() {
		t.Fatal("config is a group")
	}
	if sub, ok := config.Subcommand("PRE", true); !ok || sub.Name != "prefix" {
		t.Fatalf("subcommand alias lookup failed: %q %v", sub.Name, ok)
	}
	if _, ok := config.Subcommand("PRE", false); ok {
		t.Fatal("case sensitive lookup should fail")
	}

	var visited []string
	var depths []int
	config.Walk(func(qualified string, _ CommandInfo, depth int) {
		visited = append(visited, qualified)
		depths = append(depths, depth)
	})
	want := []string{"config prefix", "config prefix reset", "config debug"}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("walk order %q, want %q", visited, want)
		}
	}
	if depths[0] != 1 || depths[1] != 2 || depths[2] != 1 {
		t.Fatalf("unexpected depths %v", depths)
	}
}
