package main

import (
	"bytes"
	"strings"
	"testing"

	"PrettyHelp/commands"
	"PrettyHelp/config"

	"github.com/bwmarrin/discordgo"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "```\nping\n```", want: "ping"},
		{in: "```inline```", want: "inline"},
		{in: "plain\ntext", want: "plain\ntext"},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Fatalf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderEmbed(t *testing.T) {
	embed := &discordgo.MessageEmbed{
		Title:       "General",
		Description: "Everyday commands",
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ping", Value: "```\nShows the gateway latency\n```"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Page: 1/2"},
	}

	out := renderEmbed(embed, 60)
	for _, want := range []string{"General", "Everyday commands", "ping", "Shows the gateway latency", "Page: 1/2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered embed is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "```") {
		t.Fatalf("code fences were not stripped:\n%s", out)
	}
}

func testModuleList() []*commands.ModuleInfo {
	return []*commands.ModuleInfo{
		{
			Name:     "Admin",
			Version:  "1.0.0",
			Category: "Admin",
			Commands: []commands.CommandInfo{
				{Name: "config", Description: "Settings", Subcommands: []commands.CommandInfo{{Name: "prefix", Description: "Change prefix"}}},
			},
		},
		{
			Name:     "General",
			Version:  "1.0.0",
			Category: "General",
			Commands: []commands.CommandInfo{
				{Name: "ping", Aliases: []string{"latency"}, Description: "Pong"},
				{Name: "roll", Category: "Fun", Usage: "<sides>"},
			},
		},
	}
}

func TestDisplayModulesAndCommands(t *testing.T) {
	var buf bytes.Buffer
	displayModulesAndCommands(&buf, ".", testModuleList())
	out := buf.String()

	for _, want := range []string{".ping (latency) - Pong", "🔗 .config prefix - Change prefix", "📊 Summary: 2 modules, 3 commands"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayCommandsGroupsByCategory(t *testing.T) {
	var buf bytes.Buffer
	displayCommands(&buf, "!", "No Category", testModuleList())
	out := buf.String()

	admin := strings.Index(out, "📂 Admin")
	fun := strings.Index(out, "📂 Fun")
	general := strings.Index(out, "📂 General")
	if admin < 0 || fun < 0 || general < 0 || !(admin < fun && fun < general) {
		t.Fatalf("categories missing or unsorted:\n%s", out)
	}
	if !strings.Contains(out, "Usage: !roll <sides>") {
		t.Fatalf("usage missing:\n%s", out)
	}
}

func TestFilterModules(t *testing.T) {
	if got := filterModules(testModuleList(), "general"); len(got) != 1 || got[0].Name != "General" {
		t.Fatalf("unexpected filter result %v", got)
	}
	if got := filterModules(testModuleList(), "economy"); got != nil {
		t.Fatalf("expected no modules, got %v", got)
	}
}

func TestPrintConfigMasksSecrets(t *testing.T) {
	cfg := &config.Config{
		Token:       "abcd1234secretwxyz",
		DatabaseURL: "postgres://u:p@h/db",
		Prefix:      ".",
		Help:        config.HelpConfig{Menu: config.MenuApp},
	}

	var buf bytes.Buffer
	printConfig(&buf, cfg)
	out := buf.String()

	if strings.Contains(out, "secret") || strings.Contains(out, "u:p") {
		t.Fatalf("secrets leaked:\n%s", out)
	}
	if !strings.Contains(out, "abcd…wxyz") || !strings.Contains(out, "GUILD_ID:      (none)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
