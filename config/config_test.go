package config

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"PrettyHelp/help"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("testdata/missing.env")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Prefix != "." {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}
	if cfg.RateLimit != 5 || cfg.RateWindow != 10*time.Second {
		t.Fatalf("unexpected rate limit %d/%s", cfg.RateLimit, cfg.RateWindow)
	}

	opts, err := cfg.HelpOptions()
	if err != nil {
		t.Fatalf("help options: %v", err)
	}
	if opts.Color != help.RandomColor || opts.IndexTitle != "Categories" || !opts.SortCommands || !opts.ShowIndex {
		t.Fatalf("unexpected defaults %+v", opts.PageOptions)
	}
	if opts.EndingNote != help.DefaultEndingNote {
		t.Fatalf("expected the default ending note, got %q", opts.EndingNote)
	}
	if _, ok := opts.Menu.(*help.AppMenu); !ok {
		t.Fatalf("expected an app menu, got %T", opts.Menu)
	}
}

func TestLoadEmojiMenu(t *testing.T) {
	t.Setenv("HELP_MENU", "Emoji")
	t.Setenv("HELP_ACTIVE_TIME", "1m")
	t.Setenv("HELP_PAGE_LEFT", "<:left:123>")
	t.Setenv("HELP_COLOR", "#5865F2")
	t.Setenv("HELP_SHOW_INDEX", "false")
	t.Setenv("PREFIX", "?")

	cfg, err := Load("testdata/missing.env")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts, err := cfg.HelpOptions()
	if err != nil {
		t.Fatalf("help options: %v", err)
	}

	menu, ok := opts.Menu.(*help.EmojiMenu)
	if !ok {
		t.Fatalf("expected an emoji menu, got %T", opts.Menu)
	}
	if menu.Navigation().PageLeft != "left:123" {
		t.Fatalf("glyph not normalized: %q", menu.Navigation().PageLeft)
	}
	if opts.Color != 0x5865F2 || opts.ShowIndex || opts.Prefix != "?" {
		t.Fatalf("unexpected options %+v", opts.PageOptions)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value string
		want       error
	}{
		{key: "HELP_MENU", value: "carousel", want: help.ErrInvalidOptions},
		{key: "HELP_COLOR", value: "#1000000", want: help.ErrInvalidOptions},
		{key: "HELP_COLOR", value: "blue", want: help.ErrInvalidOptions},
		{key: "HELP_TIMEOUT", value: "-5s", want: help.ErrInvalidOptions},
		{key: "HELP_ENDING_NOTE", value: "{{.Prefix", want: help.ErrInvalidOptions},
		{key: "RATE_LIMIT", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load("testdata/missing.env")
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("HELP_ACTIVE_TIME", "soon")

	_, err := Load("testdata/missing.env")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	// registered so the values are restored after godotenv sets them
	t.Setenv("PREFIX", "")
	t.Setenv("HELP_INDEX_TITLE", "")
	os.Unsetenv("PREFIX")
	os.Unsetenv("HELP_INDEX_TITLE")

	cfg, err := Load("testdata/test.env")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Prefix != "!" || cfg.Help.IndexTitle != "From file" {
		t.Fatalf("file values not applied: %q %q", cfg.Prefix, cfg.Help.IndexTitle)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: help.RandomColor},
		{in: "Random", want: help.RandomColor},
		{in: "#ffffff", want: 0xFFFFFF},
		{in: "0x000000", want: 0},
		{in: "5865F2", want: 0x5865F2},
		{in: "#fffffff", wantErr: true},
		{in: "#zz0000", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseColor(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
