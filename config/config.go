// Package config loads the bot and help settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"PrettyHelp/help"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Menu kinds
const (
	MenuApp   = "app"
	MenuEmoji = "emoji"
)

// Config is the full runtime configuration
type Config struct {
	Token       string `env:"DISCORD_TOKEN"`
	DatabaseURL string `env:"DATABASE_URL"`
	Prefix      string `env:"PREFIX" envDefault:"."`
	// GuildID registers slash commands in one guild only, empty is global
	GuildID string `env:"GUILD_ID"`

	RateLimit  int           `env:"RATE_LIMIT" envDefault:"5"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"10s"`

	Help HelpConfig `envPrefix:"HELP_"`
}

// HelpConfig mirrors help.Options in environment form
type HelpConfig struct {
	// Color is a hex RGB value such as #5865F2, empty or "random" picks one
	// per invocation
	Color           string `env:"COLOR"`
	IndexTitle      string `env:"INDEX_TITLE" envDefault:"Categories"`
	NoCategory      string `env:"NO_CATEGORY" envDefault:"No Category"`
	Description     string `env:"DESCRIPTION"`
	EndingNote      string `env:"ENDING_NOTE"`
	ImageURL        string `env:"IMAGE_URL"`
	ThumbnailURL    string `env:"THUMBNAIL_URL"`
	Sort            bool   `env:"SORT" envDefault:"true"`
	ShowIndex       bool   `env:"SHOW_INDEX" envDefault:"true"`
	CaseInsensitive bool   `env:"CASE_INSENSITIVE" envDefault:"false"`
	DMHelp          bool   `env:"DM" envDefault:"false"`
	DeleteInvoke    bool   `env:"DELETE_INVOKE" envDefault:"false"`

	Menu string `env:"MENU" envDefault:"app"`
	Wrap bool   `env:"WRAP" envDefault:"true"`

	// emoji menu
	ActiveTime         time.Duration `env:"ACTIVE_TIME" envDefault:"30s"`
	DeleteAfterTimeout bool          `env:"DELETE_AFTER_TIMEOUT" envDefault:"false"`
	PageLeft           string        `env:"PAGE_LEFT" envDefault:"◀"`
	PageRight          string        `env:"PAGE_RIGHT" envDefault:"▶"`
	Remove             string        `env:"REMOVE" envDefault:"❌"`

	// app menu
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"0s"`
	Ephemeral bool          `env:"EPHEMERAL" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the given .env files (".env" when none are named), then the
// environment, and validates the result. Missing files are skipped.
// Variables already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks everything that does not need a Discord connection
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("PREFIX must not be empty")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("RATE_WINDOW must be positive, got %s", c.RateWindow)
	}
	_, err := c.HelpOptions()
	return err
}

// HelpOptions converts the help settings into help.Options, menu included
func (c *Config) HelpOptions() (help.Options, error) {
	color, err := ParseColor(c.Help.Color)
	if err != nil {
		return help.Options{}, err
	}

	opts := help.DefaultOptions()
	opts.Color = color
	opts.IndexTitle = c.Help.IndexTitle
	opts.NoCategory = c.Help.NoCategory
	opts.Description = c.Help.Description
	opts.ImageURL = c.Help.ImageURL
	opts.ThumbnailURL = c.Help.ThumbnailURL
	opts.SortCommands = c.Help.Sort
	opts.ShowIndex = c.Help.ShowIndex
	opts.Prefix = c.Prefix
	opts.CaseInsensitive = c.Help.CaseInsensitive
	opts.DMHelp = c.Help.DMHelp
	opts.DeleteInvoke = c.Help.DeleteInvoke
	if c.Help.EndingNote != "" {
		opts.EndingNote = c.Help.EndingNote
	}

	switch strings.ToLower(c.Help.Menu) {
	case MenuApp:
		menu, err := help.NewAppMenu(help.AppMenuOptions{
			Timeout:   c.Help.Timeout,
			Ephemeral: c.Help.Ephemeral,
			Wrap:      c.Help.Wrap,
		})
		if err != nil {
			return help.Options{}, err
		}
		opts.Menu = menu
	case MenuEmoji:
		menu, err := help.NewEmojiMenu(help.EmojiMenuOptions{
			ActiveTime:         c.Help.ActiveTime,
			DeleteAfterTimeout: c.Help.DeleteAfterTimeout,
			Navigation: help.Navigation{
				PageLeft:  c.Help.PageLeft,
				PageRight: c.Help.PageRight,
				Remove:    c.Help.Remove,
			},
			Wrap: c.Help.Wrap,
		})
		if err != nil {
			return help.Options{}, err
		}
		opts.Menu = menu
	default:
		return help.Options{}, fmt.Errorf("%w: unknown menu %q, use %s or %s", help.ErrInvalidOptions, c.Help.Menu, MenuApp, MenuEmoji)
	}

	if err := opts.Validate(); err != nil {
		return help.Options{}, err
	}
	return opts, nil
}

// ParseColor reads #RRGGBB, 0xRRGGBB or RRGGBB. Empty and "random" give
// help.RandomColor.
func ParseColor(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "random") {
		return help.RandomColor, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	color, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || color > 0xFFFFFF {
		return 0, fmt.Errorf("%w: color %q is not a 24 bit hex value", help.ErrInvalidOptions, s)
	}
	return int(color), nil
}
