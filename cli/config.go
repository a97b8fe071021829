package main

import (
	"fmt"
	"io"

	"PrettyHelp/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long:  `Loads .env and the environment the way the bot does and prints the result. Secrets are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "⚙️  Bot")
	fmt.Fprintf(w, "  DISCORD_TOKEN: %s\n", mask(cfg.Token))
	fmt.Fprintf(w, "  DATABASE_URL:  %s\n", mask(cfg.DatabaseURL))
	fmt.Fprintf(w, "  PREFIX:        %s\n", cfg.Prefix)
	fmt.Fprintf(w, "  GUILD_ID:      %s\n", orNone(cfg.GuildID))
	fmt.Fprintf(w, "  RATE_LIMIT:    %d per %s\n", cfg.RateLimit, cfg.RateWindow)
	fmt.Fprintln(w)

	hc := cfg.Help
	fmt.Fprintln(w, "📖 Help")
	fmt.Fprintf(w, "  Menu:          %s (wrap %t)\n", hc.Menu, hc.Wrap)
	if hc.Menu == config.MenuEmoji {
		fmt.Fprintf(w, "  Active time:   %s (delete after timeout %t)\n", hc.ActiveTime, hc.DeleteAfterTimeout)
		fmt.Fprintf(w, "  Glyphs:        %s %s %s\n", hc.PageLeft, hc.PageRight, hc.Remove)
	} else {
		fmt.Fprintf(w, "  Timeout:       %s (ephemeral %t)\n", hc.Timeout, hc.Ephemeral)
	}
	fmt.Fprintf(w, "  Color:         %s\n", orNone(hc.Color))
	fmt.Fprintf(w, "  Index:         %q (shown %t)\n", hc.IndexTitle, hc.ShowIndex)
	fmt.Fprintf(w, "  No category:   %q\n", hc.NoCategory)
	fmt.Fprintf(w, "  Sort:          %t\n", hc.Sort)
	fmt.Fprintf(w, "  Ignore case:   %t\n", hc.CaseInsensitive)
	fmt.Fprintf(w, "  DM help:       %t\n", hc.DMHelp)
	fmt.Fprintf(w, "  Delete invoke: %t\n", hc.DeleteInvoke)
}

func mask(secret string) string {
	if secret == "" {
		return "(none)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "…" + secret[len(secret)-4:]
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
