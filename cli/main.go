package main

import (
	"fmt"
	"os"

	"PrettyHelp/commands"
	_ "PrettyHelp/commands/admin"
	_ "PrettyHelp/commands/general"
	"PrettyHelp/config"
	"PrettyHelp/help"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prettyhelp",
	Short: "PrettyHelp CLI - Preview and operate the help bot",
	Long: `Tools for the help bot that do not need a Discord connection.
Preview the help pages in the terminal, list the registered commands,
create the database schema and inspect the resolved configuration.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(configCmd)
}

// newHelp builds the help command the bot would run, registered into the
// default registry
func newHelp(cfg *config.Config) (*help.Help, error) {
	opts, err := cfg.HelpOptions()
	if err != nil {
		return nil, err
	}
	h, err := help.New(opts, commands.Default, nil)
	if err != nil {
		return nil, err
	}
	if _, registered := commands.Default.Resolve("help", false); !registered {
		commands.RegisterModule(h.Module())
	}
	return h, nil
}
