package main

import (
	"fmt"
	"io"
	"strings"

	"PrettyHelp/commands"
	"PrettyHelp/config"
	"PrettyHelp/help"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered modules and commands",
	Long:  `Display every module compiled into the bot with its commands, subcommands included.`,
	RunE:  runList,
}

var (
	listModules  bool
	listCommands bool
	filterModule string
)

func init() {
	listCmd.Flags().BoolVarP(&listModules, "modules", "m", false, "List only modules")
	listCmd.Flags().BoolVarP(&listCommands, "commands", "c", false, "List only commands, grouped by category")
	listCmd.Flags().StringVarP(&filterModule, "filter", "f", "", "Filter by module name")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	h, err := newHelp(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	modules := commands.Default.Modules()
	if filterModule != "" {
		modules = filterModules(modules, filterModule)
		if len(modules) == 0 {
			return fmt.Errorf("module %q not found", filterModule)
		}
	}

	w := cmd.OutOrStdout()
	switch {
	case listModules:
		displayModules(w, modules)
	case listCommands:
		displayCommands(w, cfg.Prefix, cfg.Help.NoCategory, modules)
	default:
		displayModulesAndCommands(w, cfg.Prefix, modules)
	}
	return nil
}

func filterModules(modules []*commands.ModuleInfo, name string) []*commands.ModuleInfo {
	for _, module := range modules {
		if strings.EqualFold(module.Name, name) {
			return []*commands.ModuleInfo{module}
		}
	}
	return nil
}

func displayModules(w io.Writer, modules []*commands.ModuleInfo) {
	fmt.Fprintln(w, "📦 Registered Modules:")
	fmt.Fprintln(w)

	for _, module := range modules {
		fmt.Fprintf(w, "  %s v%s\n", module.Name, module.Version)
		fmt.Fprintf(w, "    %s\n", module.Description)
		fmt.Fprintf(w, "    Author: %s\n", module.Author)
		fmt.Fprintf(w, "    Commands: %d\n", len(module.Commands))
		if len(module.SlashCommands) > 0 {
			fmt.Fprintf(w, "    Slash commands: %d\n", len(module.SlashCommands))
		}
		fmt.Fprintln(w)
	}
}

func displayCommands(w io.Writer, prefix, noCategory string, modules []*commands.ModuleInfo) {
	fmt.Fprintln(w, "🔧 Registered Commands:")
	fmt.Fprintln(w)

	var cmds []commands.CommandInfo
	for _, module := range modules {
		for _, cmd := range module.Commands {
			if cmd.Category == "" {
				cmd.Category = module.Category
			}
			cmds = append(cmds, cmd)
		}
	}

	for _, category := range help.GroupByCategory(cmds, noCategory, true) {
		fmt.Fprintf(w, "📂 %s\n", category.Name)
		for _, cmd := range category.Commands {
			writeCommand(w, prefix, cmd, "  ")
			if cmd.Usage != "" {
				fmt.Fprintf(w, "    Usage: %s%s %s\n", prefix, cmd.Name, cmd.Usage)
			}
		}
		fmt.Fprintln(w)
	}
}

func displayModulesAndCommands(w io.Writer, prefix string, modules []*commands.ModuleInfo) {
	fmt.Fprintln(w, "📦 Registered Modules and Commands:")
	fmt.Fprintln(w)

	totalCommands := 0
	for _, module := range modules {
		fmt.Fprintf(w, "📦 %s v%s - %s\n", module.Name, module.Version, module.Description)
		fmt.Fprintf(w, "   Author: %s\n", module.Author)
		fmt.Fprintln(w, "   Commands:")

		for _, cmd := range module.Commands {
			writeCommand(w, prefix, cmd, "     ")
			cmd.Walk(func(qualified string, sub commands.CommandInfo, depth int) {
				fmt.Fprintf(w, "%s%s🔗 %s%s - %s\n", "     ", strings.Repeat("  ", depth), prefix, qualified, sub.ShortDoc())
			})
		}
		totalCommands += len(module.Commands)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "📊 Summary: %d modules, %d commands\n", len(modules), totalCommands)
}

func writeCommand(w io.Writer, prefix string, cmd commands.CommandInfo, indent string) {
	fmt.Fprintf(w, "%s%s%s", indent, prefix, cmd.Name)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(cmd.Aliases, ", "))
	}
	if cmd.Hidden {
		fmt.Fprint(w, " [hidden]")
	}
	fmt.Fprintf(w, " - %s\n", cmd.ShortDoc())
}
