package help

import (
	"slices"
	"strings"

	"PrettyHelp/commands"
)

// Category is one page worth of commands
type Category struct {
	Name        string
	Description string
	Commands    []commands.CommandInfo
}

// GroupByCategory groups commands by their category. Commands without one go
// under noCategory. With sorted set, categories and the commands in them
// (subcommands included) are ordered by name; otherwise categories appear in
// the order they were first seen and commands keep their order.
func GroupByCategory(cmds []commands.CommandInfo, noCategory string, sorted bool) []Category {
	index := make(map[string]int)
	var categories []Category

	for _, cmd := range cmds {
		name := cmd.Category
		if name == "" {
			name = noCategory
		}
		i, seen := index[name]
		if !seen {
			i = len(categories)
			index[name] = i
			categories = append(categories, Category{Name: name})
		}
		categories[i].Commands = append(categories[i].Commands, cmd)
	}

	if sorted {
		slices.SortStableFunc(categories, func(a, b Category) int {
			return strings.Compare(a.Name, b.Name)
		})
		for i := range categories {
			categories[i].Commands = sortCommands(categories[i].Commands)
		}
	}
	return categories
}

// sortCommands returns a sorted copy, leaving the caller's slices untouched
func sortCommands(cmds []commands.CommandInfo) []commands.CommandInfo {
	sorted := make([]commands.CommandInfo, len(cmds))
	copy(sorted, cmds)
	slices.SortStableFunc(sorted, func(a, b commands.CommandInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	for i := range sorted {
		if len(sorted[i].Subcommands) > 0 {
			sorted[i].Subcommands = sortCommands(sorted[i].Subcommands)
		}
	}
	return sorted
}

// visibleSubcommands drops hidden subcommands, recursively
func visibleSubcommands(cmds []commands.CommandInfo) []commands.CommandInfo {
	var out []commands.CommandInfo
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		if len(cmd.Subcommands) > 0 {
			cmd.Subcommands = visibleSubcommands(cmd.Subcommands)
		}
		out = append(out, cmd)
	}
	return out
}
