package admin

import (
	"PrettyHelp/commands"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "Admin",
		Description: "Server administration of the command set",
		Version:     "1.0.0",
		Author:      "PrettyHelp",
		Category:    "Admin",
		Commands: []commands.CommandInfo{
			{
				Name:        "disable",
				Description: "Disables a command or category in this server",
				Help:        "Disabled commands are hidden from help and refuse to run.\nhelp, enable and disable cannot be disabled.",
				Usage:       "<command|category> <name>",
			},
			{
				Name:        "enable",
				Description: "Enables a command or category again",
				Usage:       "<command|category> <name>",
			},
		},
	}

	commands.RegisterModule(module)

	commands.RegisterCommand("disable", DisableCommand)
	commands.RegisterCommand("enable", EnableCommand)
}
