package general

import (
	"PrettyHelp/commands"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "General",
		Description: "Everyday commands",
		Version:     "1.0.0",
		Author:      "PrettyHelp",
		Category:    "General",
		Commands: []commands.CommandInfo{
			{
				Name:        "ping",
				Aliases:     []string{"latency"},
				Description: "Shows the gateway latency",
			},
			{
				Name:        "about",
				Aliases:     []string{"info"},
				Description: "Shows what the bot can do",
				Help:        "Lists the loaded modules and how many commands each one has.",
			},
		},
		SlashCommands: []commands.SlashCommandInfo{
			{
				Name:        "ping",
				Description: "Shows the gateway latency",
				Handler:     PingSlash,
			},
		},
	}

	commands.RegisterModule(module)

	commands.RegisterCommand("ping", Ping, "latency")
	commands.RegisterCommand("about", About, "info")
}
