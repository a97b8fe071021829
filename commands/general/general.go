package general

import (
	"fmt"
	"log"
	"strings"

	"PrettyHelp/bot"
	"PrettyHelp/commands"

	"github.com/bwmarrin/discordgo"
)

func pingMessage(s *discordgo.Session) string {
	return fmt.Sprintf("Pong! `%dms`", s.HeartbeatLatency().Milliseconds())
}

// Ping replies with the heartbeat latency
func Ping(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	s.ChannelMessageSend(m.ChannelID, pingMessage(s))
}

// PingSlash is /ping
func PingSlash(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: pingMessage(s),
		},
	})
	if err != nil {
		log.Printf("Error responding to ping: %v", err)
	}
}

// About lists the registered modules
func About(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	embed := aboutEmbed(commands.Default.Modules())
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Printf("Error sending about: %v", err)
	}
}

func aboutEmbed(modules []*commands.ModuleInfo) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "About",
		Description: "A bot with a paginated help command.",
		Color:       0x5865F2,
	}

	total := 0
	for _, module := range modules {
		names := make([]string, 0, len(module.Commands))
		for _, cmd := range module.Commands {
			if !cmd.Hidden {
				names = append(names, cmd.Name)
			}
		}
		total += len(names)
		if len(names) == 0 {
			continue
		}

		value := strings.Join(names, ", ")
		if module.Description != "" {
			value = module.Description + "\n`" + value + "`"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s v%s", module.Name, module.Version),
			Value: value,
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d commands", total)}
	return embed
}
