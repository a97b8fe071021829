package commands

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// SlashAPI is the part of *discordgo.Session used to sync application commands
type SlashAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandEdit(appID, guildID, cmdID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// commandNeedsUpdate checks if an existing command needs to be updated
func commandNeedsUpdate(existing, desired *discordgo.ApplicationCommand) bool {
	if existing.Name != desired.Name {
		return true
	}
	if existing.Description != desired.Description {
		return true
	}
	if len(existing.Options) != len(desired.Options) {
		return true
	}
	for i, option := range existing.Options {
		desiredOption := desired.Options[i]
		if option.Name != desiredOption.Name ||
			option.Description != desiredOption.Description ||
			option.Type != desiredOption.Type ||
			option.Required != desiredOption.Required {
			return true
		}
	}
	return false
}

// SyncSlashCommands creates, updates and deletes application commands so the
// remote set matches desired. Individual failures are logged and the sync
// carries on; only a failure to list the existing commands is returned.
func SyncSlashCommands(api SlashAPI, appID, guildID string, desired []*discordgo.ApplicationCommand) error {
	existingCommands, err := api.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("fetch existing commands: %w", err)
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existingCommands {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		if existing, exists := existingMap[want.Name]; exists {
			if commandNeedsUpdate(existing, want) {
				log.Printf("Updating slash command: %s", want.Name)
				if _, err := api.ApplicationCommandEdit(appID, guildID, existing.ID, want); err != nil {
					log.Printf("Error updating command %s: %v", want.Name, err)
				}
			}
			// still wanted
			delete(existingMap, want.Name)
			continue
		}

		log.Printf("Creating slash command: %s", want.Name)
		if _, err := api.ApplicationCommandCreate(appID, guildID, want); err != nil {
			log.Printf("Error creating command %s: %v", want.Name, err)
		}
	}

	for _, cmd := range existingMap {
		log.Printf("Deleting unused slash command: %s", cmd.Name)
		if err := api.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			log.Printf("Error deleting command %s: %v", cmd.Name, err)
		}
	}
	return nil
}
