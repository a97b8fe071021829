package utils

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// IsGuildAdmin reports whether the user owns the guild or holds a role with
// the Administrator permission. Only the session state is consulted.
func IsGuildAdmin(state *discordgo.State, guildID, userID string) (bool, error) {
	if guildID == "" {
		return false, nil
	}

	guild, err := state.Guild(guildID)
	if err != nil {
		return false, fmt.Errorf("get guild %s: %w", guildID, err)
	}
	if guild.OwnerID == userID {
		return true, nil
	}

	member, err := state.Member(guildID, userID)
	if err != nil {
		return false, fmt.Errorf("get member %s: %w", userID, err)
	}

	return HasPermission(state, guildID, member, discordgo.PermissionAdministrator), nil
}

// HasPermission checks the member's roles for a permission bit
func HasPermission(state *discordgo.State, guildID string, member *discordgo.Member, perm int64) bool {
	for _, roleID := range member.Roles {
		role, err := state.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if role.Permissions&perm != 0 {
			return true
		}
	}
	return false
}
