package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/agentstation/whitelink/internal/utils/ptr"
	"github.com/agentstation/whitelink/pkg/constants"
)

// Option names of the slash commands.
const (
	optionUsername = "username"
	optionUser     = "user"
)

// Commands returns the slash command definitions registered for the guild.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:         constants.CommandLink,
			Description:  "Link your Minecraft account to Discord",
			DMPermission: ptr.Bool(false),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionUsername,
					Description: "Your Minecraft IGN",
					Required:    true,
					MinLength:   ptr.Int(constants.MinRemoteNameLength),
					MaxLength:   constants.MaxRemoteNameLength,
				},
			},
		},
		{
			Name:         constants.CommandUnlink,
			Description:  "Unlink your Minecraft account from Discord",
			DMPermission: ptr.Bool(false),
		},
		{
			Name:                     constants.CommandCheck,
			Description:              "Verify the Minecraft account linked to a user",
			DMPermission:             ptr.Bool(false),
			DefaultMemberPermissions: ptr.Int64(discordgo.PermissionAdministrator),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        optionUser,
					Description: "The user to check the linked account",
					Required:    true,
				},
			},
		},
	}
}
