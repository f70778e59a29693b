// Package discord adapts a discordgo session to the reconciliation engine:
// it registers the slash commands, turns gateway events into engine calls,
// answers interactions and mutates the linked role.
package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/agentstation/whitelink/pkg/errors"
)

// Session is the subset of *discordgo.Session the bot uses.
type Session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error

	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error

	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)

	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// Compile-time interface check.
var _ Session = (*discordgo.Session)(nil)

// NewSession creates a bot session with the intents the bot relies on.
// Guild members is a privileged intent and must be enabled for the
// application in the developer portal.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.NewConfigError("discord", "DISCORD_TOKEN is required", nil)
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.WrapResource("create", "session", "discord", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	// Member tracking fills GuildMemberUpdate.BeforeUpdate, which is how a
	// revoked role is detected.
	s.StateEnabled = true
	s.State.TrackMembers = true
	return s, nil
}
