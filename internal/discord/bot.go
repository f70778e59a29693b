package discord

import (
	"context"
	"slices"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/constants"
	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/linker"
	"github.com/agentstation/whitelink/pkg/logging"
)

const msgAdminOnly = "You need the Administrator permission to use this command."

// Bot routes Discord events into the engine.
type Bot struct {
	session Session
	engine  *linker.Engine
	appID   string
	guildID string
	cleanup bool
	logger  *zerolog.Logger

	mu         sync.Mutex
	ctx        context.Context
	registered []*discordgo.ApplicationCommand
}

// Option configures a Bot.
type Option func(*Bot)

// WithCleanup deletes the registered commands when the bot stops.
func WithCleanup(cleanup bool) Option {
	return func(b *Bot) {
		b.cleanup = cleanup
	}
}

// WithLogger sets the bot logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// New returns a bot serving guildID on behalf of application appID.
func New(session Session, engine *linker.Engine, appID, guildID string, opts ...Option) *Bot {
	b := &Bot{
		session: session,
		engine:  engine,
		appID:   appID,
		guildID: guildID,
		logger:  logging.Default(),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run connects to the gateway, registers the slash commands and serves
// events until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = logging.WithLogger(ctx, b.logger)
	b.mu.Unlock()

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteractionCreate)
	b.session.AddHandler(b.onGuildMemberRemove)
	b.session.AddHandler(b.onGuildMemberUpdate)

	if err := b.session.Open(); err != nil {
		return errors.WrapResource("open", "session", "discord", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.Warn().Err(err).Msg("Closing Discord session")
		}
	}()

	if err := b.Register(); err != nil {
		return err
	}

	<-ctx.Done()
	b.logger.Info().Msg("Stopping Discord bot")

	if b.cleanup {
		b.Unregister()
	}
	return nil
}

// Register overwrites the guild's slash commands with Commands().
func (b *Bot) Register() error {
	b.logger.Info().Str("guild_id", b.guildID).Msg("Registering slash commands")
	created, err := b.session.ApplicationCommandBulkOverwrite(b.appID, b.guildID, Commands())
	if err != nil {
		return errors.WrapResource("register", "commands", b.guildID, err)
	}
	b.mu.Lock()
	b.registered = created
	b.mu.Unlock()
	b.logger.Info().Int("count", len(created)).Msg("Commands registered")
	return nil
}

// Unregister deletes the commands created by Register.
func (b *Bot) Unregister() {
	b.mu.Lock()
	registered := b.registered
	b.registered = nil
	b.mu.Unlock()

	for _, cmd := range registered {
		if err := b.session.ApplicationCommandDelete(b.appID, b.guildID, cmd.ID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmd.Name).Msg("Failed to delete command")
		}
	}
}

func (b *Bot) context() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		b.logger.Info().Str("user", r.User.String()).Msg("Discord bot ready")
	}
}

func (b *Bot) onInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.HandleInteraction(b.context(), i.Interaction)
}

func (b *Bot) onGuildMemberRemove(_ *discordgo.Session, m *discordgo.GuildMemberRemove) {
	b.HandleMemberRemove(b.context(), m.Member)
}

func (b *Bot) onGuildMemberUpdate(_ *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	b.HandleMemberUpdate(b.context(), m.BeforeUpdate, m.Member)
}

// HandleInteraction dispatches one slash command.
func (b *Bot) HandleInteraction(ctx context.Context, i *discordgo.Interaction) {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	memberID := interactionUserID(i)
	req := linker.Request{
		GuildID:   i.GuildID,
		MemberID:  memberID,
		Responder: newInteractionResponder(b.session, i),
	}

	var err error
	switch data.Name {
	case constants.CommandLink:
		err = b.engine.Link(ctx, req, stringOption(data.Options, optionUsername))
	case constants.CommandUnlink:
		err = b.engine.Unlink(ctx, req)
	case constants.CommandCheck:
		if !isAdmin(i) {
			err = req.Responder.Reply(ctx, msgAdminOnly)
			break
		}
		target := stringOption(data.Options, optionUser)
		err = b.engine.Check(ctx, req, target, "<@"+target+">")
	default:
		return
	}
	if err != nil {
		b.logger.Debug().Err(err).Str("command", data.Name).Str("member_id", memberID).Msg("Command finished with error")
	}
}

// HandleMemberRemove drops the link of a member who left the guild.
func (b *Bot) HandleMemberRemove(ctx context.Context, m *discordgo.Member) {
	if m == nil || m.User == nil || !b.inGuild(m.GuildID) {
		return
	}
	if err := b.engine.MemberRemoved(ctx, m.User.ID); err != nil {
		b.logger.Debug().Err(err).Str("member_id", m.User.ID).Msg("Member removal finished with error")
	}
}

// HandleMemberUpdate drops the link of a member who lost the linked role.
// Updates without a cached previous state cannot be compared and are ignored.
func (b *Bot) HandleMemberUpdate(ctx context.Context, before, after *discordgo.Member) {
	roleID := b.engine.RoleID()
	if roleID == "" || after == nil || after.User == nil || !b.inGuild(after.GuildID) {
		return
	}
	if before == nil {
		b.logger.Debug().Str("member_id", after.User.ID).Msg("Member update without cached state, skipping")
		return
	}
	had := slices.Contains(before.Roles, roleID)
	has := slices.Contains(after.Roles, roleID)
	if err := b.engine.RoleChanged(ctx, after.User.ID, had, has); err != nil {
		b.logger.Debug().Err(err).Str("member_id", after.User.ID).Msg("Role change finished with error")
	}
}

func (b *Bot) inGuild(guildID string) bool {
	return b.guildID == "" || guildID == "" || guildID == b.guildID
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func isAdmin(i *discordgo.Interaction) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// stringOption returns the raw value of a string or user option.
func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name != name {
			continue
		}
		if v, ok := opt.Value.(string); ok {
			return v
		}
	}
	return ""
}
