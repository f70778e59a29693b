// Package linker reconciles three stores that each own part of a member's
// access: the link table on disk, the linked role in the Discord guild, and
// the game server whitelist reached over RCON.
//
// The whitelist is authoritative but write-only: it can be changed one
// command at a time and the only feedback is the reply text. The engine
// decides which commands to send for each event, classifies the replies and
// keeps the table and role consistent with what the server acknowledged.
//
// Policies worth knowing before changing anything here:
//   - Relinking removes the old player before adding the new one, and the
//     new link does not depend on the removal succeeding.
//   - Unlinking is optimistic: the table entry is dropped whatever the
//     server replied to the removal.
//   - Two members may claim the same player name.
package linker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/links"
	"github.com/agentstation/whitelink/pkg/logging"
	"github.com/agentstation/whitelink/pkg/rcon"
)

// ErrNotConfirmed is returned when the server did not acknowledge a whitelist add.
var ErrNotConfirmed = errors.New("whitelist change not confirmed")

// Responder delivers a reply to whoever issued a request. The first reply of
// a request may be followed by more.
type Responder interface {
	Reply(ctx context.Context, content string) error
}

// RoleManager mutates the linked role of a guild member. Implementations
// return a PermissionError when the member or role cannot be resolved.
// RemoveRole is a no-op when the member does not hold the role.
type RoleManager interface {
	AddRole(ctx context.Context, guildID, memberID, roleID string) error
	RemoveRole(ctx context.Context, guildID, memberID, roleID string) error
}

// Request identifies the member behind a slash command and how to answer them.
type Request struct {
	GuildID   string
	MemberID  string
	Responder Responder
}

// Engine is the reconciliation engine. It is safe for concurrent use.
type Engine struct {
	store  links.Store
	exec   rcon.Executor
	roles  RoleManager
	roleID string
	logger *zerolog.Logger

	locks    *keyedMutex
	commitMu sync.Mutex
	health   healthState
}

// Option configures an Engine.
type Option func(*Engine)

// WithRole enables linked-role side effects. An empty roleID disables them.
func WithRole(roles RoleManager, roleID string) Option {
	return func(e *Engine) {
		e.roles = roles
		e.roleID = roleID
	}
}

// WithLogger sets the logger used when no logger is carried by the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an Engine persisting to store and talking to the server through exec.
func New(store links.Store, exec rcon.Executor, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		exec:  exec,
		locks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RoleID returns the configured linked role, or "" when roles are disabled.
func (e *Engine) RoleID() string {
	if e.roles == nil {
		return ""
	}
	return e.roleID
}

// Table returns a fresh copy of the link table for read-only use.
func (e *Engine) Table(ctx context.Context) *links.Table {
	return e.load(e.scope(ctx, "list", ""))
}

// scope attaches the engine logger and the event fields to ctx.
func (e *Engine) scope(ctx context.Context, operation, memberID string) context.Context {
	if e.logger != nil && logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, e.logger)
	}
	ctx = logging.WithOperation(ctx, operation)
	if memberID != "" {
		ctx = logging.WithMember(ctx, memberID)
	}
	return ctx
}

// load reads the table. Read failures degrade to the empty table the store
// hands back, for this event only.
func (e *Engine) load(ctx context.Context) *links.Table {
	table, err := e.store.Load(ctx)
	if err != nil {
		e.health.fail(err)
	}
	if table == nil {
		table = links.NewTable()
	}
	return table
}

// commit applies mutate to a freshly loaded table and saves it. Commits are
// serialized so whole-table saves for different members cannot drop each
// other's changes.
func (e *Engine) commit(ctx context.Context, mutate func(*links.Table)) error {
	e.commitMu.Lock()
	defer e.commitMu.Unlock()

	table := e.load(ctx)
	mutate(table)
	if err := e.store.Save(ctx, table); err != nil {
		e.health.fail(err)
		return err
	}
	e.health.ok()
	return nil
}

// reply answers the requester. Delivery failures are logged, never fatal.
func (e *Engine) reply(ctx context.Context, req Request, content string) {
	if req.Responder == nil {
		return
	}
	if err := req.Responder.Reply(ctx, content); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Failed to deliver reply")
	}
}

// addRole grants the linked role when configured. Unresolvable members or
// roles are skipped silently.
func (e *Engine) addRole(ctx context.Context, guildID, memberID string) {
	if e.RoleID() == "" || guildID == "" {
		return
	}
	if err := e.roles.AddRole(ctx, guildID, memberID, e.roleID); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("role_id", e.roleID).Msg("Skipped adding linked role")
	}
}

// removeRole revokes the linked role when configured and held.
func (e *Engine) removeRole(ctx context.Context, guildID, memberID string) {
	if e.RoleID() == "" || guildID == "" {
		return
	}
	if err := e.roles.RemoveRole(ctx, guildID, memberID, e.roleID); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("role_id", e.roleID).Msg("Skipped removing linked role")
	}
}
