package linker

import (
	"context"

	"github.com/agentstation/whitelink/pkg/links"
	"github.com/agentstation/whitelink/pkg/logging"
)

// MemberRemoved handles a member leaving the guild: their player is removed
// from the whitelist and the link dropped. Nobody is answered.
func (e *Engine) MemberRemoved(ctx context.Context, memberID string) error {
	ctx = e.scope(ctx, "member_removed", memberID)
	return e.revoke(ctx, memberID, "Removed link of departed member")
}

// RoleChanged handles an external change to a member's roles. Only losing
// the configured linked role revokes the link; every other change, and every
// change when no role is configured, is ignored.
func (e *Engine) RoleChanged(ctx context.Context, memberID string, hadRole, hasRole bool) error {
	if e.RoleID() == "" || !hadRole || hasRole {
		return nil
	}
	ctx = e.scope(ctx, "role_revoked", memberID)
	return e.revoke(ctx, memberID, "Removed link after linked role was revoked")
}

// revoke removes memberID's player from the whitelist and drops the link.
func (e *Engine) revoke(ctx context.Context, memberID, msg string) error {
	unlock := e.locks.Lock(memberID)
	defer unlock()

	table := e.load(ctx)
	old, linked := table.Get(memberID)
	if !linked {
		return nil
	}

	e.removeRemote(ctx, old)
	err := e.commit(ctx, func(t *links.Table) {
		t.Delete(memberID)
	})
	logging.FromContext(ctx).Info().Str("remote", old).Bool("saved", err == nil).Msg(msg)
	return err
}
