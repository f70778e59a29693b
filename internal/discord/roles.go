package discord

import (
	"context"
	"slices"

	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/linker"
)

// Compile-time interface check.
var _ linker.RoleManager = (*Roles)(nil)

// Roles mutates guild member roles through the session.
type Roles struct {
	session Session
}

// NewRoles returns a RoleManager backed by session.
func NewRoles(session Session) *Roles {
	return &Roles{session: session}
}

// AddRole grants roleID to the member.
func (r *Roles) AddRole(_ context.Context, guildID, memberID, roleID string) error {
	if _, err := r.session.GuildMember(guildID, memberID); err != nil {
		return errors.NewPermissionError("add_role", memberID, roleID, "member not found", err)
	}
	if err := r.session.GuildMemberRoleAdd(guildID, memberID, roleID); err != nil {
		return errors.NewPermissionError("add_role", memberID, roleID, "", err)
	}
	return nil
}

// RemoveRole revokes roleID from the member if they hold it.
func (r *Roles) RemoveRole(_ context.Context, guildID, memberID, roleID string) error {
	member, err := r.session.GuildMember(guildID, memberID)
	if err != nil {
		return errors.NewPermissionError("remove_role", memberID, roleID, "member not found", err)
	}
	if !slices.Contains(member.Roles, roleID) {
		return nil
	}
	if err := r.session.GuildMemberRoleRemove(guildID, memberID, roleID); err != nil {
		return errors.NewPermissionError("remove_role", memberID, roleID, "", err)
	}
	return nil
}
