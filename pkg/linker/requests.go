package linker

import (
	"context"
	"fmt"
	"slices"

	"github.com/agentstation/whitelink/pkg/links"
	"github.com/agentstation/whitelink/pkg/logging"
	"github.com/agentstation/whitelink/pkg/whitelist"
)

// Link connects the requesting member to the player name requested.
//
// An invalid name is rejected before any command is sent. An existing link to
// a different player is removed from the whitelist first, without waiting on
// the outcome. The table changes only if the server confirms the add.
func (e *Engine) Link(ctx context.Context, req Request, requested string) error {
	ctx = e.scope(ctx, "link", req.MemberID)
	logger := logging.FromContext(ctx)

	if err := whitelist.ValidateName(requested); err != nil {
		logger.Debug().Str("remote", requested).Msg("Rejected invalid player name")
		e.reply(ctx, req, msgInvalidName)
		return err
	}

	unlock := e.locks.Lock(req.MemberID)
	defer unlock()

	table := e.load(ctx)
	old, linked := table.Get(req.MemberID)
	if others := otherMembers(table.MembersFor(requested), req.MemberID); len(others) > 0 {
		logger.Warn().Str("remote", requested).Strs("also_linked", others).Msg("Player name already linked to another member")
	}
	switch {
	case linked && old != requested:
		e.reply(ctx, req, msgUpdating(old, requested))
		e.removeRemote(ctx, old)
	case linked:
		e.reply(ctx, req, msgRelinking(requested))
	default:
		e.reply(ctx, req, msgLinking(requested))
	}

	if outcome := e.addRemote(ctx, requested); outcome != whitelist.Confirmed {
		e.reply(ctx, req, msgAddFailed(requested))
		return fmt.Errorf("%w: add %s was %s", ErrNotConfirmed, requested, outcome)
	}

	err := e.commit(ctx, func(t *links.Table) {
		t.Set(req.MemberID, requested)
	})
	e.addRole(ctx, req.GuildID, req.MemberID)

	msg := msgLinked(requested)
	if err != nil {
		msg += msgNotSaved
	}
	logger.Info().Str("remote", requested).Str("previous", old).Bool("saved", err == nil).Msg("Linked account")
	e.reply(ctx, req, msg)
	return err
}

// Unlink drops the requesting member's link. The whitelist removal is sent
// but its reply is not checked; the table entry goes regardless.
func (e *Engine) Unlink(ctx context.Context, req Request) error {
	ctx = e.scope(ctx, "unlink", req.MemberID)

	unlock := e.locks.Lock(req.MemberID)
	defer unlock()

	table := e.load(ctx)
	old, linked := table.Get(req.MemberID)
	if !linked {
		e.reply(ctx, req, msgNothingToUnlink)
		return nil
	}

	e.removeRemote(ctx, old)
	err := e.commit(ctx, func(t *links.Table) {
		t.Delete(req.MemberID)
	})
	e.removeRole(ctx, req.GuildID, req.MemberID)

	msg := msgUnlinked(old)
	if err != nil {
		msg += msgNotSaved
	}
	logging.FromContext(ctx).Info().Str("remote", old).Bool("saved", err == nil).Msg("Unlinked account")
	e.reply(ctx, req, msg)
	return err
}

// Check replies with the link of targetID, addressed as label. It never
// talks to the server. Callers enforce that only administrators may ask.
func (e *Engine) Check(ctx context.Context, req Request, targetID, label string) error {
	ctx = e.scope(ctx, "check", req.MemberID)
	if label == "" {
		label = targetID
	}

	table := e.load(ctx)
	if name, ok := table.Get(targetID); ok {
		e.reply(ctx, req, msgCheckLinked(label, name))
		return nil
	}
	e.reply(ctx, req, msgCheckNotLinked(label))
	return nil
}

// addRemote sends the add command and classifies the reply.
func (e *Engine) addRemote(ctx context.Context, name string) whitelist.Outcome {
	raw := e.exec.Execute(ctx, whitelist.AddCommand(name))
	outcome := whitelist.Classify(raw)
	logging.FromContext(ctx).Debug().
		Str("remote", name).
		Str("reply", raw).
		Stringer("outcome", outcome).
		Msg("Whitelist add")
	return outcome
}

// removeRemote sends the remove command. The outcome is only logged.
func (e *Engine) removeRemote(ctx context.Context, name string) whitelist.Outcome {
	raw := e.exec.Execute(ctx, whitelist.RemoveCommand(name))
	outcome := whitelist.ClassifyRemoval(raw)
	event := logging.FromContext(ctx).Debug()
	if outcome != whitelist.Confirmed {
		event = logging.FromContext(ctx).Warn()
	}
	event.Str("remote", name).
		Str("reply", raw).
		Stringer("outcome", outcome).
		Msg("Whitelist remove")
	return outcome
}

func otherMembers(members []string, self string) []string {
	return slices.DeleteFunc(members, func(m string) bool { return m == self })
}
