package linker_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/links"
)

// fakeServer records every command and answers like a vanilla server unless
// a reply is scripted for the command.
type fakeServer struct {
	mu       sync.Mutex
	commands []string
	replies  map[string]string
	delay    time.Duration
	inflight int
	maxSeen  int
}

func newFakeServer() *fakeServer {
	return &fakeServer{replies: make(map[string]string)}
}

func (s *fakeServer) script(command, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[command] = reply
}

func (s *fakeServer) Execute(_ context.Context, command string) string {
	s.mu.Lock()
	s.commands = append(s.commands, command)
	s.inflight++
	if s.inflight > s.maxSeen {
		s.maxSeen = s.inflight
	}
	reply, scripted := s.replies[command]
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()

	if scripted {
		return reply
	}
	switch {
	case strings.HasPrefix(command, "whitelist add "):
		return "Added " + strings.TrimPrefix(command, "whitelist add ") + " to the whitelist"
	case strings.HasPrefix(command, "whitelist remove "):
		return "Removed " + strings.TrimPrefix(command, "whitelist remove ") + " from the whitelist"
	default:
		return "Unknown command"
	}
}

func (s *fakeServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *fakeServer) MaxInflight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxSeen
}

// recorder collects replies sent to a requester.
type recorder struct {
	mu      sync.Mutex
	replies []string
}

func (r *recorder) Reply(_ context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, content)
	return nil
}

func (r *recorder) Replies() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.replies...)
}

func (r *recorder) Last() string {
	replies := r.Replies()
	if len(replies) == 0 {
		return ""
	}
	return replies[len(replies)-1]
}

// fakeRoles tracks which members hold the role.
type fakeRoles struct {
	mu      sync.Mutex
	holders map[string]bool
	calls   []string
	err     error
}

func newFakeRoles(holders ...string) *fakeRoles {
	r := &fakeRoles{holders: make(map[string]bool)}
	for _, h := range holders {
		r.holders[h] = true
	}
	return r
}

func (r *fakeRoles) AddRole(_ context.Context, guildID, memberID, roleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "add "+guildID+"/"+memberID+"/"+roleID)
	if r.err != nil {
		return r.err
	}
	r.holders[memberID] = true
	return nil
}

func (r *fakeRoles) RemoveRole(_ context.Context, guildID, memberID, roleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "remove "+guildID+"/"+memberID+"/"+roleID)
	if r.err != nil {
		return r.err
	}
	delete(r.holders, memberID)
	return nil
}

func (r *fakeRoles) Has(memberID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.holders[memberID]
}

func (r *fakeRoles) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// flakyStore wraps a MemoryStore and fails saves while failSaves is set.
type flakyStore struct {
	*links.MemoryStore
	mu        sync.Mutex
	failSaves bool
}

func (s *flakyStore) setFailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaves = fail
}

func (s *flakyStore) Save(ctx context.Context, t *links.Table) error {
	s.mu.Lock()
	fail := s.failSaves
	s.mu.Unlock()
	if fail {
		return errors.NewPersistenceError("write", "memory", errors.New("disk full"))
	}
	return s.MemoryStore.Save(ctx, t)
}
