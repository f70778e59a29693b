package discord_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/agentstation/whitelink/internal/discord"
)

var _ discord.Session = (*fakeSession)(nil)

// fakeSession records REST calls and keeps a tiny member roster.
type fakeSession struct {
	mu        sync.Mutex
	handlers  int
	opened    bool
	closed    bool
	commands  []*discordgo.ApplicationCommand
	deleted   []string
	responses []string
	followups []string
	members   map[string]*discordgo.Member
	roleCalls []string
	roleErr   error
}

func newFakeSession() *fakeSession {
	return &fakeSession{members: make(map[string]*discordgo.Member)}
}

func (s *fakeSession) addMember(id string, roles ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[id] = &discordgo.Member{User: &discordgo.User{ID: id}, Roles: roles}
}

func (s *fakeSession) AddHandler(interface{}) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers++
	return func() {}
}

func (s *fakeSession) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = true
	return nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSession) ApplicationCommandBulkOverwrite(_ string, _ string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for i, cmd := range commands {
		c := *cmd
		c.ID = fmt.Sprintf("cmd-%d", i)
		created = append(created, &c)
	}
	s.commands = created
	return created, nil
}

func (s *fakeSession) ApplicationCommandDelete(_, _, cmdID string, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, cmdID)
	return nil
}

func (s *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp.Data.Content)
	return nil
}

func (s *fakeSession) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followups = append(s.followups, data.Content)
	return &discordgo.Message{Content: data.Content}, nil
}

func (s *fakeSession) GuildMember(_, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[userID]
	if !ok {
		return nil, fmt.Errorf("unknown member %s", userID)
	}
	return m, nil
}

func (s *fakeSession) GuildMemberRoleAdd(_, userID, roleID string, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roleErr != nil {
		return s.roleErr
	}
	s.roleCalls = append(s.roleCalls, "add "+userID+" "+roleID)
	if m, ok := s.members[userID]; ok {
		m.Roles = append(m.Roles, roleID)
	}
	return nil
}

func (s *fakeSession) GuildMemberRoleRemove(_, userID, roleID string, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roleErr != nil {
		return s.roleErr
	}
	s.roleCalls = append(s.roleCalls, "remove "+userID+" "+roleID)
	return nil
}

func (s *fakeSession) replies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(append([]string(nil), s.responses...), s.followups...)
}

// fakeServer acknowledges every whitelist change unless told to reject.
type fakeServer struct {
	mu       sync.Mutex
	commands []string
	reject   bool
}

func (f *fakeServer) Execute(_ context.Context, command string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	name := command[strings.LastIndex(command, " ")+1:]
	switch {
	case f.reject:
		return "That player does not exist"
	case strings.HasPrefix(command, "whitelist add"):
		return "Added " + name + " to the whitelist"
	default:
		return "Removed " + name + " from the whitelist"
	}
}

func (f *fakeServer) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}
