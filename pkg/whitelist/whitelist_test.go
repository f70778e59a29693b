package whitelist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/whitelist"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want whitelist.Outcome
	}{
		{"empty reply", "", whitelist.Unknown},
		{"added", "Added Steve to the whitelist", whitelist.Confirmed},
		{"already whitelisted", "Player is already whitelisted", whitelist.Rejected},
		{"unknown player", "That player does not exist", whitelist.Rejected},
		{"lowercase marker is not a match", "added steve", whitelist.Rejected},
		{"marker inside text", "[Server] Added Alex_99 to the whitelist\n", whitelist.Confirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, whitelist.Classify(tt.raw))
		})
	}
}

func TestClassifyRemoval(t *testing.T) {
	assert.Equal(t, whitelist.Unknown, whitelist.ClassifyRemoval(""))
	assert.Equal(t, whitelist.Confirmed, whitelist.ClassifyRemoval("Removed Steve from the whitelist"))
	assert.Equal(t, whitelist.Rejected, whitelist.ClassifyRemoval("Player is not whitelisted"))
	assert.Equal(t, whitelist.Rejected, whitelist.ClassifyRemoval("Added Steve to the whitelist"))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "confirmed", whitelist.Confirmed.String())
	assert.Equal(t, "rejected", whitelist.Rejected.String())
	assert.Equal(t, "unknown", whitelist.Unknown.String())
	assert.Equal(t, "unknown", whitelist.Outcome(42).String())
}

func TestValidName(t *testing.T) {
	valid := []string{"abc", "Steve", "Alex_99", "___", "a_b", "ABCDEFGHIJKLMNOP"}
	invalid := []string{"", "ab", "has space", "toolongtoolongtoolong", "ABCDEFGHIJKLMNOPQ", "semi;colon", "ünï", "name\n"}

	for _, name := range valid {
		assert.True(t, whitelist.ValidName(name), name)
		assert.NoError(t, whitelist.ValidateName(name), name)
	}
	for _, name := range invalid {
		assert.False(t, whitelist.ValidName(name), name)
		err := whitelist.ValidateName(name)
		assert.Error(t, err, name)
		assert.True(t, errors.IsValidationError(err), name)
	}
}

func TestCommands(t *testing.T) {
	assert.Equal(t, "whitelist add Steve", whitelist.AddCommand("Steve"))
	assert.Equal(t, "whitelist remove Steve", whitelist.RemoveCommand("Steve"))
}
