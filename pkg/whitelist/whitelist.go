// Package whitelist owns everything that knows about the game server's
// whitelist text protocol: the player name rule, the command strings sent
// over RCON, and the classification of the server's free-text replies.
//
// Replies have no grammar. Keeping every string match in this package means a
// change in server wording touches one file.
package whitelist

import (
	"regexp"
	"strings"

	"github.com/agentstation/whitelink/pkg/errors"
)

// AddedMarker is the substring the server prints when a whitelist add succeeds.
const AddedMarker = "Added"

// RemovedMarker is the substring the server prints when a whitelist remove succeeds.
const RemovedMarker = "Removed"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// Outcome is the interpretation of one command reply.
type Outcome int

const (
	// Unknown means no reply was received (transport failure or empty reply).
	Unknown Outcome = iota
	// Confirmed means the server acknowledged the change.
	Confirmed
	// Rejected means the server replied but did not acknowledge the change.
	Rejected
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Classify interprets a raw reply to a whitelist add.
func Classify(raw string) Outcome {
	switch {
	case raw == "":
		return Unknown
	case strings.Contains(raw, AddedMarker):
		return Confirmed
	default:
		return Rejected
	}
}

// ClassifyRemoval interprets a raw reply to a whitelist remove. Removal
// outcomes are reported, never acted on.
func ClassifyRemoval(raw string) Outcome {
	switch {
	case raw == "":
		return Unknown
	case strings.Contains(raw, RemovedMarker):
		return Confirmed
	default:
		return Rejected
	}
}

// ValidName reports whether name is an acceptable player name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidateName returns a ValidationError when name is not an acceptable player name.
func ValidateName(name string) error {
	if !ValidName(name) {
		return errors.NewValidationError("username", name,
			"must only contain letters, numbers and underscores, with 3-16 chars")
	}
	return nil
}

// AddCommand returns the console command adding name to the whitelist.
func AddCommand(name string) string {
	return "whitelist add " + name
}

// RemoveCommand returns the console command removing name from the whitelist.
func RemoveCommand(name string) string {
	return "whitelist remove " + name
}
