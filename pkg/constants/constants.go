// Package constants provides shared constants used throughout the whitelink codebase.
// This includes timeouts, file permissions, protocol defaults and other values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultRCONTimeout bounds dialing and each read/write on an RCON session
	DefaultRCONTimeout = 5 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ShutdownTimeout is how long graceful shutdown may take before giving up
	ShutdownTimeout = 5 * time.Second

	// HealthReadTimeout is the read header timeout of the health server
	HealthReadTimeout = 5 * time.Second

	// LinksCacheTTL is how long the health server serves a cached link listing
	LinksCacheTTL = 2 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// RCON and whitelist defaults
const (
	// DefaultRCONHost is used when RCON_HOST is not set
	DefaultRCONHost = "localhost"

	// DefaultRCONPort is the vanilla Minecraft RCON port
	DefaultRCONPort = 25575

	// MinRemoteNameLength is the shortest accepted player name
	MinRemoteNameLength = 3

	// MaxRemoteNameLength is the longest accepted player name
	MaxRemoteNameLength = 16
)

// Path constants
const (
	// DefaultLinksFile is where the link table lives when LINKS_FILE is unset
	DefaultLinksFile = "whitelist.json"

	// CorruptSuffix is appended to a link table file that failed to parse
	CorruptSuffix = ".corrupt"

	// ConfigFileName is the viper config name searched in $HOME and the working directory
	ConfigFileName = ".whitelink"
)

// Slash command names registered with Discord
const (
	// CommandLink links the caller to a Minecraft account
	CommandLink = "linkmc"

	// CommandUnlink removes the caller's link
	CommandUnlink = "unlinkmc"

	// CommandCheck shows the link of another member (administrators only)
	CommandCheck = "checkmc"
)
