package server

import (
	"time"

	"github.com/agentstation/whitelink/pkg/constants"
)

// Config holds health server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	PathPrefix string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// CacheTTL bounds how stale GET /links may be. Zero disables the cache.
	CacheTTL time.Duration
}

// DefaultConfig returns the defaults used by `whitelink serve`.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		PathPrefix:   "/api/v1",
		ReadTimeout:  constants.HealthReadTimeout,
		WriteTimeout: constants.HealthReadTimeout,
		IdleTimeout:  120 * time.Second,
		CacheTTL:     constants.LinksCacheTTL,
	}
}
