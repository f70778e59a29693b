// Package handlers implements the health server endpoints.
package handlers

import (
	"context"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/internal/server/response"
	"github.com/agentstation/whitelink/pkg/linker"
	"github.com/agentstation/whitelink/pkg/links"
)

// Source is the engine state the endpoints report on.
type Source interface {
	Health() linker.Health
	Table(ctx context.Context) *links.Table
}

// Compile-time interface check.
var _ Source = (*linker.Engine)(nil)

// Handlers holds the endpoint dependencies.
type Handlers struct {
	source    Source
	logger    *zerolog.Logger
	startTime time.Time
	cache     *gocache.Cache
}

// New creates the handlers. Link listings are cached for cacheTTL so that
// polling does not reread the table file on every request; a zero TTL
// disables caching.
func New(source Source, logger *zerolog.Logger, startTime time.Time, cacheTTL time.Duration) *Handlers {
	h := &Handlers{
		source:    source,
		logger:    logger,
		startTime: startTime,
	}
	if cacheTTL > 0 {
		// A single key is overwritten on expiry, so no janitor goroutine.
		h.cache = gocache.New(cacheTTL, 0)
	}
	return h
}

// MethodNotAllowed answers any non-GET request.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.MethodNotAllowed(w, r.Method)
}
