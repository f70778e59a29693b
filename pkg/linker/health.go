package linker

import (
	"sync"
	"time"
)

// Health reports whether the link table is being persisted.
type Health struct {
	Degraded  bool      `json:"degraded"`
	LastError string    `json:"last_error,omitempty"`
	Since     time.Time `json:"since,omitzero"`
}

type healthState struct {
	mu      sync.Mutex
	current Health
}

func (h *healthState) fail(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.current.Degraded {
		h.current.Since = time.Now()
	}
	h.current.Degraded = true
	h.current.LastError = err.Error()
}

func (h *healthState) ok() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = Health{}
}

func (h *healthState) get() Health {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Health returns the persistence health. The engine turns degraded after any
// failed table read or write and recovers on the next successful save.
func (e *Engine) Health() Health {
	return e.health.get()
}
