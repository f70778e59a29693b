package server

import (
	"net/http"

	"github.com/agentstation/whitelink/internal/server/handlers"
	"github.com/agentstation/whitelink/internal/server/middleware"
)

func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	h := handlers.New(s.source, s.logger, s.startTime, s.config.CacheTTL)
	s.registerRoutes(mux, h)

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(mux)
}

func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/health", getOnly(h.HandleHealth))
	mux.HandleFunc(prefix+"/health", getOnly(h.HandleHealth))
	mux.HandleFunc(prefix+"/ready", getOnly(h.HandleReady))
	mux.HandleFunc(prefix+"/links", getOnly(h.HandleListLinks))
	mux.HandleFunc(prefix+"/links/", getOnly(h.HandleGetLink))
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			handlers.MethodNotAllowed(w, r)
			return
		}
		next(w, r)
	}
}
