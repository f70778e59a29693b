package handlers

import (
	"net/http"
	"strings"

	"github.com/agentstation/whitelink/internal/server/response"
	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/links"
)

const linksCacheKey = "links"

// HandleListLinks handles GET /api/v1/links.
func (h *Handlers) HandleListLinks(w http.ResponseWriter, r *http.Request) {
	records := h.records(r)
	response.OK(w, map[string]any{
		"links": records,
		"count": len(records),
	})
}

func (h *Handlers) records(r *http.Request) []links.Record {
	if h.cache != nil {
		if cached, ok := h.cache.Get(linksCacheKey); ok {
			return cached.([]links.Record)
		}
	}
	records := h.source.Table(r.Context()).Records()
	if records == nil {
		records = []links.Record{}
	}
	if h.cache != nil {
		h.cache.SetDefault(linksCacheKey, records)
	}
	return records
}

// HandleGetLink handles GET /api/v1/links/{member_id}.
func (h *Handlers) HandleGetLink(w http.ResponseWriter, r *http.Request) {
	i := strings.LastIndex(r.URL.Path, "/links/")
	memberID := strings.Trim(r.URL.Path[i+len("/links/"):], "/")
	if memberID == "" {
		h.HandleListLinks(w, r)
		return
	}
	name, ok := h.source.Table(r.Context()).Get(memberID)
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("link", memberID))
		return
	}
	response.OK(w, links.Record{MemberID: memberID, RemoteName: name})
}
