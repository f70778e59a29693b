package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/whitelink/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]int{"count": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode(t, w)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"count": float64(2)}, resp.Data)
}

func TestServiceUnavailableKeepsData(t *testing.T) {
	w := httptest.NewRecorder()
	ServiceUnavailable(w, "degraded", map[string]string{"status": "degraded"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Error.Code)
	assert.Equal(t, "degraded", resp.Error.Details)
	assert.Equal(t, map[string]any{"status": "degraded"}, resp.Data)
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowed(w, http.MethodPost)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "POST")
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"not found", errors.NewNotFoundError("link", "123"), http.StatusNotFound, "NOT_FOUND"},
		{"persistence", errors.NewPersistenceError("save", "whitelist.json", fmt.Errorf("disk full")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)

			assert.Equal(t, tt.want, w.Code)
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
