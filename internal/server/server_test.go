package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agentstation/whitelink/internal/server/response"
	"github.com/agentstation/whitelink/pkg/links"
	"github.com/agentstation/whitelink/pkg/linker"
	"github.com/agentstation/whitelink/pkg/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSource struct {
	health linker.Health
	table  map[string]string
}

func (f *fakeSource) Health() linker.Health { return f.health }

func (f *fakeSource) Table(context.Context) *links.Table {
	t := links.NewTable()
	for k, v := range f.table {
		t.Set(k, v)
	}
	return t
}

func get(t *testing.T, h http.Handler, method, path string) (int, response.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var resp response.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func TestHealthEndpoints(t *testing.T) {
	source := &fakeSource{table: map[string]string{"2": "Alex", "1": "Steve"}}
	h := New(source, DefaultConfig(), logging.NewNopLogger()).Handler()

	t.Run("health", func(t *testing.T) {
		code, resp := get(t, h, http.MethodGet, "/api/v1/health")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", resp.Data.(map[string]any)["status"])

		code, _ = get(t, h, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("ready", func(t *testing.T) {
		code, resp := get(t, h, http.MethodGet, "/api/v1/ready")
		assert.Equal(t, http.StatusOK, code)
		assert.Nil(t, resp.Error)
	})

	t.Run("links", func(t *testing.T) {
		code, resp := get(t, h, http.MethodGet, "/api/v1/links")
		require.Equal(t, http.StatusOK, code)
		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(2), data["count"])
		first := data["links"].([]any)[0].(map[string]any)
		assert.Equal(t, "1", first["member_id"])
		assert.Equal(t, "Steve", first["remote_name"])
	})

	t.Run("single link", func(t *testing.T) {
		code, resp := get(t, h, http.MethodGet, "/api/v1/links/2")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Alex", resp.Data.(map[string]any)["remote_name"])

		code, resp = get(t, h, http.MethodGet, "/api/v1/links/404")
		assert.Equal(t, http.StatusNotFound, code)
		require.NotNil(t, resp.Error)
	})

	t.Run("method not allowed", func(t *testing.T) {
		code, resp := get(t, h, http.MethodPost, "/api/v1/links")
		assert.Equal(t, http.StatusMethodNotAllowed, code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "METHOD_NOT_ALLOWED", resp.Error.Code)
	})
}

func TestLinksListingCache(t *testing.T) {
	source := &fakeSource{table: map[string]string{"1": "Steve"}}
	cfg := DefaultConfig()
	cfg.CacheTTL = time.Hour
	h := New(source, cfg, logging.NewNopLogger()).Handler()

	_, resp := get(t, h, http.MethodGet, "/api/v1/links")
	assert.Equal(t, float64(1), resp.Data.(map[string]any)["count"])

	source.table["2"] = "Alex"
	_, resp = get(t, h, http.MethodGet, "/api/v1/links")
	assert.Equal(t, float64(1), resp.Data.(map[string]any)["count"], "listing served from cache")

	// Single lookups always read the table.
	code, _ := get(t, h, http.MethodGet, "/api/v1/links/2")
	assert.Equal(t, http.StatusOK, code)

	cfg.CacheTTL = 0
	h = New(source, cfg, logging.NewNopLogger()).Handler()
	_, resp = get(t, h, http.MethodGet, "/api/v1/links")
	assert.Equal(t, float64(2), resp.Data.(map[string]any)["count"])
}

func TestReadyDegraded(t *testing.T) {
	source := &fakeSource{health: linker.Health{
		Degraded:  true,
		LastError: "link table save failed",
		Since:     time.Now(),
	}}
	h := New(source, DefaultConfig(), logging.NewNopLogger()).Handler()

	code, resp := get(t, h, http.MethodGet, "/api/v1/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, resp.Error)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "link table save failed", data["last_error"])

	// Liveness is unaffected.
	code, _ = get(t, h, http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusOK, code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(&fakeSource{}, DefaultConfig(), logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = client.Get(fmt.Sprintf("http://%s/api/v1/health", ln.Addr()))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
