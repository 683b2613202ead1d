package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/plotscript/pkg/cache"
	"github.com/matzehuels/plotscript/pkg/engine"
	"github.com/matzehuels/plotscript/pkg/observability"
	"github.com/matzehuels/plotscript/pkg/pipeline"
)

const cosJSON = `{"terminal":{"type":"dumb 40,10"},"graphs":[{"plots":[{"function":"cos(x)"}]}]}`

const cosScript = "set term dumb 40,10\nplot cos(x)\nquit\n"

func newTestServer(t *testing.T, eng *engine.Engine) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.NewWithOptions(&strings.Builder{}, log.Options{Level: log.ErrorLevel})
	return New(pipeline.NewRunner(c, nil, eng, logger), logger)
}

func do(t *testing.T, s *Server, method, path, ctype, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &engine.Engine{Command: []string{"gnuplot"}})
	rec := do(t, s, http.MethodGet, "/healthz", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "gnuplot", resp.Engine)
	assert.NotEmpty(t, resp.Build.GoVersion)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Server"), "plotscript/"))
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("generated", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/healthz", "", "")
		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	})

	t.Run("echoed in errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		req.Header.Set(RequestIDHeader, "req-43")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, "req-43", decodeError(t, rec).RequestID)
	})
}

func TestCompile(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/v1/compile", "application/json", cosJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, cosScript, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "miss", rec.Header().Get(CacheHeader))

	rec = do(t, s, http.MethodPost, "/v1/compile", "application/json", cosJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cosScript, rec.Body.String())
	assert.Equal(t, "hit", rec.Header().Get(CacheHeader))
}

func TestCompileFormats(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name  string
		ctype string
		body  string
	}{
		{"json default", "", cosJSON},
		{"toml", "application/toml", `
[terminal]
type = "dumb 40,10"

[[graph]]
  [[graph.plot]]
  function = "cos(x)"
`},
		{"yaml", "application/yaml", `
terminal:
  type: dumb 40,10
graphs:
  - plots:
      - function: cos(x)
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/compile", tt.ctype, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, cosScript, rec.Body.String())
		})
	}
}

func TestCompileErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name     string
		ctype    string
		body     string
		status   int
		wantCode string
	}{
		{"malformed json", "application/json", `{"graphs":`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", "application/json", `{"colour":"red"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unsupported type", "text/html", `<p>`, http.StatusUnsupportedMediaType, "UNSUPPORTED"},
		{"two sources", "application/json", `{"graphs":[{"plots":[{"function":"x","file":"a.dat"}]}]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad style", "application/json", `{"graphs":[{"plots":[{"function":"x","style":"sparkles"}]}]}`, http.StatusBadRequest, "INVALID_STYLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/compile", tt.ctype, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestRouting(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/v1/compile", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)

	rec = do(t, s, http.MethodGet, "/v2/compile", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestRenderWithoutEngine(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/v1/render", "application/json", cosJSON)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ENGINE_NOT_FOUND", decodeError(t, rec).Code)
}

func TestRender(t *testing.T) {
	for _, bin := range []string{"sh", "sed"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available: %v", bin, err)
		}
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "fakeplot")
	body := "#!/bin/sh\n" +
		"out=$(sed -n \"s/^set output '\\(.*\\)'$/\\1/p\")\n" +
		"printf PNGDATA > \"$out\"\n"
	require.NoError(t, os.WriteFile(bin, []byte(body), 0o755))

	s := newTestServer(t, &engine.Engine{Command: []string{bin}, Timeout: 10 * time.Second})
	png := `{"terminal":{"type":"png size 200,100"},"graphs":[{"plots":[{"function":"x**2"}]}]}`

	rec := do(t, s, http.MethodPost, "/v1/render", "application/json", png)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "PNGDATA", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "miss", rec.Header().Get(CacheHeader))

	rec = do(t, s, http.MethodPost, "/v1/render", "application/json", png)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hit", rec.Header().Get(CacheHeader))

	rec = do(t, s, http.MethodPost, "/v1/render?refresh=true", "application/json", png)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "miss", rec.Header().Get(CacheHeader))
}

type recordingHooks struct {
	mu       sync.Mutex
	requests []string
	statuses []int
}

func (h *recordingHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t, nil)
	do(t, s, http.MethodGet, "/healthz", "", "")
	do(t, s, http.MethodPost, "/v1/compile", "application/json", `{`)

	assert.Equal(t, []string{"GET /healthz", "POST /v1/compile"}, hooks.requests)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
