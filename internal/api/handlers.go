package api

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotscript/pkg/buildinfo"
	"github.com/matzehuels/plotscript/pkg/cache"
	"github.com/matzehuels/plotscript/pkg/config"
	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/pipeline"
)

// CacheHeader reports "hit" or "miss" on compile and render responses.
const CacheHeader = "X-Cache"

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime"`
	Build  buildinfo.Info `json:"build"`
	Engine string         `json:"engine,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
		Build:  buildinfo.Get(),
	}
	if s.runner.Engine != nil {
		resp.Engine = s.runner.Engine.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// readDescription reads and parses the request body.
func readDescription(w http.ResponseWriter, r *http.Request) (*config.Description, []byte, error) {
	format, err := config.FormatFromContentType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil, err
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	desc, err := config.Parse(body, format)
	if err != nil {
		return nil, nil, err
	}
	return desc, append([]byte(format+"\x00"), body...), nil
}

// handleCompile answers with the compiled script. Scripts are cached by the
// exact request body, so resubmitting a description skips the build.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	desc, raw, err := readDescription(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}

	key := s.runner.Keyer.ScriptKey(cache.Hash(raw))
	if data, hit, err := s.runner.Cache.Get(ctx, key); err == nil && hit {
		writeScript(w, data, "hit")
		return
	}

	res, err := s.runner.Compile(ctx, desc)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.runner.Cache.Set(ctx, key, []byte(res.Script), cache.TTLScript); err != nil {
		log.FromContext(ctx).Warn("cache write failed", "err", err)
	}
	writeScript(w, []byte(res.Script), "miss")
}

func writeScript(w http.ResponseWriter, script []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(CacheHeader, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(script)
}

// handleRender answers with the rendered artifact. ?refresh=true bypasses
// the artifact cache.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	desc, _, err := readDescription(w, r)
	if err != nil {
		fail(w, r, err)
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	res, err := s.runner.Render(r.Context(), desc, pipeline.RenderOptions{Refresh: refresh})
	if err != nil {
		fail(w, r, err)
		return
	}

	ctype := mime.TypeByExtension(res.Extension)
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	if res.Cached {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}
