// ABOUTME: The stateless HTTP service — POST /extract and GET /meta, the
// ABOUTME: surface the extraction library itself stays agnostic of.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	scopeforge "github.com/ashgrove-dev/scopeforge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
	"github.com/ashgrove-dev/scopeforge/internal/engine"
	"github.com/ashgrove-dev/scopeforge/internal/meta"
	"github.com/ashgrove-dev/scopeforge/internal/sandbox"
	"github.com/ashgrove-dev/scopeforge/internal/store"
)

// Server wires the core engine and its optional external collaborators
// (a result cache, a handler lookup, a function runner) behind an HTTP
// API. Server holds no extraction state of its own between requests.
type Server struct {
	logger  *slog.Logger
	handler core.HandlerLookup
	runner  engine.FunctionRunner
	cache   *store.Store
	ttl     time.Duration
	client  *scopeforge.Client
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithHandlerLookup supplies the Auto/Handler scope resolution collaborator.
func WithHandlerLookup(h core.HandlerLookup) Option {
	return func(s *Server) { s.handler = h }
}

// WithFunctionRunner supplies the Function scope execution collaborator.
func WithFunctionRunner(r engine.FunctionRunner) Option {
	return func(s *Server) { s.runner = r }
}

// WithCache enables the TTL-indexed result cache in front of /extract.
func WithCache(c *store.Store, ttl time.Duration) Option {
	return func(s *Server) { s.cache = c; s.ttl = ttl }
}

// New builds a Server with the given options.
func New(opts ...Option) *Server {
	s := &Server{logger: slog.Default(), ttl: 10 * time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = sandbox.Runner{}
	}
	clientOpts := []scopeforge.Option{scopeforge.WithFunctionRunner(s.runner)}
	if s.handler != nil {
		clientOpts = append(clientOpts, scopeforge.WithHandlerLookup(s.handler))
	}
	s.client = scopeforge.New(clientOpts...)
	return s
}

// Router builds the chi router exposing POST /extract and GET /meta,
// with a request-id middleware for log correlation.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Post("/extract", s.handleExtract)
	r.Get("/meta", s.handleMeta)
	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// extractRequest is the POST /extract body: {html|url, scope, format}.
// When HTML is empty, URL is fetched through the same SSRF-guarded path
// cmd/scopeforge's extract command uses. When both are set, HTML is
// extracted and URL is only passed on as the source URL.
type extractRequest struct {
	HTML   string          `json:"html"`
	URL    string          `json:"url"`
	Scope  json.RawMessage `json:"scope"`
	Format string          `json:"format"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	scope, err := engine.ParseScope(req.Scope)
	if err != nil {
		writeExtractError(w, err)
		return
	}

	format, err := core.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	html := req.HTML
	if html == "" && req.URL != "" {
		fetched, err := s.client.FetchHTML(r.Context(), req.URL)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		html = fetched
	}

	if cached, ok := s.lookupCache(r.Context(), html, scope, format); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := engine.Extract(html, scope, format, engine.Options{
		Handler: s.handler,
		Runner:  s.runner,
		URL:     req.URL,
	})
	if err != nil {
		writeExtractError(w, err)
		return
	}

	s.storeCache(r.Context(), html, scope, format, result)
	writeJSON(w, http.StatusOK, result)
}

// metaRequest is the GET /meta body, used when no ?url= query param is
// given.
type metaRequest struct {
	HTML string `json:"html"`
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	if rawURL := r.URL.Query().Get("url"); rawURL != "" {
		m, err := s.client.Meta(r.Context(), rawURL)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
		return
	}

	var req metaRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	writeJSON(w, http.StatusOK, meta.Parse(req.HTML))
}

func (s *Server) lookupCache(ctx context.Context, html string, scope core.Scope, format core.Format) (core.ExtractionResult, bool) {
	if s.cache == nil {
		return core.ExtractionResult{}, false
	}
	key := store.Key(html, engine.ScopeToString(scope), format.String())
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil || !ok {
		return core.ExtractionResult{}, false
	}
	var result core.ExtractionResult
	if json.Unmarshal([]byte(value), &result) != nil {
		return core.ExtractionResult{}, false
	}
	return result, true
}

func (s *Server) storeCache(ctx context.Context, html string, scope core.Scope, format core.Format, result core.ExtractionResult) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return
	}
	key := store.Key(html, engine.ScopeToString(scope), format.String())
	_ = s.cache.Set(ctx, key, string(encoded), s.ttl)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeExtractError maps an extraction error to a status by its code:
// bad scope input and function-scope failures are the caller's fault
// (400), a missing handler collaborator is an upstream dependency
// problem (502). Anything untyped is a server-side failure.
func writeExtractError(w http.ResponseWriter, err error) {
	var ee *core.ExtractError
	if !errors.As(err, &ee) {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	switch ee.Code {
	case core.ErrHandlerUnavailable:
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusBadRequest, err)
	}
}
