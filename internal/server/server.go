// Package server exposes the catalog and headless replays over HTTP.
//
// Every replay request mounts a fresh desktop, so requests share no mutable
// state and the handler is safe for concurrent use.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/folio/pkg/buildinfo"
	"github.com/matzehuels/folio/pkg/catalog"
	"github.com/matzehuels/folio/pkg/desktop"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/observability"
)

const maxScriptBytes = 1 << 20

// Config configures a Server.
type Config struct {
	Catalog *catalog.Catalog
	Desktop desktop.Config
	Logger  *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	catalog *catalog.Catalog
	desktop desktop.Config
	logger  *log.Logger
}

// New validates cfg and creates a server. A nil catalog uses the embedded
// default.
func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if err := cfg.Desktop.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		catalog: cfg.Catalog,
		desktop: cfg.Desktop,
		logger:  cfg.Logger,
	}, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(withSecurityHeaders)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/apps", s.handleApps)
		r.Get("/apps/{id}", s.handleApp)
		r.Post("/replay", s.handleReplay)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Apps())
}

func (s *Server) handleApp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	app, ok := s.catalog.Get(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "unknown app %q", id))
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	format := desktop.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		format = q
	} else if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = desktop.FormatTOML
	}

	script, err := desktop.ReadScript(http.MaxBytesReader(w, r.Body, maxScriptBytes), format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := desktop.Replay(s.catalog, s.desktop, script, s.logger)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// =============================================================================
// Helpers
// =============================================================================

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

// writeJSON encodes v before anything is sent, so an encoding failure can
// still be reported as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
		buf.Reset()
		status = http.StatusInternalServerError
		// errorBody holds only strings and always encodes.
		_ = enc.Encode(errorBody{Code: errors.ErrCodeInternal, Message: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
		observability.HTTP().OnRequest(r.Method, r.URL.Path, ww.Status(), elapsed)
	})
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
