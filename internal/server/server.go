// Package server implements the local HTTP dashboard: a JSON API plus a
// small embedded page for editing the configuration, previewing gradient
// and variations, and downloading full-resolution renders.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/elenamtz/nubegen/pkg/apperr"
	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/pipeline"
)

//go:embed dashboard.html
var dashboardHTML []byte

// Server wires the session, snapshot store, and pipeline runner into an
// http.Handler.
type Server struct {
	logger  *log.Logger
	store   *config.Store
	session *Session
}

// New creates a dashboard server. seed is forwarded to the session: zero
// means fresh random variations per regeneration (the normal interactive
// behavior), non-zero pins the whole session for reproducibility.
func New(logger *log.Logger, store *config.Store, runner *pipeline.Runner, seed uint64, previewWidth int) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger:  logger,
		store:   store,
		session: NewSession(runner, seed, 0, previewWidth),
	}
}

// Session exposes the state container, mainly for tests.
func (s *Server) Session() *Session {
	return s.session
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/gradient.png", s.handleGradientStrip)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleGetConfig)
		r.Put("/config", s.handlePutConfig)
		r.Get("/config/export", s.handleExport)
		r.Post("/config/import", s.handleImport)

		r.Get("/gradient", s.handleGradient)

		r.Get("/variations", s.handleListVariations)
		r.Post("/variations", s.handleRegenerate)
		r.Get("/variations/{n}/image.png", s.handleVariationImage)
		r.Get("/variations/{n}/thumb.png", s.handleVariationThumb)
		r.Get("/variations/{n}/download", s.handleVariationDownload)

		r.Get("/snapshots", s.handleListSnapshots)
		r.Post("/snapshots", s.handleSaveSnapshot)
		r.Post("/snapshots/{name}/load", s.handleLoadSnapshot)
		r.Delete("/snapshots/{name}", s.handleDeleteSnapshot)
	})

	return r
}

// logRequests logs one line per request through the charm logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()[:8]
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// errorPayload is the JSON error envelope.
type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.GetCode(err) {
	case apperr.ErrCodeInvalidColor, apperr.ErrCodeInvalidStops,
		apperr.ErrCodeInvalidDimensions, apperr.ErrCodeInvalidName,
		apperr.ErrCodeInvalidImport:
		status = http.StatusBadRequest
	case apperr.ErrCodeEmptyWords:
		status = http.StatusConflict
	case apperr.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	if errors.Is(err, context.Canceled) {
		status = 499 // client closed request
	}

	var payload errorPayload
	payload.Error.Code = string(apperr.GetCode(err))
	payload.Error.Message = apperr.UserMessage(err)
	s.writeJSON(w, status, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(dashboardHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"session": s.session.ID(),
	})
}

// variationMeta is the list entry for GET /api/variations.
type variationMeta struct {
	Index    int            `json:"index"`
	Filename string         `json:"filename"`
	Weights  map[string]int `json:"weights"`
	Cached   bool           `json:"cached"`
}

func (s *Server) handleListVariations(w http.ResponseWriter, r *http.Request) {
	result, err := s.session.Ensure(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	metas := make([]variationMeta, len(result.Variations))
	for i, v := range result.Variations {
		metas[i] = variationMeta{
			Index:    v.Index,
			Filename: v.Filename,
			Weights:  v.Weights,
			Cached:   v.Cached,
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"seed":       result.Seed,
		"variations": metas,
	})
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Regenerate(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.handleListVariations(w, r)
}

// variation fetches the nth (1-based) rendered variation.
func (s *Server) variation(r *http.Request) (*pipeline.Variation, error) {
	result, err := s.session.Ensure(r.Context())
	if err != nil {
		return nil, err
	}
	n := 0
	for _, ch := range chi.URLParam(r, "n") {
		if ch < '0' || ch > '9' {
			return nil, apperr.New(apperr.ErrCodeNotFound, "no such variation")
		}
		n = n*10 + int(ch-'0')
	}
	if n < 1 || n > len(result.Variations) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "no such variation %d", n)
	}
	return &result.Variations[n-1], nil
}

func (s *Server) handleVariationImage(w http.ResponseWriter, r *http.Request) {
	v, err := s.variation(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(v.PNG)
}

func (s *Server) handleVariationThumb(w http.ResponseWriter, r *http.Request) {
	v, err := s.variation(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(v.Thumb)
}

func (s *Server) handleVariationDownload(w http.ResponseWriter, r *http.Request) {
	v, err := s.variation(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+v.Filename+`"`)
	_, _ = w.Write(v.PNG)
}
