package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/elenamtz/nubegen/pkg/apperr"
	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/palette"
	"github.com/elenamtz/nubegen/pkg/wordlist"
)

// maxBodyBytes caps request bodies; config payloads are tiny.
const maxBodyBytes = 1 << 20

// putConfigRequest is the full-replace config update. Words can arrive
// either pre-split or as the raw text of the words box, in which case the
// server tokenizes it.
type putConfigRequest struct {
	FinalColor string   `json:"final_color"`
	StopCount  int      `json:"n_stops"`
	Words      []string `json:"words"`
	WordsText  *string  `json:"words_text"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Config())
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var req putConfigRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, apperr.Wrap(apperr.ErrCodeInvalidImport, err, "malformed config body"))
		return
	}
	words := req.Words
	if req.WordsText != nil {
		words = wordlist.Split(*req.WordsText)
	}
	cfg := config.Configuration{
		FinalColor: strings.ToLower(req.FinalColor),
		StopCount:  req.StopCount,
		Words:      words,
		Width:      req.Width,
		Height:     req.Height,
	}
	if err := s.session.SetConfig(r.Context(), cfg); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.session.Config())
}

// gradientResponse lists the derived stops in both forms the page needs.
type gradientResponse struct {
	Stops []gradientStop `json:"stops"`
}

type gradientStop struct {
	Hex string `json:"hex"`
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
}

func (s *Server) handleGradient(w http.ResponseWriter, r *http.Request) {
	stops, err := s.session.Stops()
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := gradientResponse{Stops: make([]gradientStop, len(stops))}
	for i, st := range stops {
		resp.Stops[i] = gradientStop{Hex: st.Hex(), R: st.R, G: st.G, B: st.B}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGradientStrip(w http.ResponseWriter, r *http.Request) {
	stops, err := s.session.Stops()
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := palette.StripPNG(stops, 400, 28)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := config.Export(s.session.Config())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="active_config.json"`)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, apperr.Wrap(apperr.ErrCodeInvalidImport, err, "read import body"))
		return
	}
	// The full shape is validated before the session is touched; a bad
	// import leaves the active configuration exactly as it was.
	cfg, err := config.Import(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.session.SetConfig(r.Context(), cfg); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.session.Config())
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Load())
}

type saveSnapshotRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req saveSnapshotRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, apperr.Wrap(apperr.ErrCodeInvalidName, err, "malformed snapshot body"))
		return
	}
	if err := s.store.Add(req.Name, s.session.Config()); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("saved snapshot", "name", strings.TrimSpace(req.Name))
	s.writeJSON(w, http.StatusCreated, map[string]string{"name": strings.TrimSpace(req.Name)})
}

func (s *Server) handleLoadSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cfg, ok := s.store.Find(name)
	if !ok {
		s.writeError(w, apperr.New(apperr.ErrCodeNotFound, "no saved config named %q", name))
		return
	}
	if err := s.session.SetConfig(r.Context(), cfg); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("loaded snapshot", "name", name)
	s.writeJSON(w, http.StatusOK, s.session.Config())
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(name); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("deleted snapshot", "name", name)
	w.WriteHeader(http.StatusNoContent)
}
