package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pitchside/internal/api"
	"pitchside/internal/logging"
	"pitchside/internal/services"
)

const sourceHTTP = "http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"languages": s.svc.Languages(),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	resp, err := s.svc.Analyze(r.Context(), req)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHighlights(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	resp, err := s.svc.Highlights(r.Context(), req)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.ProfilesResponse{Profiles: s.svc.Profiles()})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Status(s.cfg))
}

func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (api.AnalyzeRequest, bool) {
	var req api.AnalyzeRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, io.EOF):
			writeError(w, r, http.StatusBadRequest, errors.New("request body required"))
		default:
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		}
		return req, false
	}
	req.Source = sourceHTTP
	return req, true
}

func (s *Server) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), "analysis request failed", "http_analysis_failed",
			logging.Error(err),
			logging.Int("status", status),
		)
	}
	writeError(w, r, status, err)
}
