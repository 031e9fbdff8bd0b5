package server

import (
	"encoding/json"
	"net/http"

	"pitchside/internal/api"
	"pitchside/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := api.ErrorResponse{Error: http.StatusText(status), Status: status}
	if err != nil {
		resp.Error = err.Error()
	}
	if id, ok := services.RequestIDFromContext(r.Context()); ok {
		resp.RequestID = id
	}
	writeJSON(w, status, resp)
}
