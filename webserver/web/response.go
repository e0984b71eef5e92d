package web

import (
	"encoding/json"
	"net/http"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warnf("failed to encode JSON response: %v", err)
	}
}

// WriteRaw writes an already-encoded JSON body.
func WriteRaw(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Warnf("failed to write JSON response: %v", err)
	}
}

// WriteError writes a JSON error response with the given status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, api.ErrorBody{Error: message})
}

// WriteHandlerError maps a host command error onto its HTTP status.
func WriteHandlerError(w http.ResponseWriter, err error) {
	status := ipc.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Warnf("command failed: %v", err)
	}
	WriteError(w, status, err.Error())
}
