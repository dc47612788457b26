package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RequestIDHeader carries the id assigned to each request by the httpapi
// middleware.
const RequestIDHeader = "X-Request-ID"

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to write JSON", "error", err)
	}
}

// WriteError writes the standard error body. The request id, when the
// middleware has set one, is echoed so clients can quote it.
func WriteError(w http.ResponseWriter, status int, msg string) {
	body := map[string]any{
		"error":   http.StatusText(status),
		"message": msg,
	}
	if id := w.Header().Get(RequestIDHeader); id != "" {
		body["request_id"] = id
	}
	WriteJSON(w, status, body)
}
