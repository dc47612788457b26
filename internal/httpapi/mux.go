package httpapi

import "net/http"

// NewMux returns a mux with the health check registered. Feature modules
// add their own routes to it.
func NewMux(db pinger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz(db))
	return mux
}
