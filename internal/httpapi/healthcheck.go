package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"climate-server/internal/utils"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

func handleHealthz(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			slog.Error("failed to check database connectivity", "error", err)
			utils.WriteError(w, http.StatusServiceUnavailable, "failed to check database connectivity")
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
