package climate

import (
	"database/sql"
	"log/slog"
	"net/http"

	"climate-server/internal/config"
	"climate-server/internal/modules/climate/controller"
	"climate-server/internal/modules/climate/repository"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, cfg config.Config) {
	climateStore := repository.NewStore(db)
	climateController := controller.NewClimateController(climateStore, controller.Options{
		QueryTimeout: cfg.QueryTimeout,
		StrictDates:  cfg.StrictDates,
	}, slog.Default().With("component", "climate"))
	climateController.RegisterRoutes(mux)
}
