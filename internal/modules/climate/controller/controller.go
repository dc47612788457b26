package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"climate-server/internal/modules/climate/service"
)

// SessionRunner gives each request its own DataSource for the duration of
// fn. repository.Store implements it.
type SessionRunner interface {
	WithSession(ctx context.Context, fn func(ds service.DataSource) error) error
}

type Options struct {
	QueryTimeout time.Duration
	StrictDates  bool
}

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	store  SessionRunner
	opts   Options
	logger *slog.Logger
}

func NewClimateController(store SessionRunner, opts Options, logger *slog.Logger) ClimateController {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = defaultQueryTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &climateControllerImpl{store: store, opts: opts, logger: logger}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET "+apiPrefix+"/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET "+apiPrefix+"/stations", c.handleStations)
	mux.HandleFunc("GET "+apiPrefix+"/tobs", c.handleTobs)
	mux.HandleFunc("GET "+apiPrefix+"/{start}", c.handleStartSummary)
	mux.HandleFunc("GET "+apiPrefix+"/{start}/{end}", c.handleStartEndSummary)
}
