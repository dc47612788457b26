package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"climate-server/internal/config"
	db "climate-server/internal/db"
	httpapi "climate-server/internal/httpapi"
	climate "climate-server/internal/modules/climate"
	climateviews "climate-server/internal/modules/climate/views"
	"climate-server/internal/schema"
)

const shutdownTimeout = 10 * time.Second

// Run serves the climate API until ctx is cancelled, then shuts the HTTP
// server down gracefully.
func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.Path,
		"dsnSet", cfg.DSN != "",
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"queryTimeout", cfg.QueryTimeout,
		"strictDates", cfg.StrictDates,
	)

	dbConn, err := openVerified(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB(dbConn)
	slog.Info("database connection successful")

	if err := climateviews.LoadTemplates(); err != nil {
		return err
	}
	mux := httpapi.NewMux(dbConn)
	climate.RegisterFeature(mux, dbConn, cfg)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// openVerified opens the read-only pool and fails unless the store has the
// tables the API reads.
func openVerified(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	dbConn, err := db.Open(ctx, cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	if err := schema.Verify(ctx, dbConn); err != nil {
		closeDB(dbConn)
		return nil, fmt.Errorf("verify store: %w", err)
	}
	return dbConn, nil
}

func closeDB(dbConn *sql.DB) {
	if err := db.Close(dbConn); err != nil {
		slog.Error("db close", "error", err)
	}
}
