package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"climate-server/internal/config"
	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/service"
)

// CheckSchema opens the store and reports whether it has every table and
// column the API reads.
func CheckSchema(ctx context.Context, cfg config.Config) error {
	dbConn, err := openVerified(ctx, cfg)
	if err != nil {
		return err
	}
	closeDB(dbConn)
	slog.Info("schema ok", "sqlitePath", cfg.Path)
	return nil
}

// Summary writes the temperature summary for start..end to w, encoded the
// same way as the HTTP API. An empty end means the latest stored date.
func Summary(ctx context.Context, cfg config.Config, w io.Writer, start, end string) error {
	dbConn, err := openVerified(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB(dbConn)

	ctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	var resp service.SummaryResponse
	err = repository.NewStore(dbConn).WithSession(ctx, func(ds service.DataSource) error {
		var err error
		if end == "" {
			resp, err = service.StartSummary(ctx, ds, start)
		} else {
			resp, err = service.StartEndSummary(ctx, ds, start, end)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("summary %s..%s: %w", start, end, err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
