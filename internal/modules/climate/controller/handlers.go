package controller

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"climate-server/internal/modules/climate/service"
	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
	"climate-server/internal/utils"
)

// query runs fn inside a request-scoped session bounded by the configured
// timeout and writes its result as JSON.
func (c *climateControllerImpl) query(w http.ResponseWriter, r *http.Request, endpoint string, fn func(ctx context.Context, ds service.DataSource) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), c.opts.QueryTimeout)
	defer cancel()

	var out any
	err := c.store.WithSession(ctx, func(ds service.DataSource) error {
		var err error
		out, err = fn(ctx, ds)
		return err
	})
	if err != nil {
		c.writeFailure(w, r, endpoint, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) writeFailure(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	status, msg := statusFor(err)
	attrs := []any{"endpoint", endpoint, "status", status, "error", err}
	if status >= http.StatusInternalServerError {
		c.logger.ErrorContext(r.Context(), "climate query failed", attrs...)
	} else {
		c.logger.InfoContext(r.Context(), "climate query rejected", attrs...)
	}
	utils.WriteError(w, status, msg)
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	c.query(w, r, "precipitation", func(ctx context.Context, ds service.DataSource) (any, error) {
		return service.Precipitation(ctx, ds)
	})
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	c.query(w, r, "stations", func(ctx context.Context, ds service.DataSource) (any, error) {
		return service.Stations(ctx, ds)
	})
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	c.query(w, r, "tobs", func(ctx context.Context, ds service.DataSource) (any, error) {
		return service.Observations(ctx, ds)
	})
}

func (c *climateControllerImpl) handleStartSummary(w http.ResponseWriter, r *http.Request) {
	start := r.PathValue("start")
	if err := c.checkDates(start); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.query(w, r, "start", func(ctx context.Context, ds service.DataSource) (any, error) {
		return service.StartSummary(ctx, ds, start)
	})
}

func (c *climateControllerImpl) handleStartEndSummary(w http.ResponseWriter, r *http.Request) {
	start, end := r.PathValue("start"), r.PathValue("end")
	if err := c.checkDates(start, end); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.query(w, r, "start_end", func(ctx context.Context, ds service.DataSource) (any, error) {
		return service.StartEndSummary(ctx, ds, start, end)
	})
}

// handleIndex lists the available routes, plus the latest stored date when
// the store can provide it.
func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := &views.IndexData{Title: "Climate API", Routes: indexRoutes}

	ctx, cancel := context.WithTimeout(r.Context(), c.opts.QueryTimeout)
	defer cancel()
	err := c.store.WithSession(ctx, func(ds service.DataSource) error {
		latest, err := ds.LatestObservationDate(ctx)
		if err != nil {
			return err
		}
		data.LatestDate = latest
		return nil
	})
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		c.logger.WarnContext(r.Context(), "index: latest date unavailable", "error", err)
	}

	var buf bytes.Buffer
	if err := views.RenderIndex(&buf, data); err != nil {
		c.logger.ErrorContext(r.Context(), "index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		c.logger.ErrorContext(r.Context(), "index: write response failed", "error", err)
	}
}
