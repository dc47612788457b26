package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
)

const (
	apiPrefix           = "/api/v1.0"
	defaultQueryTimeout = 5 * time.Second
)

var indexRoutes = []views.Route{
	{Path: apiPrefix + "/precipitation", Description: "precipitation by date over the last year of data"},
	{Path: apiPrefix + "/stations", Description: "all stations"},
	{Path: apiPrefix + "/tobs", Description: "temperature observations over the last year of data"},
	{Path: apiPrefix + "/[start]", Description: "TMIN, TAVG, TMAX from start (YYYY-MM-DD) to the latest date"},
	{Path: apiPrefix + "/[start]/[end]", Description: "TMIN, TAVG, TMAX between start and end inclusive"},
}

var validate = validator.New()

var dateRule = "datetime=" + types.DateLayout

// checkDates rejects values that are not YYYY-MM-DD when strict dates are
// enabled. Otherwise every value is accepted and a malformed one simply
// matches no observation.
func (c *climateControllerImpl) checkDates(values ...string) error {
	if !c.opts.StrictDates {
		return nil
	}
	for _, v := range values {
		if err := validate.Var(v, dateRule); err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", v)
		}
	}
	return nil
}

// statusFor maps a failed query to an HTTP status and a client message.
func statusFor(err error) (int, string) {
	var parseErr *types.DateParseError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "query timed out"
	case errors.As(err, &parseErr) && errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, "no observations available"
	case errors.Is(err, types.ErrDataSourceUnavailable):
		return http.StatusServiceUnavailable, "data source unavailable"
	case errors.As(err, &parseErr):
		return http.StatusInternalServerError, "latest observation date is not a valid date"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
