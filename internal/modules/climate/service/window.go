package service

import (
	"context"
	"errors"
	"time"

	"climate-server/internal/modules/climate/types"
)

// trailingWindowDays is one day longer than a calendar year.
const trailingWindowDays = 366

// ResolveTrailingYear returns the window of trailingWindowDays ending at the
// latest date present in the store.
func ResolveTrailingYear(ctx context.Context, ds DataSource) (types.DateRange, error) {
	latest, err := latestDate(ctx, ds)
	if err != nil {
		return types.DateRange{}, err
	}
	end, err := time.Parse(types.DateLayout, latest)
	if err != nil {
		return types.DateRange{}, &types.DateParseError{Value: latest, Err: err}
	}
	begin := end.AddDate(0, 0, -trailingWindowDays)
	return types.DateRange{
		Begin: begin.Format(types.DateLayout),
		End:   latest,
	}, nil
}

// latestDate reads the latest stored date. An empty store is reported as a
// DateParseError wrapping types.ErrNotFound.
func latestDate(ctx context.Context, ds DataSource) (string, error) {
	latest, err := ds.LatestObservationDate(ctx)
	if errors.Is(err, types.ErrNotFound) {
		return "", &types.DateParseError{Err: err}
	}
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "", &types.DateParseError{Err: types.ErrNotFound}
	}
	return latest, nil
}
