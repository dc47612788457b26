package service

import (
	"context"
	"fmt"

	"climate-server/internal/modules/climate/types"
)

// Summarize returns min, avg and max temperature over r, or nil when no
// temperature was recorded in r. Bounds are passed to the store unchanged.
func Summarize(ctx context.Context, ds DataSource, r types.DateRange) (*types.TemperatureSummary, error) {
	summary, err := ds.AggregateTemperature(ctx, r.Begin, r.End)
	if err != nil {
		return nil, fmt.Errorf("summarize %s..%s: %w", r.Begin, r.End, err)
	}
	return summary, nil
}
