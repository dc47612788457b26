// Package service holds the query and aggregation logic behind the climate
// endpoints. Every function here is a pure function of its arguments plus
// reads from a DataSource; nothing is cached between calls.
package service

import (
	"context"

	"climate-server/internal/modules/climate/types"
)

// DataSource is the read capability the service needs from the store.
// Dates cross this boundary as "YYYY-MM-DD" strings and are compared as
// strings by the implementation.
type DataSource interface {
	// LatestObservationDate returns types.ErrNotFound when the store is empty.
	LatestObservationDate(ctx context.Context) (string, error)
	QueryObservationsInRange(ctx context.Context, begin, end string) ([]types.Observation, error)
	QueryAllStations(ctx context.Context) ([]types.Station, error)
	// AggregateTemperature returns nil when no non-null temperature lies in range.
	AggregateTemperature(ctx context.Context, begin, end string) (*types.TemperatureSummary, error)
}
