package service

import (
	"context"
	"encoding/json"
	"fmt"

	"climate-server/internal/modules/climate/types"
)

// DateBounds echoes the range a summary was computed over.
type DateBounds struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TemperatureEntry is one labelled statistic. Temperature is nil when the
// range held no data.
type TemperatureEntry struct {
	Observation string   `json:"Observation"`
	Temperature *float64 `json:"Temperature"`
}

// SummaryResponse encodes as a four element JSON array: the bounds followed
// by TMIN, TAVG and TMAX.
type SummaryResponse struct {
	Bounds  DateBounds
	Entries [3]TemperatureEntry
}

func (s SummaryResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Bounds, s.Entries[0], s.Entries[1], s.Entries[2]})
}

func newSummaryResponse(r types.DateRange, summary *types.TemperatureSummary) SummaryResponse {
	resp := SummaryResponse{
		Bounds: DateBounds{StartDate: r.Begin, EndDate: r.End},
		Entries: [3]TemperatureEntry{
			{Observation: "TMIN"},
			{Observation: "TAVG"},
			{Observation: "TMAX"},
		},
	}
	if summary != nil {
		lo, avg, hi := summary.Min, summary.Avg, summary.Max
		resp.Entries[0].Temperature = &lo
		resp.Entries[1].Temperature = &avg
		resp.Entries[2].Temperature = &hi
	}
	return resp
}

// Precipitation maps each date of the trailing year to its precipitation.
func Precipitation(ctx context.Context, ds DataSource) (map[string]*float64, error) {
	window, err := ResolveTrailingYear(ctx, ds)
	if err != nil {
		return nil, err
	}
	observations, err := ds.QueryObservationsInRange(ctx, window.Begin, window.End)
	if err != nil {
		return nil, fmt.Errorf("precipitation: %w", err)
	}
	return ShapeByDate(precipitationRows(observations)), nil
}

func Stations(ctx context.Context, ds DataSource) ([]types.StationRecord, error) {
	stations, err := ds.QueryAllStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}
	return ShapeStations(stations), nil
}

// Observations lists the temperature observations of the trailing year.
func Observations(ctx context.Context, ds DataSource) ([]types.TobsRecord, error) {
	window, err := ResolveTrailingYear(ctx, ds)
	if err != nil {
		return nil, err
	}
	observations, err := ds.QueryObservationsInRange(ctx, window.Begin, window.End)
	if err != nil {
		return nil, fmt.Errorf("tobs: %w", err)
	}
	return ShapeObservations(observations), nil
}

// StartSummary summarizes temperatures from start up to the latest stored
// date. start is not validated.
func StartSummary(ctx context.Context, ds DataSource, start string) (SummaryResponse, error) {
	end, err := latestDate(ctx, ds)
	if err != nil {
		return SummaryResponse{}, err
	}
	return StartEndSummary(ctx, ds, start, end)
}

// StartEndSummary summarizes temperatures between start and end inclusive.
// Neither bound is validated; a malformed bound yields the no-data response.
func StartEndSummary(ctx context.Context, ds DataSource, start, end string) (SummaryResponse, error) {
	r := types.DateRange{Begin: start, End: end}
	summary, err := Summarize(ctx, ds, r)
	if err != nil {
		return SummaryResponse{}, err
	}
	return newSummaryResponse(r, summary), nil
}
