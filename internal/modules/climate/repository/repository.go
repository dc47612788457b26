package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"climate-server/internal/modules/climate/service"
	"climate-server/internal/modules/climate/types"
)

//go:embed sql/get-latest-date.sql
var getLatestDateSQL string

//go:embed sql/get-observations.sql
var getObservationsSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-temperature-summary.sql
var getTemperatureSummarySQL string

// Store hands out request-scoped sessions over a shared pool.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// WithSession reserves one connection from the pool for the duration of fn
// and returns it to the pool afterwards, whatever fn returns.
func (s *Store) WithSession(ctx context.Context, fn func(ds service.DataSource) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire connection: %w", types.ErrDataSourceUnavailable, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("release connection", "error", err)
		}
	}()
	return fn(&session{q: conn})
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// session implements service.DataSource on a single connection.
type session struct {
	q querier
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrDataSourceUnavailable, op, err)
}

func (s *session) LatestObservationDate(ctx context.Context) (string, error) {
	var latest sql.NullString
	if err := s.q.QueryRowContext(ctx, getLatestDateSQL).Scan(&latest); err != nil {
		return "", unavailable("latest date", err)
	}
	if !latest.Valid {
		return "", types.ErrNotFound
	}
	return latest.String, nil
}

func (s *session) QueryObservationsInRange(ctx context.Context, begin, end string) ([]types.Observation, error) {
	rows, err := s.q.QueryContext(ctx, getObservationsSQL, begin, end)
	if err != nil {
		return nil, unavailable("query observations", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close observation rows", "error", err)
		}
	}()

	var out []types.Observation
	for rows.Next() {
		var (
			o    types.Observation
			tobs sql.NullFloat64
			prcp sql.NullFloat64
		)
		if err := rows.Scan(&o.Date, &o.StationID, &tobs, &prcp); err != nil {
			return nil, unavailable("scan observation", err)
		}
		o.Temperature = nullableFloat(tobs)
		o.Precipitation = nullableFloat(prcp)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate observations", err)
	}
	return out, nil
}

func (s *session) QueryAllStations(ctx context.Context) ([]types.Station, error) {
	rows, err := s.q.QueryContext(ctx, getStationsSQL)
	if err != nil {
		return nil, unavailable("query stations", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close station rows", "error", err)
		}
	}()

	var out []types.Station
	for rows.Next() {
		var (
			st            types.Station
			lat, lon, elv sql.NullFloat64
		)
		if err := rows.Scan(&st.ID, &st.Code, &st.Name, &lat, &lon, &elv); err != nil {
			return nil, unavailable("scan station", err)
		}
		st.Latitude, st.Longitude, st.Elevation = lat.Float64, lon.Float64, elv.Float64
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate stations", err)
	}
	return out, nil
}

func (s *session) AggregateTemperature(ctx context.Context, begin, end string) (*types.TemperatureSummary, error) {
	var (
		n           int
		lo, avg, hi sql.NullFloat64
	)
	err := s.q.QueryRowContext(ctx, getTemperatureSummarySQL, begin, end).Scan(&n, &lo, &avg, &hi)
	if err != nil {
		return nil, unavailable("aggregate temperature", err)
	}
	if n == 0 {
		return nil, nil
	}
	return &types.TemperatureSummary{Min: lo.Float64, Avg: avg.Float64, Max: hi.Float64}, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
