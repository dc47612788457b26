package service

import "climate-server/internal/modules/climate/types"

// ShapeByDate folds rows into a date-keyed map. When several rows share a
// date the last one in input order wins, nil values included.
func ShapeByDate(rows []types.PrecipitationRow) map[string]*float64 {
	out := make(map[string]*float64, len(rows))
	for _, row := range rows {
		out[row.Date] = row.Precipitation
	}
	return out
}

func precipitationRows(observations []types.Observation) []types.PrecipitationRow {
	rows := make([]types.PrecipitationRow, 0, len(observations))
	for _, o := range observations {
		rows = append(rows, types.PrecipitationRow{Date: o.Date, Precipitation: o.Precipitation})
	}
	return rows
}

func ShapeStations(stations []types.Station) []types.StationRecord {
	out := make([]types.StationRecord, 0, len(stations))
	for _, s := range stations {
		out = append(out, types.StationRecord{
			ID:        s.ID,
			Station:   s.Code,
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Elevation: s.Elevation,
		})
	}
	return out
}

func ShapeObservations(observations []types.Observation) []types.TobsRecord {
	out := make([]types.TobsRecord, 0, len(observations))
	for _, o := range observations {
		out = append(out, types.TobsRecord{
			Date:    o.Date,
			Station: o.StationID,
			Tobs:    o.Temperature,
		})
	}
	return out
}
