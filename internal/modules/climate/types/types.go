package types

// DateLayout is the only date form accepted or produced at the API boundary.
// It is fixed width and zero padded, so string order equals date order.
const DateLayout = "2006-01-02"

// Observation is one measurement row. Temperature and Precipitation are nil
// when the station did not report them.
type Observation struct {
	Date          string
	StationID     string
	Temperature   *float64
	Precipitation *float64
}

type Station struct {
	ID        int64
	Code      string
	Name      string
	Latitude  float64
	Longitude float64
	Elevation float64
}

// DateRange is inclusive on both ends. Begin <= End is not enforced; an
// inverted range matches nothing.
type DateRange struct {
	Begin string
	End   string
}

type TemperatureSummary struct {
	Min float64
	Avg float64
	Max float64
}

type PrecipitationRow struct {
	Date          string
	Precipitation *float64
}

// StationRecord is the JSON projection of a Station.
type StationRecord struct {
	ID        int64   `json:"ID"`
	Station   string  `json:"station"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// TobsRecord is the JSON projection of an Observation's temperature.
type TobsRecord struct {
	Date    string   `json:"date"`
	Station string   `json:"station"`
	Tobs    *float64 `json:"tobs"`
}

// ToStation reverses the projection done for the stations endpoint.
func (r StationRecord) ToStation() Station {
	return Station{
		ID:        r.ID,
		Code:      r.Station,
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Elevation: r.Elevation,
	}
}
