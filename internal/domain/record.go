package domain

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
)

// Sentinel bounds the FARS export uses for unreported coordinates.
const (
	missingLongitude = 900.0 // LONGITUD >= 900 means not reported
	maxLatitude      = 90.0  // LATITUDE > 90 means not reported
)

// AccidentRecord is one reported incident, with coordinates already
// converted from sentinel encoding to optional fields.
type AccidentRecord struct {
	State int
	Month int
	Lon   *float64 // nil when the source row carried a sentinel
	Lat   *float64
}

// HasLocation reports whether both coordinates were reported.
func (r AccidentRecord) HasLocation() bool {
	return r.Lon != nil && r.Lat != nil
}

// RecordsFromFrame decodes the STATE, MONTH, LONGITUD and LATITUDE columns
// of a loaded accident frame into typed records. Sentinel coordinates
// become nil.
func RecordsFromFrame(df dataframe.DataFrame) ([]AccidentRecord, error) {
	states, err := intColumn(df, "STATE")
	if err != nil {
		return nil, err
	}
	months, err := intColumn(df, "MONTH")
	if err != nil {
		return nil, err
	}
	lons, err := floatColumn(df, "LONGITUD")
	if err != nil {
		return nil, err
	}
	lats, err := floatColumn(df, "LATITUDE")
	if err != nil {
		return nil, err
	}

	records := make([]AccidentRecord, df.Nrow())
	for i := range records {
		rec := AccidentRecord{State: states[i], Month: months[i]}
		if lon := lons[i]; !math.IsNaN(lon) && lon < missingLongitude {
			v := lon
			rec.Lon = &v
		}
		if lat := lats[i]; !math.IsNaN(lat) && lat <= maxLatitude {
			v := lat
			rec.Lat = &v
		}
		records[i] = rec
	}
	return records, nil
}

func intColumn(df dataframe.DataFrame, name string) ([]int, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, col.Err)
	}
	vals, err := col.Int()
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return vals, nil
}

func floatColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, col.Err)
	}
	return col.Float(), nil
}
