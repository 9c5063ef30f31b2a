package prices

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// Commodity identifies one of the four tracked price series
type Commodity string

const (
	Oil     Commodity = "oil"
	Petrol  Commodity = "petrol"
	Plastic Commodity = "plastic"
	Tar     Commodity = "tar"
)

// All returns every commodity in load order, oil first
func All() []Commodity {
	return []Commodity{Oil, Petrol, Plastic, Tar}
}

// Derived returns the oil products in presentation order
func Derived() []Commodity {
	return []Commodity{Petrol, Plastic, Tar}
}

// Column is the CombinedTable column holding this commodity's price
func (c Commodity) Column() string {
	return string(c) + "_price"
}

// Point is a single dated price observation
type Point struct {
	Date  time.Time
	Value float64
}

// TimeSeries is one commodity's price history, ordered by date
type TimeSeries struct {
	Commodity Commodity
	Points    []Point
}

// Len returns the number of observations
func (ts TimeSeries) Len() int {
	return len(ts.Points)
}

// Values returns the prices in date order
func (ts TimeSeries) Values() []float64 {
	out := make([]float64, len(ts.Points))
	for i, p := range ts.Points {
		out[i] = p.Value
	}
	return out
}

// Dates returns the observation dates in order
func (ts TimeSeries) Dates() []time.Time {
	out := make([]time.Time, len(ts.Points))
	for i, p := range ts.Points {
		out[i] = p.Date
	}
	return out
}

// CombinedTable is the date-aligned wide view of all four series
type CombinedTable struct {
	frame dataframe.DataFrame
}

// Columns returns the column names, date first
func (t CombinedTable) Columns() []string {
	return t.frame.Names()
}

// Len returns the number of rows
func (t CombinedTable) Len() int {
	return t.frame.Nrow()
}

// Records returns the table as a list of column -> value maps, one per row
func (t CombinedTable) Records() []map[string]interface{} {
	return t.frame.Maps()
}

// Dataset holds everything loaded at startup. It is never mutated after
// construction and can be shared freely.
type Dataset struct {
	Oil     TimeSeries
	Petrol  TimeSeries
	Plastic TimeSeries
	Tar     TimeSeries
	Table   CombinedTable
}

// Series returns the series for a commodity
func (d *Dataset) Series(c Commodity) (TimeSeries, error) {
	switch c {
	case Oil:
		return d.Oil, nil
	case Petrol:
		return d.Petrol, nil
	case Plastic:
		return d.Plastic, nil
	case Tar:
		return d.Tar, nil
	}
	return TimeSeries{}, fmt.Errorf("unknown commodity: %s", c)
}

// DataShapeError reports malformed or misaligned input
type DataShapeError struct {
	Source string
	Reason string
}

func (e *DataShapeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("bad data shape: %s", e.Reason)
	}
	return fmt.Sprintf("bad data shape in %s: %s", e.Source, e.Reason)
}

func shapeErrorf(source, format string, args ...interface{}) error {
	return &DataShapeError{Source: source, Reason: fmt.Sprintf(format, args...)}
}
