package prices

import (
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DateColumn is the CombinedTable date column name
const DateColumn = "date"

// NewTimeSeries builds a series from parallel date/value slices and checks
// that it is non-empty, NaN-free and strictly increasing in date.
func NewTimeSeries(c Commodity, dates []time.Time, values []float64) (TimeSeries, error) {
	source := string(c)
	if len(dates) != len(values) {
		return TimeSeries{}, shapeErrorf(source, "%d dates but %d prices", len(dates), len(values))
	}
	if len(dates) == 0 {
		return TimeSeries{}, shapeErrorf(source, "no rows")
	}

	points := make([]Point, len(dates))
	for i := range dates {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return TimeSeries{}, shapeErrorf(source, "row %d: price is not a finite number", i+1)
		}
		if i > 0 && !dates[i].After(dates[i-1]) {
			return TimeSeries{}, shapeErrorf(source, "row %d: date %s does not follow %s",
				i+1, dates[i].Format(time.DateOnly), dates[i-1].Format(time.DateOnly))
		}
		points[i] = Point{Date: dates[i], Value: values[i]}
	}

	return TimeSeries{Commodity: c, Points: points}, nil
}

// Align checks that the four series share one date axis and joins them into
// a Dataset. dateLayout controls how dates are rendered in the table.
func Align(dateLayout string, oil, petrol, plastic, tar TimeSeries) (*Dataset, error) {
	slots := []struct {
		want Commodity
		ts   TimeSeries
	}{
		{Oil, oil},
		{Petrol, petrol},
		{Plastic, plastic},
		{Tar, tar},
	}

	for _, s := range slots {
		if s.ts.Commodity != s.want {
			return nil, shapeErrorf(string(s.want), "got %q series in the %s slot", s.ts.Commodity, s.want)
		}
		if s.ts.Len() == 0 {
			return nil, shapeErrorf(string(s.want), "no rows")
		}
	}

	for _, s := range slots[1:] {
		if s.ts.Len() != oil.Len() {
			return nil, shapeErrorf(string(s.want), "%d rows, oil has %d", s.ts.Len(), oil.Len())
		}
		for i, p := range s.ts.Points {
			if !p.Date.Equal(oil.Points[i].Date) {
				return nil, shapeErrorf(string(s.want), "row %d: date %s, oil has %s",
					i+1, p.Date.Format(time.DateOnly), oil.Points[i].Date.Format(time.DateOnly))
			}
		}
	}

	dates := make([]string, oil.Len())
	for i, p := range oil.Points {
		dates[i] = p.Date.Format(dateLayout)
	}

	cols := []series.Series{series.New(dates, series.String, DateColumn)}
	for _, s := range slots {
		cols = append(cols, series.New(s.ts.Values(), series.Float, s.want.Column()))
	}
	frame := dataframe.New(cols...)
	if frame.Err != nil {
		return nil, frame.Err
	}

	return &Dataset{
		Oil:     oil,
		Petrol:  petrol,
		Plastic: plastic,
		Tar:     tar,
		Table:   CombinedTable{frame: frame},
	}, nil
}
