package prices

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// RawSeries is a source's content before date parsing and validation
type RawSeries struct {
	Dates  []string
	Values []float64
}

// Source yields one commodity's raw (date, price) rows
type Source interface {
	Name() string
	Read(ctx context.Context) (RawSeries, error)
}

// CSVSource reads a two-column CSV file: a date column and one numeric price
// column. The price column may have any header.
type CSVSource struct {
	Path       string
	DateColumn string
}

// NewCSVSource creates a CSV source
func NewCSVSource(path, dateColumn string) *CSVSource {
	return &CSVSource{Path: path, DateColumn: dateColumn}
}

func (s *CSVSource) Name() string {
	return s.Path
}

// Read parses the file into a dataframe and extracts the two columns
func (s *CSVSource) Read(ctx context.Context) (RawSeries, error) {
	if err := ctx.Err(); err != nil {
		return RawSeries{}, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return RawSeries{}, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.WithTypes(map[string]series.Type{s.DateColumn: series.String}),
	)
	if df.Err != nil {
		return RawSeries{}, shapeErrorf(s.Path, "unreadable CSV: %v", df.Err)
	}

	return frameToRaw(s.Path, s.DateColumn, df)
}

// frameToRaw picks the date column and the single price column out of df
func frameToRaw(source, dateColumn string, df dataframe.DataFrame) (RawSeries, error) {
	names := df.Names()
	if len(names) != 2 {
		return RawSeries{}, shapeErrorf(source, "expected a date column and one price column, got %d columns %v", len(names), names)
	}

	priceColumn := ""
	hasDate := false
	for _, name := range names {
		if name == dateColumn {
			hasDate = true
		} else {
			priceColumn = name
		}
	}
	if !hasDate {
		return RawSeries{}, shapeErrorf(source, "missing date column %q in %v", dateColumn, names)
	}
	if priceColumn == "" {
		return RawSeries{}, shapeErrorf(source, "missing price column")
	}

	price := df.Col(priceColumn)
	switch price.Type() {
	case series.Int, series.Float:
	default:
		return RawSeries{}, shapeErrorf(source, "price column %q is not numeric (%s)", priceColumn, price.Type())
	}

	return RawSeries{
		Dates:  df.Col(dateColumn).Records(),
		Values: price.Float(),
	}, nil
}
