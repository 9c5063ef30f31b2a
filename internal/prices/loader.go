package prices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Source formats understood by SourcesFromPaths
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Loader reads the four commodity sources and builds the Dataset
type Loader struct {
	dateLayout string
	logger     zerolog.Logger
}

// NewLoader creates a loader that parses dates with dateLayout
func NewLoader(dateLayout string, logger zerolog.Logger) *Loader {
	return &Loader{
		dateLayout: dateLayout,
		logger:     logger.With().Str("component", "loader").Logger(),
	}
}

// SourcesFromPaths builds one source per commodity for the given format
func SourcesFromPaths(format, dateColumn string, paths map[Commodity]string) (map[Commodity]Source, error) {
	sources := make(map[Commodity]Source, len(paths))
	for c, path := range paths {
		switch format {
		case FormatCSV:
			sources[c] = NewCSVSource(path, dateColumn)
		case FormatParquet:
			sources[c] = NewParquetSource(path)
		default:
			return nil, fmt.Errorf("invalid source format: %s", format)
		}
	}
	return sources, nil
}

// Load reads oil, petrol, plastic and tar in that order and aligns them.
// Any shape problem aborts the load with a *DataShapeError.
func (l *Loader) Load(ctx context.Context, sources map[Commodity]Source) (*Dataset, error) {
	loaded := make(map[Commodity]TimeSeries, 4)

	for _, c := range All() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		src, ok := sources[c]
		if !ok {
			return nil, shapeErrorf(string(c), "no source configured")
		}

		ts, err := l.loadOne(ctx, c, src)
		if err != nil {
			return nil, fmt.Errorf("load %s from %s: %w", c, src.Name(), err)
		}
		loaded[c] = ts

		l.logger.Info().
			Str("commodity", string(c)).
			Str("source", src.Name()).
			Int("rows", ts.Len()).
			Msg("loaded price series")
	}

	ds, err := Align(l.dateLayout, loaded[Oil], loaded[Petrol], loaded[Plastic], loaded[Tar])
	if err != nil {
		return nil, err
	}

	l.logger.Debug().
		Strs("columns", ds.Table.Columns()).
		Int("rows", ds.Table.Len()).
		Msg("built combined table")
	return ds, nil
}

func (l *Loader) loadOne(ctx context.Context, c Commodity, src Source) (TimeSeries, error) {
	raw, err := src.Read(ctx)
	if err != nil {
		return TimeSeries{}, err
	}

	dates := make([]time.Time, len(raw.Dates))
	for i, s := range raw.Dates {
		d, err := time.Parse(l.dateLayout, strings.TrimSpace(s))
		if err != nil {
			return TimeSeries{}, shapeErrorf(src.Name(), "row %d: bad date %q: %v", i+1, s, err)
		}
		dates[i] = d
	}

	return NewTimeSeries(c, dates, raw.Values)
}
