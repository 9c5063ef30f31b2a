package prices

import (
	"context"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

// PriceRow is the Parquet schema of a price file
type PriceRow struct {
	Date  string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Price float64 `parquet:"name=price, type=DOUBLE, encoding=PLAIN"`
}

// ParquetSource reads a Parquet file of PriceRow records
type ParquetSource struct {
	Path string
}

// NewParquetSource creates a Parquet source
func NewParquetSource(path string) *ParquetSource {
	return &ParquetSource{Path: path}
}

func (s *ParquetSource) Name() string {
	return s.Path
}

// Read loads every row of the file
func (s *ParquetSource) Read(ctx context.Context) (RawSeries, error) {
	if err := ctx.Err(); err != nil {
		return RawSeries{}, err
	}

	fr, err := local.NewLocalFileReader(s.Path)
	if err != nil {
		return RawSeries{}, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(PriceRow), 4)
	if err != nil {
		return RawSeries{}, shapeErrorf(s.Path, "unreadable parquet: %v", err)
	}
	defer pr.ReadStop()

	rows := make([]PriceRow, int(pr.GetNumRows()))
	if err := pr.Read(&rows); err != nil {
		return RawSeries{}, shapeErrorf(s.Path, "failed to read parquet rows: %v", err)
	}

	raw := RawSeries{
		Dates:  make([]string, len(rows)),
		Values: make([]float64, len(rows)),
	}
	for i, row := range rows {
		raw.Dates[i] = row.Date
		raw.Values[i] = row.Price
	}
	return raw, nil
}
