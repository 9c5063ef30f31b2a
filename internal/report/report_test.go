package report

import (
	"errors"
	"testing"
	"time"

	"github.com/sabarim/pricecorr/internal/correlation"
	"github.com/sabarim/pricecorr/internal/prices"
	"github.com/stretchr/testify/require"
)

const layout = "2006-01-02"

func series(t *testing.T, c prices.Commodity, values ...float64) prices.TimeSeries {
	t.Helper()
	dates := make([]time.Time, len(values))
	for i := range dates {
		dates[i] = time.Date(2019, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
	}
	ts, err := prices.NewTimeSeries(c, dates, values)
	require.NoError(t, err)
	return ts
}

func TestBuild(t *testing.T) {
	oil := series(t, prices.Oil, 10, 20, 30, 40)
	petrol := series(t, prices.Petrol, 5, 10, 15, 20)
	plastic := series(t, prices.Plastic, 1, 3, 2, 4)
	tar := series(t, prices.Tar, 40, 30, 20, 10)

	t.Run("correlations", func(t *testing.T) {
		rep, err := Build(layout, oil, petrol, plastic, tar)
		require.NoError(t, err)
		require.Equal(t, 4, rep.Data.Table.Len())

		require.Len(t, rep.Correlations, 3)
		require.Equal(t, CorrelationResult{Subject: prices.Petrol, Coefficient: 1, Label: "petrol"}, rep.Correlations[0])
		require.Equal(t, prices.Plastic, rep.Correlations[1].Subject)
		require.InDelta(t, 0.8, rep.Correlations[1].Coefficient, 1e-12)
		require.Equal(t, CorrelationResult{Subject: prices.Tar, Coefficient: -1, Label: "tar"}, rep.Correlations[2])
	})

	t.Run("order does not depend on argument order", func(t *testing.T) {
		rep, err := Build(layout, tar, plastic, oil, petrol)
		require.NoError(t, err)

		var got []prices.Commodity
		for _, res := range rep.Correlations {
			got = append(got, res.Subject)
		}
		require.Equal(t, []prices.Commodity{prices.Petrol, prices.Plastic, prices.Tar}, got)
		require.Equal(t, []float64{10, 20, 30, 40}, rep.Data.Oil.Values())
	})

	t.Run("duplicate series", func(t *testing.T) {
		_, err := Build(layout, oil, petrol, petrol, tar)
		var shapeErr *prices.DataShapeError
		require.True(t, errors.As(err, &shapeErr))
	})

	t.Run("misaligned rows", func(t *testing.T) {
		_, err := Build(layout, oil, petrol, series(t, prices.Plastic, 1, 2, 3), tar)
		var shapeErr *prices.DataShapeError
		require.True(t, errors.As(err, &shapeErr))
		require.Equal(t, "plastic", shapeErr.Source)
	})

	t.Run("constant series", func(t *testing.T) {
		_, err := Build(layout, oil, petrol, plastic, series(t, prices.Tar, 7, 7, 7, 7))
		var degenerate *correlation.DegenerateSeriesError
		require.True(t, errors.As(err, &degenerate))
		require.Contains(t, err.Error(), "oil/tar")
	})
}

func TestReport_Correlation(t *testing.T) {
	rep, err := Build(layout,
		series(t, prices.Oil, 1, 2, 3),
		series(t, prices.Petrol, 1, 2, 4),
		series(t, prices.Plastic, 3, 2, 1),
		series(t, prices.Tar, 1, 3, 2),
	)
	require.NoError(t, err)

	res, ok := rep.Correlation(prices.Plastic)
	require.True(t, ok)
	require.Equal(t, -1.0, res.Coefficient)

	_, ok = rep.Correlation(prices.Oil)
	require.False(t, ok)
}

func TestCorrelationResult_Display(t *testing.T) {
	tests := []struct {
		name        string
		coefficient float64
		want        string
	}{
		{name: "rounds down", coefficient: 0.97446, want: "0.97"},
		{name: "rounds up", coefficient: 0.8261, want: "0.83"},
		{name: "half to even, down", coefficient: 0.125, want: "0.12"},
		{name: "half to even, up", coefficient: 0.375, want: "0.38"},
		{name: "negative", coefficient: -1, want: "-1.00"},
		{name: "zero", coefficient: 0, want: "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CorrelationResult{Coefficient: tt.coefficient}
			require.Equal(t, tt.want, res.DisplayString())
		})
	}
}
