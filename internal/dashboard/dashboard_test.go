package dashboard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sabarim/pricecorr/internal/prices"
	"github.com/sabarim/pricecorr/internal/report"
	"github.com/stretchr/testify/require"
)

func testDashboard(t *testing.T) *Dashboard {
	t.Helper()
	dates := []time.Time{
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	mk := func(c prices.Commodity, values ...float64) prices.TimeSeries {
		ts, err := prices.NewTimeSeries(c, dates, values)
		require.NoError(t, err)
		return ts
	}

	rep, err := report.Build("2006-01-02",
		mk(prices.Oil, 10, 20, 30, 40),
		mk(prices.Petrol, 5, 10, 15, 20),
		mk(prices.Plastic, 1, 3, 2, 4),
		mk(prices.Tar, 40, 30, 20, 10),
	)
	require.NoError(t, err)
	return New(rep)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{in: "petrol", want: prices.Petrol},
		{in: " Plastic ", want: prices.Plastic},
		{in: "TAR", want: prices.Tar},
		{in: "Бензин", want: prices.Petrol},
		{in: "Пластик", want: prices.Plastic},
		{in: "Гудрон", want: prices.Tar},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCategory("oil")
	require.ErrorIs(t, err, ErrUnknownCategory)
	_, err = ParseCategory("coal")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("tab-2")
	require.NoError(t, err)
	require.Equal(t, TabRaw, tab)

	tab, err = ParseTab("Analysis")
	require.NoError(t, err)
	require.Equal(t, TabAnalysis, tab)

	_, err = ParseTab("charts")
	require.ErrorIs(t, err, ErrUnknownTab)
}

func TestDashboard_LineFigure(t *testing.T) {
	d := testDashboard(t)

	fig, err := d.LineFigure(prices.Plastic)
	require.NoError(t, err)
	require.Equal(t, "Plastic price dynamics", fig.Layout.Title)
	require.Len(t, fig.Traces, 1)
	require.Equal(t, "rgb(54, 125, 73)", fig.Traces[0].Color)
	require.Equal(t, []interface{}{"2022-01-01", "2022-02-01", "2022-03-01", "2022-04-01"}, fig.Traces[0].X)
	require.Equal(t, []float64{1, 3, 2, 4}, fig.Traces[0].Y)

	_, err = d.LineFigure(prices.Oil)
	require.ErrorIs(t, err, ErrUnknownCategory)

	oil := d.OilFigure()
	require.Equal(t, "oil price", oil.Traces[0].Name)
	require.Equal(t, 40, oil.Layout.Margin.Top)
}

func TestDashboard_ScatterFigures(t *testing.T) {
	d := testDashboard(t)

	figs, err := d.ScatterFigures()
	require.NoError(t, err)
	require.Len(t, figs, 3)

	require.Equal(t, "Petrol price correlation *cor. index= 1.00", figs[0].Layout.Title)
	require.Equal(t, "Plastic price correlation *cor. index= 0.80", figs[1].Layout.Title)
	require.Equal(t, "Tar price correlation *cor. index= -1.00", figs[2].Layout.Title)

	petrol := figs[0]
	require.Len(t, petrol.Traces, 2)
	require.Equal(t, []interface{}{10.0, 20.0, 30.0, 40.0}, petrol.Traces[0].X)
	require.Equal(t, "OLS trendline", petrol.Traces[1].Name)
	for i, y := range petrol.Traces[1].Y {
		require.InDelta(t, petrol.Traces[0].Y[i], y, 1e-9)
	}
}

func TestDashboard_Render(t *testing.T) {
	d := testDashboard(t)

	t.Run("analysis", func(t *testing.T) {
		view, err := d.Render(TabAnalysis, prices.Tar)
		require.NoError(t, err)
		require.Equal(t, prices.Tar, view.Filter.Selected)
		require.Equal(t, []Category{prices.Petrol, prices.Plastic, prices.Tar}, view.Filter.Options)
		require.Equal(t, "Tar price dynamics", view.Line.Layout.Title)
		require.Len(t, view.Scatters, 3)
		require.Nil(t, view.Table)
	})

	t.Run("raw", func(t *testing.T) {
		view, err := d.Render(TabRaw, DefaultCategory)
		require.NoError(t, err)
		require.Nil(t, view.Line)
		require.Len(t, view.Table.Columns, 5)
		require.Equal(t, Column{Name: "date", ID: "date"}, view.Table.Columns[0])
		require.Len(t, view.Table.Records, 4)
		require.Equal(t, 40.0, view.Table.Records[3]["oil_price"])
	})

	t.Run("unknown tab", func(t *testing.T) {
		_, err := d.Render(Tab("settings"), DefaultCategory)
		require.ErrorIs(t, err, ErrUnknownTab)
	})

	t.Run("json", func(t *testing.T) {
		view, err := d.Render(TabAnalysis, DefaultCategory)
		require.NoError(t, err)
		out, err := json.Marshal(view)
		require.NoError(t, err)
		require.Contains(t, string(out), `"selected":"petrol"`)
	})
}
