// Package dashboard turns a report into render instructions: figure and table
// descriptions that any charting front end can draw. It does no drawing
// itself and keeps no state besides the report it was built from.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/sabarim/pricecorr/internal/correlation"
	"github.com/sabarim/pricecorr/internal/prices"
	"github.com/sabarim/pricecorr/internal/report"
)

var colors = map[prices.Commodity]string{
	prices.Oil:     "rgb(55, 42, 42)",
	prices.Petrol:  "rgb(153, 153, 0)",
	prices.Plastic: "rgb(54, 125, 73)",
	prices.Tar:     "rgb(150, 50, 70)",
}

// Russian filter labels, as shown on the radio buttons
var categoryAliases = map[string]Category{
	"бензин":  prices.Petrol,
	"пластик": prices.Plastic,
	"гудрон":  prices.Tar,
}

// Categories returns the filter options in display order
func Categories() []Category {
	return prices.Derived()
}

// ParseCategory maps a filter selection to a category
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if key == string(c) {
			return c, nil
		}
	}
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// ParseTab maps a tab identifier to a Tab
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabAnalysis, "tab-1":
		return TabAnalysis, nil
	case TabRaw, "tab-2":
		return TabRaw, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Dashboard derives render instructions from a report
type Dashboard struct {
	report *report.Report
}

// New wraps a report
func New(r *report.Report) *Dashboard {
	return &Dashboard{report: r}
}

// Render returns the instructions for one tab. cat only matters for the
// analysis tab, where it picks the line chart next to the oil chart.
func (d *Dashboard) Render(tab Tab, cat Category) (View, error) {
	switch tab {
	case TabAnalysis:
		line, err := d.LineFigure(cat)
		if err != nil {
			return View{}, err
		}
		scatters, err := d.ScatterFigures()
		if err != nil {
			return View{}, err
		}
		oil := d.OilFigure()
		return View{
			Tab:      tab,
			Filter:   &Filter{Options: Categories(), Selected: cat},
			Oil:      &oil,
			Line:     &line,
			Scatters: scatters,
		}, nil
	case TabRaw:
		table := d.TableView()
		return View{Tab: tab, Table: &table}, nil
	}
	return View{}, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}

// OilFigure is the oil price line chart
func (d *Dashboard) OilFigure() Figure {
	return lineFigure(d.report.Data.Oil, "Oil price dynamics", 40)
}

// LineFigure is the price line chart for the selected category
func (d *Dashboard) LineFigure(cat Category) (Figure, error) {
	ts, err := d.derived(cat)
	if err != nil {
		return Figure{}, err
	}
	return lineFigure(ts, fmt.Sprintf("%s price dynamics", title(cat)), 50), nil
}

// ScatterFigure plots the category's price against oil, with an OLS
// trendline and the rounded coefficient in the title
func (d *Dashboard) ScatterFigure(cat Category) (Figure, error) {
	ts, err := d.derived(cat)
	if err != nil {
		return Figure{}, err
	}
	res, ok := d.report.Correlation(cat)
	if !ok {
		return Figure{}, fmt.Errorf("%w: no correlation for %q", ErrUnknownCategory, cat)
	}

	oil := d.report.Data.Oil.Values()
	subject := ts.Values()

	trend, err := correlation.Trendline(oil, subject)
	if err != nil {
		return Figure{}, fmt.Errorf("trendline %s/%s: %w", prices.Oil, cat, err)
	}
	trendX := make([]interface{}, len(trend))
	trendY := make([]float64, len(trend))
	for i, p := range trend {
		trendX[i] = p.X
		trendY[i] = p.Y
	}

	return Figure{
		Traces: []Trace{
			{
				Name:  res.Label,
				Mode:  "markers",
				X:     floatsToX(oil),
				Y:     subject,
				Color: colors[cat],
			},
			{
				Name: "OLS trendline",
				Mode: "lines",
				X:    trendX,
				Y:    trendY,
			},
		},
		Layout: Layout{
			Title:      fmt.Sprintf("%s price correlation *cor. index= %s", title(cat), res.DisplayString()),
			XAxisTitle: "Oil price",
			YAxisTitle: fmt.Sprintf("%s price", title(cat)),
			Margin:     Margin{Left: 40, Top: 50, Bottom: 30},
		},
	}, nil
}

// ScatterFigures returns the three correlation charts, petrol first
func (d *Dashboard) ScatterFigures() ([]Figure, error) {
	out := make([]Figure, 0, len(d.report.Correlations))
	for _, res := range d.report.Correlations {
		fig, err := d.ScatterFigure(res.Subject)
		if err != nil {
			return nil, err
		}
		out = append(out, fig)
	}
	return out, nil
}

// TableView is the combined table as columns plus records
func (d *Dashboard) TableView() TableView {
	table := d.report.Data.Table
	names := table.Columns()
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, ID: name}
	}
	return TableView{Columns: cols, Records: table.Records()}
}

func (d *Dashboard) derived(cat Category) (prices.TimeSeries, error) {
	if cat == prices.Oil {
		return prices.TimeSeries{}, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	ts, err := d.report.Data.Series(cat)
	if err != nil {
		return prices.TimeSeries{}, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	return ts, nil
}

func lineFigure(ts prices.TimeSeries, figTitle string, top int) Figure {
	dates := isoDates(ts)
	return Figure{
		Traces: []Trace{{
			Name:  fmt.Sprintf("%s price", ts.Commodity),
			Mode:  "lines",
			X:     dates,
			Y:     ts.Values(),
			Color: colors[ts.Commodity],
		}},
		Layout: Layout{
			Title:      figTitle,
			ShowLegend: true,
			Margin:     Margin{Left: 40, Top: top, Bottom: 30},
		},
	}
}

// isoDates renders the series dates as ISO dates for the x axis
func isoDates(ts prices.TimeSeries) []interface{} {
	out := make([]interface{}, ts.Len())
	for i, p := range ts.Points {
		out[i] = p.Date.Format("2006-01-02")
	}
	return out
}

func floatsToX(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func title(c Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
