package dashboard

import (
	"errors"

	"github.com/sabarim/pricecorr/internal/prices"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownTab      = errors.New("unknown tab")
)

// Category is the filter selection: which derived commodity the line chart shows
type Category = prices.Commodity

// DefaultCategory is selected before the user picks one
const DefaultCategory = prices.Petrol

// Tab identifies one page of the dashboard
type Tab string

const (
	TabAnalysis Tab = "analysis"
	TabRaw      Tab = "raw"
)

// Trace is one drawable series inside a figure
type Trace struct {
	Name  string        `json:"name"`
	Mode  string        `json:"mode"`
	X     []interface{} `json:"x"`
	Y     []float64     `json:"y"`
	Color string        `json:"color,omitempty"`
}

// Margin is the plot margin in pixels
type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

// Layout holds figure-level presentation settings
type Layout struct {
	Title      string `json:"title"`
	XAxisTitle string `json:"xaxis_title,omitempty"`
	YAxisTitle string `json:"yaxis_title,omitempty"`
	ShowLegend bool   `json:"showlegend"`
	Margin     Margin `json:"margin"`
}

// Figure is a complete chart description
type Figure struct {
	Traces []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Column describes one table column
type Column struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// TableView is the raw-data tab content
type TableView struct {
	Columns []Column                 `json:"columns"`
	Records []map[string]interface{} `json:"records"`
}

// Filter is the category selector shown above the line chart
type Filter struct {
	Options  []Category `json:"options"`
	Selected Category   `json:"selected"`
}

// View is everything needed to draw one tab. Only the fields relevant to the
// tab are set.
type View struct {
	Tab      Tab        `json:"tab"`
	Filter   *Filter    `json:"filter,omitempty"`
	Oil      *Figure    `json:"oil,omitempty"`
	Line     *Figure    `json:"line,omitempty"`
	Scatters []Figure   `json:"scatters,omitempty"`
	Table    *TableView `json:"table,omitempty"`
}
