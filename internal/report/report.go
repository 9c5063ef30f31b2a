package report

import (
	"fmt"

	"github.com/sabarim/pricecorr/internal/correlation"
	"github.com/sabarim/pricecorr/internal/prices"
	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimals a coefficient is shown with
const DisplayPlaces = 2

// CorrelationResult pairs a derived commodity with its correlation to oil
type CorrelationResult struct {
	Subject     prices.Commodity `json:"subject"`
	Coefficient float64          `json:"coefficient"`
	Label       string           `json:"label"`
}

// Display returns the coefficient rounded half-to-even to DisplayPlaces
func (r CorrelationResult) Display() decimal.Decimal {
	return decimal.NewFromFloat(r.Coefficient).RoundBank(DisplayPlaces)
}

// DisplayString formats the rounded coefficient, e.g. "0.97"
func (r CorrelationResult) DisplayString() string {
	return r.Display().StringFixedBank(DisplayPlaces)
}

// Report is the assembled output handed to the presentation layer
type Report struct {
	Data         *prices.Dataset
	Correlations []CorrelationResult
}

var labels = map[prices.Commodity]string{
	prices.Petrol:  "petrol",
	prices.Plastic: "plastic",
	prices.Tar:     "tar",
}

// Build aligns the four series and correlates each derived commodity with oil.
// Series are matched to commodities by their Commodity field, not by argument
// position. Only a Commodity given twice is a *prices.DataShapeError.
func Build(dateLayout string, oil, petrol, plastic, tar prices.TimeSeries) (*Report, error) {
	byCommodity := map[prices.Commodity]prices.TimeSeries{}
	for _, ts := range []prices.TimeSeries{oil, petrol, plastic, tar} {
		if _, dup := byCommodity[ts.Commodity]; dup {
			return nil, &prices.DataShapeError{Source: string(ts.Commodity), Reason: "series given twice"}
		}
		byCommodity[ts.Commodity] = ts
	}

	ds, err := prices.Align(dateLayout,
		byCommodity[prices.Oil],
		byCommodity[prices.Petrol],
		byCommodity[prices.Plastic],
		byCommodity[prices.Tar],
	)
	if err != nil {
		return nil, err
	}
	return FromDataset(ds)
}

// FromDataset correlates an already aligned dataset
func FromDataset(ds *prices.Dataset) (*Report, error) {
	reference := ds.Oil.Values()

	results := make([]CorrelationResult, 0, 3)
	for _, c := range prices.Derived() {
		subject, err := ds.Series(c)
		if err != nil {
			return nil, err
		}

		coefficient, err := correlation.Correlate(reference, subject.Values())
		if err != nil {
			return nil, fmt.Errorf("correlate %s/%s: %w", prices.Oil, c, err)
		}

		results = append(results, CorrelationResult{
			Subject:     c,
			Coefficient: coefficient,
			Label:       labels[c],
		})
	}

	return &Report{Data: ds, Correlations: results}, nil
}

// Correlation returns the result for one derived commodity
func (r *Report) Correlation(c prices.Commodity) (CorrelationResult, bool) {
	for _, res := range r.Correlations {
		if res.Subject == c {
			return res, true
		}
	}
	return CorrelationResult{}, false
}
