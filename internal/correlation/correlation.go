// Package correlation measures how closely one price series tracks another.
package correlation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

var (
	ErrLengthMismatch = errors.New("series lengths differ")
	ErrTooShort       = errors.New("need at least 2 observations")
	ErrNotFinite      = errors.New("value is not finite")
)

// DegenerateSeriesError is returned when a series has zero variance and the
// coefficient is undefined
type DegenerateSeriesError struct {
	Series string
}

func (e *DegenerateSeriesError) Error() string {
	return fmt.Sprintf("%s series is constant, correlation undefined", e.Series)
}

// Correlate returns the Pearson correlation coefficient of reference and
// subject. The result is symmetric in its arguments and lies in [-1, 1].
func Correlate(reference, subject []float64) (float64, error) {
	if len(reference) != len(subject) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(reference), len(subject))
	}
	if len(reference) < 2 {
		return 0, ErrTooShort
	}

	x, err := normalize(reference, "reference")
	if err != nil {
		return 0, err
	}
	y, err := normalize(subject, "subject")
	if err != nil {
		return 0, err
	}

	varX, err := stats.PopulationVariance(x)
	if err != nil {
		return 0, err
	}
	varY, err := stats.PopulationVariance(y)
	if err != nil {
		return 0, err
	}
	cov, err := stats.CovariancePopulation(x, y)
	if err != nil {
		return 0, err
	}

	// sqrt(vx*vy) rather than sx*sy keeps perfectly linear inputs at exactly +/-1
	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotFinite, r)
	}
	return math.Max(-1, math.Min(1, r)), nil
}

// normalize centres data on its mean and divides by the largest absolute
// deviation, so every value lies in [-1, 1] whatever the input scale.
func normalize(data []float64, name string) (stats.Float64Data, error) {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s series: %w: %v", name, ErrNotFinite, v)
		}
	}
	if isConstant(data) {
		return nil, &DegenerateSeriesError{Series: name}
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	if math.IsInf(mean, 0) {
		return nil, fmt.Errorf("%s series: %w: mean overflows", name, ErrNotFinite)
	}

	maxDev := 0.0
	for _, v := range data {
		maxDev = math.Max(maxDev, math.Abs(v-mean))
	}
	if maxDev == 0 || math.IsInf(maxDev, 0) {
		return nil, &DegenerateSeriesError{Series: name}
	}

	out := make(stats.Float64Data, len(data))
	for i, v := range data {
		out[i] = (v - mean) / maxDev
	}
	return out, nil
}

func isConstant(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

// Point is one fitted (x, y) coordinate
type Point struct {
	X float64
	Y float64
}

// Trendline fits an ordinary least squares line through (x[i], y[i]) and
// returns the fitted points ordered by x.
func Trendline(x, y []float64) ([]Point, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, ErrTooShort
	}
	if isConstant(x) {
		return nil, &DegenerateSeriesError{Series: "x"}
	}

	in := make(stats.Series, len(x))
	for i := range x {
		in[i] = stats.Coordinate{X: x[i], Y: y[i]}
	}

	fitted, err := stats.LinearRegression(in)
	if err != nil {
		return nil, err
	}

	out := make([]Point, len(fitted))
	for i, c := range fitted {
		out[i] = Point{X: c.X, Y: c.Y}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out, nil
}
