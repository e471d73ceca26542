// internal/metrics/stats.go
package metrics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the scalar statistics printed next to a chart.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Describe summarizes values. StdDev is the population standard deviation;
// P90 and P99 interpolate linearly between order statistics.
// Any NaN sample, or an empty input, makes every statistic NaN.
func Describe(values []float64) Summary {
	s := Summary{Count: len(values)}
	if len(values) == 0 || floats.HasNaN(values) {
		nan := math.NaN()
		s.Mean, s.StdDev, s.Min, s.Max, s.Median, s.P90, s.P99 = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	data := stats.Float64Data(values)
	s.Mean, _ = stats.Mean(data)
	s.StdDev, _ = stats.StandardDeviationPopulation(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Median, _ = stats.Median(data)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	s.P90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	s.P99 = stat.Quantile(0.99, stat.LinInterp, sorted, nil)
	return s
}

// Mean is the arithmetic mean; NaN for empty input or NaN samples.
func Mean(values []float64) float64 {
	return Describe(values).Mean
}

// Max is the largest value; NaN for empty input or NaN samples.
func Max(values []float64) float64 {
	return Describe(values).Max
}

// WithoutNaN returns the non-NaN values in order.
func WithoutNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// NanMean averages the non-NaN values, NaN when there are none.
func NanMean(values []float64) float64 {
	kept := WithoutNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	return stat.Mean(kept, nil)
}

// NanMax is the largest non-NaN value, NaN when there is none.
func NanMax(values []float64) float64 {
	kept := WithoutNaN(values)
	if len(kept) == 0 {
		return math.NaN()
	}
	return floats.Max(kept)
}
