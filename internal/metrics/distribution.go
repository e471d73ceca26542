// internal/metrics/distribution.go
package metrics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BinnedDistribution is a probability-density histogram with its cumulative
// companion. Edges has B+1 entries, Density B, Cumulative B+1 starting at 0.
type BinnedDistribution struct {
	Edges      []float64 `json:"edges"`
	Density    []float64 `json:"density"`
	Cumulative []float64 `json:"cumulative"`
}

// BinWidth returns the width of bin i.
func (d BinnedDistribution) BinWidth(i int) float64 {
	return d.Edges[i+1] - d.Edges[i]
}

// Centers returns the midpoint of every bin.
func (d BinnedDistribution) Centers() []float64 {
	out := make([]float64, len(d.Density))
	for i := range out {
		out[i] = (d.Edges[i] + d.Edges[i+1]) / 2
	}
	return out
}

// DistributionSummary is a BinnedDistribution plus the mean and median of
// the raw samples.
type DistributionSummary struct {
	BinnedDistribution
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summarize bins samples into bins equal-width bins spanning [min, max] and
// normalizes the counts to a density, so sum(density*width) is 1. The median
// comes from the raw samples, not the histogram. A sample set with a single
// distinct value is binned over [v-0.5, v+0.5].
func Summarize(samples []float64, bins int) (DistributionSummary, error) {
	const op = "distribution"
	if bins < 1 {
		return DistributionSummary{}, invalid(op, -1, "bin count must be >= 1, got %d", bins)
	}
	if len(samples) == 0 {
		return DistributionSummary{}, invalid(op, -1, "no samples")
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return DistributionSummary{}, invalid(op, i, "sample is %v", v)
		}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)

	// The top edge is closed: stat.Histogram treats the last divider as
	// exclusive, so nudge it past the maximum sample.
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	n := float64(len(sorted))
	dist := BinnedDistribution{
		Edges:      edges,
		Density:    make([]float64, bins),
		Cumulative: make([]float64, bins+1),
	}
	for i, c := range counts {
		width := dist.BinWidth(i)
		dist.Density[i] = c / (n * width)
		dist.Cumulative[i+1] = dist.Cumulative[i] + dist.Density[i]*width
	}

	median, err := stats.Median(stats.Float64Data(sorted))
	if err != nil {
		return DistributionSummary{}, invalid(op, -1, "median: %v", err)
	}
	return DistributionSummary{
		BinnedDistribution: dist,
		Count:              len(sorted),
		Mean:               stat.Mean(sorted, nil),
		Median:             median,
	}, nil
}
