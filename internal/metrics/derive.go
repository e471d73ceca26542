// internal/metrics/derive.go
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mwiater/inaviz/internal/series"
)

// Sum adds two aggregated series elementwise. Both must cover the same raw
// positions; NaN propagates.
func Sum(name string, a, b Series) (Series, error) {
	if a.Len() != b.Len() || a.Offset != b.Offset {
		return Series{}, invalid("sum", -1, "%s covers [%d, %d) but %s covers [%d, %d)", a.Name, a.Offset, a.End(), b.Name, b.Offset, b.End())
	}
	values := make([]float64, a.Len())
	floats.AddTo(values, a.Values, b.Values)
	return Series{Name: name, Offset: a.Offset, Values: values}, nil
}

// Ratio divides numerator by divisor elementwise. A zero divisor yields NaN.
func Ratio(numerator, divisor []float64) ([]float64, error) {
	if len(numerator) != len(divisor) {
		return nil, invalid("ratio", -1, "numerator has %d values, divisor has %d", len(numerator), len(divisor))
	}
	out := make([]float64, len(numerator))
	for i := range numerator {
		out[i] = ratio(numerator[i], divisor[i])
	}
	return out, nil
}

// Project extracts one named field from every record in order. A record
// without the field fails the whole projection so paired series never shift.
func Project(records []series.Snapshot, field string) ([]float64, error) {
	out := make([]float64, len(records))
	for i, rec := range records {
		v, ok := rec.Field(field)
		if !ok {
			return nil, &series.MissingKeyError{Key: field, Index: i}
		}
		out[i] = v
	}
	return out, nil
}

// ProjectRatio divides one field by another for every record, e.g. tree
// building time per finished job.
func ProjectRatio(records []series.Snapshot, numeratorField, divisorField string) ([]float64, error) {
	numerator, err := Project(records, numeratorField)
	if err != nil {
		return nil, err
	}
	divisor, err := Project(records, divisorField)
	if err != nil {
		return nil, err
	}
	return Ratio(numerator, divisor)
}

// Diagonal selects records i*n+i for i in [0, n) from an n x n sweep stored
// row-major.
func Diagonal(records []series.Snapshot, n int) ([]series.Snapshot, error) {
	if n < 0 || len(records) < n*n {
		return nil, invalid("diagonal", -1, "need %d records for a %dx%d sweep, got %d", n*n, n, n, len(records))
	}
	out := make([]series.Snapshot, n)
	for i := range out {
		out[i] = records[i*n+i]
	}
	return out, nil
}

// Deinterleave splits records stored as alternating runs (first, second,
// first, second, ...) into pairs-many records per side.
func Deinterleave(records []series.Snapshot, pairs int) (first, second []series.Snapshot, err error) {
	if pairs < 0 || len(records) < 2*pairs {
		return nil, nil, invalid("deinterleave", -1, "need %d records for %d pairs, got %d", 2*pairs, pairs, len(records))
	}
	first = make([]series.Snapshot, pairs)
	second = make([]series.Snapshot, pairs)
	for i := 0; i < pairs; i++ {
		first[i] = records[2*i]
		second[i] = records[2*i+1]
	}
	return first, second, nil
}

// ExpandRuns flattens a run-length encoded trace into one sample per job.
func ExpandRuns(trace series.JobSizeTrace) []float64 {
	total := 0
	for _, run := range trace {
		total += run.Repeat
	}
	out := make([]float64, 0, total)
	for _, run := range trace {
		for i := 0; i < run.Repeat; i++ {
			out = append(out, run.HostCount)
		}
	}
	return out
}

// FilterPairs keeps samples whose x lies in [min, max].
func FilterPairs(s series.PairSeries, min, max float64) series.PairSeries {
	return s.Filter(func(p series.Pair) bool { return p.X >= min && p.X <= max })
}

// Scale multiplies every value by factor.
func Scale(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	floats.Scale(factor, out)
	return out
}

// ClusterGrid paints host ownership onto a rows x cols grid: cell h holds
// job index+1 for the job that owns host h, 0 for idle hosts.
func ClusterGrid(state series.ClusterState, rows, cols int) ([]float64, error) {
	grid := make([]float64, rows*cols)
	for job, hosts := range state {
		for _, host := range hosts {
			if host < 0 || host >= len(grid) {
				return nil, invalid("cluster grid", job, "host %d outside %dx%d grid", host, rows, cols)
			}
			grid[host] = float64(job + 1)
		}
	}
	return grid, nil
}

// ratio divides and maps a zero divisor to NaN instead of an infinity.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return math.NaN()
	}
	return numerator / denominator
}
