// internal/metrics/correlation.go
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Association is the linear correlation between two aligned series.
type Association struct {
	N int     `json:"n"`
	R float64 `json:"r"`
	// PValue is two-sided, under the null hypothesis of no linear association.
	PValue float64 `json:"pValue"`
}

// Pearson computes the Pearson correlation coefficient of x and y and its
// two-sided significance from a Student t distribution with n-2 degrees of
// freedom. NaN samples are rejected rather than dropped so the caller's
// indices stay paired.
func Pearson(x, y []float64) (Association, error) {
	const op = "pearson"
	if len(x) != len(y) {
		return Association{}, invalid(op, -1, "length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) < 3 {
		return Association{}, invalid(op, -1, "need at least 3 paired samples, got %d", len(x))
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return Association{}, invalid(op, i, "NaN sample")
		}
	}
	if stat.Variance(x, nil) == 0 {
		return Association{}, invalid(op, -1, "x has zero variance")
	}
	if stat.Variance(y, nil) == 0 {
		return Association{}, invalid(op, -1, "y has zero variance")
	}

	n := len(x)
	r := stat.Correlation(x, y, nil)
	r = math.Max(-1, math.Min(1, r))
	assoc := Association{N: n, R: r}
	if math.Abs(r) == 1 {
		return assoc, nil
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	assoc.PValue = 2 * tDist.Survival(math.Abs(t))
	return assoc, nil
}

// CompletePairs keeps the positions where both x[i] and y[i] are numbers,
// for callers that correlate windowed series with empty windows.
func CompletePairs(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
