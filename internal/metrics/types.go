// internal/metrics/types.go
// Package metrics turns raw simulator series into windowed, derived, and
// aligned series plus the summary statistics printed next to each chart.
package metrics

// Series is a derived numeric sequence anchored in the raw index domain:
// Values[i] belongs to raw position Offset+i. NaN marks a position without data.
type Series struct {
	Name   string
	Offset int
	Values []float64
}

// Len returns the number of values.
func (s Series) Len() int { return len(s.Values) }

// End returns the first raw position past the series.
func (s Series) End() int { return s.Offset + len(s.Values) }

// Index returns the raw positions of every value as float64, ready to be used
// as x coordinates.
func (s Series) Index() []float64 {
	out := make([]float64, len(s.Values))
	for i := range out {
		out[i] = float64(s.Offset + i)
	}
	return out
}

// Window returns the part of s covering raw positions [start, end). The caller
// guarantees the range lies inside the series.
func (s Series) Window(start, end int) Series {
	values := make([]float64, end-start)
	copy(values, s.Values[start-s.Offset:end-s.Offset])
	return Series{Name: s.Name, Offset: start, Values: values}
}

// QueryRange is a half-open range [Start, End) of raw positions.
type QueryRange struct {
	Start int
	End   int
}

// Len returns the number of positions in the range.
func (r QueryRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}
