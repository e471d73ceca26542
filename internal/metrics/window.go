// internal/metrics/window.go
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// IndexedSample is one irregular event carrying an attached index (for
// example the number of jobs processed when a snapshot was taken) and the
// values of every tracked field.
type IndexedSample struct {
	Index  float64
	Values []float64
}

// IndexWindow averages irregular samples whose attached index lies within
// HalfWidth of each query position.
type IndexWindow struct {
	HalfWidth float64
}

// Aggregate returns one Series per tracked field covering r. Position idx
// averages every sample with idx-HalfWidth <= Index <= idx+HalfWidth; a
// position with no such sample is NaN for every field.
func (w IndexWindow) Aggregate(samples []IndexedSample, names []string, r QueryRange) ([]Series, error) {
	const op = "index window"
	if w.HalfWidth < 0 || math.IsNaN(w.HalfWidth) {
		return nil, invalid(op, -1, "half width must be >= 0, got %v", w.HalfWidth)
	}
	if len(names) == 0 {
		return nil, invalid(op, -1, "no tracked fields")
	}
	if r.End < r.Start {
		return nil, invalid(op, -1, "query range [%d, %d) is reversed", r.Start, r.End)
	}
	for i, s := range samples {
		if len(s.Values) != len(names) {
			return nil, invalid(op, i, "sample has %d values, want %d", len(s.Values), len(names))
		}
		if math.IsNaN(s.Index) {
			return nil, invalid(op, i, "sample index is NaN")
		}
	}

	sorted := make([]IndexedSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	positions := make([]float64, len(sorted))
	columns := make([][]float64, len(names))
	for f := range columns {
		columns[f] = make([]float64, len(sorted))
	}
	for i, s := range sorted {
		positions[i] = s.Index
		for f, v := range s.Values {
			columns[f][i] = v
		}
	}

	out := make([]Series, len(names))
	for f, name := range names {
		out[f] = Series{Name: name, Offset: r.Start, Values: make([]float64, r.Len())}
	}
	for idx := r.Start; idx < r.End; idx++ {
		lo := sort.SearchFloat64s(positions, float64(idx)-w.HalfWidth)
		hi := sort.Search(len(positions), func(i int) bool { return positions[i] > float64(idx)+w.HalfWidth })
		count := hi - lo
		for f := range names {
			if count <= 0 {
				out[f].Values[idx-r.Start] = math.NaN()
				continue
			}
			out[f].Values[idx-r.Start] = floats.Sum(columns[f][lo:hi]) / float64(count)
		}
	}
	return out, nil
}

// ConvolutionWindow smooths dense, regularly sampled sequences with a uniform
// kernel of Width samples.
type ConvolutionWindow struct {
	Width int
}

// UniformKernel returns width weights of 1/width each.
func UniformKernel(width int) []float64 {
	kernel := make([]float64, width)
	for i := range kernel {
		kernel[i] = 1 / float64(width)
	}
	return kernel
}

// Offset is the raw position of the first output sample, (Width-1)/2.
func (w ConvolutionWindow) Offset() int {
	return (w.Width - 1) / 2
}

// Aggregate convolves values with the uniform kernel in valid mode: only
// positions where the kernel fully overlaps the input are kept, so the
// output has len(values)-Width+1 samples starting at raw position Offset().
func (w ConvolutionWindow) Aggregate(name string, values []float64) (Series, error) {
	const op = "convolution window"
	if w.Width < 1 {
		return Series{}, invalid(op, -1, "kernel width must be >= 1, got %d", w.Width)
	}
	if w.Width > len(values) {
		return Series{}, invalid(op, -1, "kernel width %d exceeds input length %d", w.Width, len(values))
	}
	kernel := UniformKernel(w.Width)
	out := make([]float64, len(values)-w.Width+1)
	for i := range out {
		out[i] = floats.Dot(values[i:i+w.Width], kernel)
	}
	return Series{Name: name, Offset: w.Offset(), Values: out}, nil
}

// ValidRange returns the raw positions covered by a valid-mode convolution of
// width over length samples, [(width-1)/2, length-width/2). Index-window
// outputs are computed over the same range so both can be combined directly.
func ValidRange(length, width int) (QueryRange, error) {
	if width < 1 || width > length {
		return QueryRange{}, invalid("valid range", -1, "window width %d does not fit %d samples", width, length)
	}
	return QueryRange{Start: (width - 1) / 2, End: length - width/2}, nil
}
