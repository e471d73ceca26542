package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDensityIntegratesToOne(t *testing.T) {
	samples := []float64{1, 1, 2, 3, 3, 3, 4, 8, 9, 16}
	d, err := Summarize(samples, 5)
	require.NoError(t, err)

	require.Len(t, d.Edges, 6)
	require.Len(t, d.Density, 5)
	require.Len(t, d.Cumulative, 6)
	assert.Equal(t, 1.0, d.Edges[0])
	assert.Equal(t, 16.0, d.Edges[5])

	var area float64
	for i, v := range d.Density {
		area += v * d.BinWidth(i)
	}
	assert.InDelta(t, 1.0, area, 1e-9)

	assert.Equal(t, 0.0, d.Cumulative[0])
	for i := 1; i < len(d.Cumulative); i++ {
		assert.GreaterOrEqual(t, d.Cumulative[i], d.Cumulative[i-1])
	}
	assert.InDelta(t, 1.0, d.Cumulative[5], 1e-9)

	assert.Equal(t, 10, d.Count)
	assert.InDelta(t, 5.0, d.Mean, 1e-12)
	assert.InDelta(t, 3.0, d.Median, 1e-12)
}

func TestSummarizeMaximumLandsInLastBin(t *testing.T) {
	d, err := Summarize([]float64{0, 10}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, d.Density[0], 1e-12)
	assert.InDelta(t, 0.1, d.Density[1], 1e-12)
	assert.Equal(t, []float64{2.5, 7.5}, d.Centers())
}

func TestSummarizeSingleValue(t *testing.T) {
	d, err := Summarize([]float64{4, 4, 4}, 4)
	require.NoError(t, err)
	assert.Equal(t, 3.5, d.Edges[0])
	assert.Equal(t, 4.5, d.Edges[4])
	assert.InDelta(t, 1.0, d.Cumulative[4], 1e-9)
	assert.Equal(t, 4.0, d.Median)
}

func TestSummarizeInvalid(t *testing.T) {
	var invalidErr *InvalidInputError
	_, err := Summarize(nil, 10)
	require.True(t, errors.As(err, &invalidErr))
	_, err = Summarize([]float64{1}, 0)
	require.True(t, errors.As(err, &invalidErr))
}
