package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

const bytesPerGB = 1e9

func init() {
	Register(Pipeline{
		Name:        "accelerate",
		Description: "iteration duration vs. aggregation bandwidth for one model trace",
		Inputs:      fixedInputs("accelerate_effectiveness.json"),
		Output:      "accelerate_effectiveness",
		Build:       buildAccelerate,
	})
}

func buildAccelerate(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 1); err != nil {
		return Result{}, err
	}
	acc := env.Config.Accelerate
	raw, err := series.LoadPairSeries(inputs[0], acc.ModelKey)
	if err != nil {
		return Result{}, err
	}
	band := metrics.FilterPairs(raw, acc.MinBandwidth, acc.MaxBandwidth)
	if len(band) == 0 {
		return Result{}, fmt.Errorf("no samples of %q between %g and %g B/s", acc.ModelKey, acc.MinBandwidth, acc.MaxBandwidth)
	}
	bandwidth := metrics.Scale(band.Xs(), 1/bytesPerGB)
	duration := band.Ys()

	fig := render.Figure{Rows: 1, Cols: 1, Width: 4, Height: 2.4, Panels: []render.Panel{{
		XLabel: env.label("aggBandwidth"),
		YLabel: env.label("iterationDuration"),
		Kind:   render.KindLine,
		Grid:   true,
		Series: []render.Series{{Name: acc.ModelName, X: bandwidth, Y: duration, Color: env.color(0)}},
	}}}

	s := metrics.Describe(duration)
	table := Table{
		Title:  "accelerate",
		Header: []string{"model", "samples", "min duration", "max duration", "speedup"},
		Rows: [][]string{{
			acc.ModelName,
			fmt.Sprint(len(band)),
			num(s.Min),
			num(s.Max),
			num(s.Max / s.Min),
		}},
	}
	return Result{Figure: fig, Summaries: []Table{table}}, nil
}
