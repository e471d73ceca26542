package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

// SampleSource selects a flat sample collection from a result file. With a
// Field the samples are that field of every record under Key; without one
// they are the y values of the pair series stored under Key.
type SampleSource struct {
	Input string
	Key   string
	Field string
}

// Samples loads the collection described by src.
func (src SampleSource) Samples() ([]float64, error) {
	if src.Field != "" {
		records, err := series.LoadSnapshots(src.Input, src.Key, src.Field)
		if err != nil {
			return nil, err
		}
		return metrics.Project(records, src.Field)
	}
	if src.Key == "" {
		return nil, fmt.Errorf("a key or a field is required to select samples from %s", src.Input)
	}
	pairs, err := series.LoadPairSeries(src.Input, src.Key)
	if err != nil {
		return nil, err
	}
	return pairs.Ys(), nil
}

func (src SampleSource) label() string {
	switch {
	case src.Key != "" && src.Field != "":
		return src.Key + "." + src.Field
	case src.Field != "":
		return src.Field
	}
	return src.Key
}

// DistributionOptions configures the distribution command. Zero Bins uses
// the configured bin count.
type DistributionOptions struct {
	Source SampleSource
	Bins   int
	Output string
}

// Distribution summarizes the selected samples, draws the density histogram
// above its cumulative curve and prints the summary.
func Distribution(env Env, opts DistributionOptions) (string, metrics.DistributionSummary, error) {
	const name = "distribution"
	bins := opts.Bins
	if bins == 0 {
		bins = env.Config.Distribution.Bins
	}
	src := opts.Source
	src.Input = env.Config.ResultPath(src.Input)

	samples, err := src.Samples()
	if err != nil {
		return "", metrics.DistributionSummary{}, fmt.Errorf("%s: %w", name, err)
	}
	summary, err := metrics.Summarize(samples, bins)
	if err != nil {
		return "", metrics.DistributionSummary{}, fmt.Errorf("%s: %w", name, err)
	}

	output := opts.Output
	if output == "" {
		output = env.Config.FigurePath(name)
	}
	if err := Draw(env, name, distributionFigure(env, src.label(), summary), output); err != nil {
		return "", metrics.DistributionSummary{}, err
	}

	table := Table{
		Title:  name,
		Header: []string{"samples", "count", "mean", "median", "bins"},
		Rows: [][]string{{
			src.label(),
			fmt.Sprint(summary.Count),
			num(summary.Mean),
			num(summary.Median),
			fmt.Sprint(len(summary.Density)),
		}},
	}
	if err := table.Print(env.Out); err != nil {
		return "", metrics.DistributionSummary{}, err
	}
	return output, summary, nil
}

func distributionFigure(env Env, title string, d metrics.DistributionSummary) render.Figure {
	// Post-step over the edges: the last density is repeated so the final
	// bin gets its top.
	density := make([]float64, len(d.Edges))
	copy(density, d.Density)
	density[len(density)-1] = d.Density[len(d.Density)-1]

	xlim := &render.Limits{Min: d.Edges[0], Max: d.Edges[len(d.Edges)-1]}
	return render.Figure{Rows: 2, Cols: 1, Width: 6, Height: 5, Panels: []render.Panel{
		{
			Title:   title,
			XLabel:  env.label("value"),
			YLabel:  env.label("density"),
			Kind:    render.KindStep,
			Grid:    true,
			XLimits: xlim,
			Series:  []render.Series{{Name: env.label("density"), X: d.Edges, Y: density, Color: env.color(0)}},
		},
		{
			XLabel:  env.label("value"),
			YLabel:  env.label("cumulative"),
			Kind:    render.KindLine,
			Grid:    true,
			XLimits: xlim,
			YLimits: &render.Limits{Min: 0, Max: 1},
			Series:  []render.Series{{Name: env.label("cumulative"), X: d.Edges, Y: d.Cumulative, Color: env.color(1)}},
		},
	}}
}
