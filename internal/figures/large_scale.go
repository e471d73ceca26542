package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

// largeScaleRuns is the number of (MINA, baseline) record pairs in the
// large scale simulation output.
const largeScaleRuns = 10

func init() {
	Register(Pipeline{
		Name:        "large-scale",
		Description: "overall MINA vs. baseline performance on the collected datasets",
		Inputs:      fixedInputs("large_scale_simulation.json"),
		Output:      "overall_performance",
		Build:       buildLargeScale,
	})
}

func buildLargeScale(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 1); err != nil {
		return Result{}, err
	}
	records, err := series.LoadSnapshots(inputs[0], "", series.FieldJCTScoreWeighted, series.FieldSharpRatioWeighted)
	if err != nil {
		return Result{}, err
	}
	minaRecs, baselineRecs, err := metrics.Deinterleave(records, largeScaleRuns)
	if err != nil {
		return Result{}, err
	}
	mina, err := projectScores(minaRecs)
	if err != nil {
		return Result{}, fmt.Errorf("mina: %w", err)
	}
	baseline, err := projectScores(baselineRecs)
	if err != nil {
		return Result{}, fmt.Errorf("baseline: %w", err)
	}

	categories := make([]string, largeScaleRuns)
	for i := range categories {
		categories[i] = fmt.Sprint(i + 1)
	}
	jctPanel := comparisonBars(env, env.label("datasetID"), env.label("jctScore"), categories, baseline.JCT, mina.JCT)
	jctPanel.YFormat = "%.2f"
	sharpPanel := comparisonBars(env, env.label("datasetID"), env.label("sharpRatio"), categories, baseline.Sharp, mina.Sharp)
	sharpPanel.YFormat = "%.2f"
	fig := render.Figure{Rows: 1, Cols: 2, Width: 8, Height: 3, Panels: []render.Panel{jctPanel, sharpPanel}}

	jctRatio, err := metrics.Ratio(mina.JCT, baseline.JCT)
	if err != nil {
		return Result{}, err
	}
	sharpRatio, err := metrics.Ratio(mina.Sharp, baseline.Sharp)
	if err != nil {
		return Result{}, err
	}
	row := func(name string, values []float64) []string {
		s := metrics.Describe(values)
		return []string{name, num(s.Mean), num(s.Max)}
	}
	table := Table{
		Title:  "large-scale",
		Header: []string{"series", "mean", "max"},
		Rows: [][]string{
			row("mina JCTScoreWeighted", mina.JCT),
			row("baseline JCTScoreWeighted", baseline.JCT),
			row("mina/baseline JCTScoreWeighted", jctRatio),
			row("mina SharpRatioWeighted", mina.Sharp),
			row("baseline SharpRatioWeighted", baseline.Sharp),
			row("mina/baseline SharpRatioWeighted", sharpRatio),
		},
	}
	return Result{Figure: fig, Summaries: []Table{table}}, nil
}
