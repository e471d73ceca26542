package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

// placementSweep is the size of the oversubscription sweep; record i*n+j
// holds run (i, j) and the figure plots the diagonal.
const placementSweep = 8

func init() {
	Register(Pipeline{
		Name:        "job-placement",
		Description: "MINA vs. baseline scores across link oversubscription ratios",
		Inputs:      fixedInputs("job_placement.json"),
		Output:      "job-placement",
		Build:       buildJobPlacement,
	})
}

// scorePair holds the two weighted scores projected from a set of records.
type scorePair struct {
	JCT   []float64
	Sharp []float64
}

func projectScores(records []series.Snapshot) (scorePair, error) {
	jct, err := metrics.Project(records, series.FieldJCTScoreWeighted)
	if err != nil {
		return scorePair{}, err
	}
	sharp, err := metrics.Project(records, series.FieldSharpRatioWeighted)
	if err != nil {
		return scorePair{}, err
	}
	return scorePair{JCT: jct, Sharp: sharp}, nil
}

func buildJobPlacement(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 1); err != nil {
		return Result{}, err
	}
	cats, err := series.LoadSnapshotCategories(inputs[0], []string{"mina", "baseline"},
		series.FieldJCTScoreWeighted, series.FieldSharpRatioWeighted)
	if err != nil {
		return Result{}, err
	}
	scores := map[string]scorePair{}
	for _, name := range []string{"mina", "baseline"} {
		diag, err := metrics.Diagonal(cats[name], placementSweep)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", name, err)
		}
		if scores[name], err = projectScores(diag); err != nil {
			return Result{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	categories := make([]string, placementSweep)
	for i := range categories {
		categories[i] = fmt.Sprintf("%d:%d", placementSweep, i+1)
	}
	mina, baseline := scores["mina"], scores["baseline"]
	fig := render.Figure{Rows: 1, Cols: 2, Width: 8, Height: 3, Panels: []render.Panel{
		comparisonBars(env, env.label("oversubscription"), env.label("jctScore"), categories, baseline.JCT, mina.JCT),
		comparisonBars(env, env.label("oversubscription"), env.label("sharpRatio"), categories, baseline.Sharp, mina.Sharp),
	}}

	table := Table{
		Title:  "job-placement",
		Header: []string{"statistic", "value"},
		Rows: [][]string{
			{"mina max JCTScoreWeighted", num(metrics.Max(mina.JCT))},
			{"mina max SharpRatioWeighted", num(metrics.Max(mina.Sharp))},
			{"baseline mean JCTScoreWeighted", num(metrics.Mean(baseline.JCT))},
			{"baseline mean SharpRatioWeighted", num(metrics.Mean(baseline.Sharp))},
		},
	}
	return Result{Figure: fig, Summaries: []Table{table}}, nil
}

// comparisonBars draws baseline and MINA side by side per category.
func comparisonBars(env Env, xlabel, ylabel string, categories []string, baseline, mina []float64) render.Panel {
	return render.Panel{
		XLabel:     xlabel,
		YLabel:     ylabel,
		Kind:       render.KindBars,
		Grid:       true,
		Categories: categories,
		Series: []render.Series{
			{Name: env.label("baseline"), Y: baseline, Color: env.color(1)},
			{Name: env.label("mina"), Y: mina, Color: env.color(0)},
		},
	}
}
