package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

func init() {
	Register(Pipeline{
		Name:        "tree-building",
		Description: "tree building runtime per job and JCT score by candidate tree count",
		Inputs:      fixedInputs("tree_building.json"),
		Output:      "tree-building",
		Build:       buildTreeBuilding,
	})
}

func buildTreeBuilding(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 1); err != nil {
		return Result{}, err
	}
	records, err := series.LoadSnapshots(inputs[0], "",
		series.FieldTimeCostTreeBuilding, series.FieldFinishedJobCount, series.FieldJCTScoreWeighted)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{}, fmt.Errorf("%s holds no records", inputs[0])
	}
	runtime, err := metrics.ProjectRatio(records, series.FieldTimeCostTreeBuilding, series.FieldFinishedJobCount)
	if err != nil {
		return Result{}, err
	}
	jct, err := metrics.Project(records, series.FieldJCTScoreWeighted)
	if err != nil {
		return Result{}, err
	}

	// The last run places no limit on the candidate tree count.
	categories := make([]string, len(records))
	xs := make([]float64, len(records))
	for i := range categories {
		categories[i] = fmt.Sprint(i + 1)
		xs[i] = float64(i)
	}
	categories[len(categories)-1] = env.label("all")

	fig := render.Figure{Rows: 2, Cols: 1, Width: 5, Height: 5, Panels: []render.Panel{
		{
			XLabel:     env.label("candidateTrees"),
			YLabel:     env.label("runtimeMs"),
			Kind:       render.KindBars,
			Grid:       true,
			Categories: categories,
			Series:     []render.Series{{Name: env.label("algorithmRuntime"), Y: runtime, Color: env.color(0)}},
		},
		{
			XLabel:     env.label("candidateTrees"),
			YLabel:     env.label("jctScore"),
			Kind:       render.KindLine,
			Grid:       true,
			Categories: categories,
			Series:     []render.Series{{Name: env.label("algorithmPerformance"), X: xs, Y: jct, Color: env.color(1)}},
		},
	}}

	table := Table{Title: "tree-building", Header: []string{"candidate trees", "runtime per job (ms)", "JCTScoreWeighted"}}
	for i := range records {
		table.Rows = append(table.Rows, []string{categories[i], num(runtime[i]), num(jct[i])})
	}
	return Result{Figure: fig, Summaries: []Table{table}}, nil
}
