package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

// The simulated cluster has 1024 hosts drawn as 16 rows of 64.
const (
	clusterRows = 16
	clusterCols = 64
)

func init() {
	Register(Pipeline{
		Name:        "cluster-state",
		Description: "host ownership snapshot of the baseline and MINA placements",
		Inputs:      fixedInputs("cluster_state_baseline.json", "cluster_state_mina.json"),
		Output:      "cluster_state",
		Build:       buildClusterState,
	})
}

func buildClusterState(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 2); err != nil {
		return Result{}, err
	}
	titles := []string{env.label("baseline"), env.label("mina")}
	fig := render.Figure{Rows: 1, Cols: 2, Width: 10, Height: 2}
	table := Table{Title: "cluster-state", Header: []string{"placement", "jobs", "busy hosts", "utilization"}}

	for i, path := range inputs {
		state, err := series.LoadClusterState(path)
		if err != nil {
			return Result{}, err
		}
		grid, err := metrics.ClusterGrid(state, clusterRows, clusterCols)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", path, err)
		}
		fig.Panels = append(fig.Panels, render.Panel{
			Title:    titles[i],
			Kind:     render.KindHeatmap,
			HideAxes: true,
			Heatmap: &render.Heatmap{
				Rows:     clusterRows,
				Cols:     clusterCols,
				Values:   grid,
				Min:      0,
				Max:      float64(len(state)),
				Discrete: true,
			},
		})

		busy := 0
		for _, v := range grid {
			if v > 0 {
				busy++
			}
		}
		table.Rows = append(table.Rows, []string{
			titles[i],
			fmt.Sprint(len(state)),
			fmt.Sprint(busy),
			fmt.Sprintf("%.1f%%", 100*float64(busy)/float64(len(grid))),
		})
	}
	return Result{Figure: fig, Summaries: []Table{table}}, nil
}
