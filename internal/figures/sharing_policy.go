package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/appconfig"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
	"github.com/mwiater/inaviz/internal/util"
)

func init() {
	Register(Pipeline{
		Name:        "sharing-policy",
		Description: "pairwise model sharing scores per sharing policy",
		Inputs: func(cfg appconfig.Config) []string {
			return []string{cfg.Sharing.Input}
		},
		Output: "sharing_policy",
		Build:  buildSharingPolicy,
	})
}

func buildSharingPolicy(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 1); err != nil {
		return Result{}, err
	}
	sharing := env.Config.Sharing
	if len(sharing.Policies) == 0 {
		return Result{}, fmt.Errorf("no sharing policies configured")
	}
	res, err := series.LoadSharingPolicy(inputs[0], sharing.Policies...)
	if err != nil {
		return Result{}, err
	}
	models := make([]string, len(res.Models))
	for i, m := range res.Models {
		models[i] = util.TraceName(m)
	}

	n := len(models)
	fig := render.Figure{Rows: 1, Cols: len(sharing.Policies), Width: 5 * float64(len(sharing.Policies)), Height: 5}
	table := Table{Title: "sharing-policy", Header: []string{"policy", "bandwidth (GB/s)", "acc ratio", "average score"}}
	for _, policy := range sharing.Policies {
		matrix := res.Scores[policy]
		values := make([]float64, 0, n*n)
		for _, row := range matrix {
			values = append(values, row...)
		}
		fig.Panels = append(fig.Panels, render.Panel{
			Title: fmt.Sprintf("%s Bw=%.1fGB/s Acc=%.1f Avg=%.2f", policy, res.Bandwidth/bytesPerGB, res.AccelerationRatio, res.AverageScore[policy]),
			Kind:  render.KindHeatmap,
			Heatmap: &render.Heatmap{
				Rows:      n,
				Cols:      n,
				Values:    values,
				Min:       sharing.Min,
				Max:       sharing.Max,
				Annotate:  true,
				Format:    "%.2f",
				RowLabels: models,
				ColLabels: models,
			},
		})
		table.Rows = append(table.Rows, []string{
			policy,
			fmt.Sprintf("%.1f", res.Bandwidth/bytesPerGB),
			fmt.Sprintf("%.1f", res.AccelerationRatio),
			num(res.AverageScore[policy]),
		})
	}
	return Result{Figure: fig, Summaries: []Table{table}}, nil
}
