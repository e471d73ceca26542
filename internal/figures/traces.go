package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

func init() {
	Register(Pipeline{
		Name:        "traces",
		Description: "job size statistics of every workload trace",
		Inputs:      fixedInputs("traces.json"),
		Output:      "traces",
		Build:       buildTraces,
	})
}

// describeTraces expands every run-length encoded trace and summarizes the
// per-job host counts.
func describeTraces(traces []series.JobSizeTrace) []metrics.Summary {
	out := make([]metrics.Summary, len(traces))
	for i, t := range traces {
		out[i] = metrics.Describe(metrics.ExpandRuns(t))
	}
	return out
}

func buildTraces(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 1); err != nil {
		return Result{}, err
	}
	traces, err := series.LoadJobSizeTraces(inputs[0])
	if err != nil {
		return Result{}, err
	}
	if len(traces) == 0 {
		return Result{}, fmt.Errorf("%s holds no traces", inputs[0])
	}
	stats := describeTraces(traces)

	xs := make([]float64, len(stats))
	means := make([]float64, len(stats))
	stds := make([]float64, len(stats))
	categories := make([]string, len(stats))
	table := Table{Title: "traces", Header: []string{"trace", "jobs", "min", "max", "mean", "std", "p90", "p99"}}
	for i, s := range stats {
		xs[i] = float64(i)
		means[i] = s.Mean
		stds[i] = s.StdDev
		categories[i] = fmt.Sprint(i + 1)
		table.Rows = append(table.Rows, []string{categories[i], fmt.Sprint(s.Count), num(s.Min), num(s.Max), num(s.Mean), num(s.StdDev), num(s.P90), num(s.P99)})
	}

	fig := render.Figure{Rows: 1, Cols: 1, Width: 5, Height: 2.4, Panels: []render.Panel{{
		XLabel:     env.label("traceID"),
		YLabel:     env.label("avgJobSize"),
		Kind:       render.KindErrorBars,
		Categories: categories,
		Series:     []render.Series{{X: xs, Y: means, Err: stds, Color: env.color(0)}},
	}}}
	return Result{Figure: fig, Summaries: []Table{table}}, nil
}
