package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/series"
)

const (
	seriesConflicts = "conflict probability"
	seriesFragments = "total fragments"
)

func init() {
	Register(Pipeline{
		Name:        "tree-conflicts",
		Description: "aggregation tree conflict probability vs. host fragments",
		Inputs:      fixedInputs("tree_conflict_trace.json"),
		Output:      "conflicts-vs-fragments",
		Build:       buildTreeConflicts,
	})
}

// treeConflictSeries is the derived data behind the tree conflict figure.
type treeConflictSeries struct {
	Aligned     metrics.AlignedSet
	Association *metrics.Association
	// AssociationErr explains why no correlation could be computed.
	AssociationErr error
}

// deriveTreeConflicts smooths the conflict indicators with a width-W kernel,
// averages fragment snapshots within W/2 of every position over the same
// range, and aligns both (capped at maxLen positions).
func deriveTreeConflicts(trace series.TreeConflictTrace, width, maxLen int) (treeConflictSeries, error) {
	r, err := metrics.ValidRange(len(trace.Conflicts), width)
	if err != nil {
		return treeConflictSeries{}, err
	}

	samples := make([]metrics.IndexedSample, len(trace.Fragments))
	for i, f := range trace.Fragments {
		samples[i] = metrics.IndexedSample{Index: f.JobCount, Values: []float64{f.Allocated, f.Available}}
	}
	window := metrics.IndexWindow{HalfWidth: float64(width) / 2}
	frags, err := window.Aggregate(samples, []string{"allocated", "available"}, r)
	if err != nil {
		return treeConflictSeries{}, err
	}
	total, err := metrics.Sum(seriesFragments, frags[0], frags[1])
	if err != nil {
		return treeConflictSeries{}, err
	}

	conflicts, err := metrics.ConvolutionWindow{Width: width}.Aggregate(seriesConflicts, trace.Conflicts)
	if err != nil {
		return treeConflictSeries{}, err
	}

	aligned, err := metrics.Align(maxLen, conflicts, total)
	if err != nil {
		return treeConflictSeries{}, err
	}

	out := treeConflictSeries{Aligned: aligned}
	xs, ys := metrics.CompletePairs(aligned.Series[0].Values, aligned.Series[1].Values)
	assoc, err := metrics.Pearson(xs, ys)
	if err != nil {
		out.AssociationErr = err
	} else {
		out.Association = &assoc
	}
	return out, nil
}

func buildTreeConflicts(env Env, inputs []string) (Result, error) {
	if err := requireInputs(inputs, 1); err != nil {
		return Result{}, err
	}
	trace, err := series.LoadTreeConflictTrace(inputs[0])
	if err != nil {
		return Result{}, err
	}
	derived, err := deriveTreeConflicts(trace, env.Config.Window.Size, env.Config.Window.Cap)
	if err != nil {
		return Result{}, err
	}

	set := derived.Aligned
	conflicts, _ := set.Lookup(seriesConflicts)
	total, _ := set.Lookup(seriesFragments)
	xs := set.Index()
	xlim := &render.Limits{Min: xs[0], Max: xs[len(xs)-1]}

	fig := render.Figure{Rows: 2, Cols: 1, Width: 6, Height: 5, Panels: []render.Panel{
		{
			XLabel:  env.label("processedRequests"),
			YLabel:  env.label("conflictProbability"),
			Kind:    render.KindLine,
			Grid:    true,
			XLimits: xlim,
			Series:  []render.Series{{Name: env.label("treeConflicts"), X: xs, Y: conflicts.Values, Color: env.color(1)}},
		},
		{
			XLabel:  env.label("processedRequests"),
			YLabel:  env.label("fragmentCount"),
			Kind:    render.KindLine,
			Grid:    true,
			XLimits: xlim,
			Series:  []render.Series{{Name: env.label("resourceFragments"), X: xs, Y: total.Values, Color: env.color(0)}},
		},
	}}

	stats := Table{
		Title:  "tree-conflicts",
		Header: []string{"series", "from", "to", "mean", "max"},
		Rows: [][]string{
			{seriesConflicts, fmt.Sprint(set.Start), fmt.Sprint(set.Start + set.Len()), num(metrics.NanMean(conflicts.Values)), num(metrics.Max(conflicts.Values))},
			{seriesFragments, fmt.Sprint(set.Start), fmt.Sprint(set.Start + set.Len()), num(metrics.NanMean(total.Values)), num(metrics.NanMax(total.Values))},
		},
	}
	corr := Table{Header: []string{"pearson r", "p-value", "n"}}
	if derived.Association != nil {
		a := derived.Association
		corr.Rows = [][]string{{num(a.R), fmt.Sprintf("%.3g", a.PValue), fmt.Sprint(a.N)}}
	} else {
		corr.Rows = [][]string{{"n/a", derived.AssociationErr.Error(), "0"}}
	}
	return Result{Figure: fig, Summaries: []Table{stats, corr}}, nil
}
