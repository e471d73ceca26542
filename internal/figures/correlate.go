package figures

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/series"
)

// CorrelateOptions selects the two series to correlate. When both sources
// are empty the tree conflict trace in Input is used: its smoothed conflict
// probability against the windowed total fragment count.
type CorrelateOptions struct {
	Input string
	X     SampleSource
	Y     SampleSource
}

func (o CorrelateOptions) treeConflictMode() bool {
	return o.X.Key == "" && o.X.Field == "" && o.Y.Key == "" && o.Y.Field == ""
}

// Correlate computes the Pearson association of the selected series and
// prints it. Any condition that prevents a correlation is an error.
func Correlate(env Env, opts CorrelateOptions) (metrics.Association, error) {
	const name = "correlate"
	if opts.treeConflictMode() {
		input := opts.Input
		if input == "" {
			input = "tree_conflict_trace.json"
		}
		trace, err := series.LoadTreeConflictTrace(env.Config.ResultPath(input))
		if err != nil {
			return metrics.Association{}, fmt.Errorf("%s: %w", name, err)
		}
		derived, err := deriveTreeConflicts(trace, env.Config.Window.Size, env.Config.Window.Cap)
		if err != nil {
			return metrics.Association{}, fmt.Errorf("%s: %w", name, err)
		}
		if derived.AssociationErr != nil {
			return metrics.Association{}, fmt.Errorf("%s: %w", name, derived.AssociationErr)
		}
		env.printAssociation(seriesConflicts, seriesFragments, *derived.Association)
		return *derived.Association, nil
	}

	xs, err := loadCorrelated(env, opts.Input, opts.X)
	if err != nil {
		return metrics.Association{}, fmt.Errorf("%s: x: %w", name, err)
	}
	ys, err := loadCorrelated(env, opts.Input, opts.Y)
	if err != nil {
		return metrics.Association{}, fmt.Errorf("%s: y: %w", name, err)
	}
	// Projections are paired record by record; a count mismatch or a null
	// sample fails instead of shifting or dropping pairs.
	assoc, err := metrics.Pearson(xs, ys)
	if err != nil {
		return metrics.Association{}, fmt.Errorf("%s: %s vs %s: %w", name, opts.X.label(), opts.Y.label(), err)
	}
	env.printAssociation(opts.X.label(), opts.Y.label(), assoc)
	return assoc, nil
}

// loadCorrelated resolves src against the shared input file when it names
// none of its own.
func loadCorrelated(env Env, input string, src SampleSource) ([]float64, error) {
	if src.Input == "" {
		src.Input = input
	}
	if src.Input == "" {
		return nil, fmt.Errorf("no input file for %q", src.label())
	}
	src.Input = env.Config.ResultPath(src.Input)
	return src.Samples()
}

func (e Env) printAssociation(xLabel, yLabel string, a metrics.Association) {
	t := Table{
		Title:  "correlate",
		Header: []string{"x", "y", "n", "pearson r", "p-value"},
		Rows:   [][]string{{xLabel, yLabel, fmt.Sprint(a.N), num(a.R), fmt.Sprintf("%.3g", a.PValue)}},
	}
	if err := t.Print(e.Out); err != nil {
		fmt.Fprintf(e.Out, "pearson r=%.4f p=%.3g n=%d\n", a.R, a.PValue, a.N)
	}
}
