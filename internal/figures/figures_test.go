package figures

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/inaviz/internal/appconfig"
	"github.com/mwiater/inaviz/internal/metrics"
	"github.com/mwiater/inaviz/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv returns an Env writing small PNGs under a temp directory.
func testEnv(t *testing.T) (Env, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := appconfig.Default()
	cfg.ResultsDir = filepath.Join(dir, "results")
	cfg.FiguresDir = filepath.Join(dir, "figures")
	cfg.Format = "png"
	cfg.Style.DPI = 48
	require.NoError(t, os.MkdirAll(cfg.ResultsDir, 0o755))

	var out bytes.Buffer
	env, err := NewEnv(cfg, &out)
	require.NoError(t, err)
	return env, &out
}

func writeResult(t *testing.T, env Env, name string, doc any) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.Config.ResultPath(name), data, 0o644))
}

func scoreRecords(n int, scale float64) []map[string]float64 {
	out := make([]map[string]float64, n)
	for i := range out {
		out[i] = map[string]float64{
			series.FieldJCTScoreWeighted:   scale * float64(i+1),
			series.FieldSharpRatioWeighted: scale / float64(i+1),
		}
	}
	return out
}

func treeConflictDoc(conflicts []float64) map[string]any {
	fragments := make([]any, len(conflicts))
	for i := range conflicts {
		fragments[i] = []any{i, []float64{float64(i % 4), 1}}
	}
	return map[string]any{"tree_conflicts": conflicts, "host_fragments": fragments}
}

func TestDeriveTreeConflicts(t *testing.T) {
	trace := series.TreeConflictTrace{
		Conflicts: []float64{0, 1, 1, 0, 1},
		Fragments: []series.FragmentSnapshot{
			{JobCount: 0, Allocated: 0, Available: 1},
			{JobCount: 1, Allocated: 1, Available: 1},
			{JobCount: 2, Allocated: 2, Available: 1},
			{JobCount: 3, Allocated: 3, Available: 1},
			{JobCount: 4, Allocated: 4, Available: 1},
		},
	}

	derived, err := deriveTreeConflicts(trace, 3, 0)
	require.NoError(t, err)

	set := derived.Aligned
	assert.Equal(t, 1, set.Start)
	assert.Equal(t, 3, set.Len())
	conflicts, ok := set.Lookup(seriesConflicts)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{2.0 / 3, 2.0 / 3, 2.0 / 3}, conflicts.Values, 1e-12)
	total, ok := set.Lookup(seriesFragments)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{2, 3, 4}, total.Values, 1e-12)

	// A constant conflict series cannot be correlated.
	assert.Nil(t, derived.Association)
	assert.Error(t, derived.AssociationErr)
}

func TestDeriveTreeConflictsEmptyWindowsAreNaN(t *testing.T) {
	trace := series.TreeConflictTrace{
		Conflicts: make([]float64, 12),
		Fragments: []series.FragmentSnapshot{
			{JobCount: 0, Allocated: 2, Available: 3},
			{JobCount: 5, Allocated: 4, Available: 1},
		},
	}

	derived, err := deriveTreeConflicts(trace, 4, 0)
	require.NoError(t, err)
	total, _ := derived.Aligned.Lookup(seriesFragments)
	// Range [1, 10): position 1 sees only the first snapshot, 9 sees none.
	assert.Equal(t, 1, total.Offset)
	assert.InDelta(t, 5, total.Values[0], 1e-12)
	assert.True(t, math.IsNaN(total.Values[len(total.Values)-1]))
}

func TestDeriveTreeConflictsCap(t *testing.T) {
	trace := series.TreeConflictTrace{Conflicts: make([]float64, 12)}
	for i := 0; i < 12; i++ {
		trace.Fragments = append(trace.Fragments, series.FragmentSnapshot{JobCount: float64(i), Allocated: 1, Available: 1})
	}

	derived, err := deriveTreeConflicts(trace, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, derived.Aligned.Start)
	assert.Equal(t, 5, derived.Aligned.Len())
}

func TestRunPipelines(t *testing.T) {
	env, out := testEnv(t)

	conflicts := make([]float64, 40)
	for i := range conflicts {
		if i%3 == 0 || i%7 == 0 {
			conflicts[i] = 1
		}
	}
	env.Config.Window.Size = 4
	writeResult(t, env, "tree_conflict_trace.json", treeConflictDoc(conflicts))
	writeResult(t, env, "job_placement.json", map[string]any{
		"mina":     scoreRecords(placementSweep*placementSweep, 1),
		"baseline": scoreRecords(placementSweep*placementSweep, 0.5),
	})
	writeResult(t, env, "large_scale_simulation.json", scoreRecords(2*largeScaleRuns, 1))
	writeResult(t, env, "tree_building.json", []map[string]float64{
		{series.FieldTimeCostTreeBuilding: 100, series.FieldFinishedJobCount: 10, series.FieldJCTScoreWeighted: 0.5},
		{series.FieldTimeCostTreeBuilding: 300, series.FieldFinishedJobCount: 10, series.FieldJCTScoreWeighted: 0.7},
		{series.FieldTimeCostTreeBuilding: 900, series.FieldFinishedJobCount: 10, series.FieldJCTScoreWeighted: 0.8},
	})
	writeResult(t, env, "accelerate_effectiveness.json", map[string]any{
		env.Config.Accelerate.ModelKey: [][]float64{{1e8, 9}, {1e9, 4}, {5e9, 2}, {2e10, 1}},
	})
	writeResult(t, env, "traces.json", [][][]float64{{{1, 4}, {8, 2}}, {{2, 3}, {16, 1}}})
	writeResult(t, env, "cluster_state_baseline.json", [][]int{{0, 1, 2}, {64, 65}})
	writeResult(t, env, "cluster_state_mina.json", [][]int{{0, 1}, {2, 3}, {1023}})
	writeResult(t, env, env.Config.Sharing.Input, map[string]any{
		"model_list":     []string{"traces/opt-350m-16.json", "traces/bert-large-8.json"},
		"bandwidth":      4e9,
		"sharp_acc_atio": 1.2,
		"average_score":  map[string]float64{"smart": 0.9, "greedy": 0.7},
		"smart":          [][]any{{1.0, 0.8}, {0.8, nil}},
		"greedy":         [][]float64{{0.7, 0.6}, {0.6, 0.5}},
	})

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			path, err := Run(env, name, RunOptions{})
			require.NoError(t, err)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
	assert.Contains(t, out.String(), "job-placement")
	assert.Contains(t, out.String(), env.Config.Accelerate.ModelName)
}

func TestRunOverridesOutput(t *testing.T) {
	env, _ := testEnv(t)
	writeResult(t, env, "custom.json", [][][]float64{{{4, 2}}})
	output := filepath.Join(t.TempDir(), "nested", "traces.svg")

	path, err := Run(env, "traces", RunOptions{Inputs: []string{"custom.json"}, Output: output})
	require.NoError(t, err)
	assert.Equal(t, output, path)
	_, err = os.Stat(output)
	require.NoError(t, err)
}

func TestTracesTableShowsQuantiles(t *testing.T) {
	env, _ := testEnv(t)
	runs := make([][]float64, 10)
	for i := range runs {
		runs[i] = []float64{float64(i + 1), 1}
	}
	writeResult(t, env, "traces.json", [][][]float64{runs})

	res, err := buildTraces(env, []string{env.Config.ResultPath("traces.json")})
	require.NoError(t, err)
	require.Len(t, res.Summaries, 1)
	table := res.Summaries[0]
	assert.Equal(t, []string{"trace", "jobs", "min", "max", "mean", "std", "p90", "p99"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "10", table.Rows[0][1])
	assert.Equal(t, "9.0000", table.Rows[0][6])
	assert.Equal(t, "9.9000", table.Rows[0][7])
}

func TestRunMissingInput(t *testing.T) {
	env, _ := testEnv(t)
	_, err := Run(env, "traces", RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunUnknownFigure(t *testing.T) {
	env, _ := testEnv(t)
	_, err := Run(env, "nope", RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown figure")
}

func TestJobPlacementShortSweep(t *testing.T) {
	env, _ := testEnv(t)
	writeResult(t, env, "job_placement.json", map[string]any{
		"mina":     scoreRecords(10, 1),
		"baseline": scoreRecords(placementSweep*placementSweep, 1),
	})
	_, err := Run(env, "job-placement", RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mina")
}

func TestDistributionFromPairSeries(t *testing.T) {
	env, out := testEnv(t)
	writeResult(t, env, "samples.json", map[string]any{
		"durations": [][]float64{{0, 1}, {1, 2}, {2, 2}, {3, 3}, {4, 10}},
	})

	path, summary, err := Distribution(env, DistributionOptions{
		Source: SampleSource{Input: "samples.json", Key: "durations"},
		Bins:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, env.Config.FigurePath("distribution"), path)
	assert.Equal(t, 5, summary.Count)
	assert.InDelta(t, 3.6, summary.Mean, 1e-12)
	assert.InDelta(t, 2, summary.Median, 1e-12)
	assert.Len(t, summary.Density, 3)
	assert.Contains(t, out.String(), "durations")
}

func TestDistributionFromSnapshotField(t *testing.T) {
	env, _ := testEnv(t)
	writeResult(t, env, "large_scale_simulation.json", scoreRecords(6, 1))

	_, summary, err := Distribution(env, DistributionOptions{
		Source: SampleSource{Input: "large_scale_simulation.json", Field: series.FieldJCTScoreWeighted},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Count)
	assert.Len(t, summary.Density, env.Config.Distribution.Bins)
}

func TestDistributionNeedsSelector(t *testing.T) {
	env, _ := testEnv(t)
	writeResult(t, env, "samples.json", map[string]any{})
	_, _, err := Distribution(env, DistributionOptions{Source: SampleSource{Input: "samples.json"}})
	require.Error(t, err)
}

func TestCorrelateSnapshotFields(t *testing.T) {
	env, out := testEnv(t)
	records := []map[string]any{
		{"x": 1, "y": 2},
		{"x": 2, "y": 4},
		{"x": 3, "y": 6},
		{"x": 4, "y": 8},
		{"x": 5, "y": 10},
	}
	writeResult(t, env, "runs.json", map[string]any{"runs": records})

	assoc, err := Correlate(env, CorrelateOptions{
		Input: "runs.json",
		X:     SampleSource{Key: "runs", Field: "x"},
		Y:     SampleSource{Key: "runs", Field: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, assoc.N)
	assert.InDelta(t, 1, assoc.R, 1e-12)
	assert.InDelta(t, 0, assoc.PValue, 1e-9)
	assert.Contains(t, out.String(), "runs.x")
}

func TestCorrelateRejectsMismatchedRecordCounts(t *testing.T) {
	env, out := testEnv(t)
	writeResult(t, env, "job_placement.json", map[string]any{
		"mina":     scoreRecords(5, 1),
		"baseline": scoreRecords(3, 1),
	})

	_, err := Correlate(env, CorrelateOptions{
		Input: "job_placement.json",
		X:     SampleSource{Key: "mina", Field: series.FieldJCTScoreWeighted},
		Y:     SampleSource{Key: "baseline", Field: series.FieldJCTScoreWeighted},
	})
	require.Error(t, err)
	var invalid *metrics.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "length mismatch: 5 vs 3")
	assert.NotContains(t, out.String(), "pearson")
}

func TestCorrelateRejectsNullSample(t *testing.T) {
	env, _ := testEnv(t)
	records := []map[string]any{
		{"x": 1, "y": 2},
		{"x": 2, "y": 4},
		{"x": 3, "y": nil},
		{"x": 4, "y": 8},
		{"x": 5, "y": 10},
	}
	writeResult(t, env, "runs.json", map[string]any{"runs": records})

	_, err := Correlate(env, CorrelateOptions{
		Input: "runs.json",
		X:     SampleSource{Key: "runs", Field: "x"},
		Y:     SampleSource{Key: "runs", Field: "y"},
	})
	require.Error(t, err)
	var invalid *metrics.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.Index)
	assert.Contains(t, err.Error(), "NaN sample")
}

func TestCorrelateTreeConflictsConstantSeriesFails(t *testing.T) {
	env, _ := testEnv(t)
	env.Config.Window.Size = 3
	writeResult(t, env, "tree_conflict_trace.json", treeConflictDoc(make([]float64, 10)))

	_, err := Correlate(env, CorrelateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero variance")
}

func TestCorrelateTreeConflicts(t *testing.T) {
	env, _ := testEnv(t)
	env.Config.Window.Size = 3
	conflicts := make([]float64, 30)
	for i := range conflicts {
		if i%4 == 0 || i%5 == 0 {
			conflicts[i] = 1
		}
	}
	writeResult(t, env, "tree_conflict_trace.json", treeConflictDoc(conflicts))

	assoc, err := Correlate(env, CorrelateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 28, assoc.N)
	assert.True(t, assoc.R >= -1 && assoc.R <= 1)
	assert.True(t, assoc.PValue >= 0 && assoc.PValue <= 1)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Baseline", Label(appconfig.LanguageEnglish, "baseline"))
	assert.Equal(t, "基准方法", Label(appconfig.LanguageChinese, "baseline"))
	assert.Equal(t, "Baseline", Label("fr", "baseline"))
	assert.Equal(t, "mystery", Label(appconfig.LanguageEnglish, "mystery"))
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{
		"accelerate",
		"cluster-state",
		"job-placement",
		"large-scale",
		"sharing-policy",
		"traces",
		"tree-building",
		"tree-conflicts",
	}, Names())
	assert.Panics(t, func() { Register(Pipeline{Name: "traces"}) })
}

func TestTablePrintFormatsNaN(t *testing.T) {
	var buf bytes.Buffer
	table := Table{Title: "stats", Header: []string{"name", "value"}, Rows: [][]string{{"mean", num(math.NaN())}}}
	require.NoError(t, table.Print(&buf))
	assert.Contains(t, buf.String(), "n/a")
	assert.Contains(t, buf.String(), "stats")
}
