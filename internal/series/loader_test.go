package series

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadPairSeriesDottedKey(t *testing.T) {
	path := writeFixture(t, "accelerate.json", `{"traces/opt-350m-16.json": [[5e8, 1.5], [1e9, 1.2], [2e9, null]]}`)

	s, err := LoadPairSeries(path, "traces/opt-350m-16.json")
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, []float64{5e8, 1e9, 2e9}, s.Xs())
	assert.Equal(t, 1.2, s[1].Y)
	assert.True(t, math.IsNaN(s[2].Y))
}

func TestLoadPairSeriesMissingKey(t *testing.T) {
	path := writeFixture(t, "accelerate.json", `{"a": [[1, 2]]}`)

	_, err := LoadPairSeries(path, "b")
	var missing *MissingKeyError
	require.True(t, errors.As(err, &missing), "expected MissingKeyError, got %v", err)
	assert.Equal(t, "b", missing.Key)
	assert.Equal(t, -1, missing.Index)
}

func TestLoadPairSeriesMalformedPair(t *testing.T) {
	path := writeFixture(t, "accelerate.json", `{"a": [[1, 2], [3]]}`)

	_, err := LoadPairSeries(path, "a")
	var bad *MalformedDataError
	require.True(t, errors.As(err, &bad), "expected MalformedDataError, got %v", err)
	assert.Equal(t, 1, bad.Index)
}

func TestLoadPairSeriesSet(t *testing.T) {
	path := writeFixture(t, "pairs.json", `{"a": [[1, 2]], "b": [[3, 4], [5, 6]]}`)

	set, err := LoadPairSeriesSet(path, "a", "b")
	require.NoError(t, err)
	assert.Len(t, set["a"], 1)
	assert.Equal(t, []float64{4, 6}, set["b"].Ys())
}

func TestLoadSnapshotsNullBecomesNaN(t *testing.T) {
	path := writeFixture(t, "placement.json", `{
		"mina": [
			{"JCTScoreWeighted": 0.8, "SharpRatioWeighted": 0.5, "Label": "x"},
			{"JCTScoreWeighted": null, "SharpRatioWeighted": 0.4}
		]
	}`)

	records, err := LoadSnapshots(path, "mina", FieldJCTScoreWeighted, FieldSharpRatioWeighted)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0.8, records[0][FieldJCTScoreWeighted])
	assert.True(t, records[1].IsNull(FieldJCTScoreWeighted))
	_, hasLabel := records[0].Field("Label")
	assert.False(t, hasLabel, "string fields are not numeric samples")
}

func TestLoadSnapshotsRootArray(t *testing.T) {
	path := writeFixture(t, "tree_building.json", `[
		{"TimeCostTreeBuilding": 100, "FinishedJobCount": 10, "JCTScoreWeighted": 0.5},
		{"TimeCostTreeBuilding": 200, "FinishedJobCount": 0, "JCTScoreWeighted": 0.6}
	]`)

	records, err := LoadSnapshots(path, "", FieldTimeCostTreeBuilding, FieldFinishedJobCount)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadSnapshotsMissingRequiredField(t *testing.T) {
	path := writeFixture(t, "placement.json", `{"mina": [{"JCTScoreWeighted": 0.8}, {"SharpRatioWeighted": 0.1}]}`)

	_, err := LoadSnapshots(path, "mina", FieldJCTScoreWeighted)
	var bad *MalformedDataError
	require.True(t, errors.As(err, &bad), "expected MalformedDataError, got %v", err)
	assert.Equal(t, 1, bad.Index)
}

func TestLoadSnapshotsNonNumericRequiredField(t *testing.T) {
	path := writeFixture(t, "placement.json", `{"mina": [{"JCTScoreWeighted": "high"}]}`)

	_, err := LoadSnapshots(path, "mina", FieldJCTScoreWeighted)
	var bad *MalformedDataError
	require.True(t, errors.As(err, &bad), "expected MalformedDataError, got %v", err)
}

func TestLoadSnapshotCategoriesMissingCategory(t *testing.T) {
	path := writeFixture(t, "placement.json", `{"mina": []}`)

	_, err := LoadSnapshotCategories(path, []string{"mina", "baseline"})
	var missing *MissingKeyError
	require.True(t, errors.As(err, &missing), "expected MissingKeyError, got %v", err)
	assert.Equal(t, "baseline", missing.Key)
}

func TestLoadTreeConflictTrace(t *testing.T) {
	path := writeFixture(t, "tree_conflict_trace.json", `{
		"tree_conflicts": [0, 1, 1, 0, 1],
		"host_fragments": [[0, [2, 3]], [5, [4, 1]]]
	}`)

	trace, err := LoadTreeConflictTrace(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 0, 1}, trace.Conflicts)
	assert.Equal(t, []FragmentSnapshot{
		{JobCount: 0, Allocated: 2, Available: 3},
		{JobCount: 5, Allocated: 4, Available: 1},
	}, trace.Fragments)
}

func TestLoadTreeConflictTraceMissingArray(t *testing.T) {
	path := writeFixture(t, "tree_conflict_trace.json", `{"tree_conflicts": [0, 1]}`)

	_, err := LoadTreeConflictTrace(path)
	var missing *MissingKeyError
	require.True(t, errors.As(err, &missing), "expected MissingKeyError, got %v", err)
	assert.Equal(t, "host_fragments", missing.Key)
}

func TestLoadTreeConflictTraceMalformedFragment(t *testing.T) {
	path := writeFixture(t, "tree_conflict_trace.json", `{
		"tree_conflicts": [0, 1],
		"host_fragments": [[0, [2]]]
	}`)

	_, err := LoadTreeConflictTrace(path)
	var bad *MalformedDataError
	require.True(t, errors.As(err, &bad), "expected MalformedDataError, got %v", err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeFixture(t, "broken.json", `{"a": [`)

	_, err := LoadPairSeries(path, "a")
	var bad *MalformedDataError
	require.True(t, errors.As(err, &bad), "expected MalformedDataError, got %v", err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadPairSeries(filepath.Join(t.TempDir(), "nope.json"), "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadJobSizeTraces(t *testing.T) {
	path := writeFixture(t, "traces.json", `[[[1, 2], [4, 1]], [[8, 3]]]`)

	traces, err := LoadJobSizeTraces(path)
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, JobSizeTrace{{HostCount: 1, Repeat: 2}, {HostCount: 4, Repeat: 1}}, traces[0])
}

func TestLoadJobSizeTracesRejectsNegativeRepeat(t *testing.T) {
	path := writeFixture(t, "traces.json", `[[[1, -2]]]`)

	_, err := LoadJobSizeTraces(path)
	var bad *MalformedDataError
	require.True(t, errors.As(err, &bad), "expected MalformedDataError, got %v", err)
}

func TestLoadClusterState(t *testing.T) {
	path := writeFixture(t, "cluster_state.json", `[[0, 1, 2], [5]]`)

	state, err := LoadClusterState(path)
	require.NoError(t, err)
	assert.Equal(t, ClusterState{{0, 1, 2}, {5}}, state)
}

func TestLoadSharingPolicy(t *testing.T) {
	path := writeFixture(t, "sharing.json", `{
		"model_list": ["traces/a.json", "traces/b.json"],
		"bandwidth": 4e9,
		"sharp_acc_atio": 1.2,
		"average_score": {"smart": 0.9, "greedy": null},
		"smart": [[1.0, 0.8], [0.8, null]],
		"greedy": [[0.7, 0.6], [0.6, 0.5]]
	}`)

	result, err := LoadSharingPolicy(path, "smart", "greedy")
	require.NoError(t, err)
	assert.Equal(t, []string{"traces/a.json", "traces/b.json"}, result.Models)
	assert.Equal(t, 4e9, result.Bandwidth)
	assert.Equal(t, 1.2, result.AccelerationRatio)
	assert.True(t, math.IsNaN(result.Scores["smart"][1][1]))
	assert.True(t, math.IsNaN(result.AverageScore["greedy"]))
	assert.Equal(t, 0.9, result.AverageScore["smart"])
}

func TestLoadSharingPolicyMissingPolicy(t *testing.T) {
	path := writeFixture(t, "sharing.json", `{
		"model_list": ["a"],
		"bandwidth": 1,
		"sharp_acc_atio": 1,
		"average_score": {}
	}`)

	_, err := LoadSharingPolicy(path, "smart")
	var missing *MissingKeyError
	require.True(t, errors.As(err, &missing), "expected MissingKeyError, got %v", err)
	assert.Equal(t, "smart", missing.Key)
}

func TestErrorMessages(t *testing.T) {
	err := &MissingKeyError{Source: "f.json", Key: "JCTScoreWeighted", Index: 3}
	assert.Equal(t, `missing key "JCTScoreWeighted" in record 3 (f.json)`, err.Error())

	bad := &MalformedDataError{Key: "mina", Index: -1, Reason: "boom"}
	assert.Equal(t, `malformed data at "mina": boom`, bad.Error())
}
