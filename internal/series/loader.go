package series

import (
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

// LoadPairSeries reads the [x, y] series stored under key.
func LoadPairSeries(path, key string) (PairSeries, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return ParsePairSeries(path, data, key)
}

// LoadPairSeriesSet reads several [x, y] series from the same document.
func LoadPairSeriesSet(path string, keys ...string) (map[string]PairSeries, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]PairSeries, len(keys))
	for _, key := range keys {
		s, err := ParsePairSeries(path, data, key)
		if err != nil {
			return nil, err
		}
		out[key] = s
	}
	return out, nil
}

// ParsePairSeries extracts the [x, y] series stored under key from raw JSON.
// Keys are matched literally, so names containing dots or slashes such as
// "traces/opt-350m-16.json" are supported.
func ParsePairSeries(source string, data []byte, key string) (PairSeries, error) {
	res, err := lookup(source, data, key)
	if err != nil {
		return nil, err
	}
	if !res.IsArray() {
		return nil, malformed(source, key, -1, "expected array of [x, y] pairs, got %s", res.Type)
	}
	items := res.Array()
	out := make(PairSeries, 0, len(items))
	for i, item := range items {
		if !item.IsArray() {
			return nil, malformed(source, key, i, "expected [x, y] pair, got %s", item.Type)
		}
		parts := item.Array()
		if len(parts) != 2 {
			return nil, malformed(source, key, i, "expected 2 values, got %d", len(parts))
		}
		x, okX := number(parts[0])
		y, okY := number(parts[1])
		if !okX || !okY {
			return nil, malformed(source, key, i, "pair values must be numeric")
		}
		out = append(out, Pair{X: x, Y: y})
	}
	return out, nil
}

// LoadSnapshots reads the score records stored under category. An empty
// category selects a document whose root is the record array. Every record
// must carry each required field as a number or null.
func LoadSnapshots(path, category string, required ...string) ([]Snapshot, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshots(path, data, category, required...)
}

// LoadSnapshotCategories reads several record categories from one document.
func LoadSnapshotCategories(path string, categories []string, required ...string) (map[string][]Snapshot, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Snapshot, len(categories))
	for _, category := range categories {
		records, err := ParseSnapshots(path, data, category, required...)
		if err != nil {
			return nil, err
		}
		out[category] = records
	}
	return out, nil
}

// ParseSnapshots extracts score records from raw JSON. Non-numeric fields that
// are not required are ignored.
func ParseSnapshots(source string, data []byte, category string, required ...string) ([]Snapshot, error) {
	res, err := lookup(source, data, category)
	if err != nil {
		return nil, err
	}
	if !res.IsArray() {
		return nil, malformed(source, category, -1, "expected array of records, got %s", res.Type)
	}
	items := res.Array()
	out := make([]Snapshot, 0, len(items))
	for i, rec := range items {
		if !rec.IsObject() {
			return nil, malformed(source, category, i, "expected record object, got %s", rec.Type)
		}
		for _, name := range required {
			v := rec.Get(gjson.Escape(name))
			if !v.Exists() {
				return nil, malformed(source, category, i, "missing required field %q", name)
			}
			if _, ok := number(v); !ok {
				return nil, malformed(source, category, i, "field %q is %s, want number or null", name, v.Type)
			}
		}
		snap := make(Snapshot)
		rec.ForEach(func(k, v gjson.Result) bool {
			if f, ok := number(v); ok {
				snap[k.String()] = f
			}
			return true
		})
		out = append(out, snap)
	}
	return out, nil
}

// LoadTreeConflictTrace reads the tree_conflicts and host_fragments arrays.
func LoadTreeConflictTrace(path string) (TreeConflictTrace, error) {
	data, err := readDocument(path)
	if err != nil {
		return TreeConflictTrace{}, err
	}
	return ParseTreeConflictTrace(path, data)
}

// ParseTreeConflictTrace extracts a TreeConflictTrace from raw JSON.
func ParseTreeConflictTrace(source string, data []byte) (TreeConflictTrace, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return TreeConflictTrace{}, malformed(source, "", -1, "expected object at document root, got %s", root.Type)
	}
	for _, key := range []string{"tree_conflicts", "host_fragments"} {
		if !root.Get(key).Exists() {
			return TreeConflictTrace{}, missingKey(source, key)
		}
	}
	if err := validateDocument(source, "", treeConflictSchema, data); err != nil {
		return TreeConflictTrace{}, err
	}

	conflictItems := root.Get("tree_conflicts").Array()
	trace := TreeConflictTrace{
		Conflicts: make([]float64, len(conflictItems)),
	}
	for i, item := range conflictItems {
		v, _ := number(item)
		trace.Conflicts[i] = v
	}

	fragmentItems := root.Get("host_fragments").Array()
	trace.Fragments = make([]FragmentSnapshot, len(fragmentItems))
	for i, item := range fragmentItems {
		parts := item.Array()
		counts := parts[1].Array()
		allocated, _ := number(counts[0])
		available, _ := number(counts[1])
		trace.Fragments[i] = FragmentSnapshot{
			JobCount:  parts[0].Float(),
			Allocated: allocated,
			Available: available,
		}
	}
	return trace, nil
}

// LoadJobSizeTraces reads a list of run-length encoded job-size traces.
func LoadJobSizeTraces(path string) ([]JobSizeTrace, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(path, "", jobSizeTraceSchema, data); err != nil {
		return nil, err
	}
	traces := gjson.ParseBytes(data).Array()
	out := make([]JobSizeTrace, len(traces))
	for i, trace := range traces {
		runs := trace.Array()
		out[i] = make(JobSizeTrace, len(runs))
		for j, run := range runs {
			parts := run.Array()
			out[i][j] = SizeRun{HostCount: parts[0].Float(), Repeat: int(parts[1].Int())}
		}
	}
	return out, nil
}

// LoadClusterState reads the per-job host assignment lists.
func LoadClusterState(path string) (ClusterState, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(path, "", clusterStateSchema, data); err != nil {
		return nil, err
	}
	jobs := gjson.ParseBytes(data).Array()
	out := make(ClusterState, len(jobs))
	for i, job := range jobs {
		hosts := job.Array()
		out[i] = make([]int, len(hosts))
		for j, host := range hosts {
			out[i][j] = int(host.Int())
		}
	}
	return out, nil
}

// LoadSharingPolicy reads the pairwise score matrices of the named policies.
func LoadSharingPolicy(path string, policies ...string) (SharingPolicyResult, error) {
	data, err := readDocument(path)
	if err != nil {
		return SharingPolicyResult{}, err
	}
	return ParseSharingPolicy(path, data, policies...)
}

// ParseSharingPolicy extracts a SharingPolicyResult from raw JSON.
func ParseSharingPolicy(source string, data []byte, policies ...string) (SharingPolicyResult, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return SharingPolicyResult{}, malformed(source, "", -1, "expected object at document root, got %s", root.Type)
	}
	for _, key := range []string{"model_list", "bandwidth", "sharp_acc_atio", "average_score"} {
		if !root.Get(key).Exists() {
			return SharingPolicyResult{}, missingKey(source, key)
		}
	}
	if err := validateDocument(source, "", sharingPolicySchema, data); err != nil {
		return SharingPolicyResult{}, err
	}

	result := SharingPolicyResult{
		Bandwidth:         root.Get("bandwidth").Float(),
		AccelerationRatio: root.Get("sharp_acc_atio").Float(),
		Scores:            make(map[string][][]float64, len(policies)),
		AverageScore:      make(map[string]float64, len(policies)),
	}
	for _, model := range root.Get("model_list").Array() {
		result.Models = append(result.Models, model.String())
	}

	averages := root.Get("average_score")
	for _, policy := range policies {
		res, err := lookup(source, data, policy)
		if err != nil {
			return SharingPolicyResult{}, err
		}
		if err := validateDocument(source, policy, scoreMatrixSchema, []byte(res.Raw)); err != nil {
			return SharingPolicyResult{}, err
		}
		rows := res.Array()
		if len(rows) != len(result.Models) {
			return SharingPolicyResult{}, malformed(source, policy, -1, "expected %d rows, got %d", len(result.Models), len(rows))
		}
		matrix := make([][]float64, len(rows))
		for i, row := range rows {
			cells := row.Array()
			if len(cells) != len(result.Models) {
				return SharingPolicyResult{}, malformed(source, policy, i, "expected %d columns, got %d", len(result.Models), len(cells))
			}
			matrix[i] = make([]float64, len(cells))
			for j, cell := range cells {
				v, _ := number(cell)
				matrix[i][j] = v
			}
		}
		result.Scores[policy] = matrix

		avg := averages.Get(gjson.Escape(policy))
		if !avg.Exists() {
			return SharingPolicyResult{}, missingKey(source, "average_score."+policy)
		}
		v, _ := number(avg)
		result.AverageScore[policy] = v
	}
	return result, nil
}

func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result file %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, malformed(path, "", -1, "invalid JSON")
	}
	return data, nil
}

// lookup resolves a literal top-level key, or the document root when key is empty.
func lookup(source string, data []byte, key string) (gjson.Result, error) {
	if key == "" {
		return gjson.ParseBytes(data), nil
	}
	res := gjson.GetBytes(data, gjson.Escape(key))
	if !res.Exists() {
		return gjson.Result{}, missingKey(source, key)
	}
	return res, nil
}

// number converts a JSON number to float64 and a JSON null to NaN.
func number(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.Null:
		if !v.Exists() {
			return 0, false
		}
		return math.NaN(), true
	default:
		return 0, false
	}
}
