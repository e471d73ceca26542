// internal/series/types.go
// Package series parses simulator result files into raw, untransformed series.
package series

import "math"

// Snapshot field vocabulary written by the simulator for every SimulationResult.
const (
	FieldFinishedJobCount       = "FinishedJobCount"
	FieldSimulatedTime          = "SimulatedTime"
	FieldClusterUtilization     = "ClusterUtilization"
	FieldJCTScore               = "JCTScore"
	FieldJCTScoreWeighted       = "JCTScoreWeighted"
	FieldSharpRatio             = "SharpRatio"
	FieldSharpRatioWeighted     = "SharpRatioWeighted"
	FieldSharpUtilization       = "SharpUtilization"
	FieldTotalHostTime          = "TotalHostTime"
	FieldTotalJCT               = "TotalJCT"
	FieldTotalJCTWithSharp      = "TotalJCTWithSharp"
	FieldTotalJCTWithoutSharp   = "TotalJCTWithoutSharp"
	FieldTotalSharpTime         = "TotalSharpTime"
	FieldTotalSharpUsage        = "TotalSharpUsage"
	FieldTimeCostHostAllocation = "TimeCostHostAllocation"
	FieldTimeCostTreeBuilding   = "TimeCostTreeBuilding"
	FieldTreeMigrationCount     = "TreeMigrationCount"
	FieldSharpEnabledJobCount   = "SharpEnabledJobCount"
	FieldConsensusFrequency     = "ConsensusFrequency"
)

// Pair is one [x, y] sample of a named series.
type Pair struct {
	X float64
	Y float64
}

// PairSeries is an ordered list of [x, y] samples.
type PairSeries []Pair

// Xs returns the x component of every sample in order.
func (s PairSeries) Xs() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.X
	}
	return out
}

// Ys returns the y component of every sample in order.
func (s PairSeries) Ys() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Y
	}
	return out
}

// Filter returns the samples accepted by keep, preserving order.
func (s PairSeries) Filter(keep func(Pair) bool) PairSeries {
	out := make(PairSeries, 0, len(s))
	for _, p := range s {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Snapshot is one structured score record. Values that were null in the
// source document are stored as NaN.
type Snapshot map[string]float64

// Field returns the named value and whether the record carried the field.
func (s Snapshot) Field(name string) (float64, bool) {
	v, ok := s[name]
	return v, ok
}

// IsNull reports whether the named field was present but null.
func (s Snapshot) IsNull(name string) bool {
	v, ok := s[name]
	return ok && math.IsNaN(v)
}

// FragmentSnapshot is the host fragmentation state recorded after JobCount
// requests had been processed.
type FragmentSnapshot struct {
	JobCount  float64
	Allocated float64
	Available float64
}

// TreeConflictTrace holds the two parallel arrays written by the tree
// conflict experiment.
type TreeConflictTrace struct {
	// Conflicts holds one 0/1 indicator (or probability) per request.
	Conflicts []float64
	Fragments []FragmentSnapshot
}

// SizeRun is a run of Repeat consecutive jobs that each request HostCount hosts.
type SizeRun struct {
	HostCount float64
	Repeat    int
}

// JobSizeTrace is a run-length encoded sequence of job sizes.
type JobSizeTrace []SizeRun

// ClusterState lists, per placed job, the host ids assigned to it.
type ClusterState [][]int

// SharingPolicyResult is the pairwise sharing score sweep for a set of models.
type SharingPolicyResult struct {
	Models            []string
	Bandwidth         float64
	AccelerationRatio float64
	// Scores maps a policy name to a square matrix of pairwise scores.
	Scores       map[string][][]float64
	AverageScore map[string]float64
}
