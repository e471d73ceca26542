// internal/metrics/align.go
package metrics

// AlignedSet is a group of series that share one start position and one
// length, ready to be handed to a renderer.
type AlignedSet struct {
	Start  int
	Series []Series
}

// Len returns the shared length.
func (a AlignedSet) Len() int {
	if len(a.Series) == 0 {
		return 0
	}
	return a.Series[0].Len()
}

// Index returns the shared raw positions as x coordinates.
func (a AlignedSet) Index() []float64 {
	if len(a.Series) == 0 {
		return nil
	}
	return a.Series[0].Index()
}

// Lookup returns the member series with the given name.
func (a AlignedSet) Lookup(name string) (Series, bool) {
	for _, s := range a.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Align truncates every series to the intersection of their native ranges
// [Offset, Offset+Len). When maxLen > 0 the result is further capped to the
// first maxLen positions of that intersection.
func Align(maxLen int, series ...Series) (AlignedSet, error) {
	const op = "align"
	if len(series) == 0 {
		return AlignedSet{}, invalid(op, -1, "no series")
	}
	if maxLen < 0 {
		return AlignedSet{}, invalid(op, -1, "cap must be >= 0, got %d", maxLen)
	}

	start, end := series[0].Offset, series[0].End()
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
		if s.Offset > start {
			start = s.Offset
		}
		if s.End() < end {
			end = s.End()
		}
	}
	if start >= end {
		return AlignedSet{}, &EmptyIntersectionError{Names: names, Start: start, End: end}
	}
	if maxLen > 0 && end-start > maxLen {
		end = start + maxLen
	}

	out := AlignedSet{Start: start, Series: make([]Series, len(series))}
	for i, s := range series {
		out.Series[i] = s.Window(start, end)
	}
	return out, nil
}
