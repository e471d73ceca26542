// internal/metrics/errors.go
package metrics

import (
	"fmt"
	"strings"
)

// InvalidInputError reports arguments an analysis routine cannot accept,
// such as mismatched lengths or NaN samples. Index is -1 when the problem is
// not tied to a single position.
type InvalidInputError struct {
	Op     string
	Index  int
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: invalid input at index %d: %s", e.Op, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Op, e.Reason)
}

// EmptyIntersectionError reports series whose native index ranges share no
// common position.
type EmptyIntersectionError struct {
	Names []string
	Start int
	End   int
}

func (e *EmptyIntersectionError) Error() string {
	return fmt.Sprintf("series [%s] have no common index range (start %d >= end %d)", strings.Join(e.Names, ", "), e.Start, e.End)
}

func invalid(op string, index int, format string, args ...any) error {
	return &InvalidInputError{Op: op, Index: index, Reason: fmt.Sprintf(format, args...)}
}
