package series

import (
	"fmt"
	"strings"
)

// MissingKeyError reports a requested series, category, or field that is
// absent from a result document. Index is the record position for per-record
// lookups and -1 otherwise.
type MissingKeyError struct {
	Source string
	Key    string
	Index  int
}

func (e *MissingKeyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "missing key %q", e.Key)
	if e.Index >= 0 {
		fmt.Fprintf(&b, " in record %d", e.Index)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " (%s)", e.Source)
	}
	return b.String()
}

// MalformedDataError reports a record whose structure does not match the
// expected shape.
type MalformedDataError struct {
	Source string
	Key    string
	Index  int
	Reason string
}

func (e *MalformedDataError) Error() string {
	var b strings.Builder
	b.WriteString("malformed data")
	if e.Key != "" {
		fmt.Fprintf(&b, " at %q", e.Key)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " record %d", e.Index)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " (%s)", e.Source)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

func missingKey(source, key string) error {
	return &MissingKeyError{Source: source, Key: key, Index: -1}
}

func malformed(source, key string, index int, format string, args ...any) error {
	return &MalformedDataError{Source: source, Key: key, Index: index, Reason: fmt.Sprintf(format, args...)}
}
