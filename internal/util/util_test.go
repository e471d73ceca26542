// internal/util/util_test.go
package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "figures", "sample.txt")
	data := []byte("test payload")

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("unexpected file contents: got %q want %q", got, data)
	}
}

func TestEnsureParentDirCurrentDir(t *testing.T) {
	t.Parallel()

	if err := EnsureParentDir("local.pdf"); err != nil {
		t.Fatalf("EnsureParentDir returned error: %v", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "shorter than max", input: "hello", max: 10, expected: "hello"},
		{name: "exact length", input: "hello", max: 5, expected: "hello"},
		{name: "truncate ascii", input: "hello world", max: 5, expected: "hello…"},
		{name: "truncate multibyte", input: "基准方法对比", max: 4, expected: "基准方法…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateRunes(tt.input, tt.max); got != tt.expected {
				t.Fatalf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}

func TestTraceName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"traces/opt-350m-16.json": "opt-350m-16",
		"gpt2.json":               "gpt2",
		`traces\bert.json`:        "bert",
		"plain":                   "plain",
	}
	for in, want := range cases {
		if got := TraceName(in); got != want {
			t.Fatalf("TraceName(%q) = %q, want %q", in, got, want)
		}
	}
}
