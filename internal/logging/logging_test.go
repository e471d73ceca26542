package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "inaviz.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
		SetDebug(false)
	})

	LogEvent("hello %s", "world")
	LogStage("tree-conflicts", "load", map[string]any{"records": 3})
	Debugf("hidden %d", 1)
	SetDebug(true)
	Debugf("visible %d", 2)
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, `[LOAD] figure=tree-conflicts details={"records":3}`) {
		t.Fatalf("expected LogStage content, got: %s", content)
	}
	if strings.Contains(content, "hidden 1") {
		t.Fatalf("debug output written while disabled: %s", content)
	}
	if !strings.Contains(content, "[DEBUG] visible 2") {
		t.Fatalf("expected Debugf content, got: %s", content)
	}
}

func TestBuildStageMessageDefaults(t *testing.T) {
	msg := buildStageMessage(" ", " render ", nil)
	if !strings.Contains(msg, "[RENDER]") {
		t.Fatalf("expected uppercased stage, got: %s", msg)
	}
	if !strings.Contains(msg, "figure=unknown") {
		t.Fatalf("expected default figure, got: %s", msg)
	}
	if strings.Contains(msg, "details=") {
		t.Fatalf("expected no details, got: %s", msg)
	}
}

func TestFormatDetailsVariants(t *testing.T) {
	if got := formatDetails(nil); got != "null" {
		t.Fatalf("nil details: %s", got)
	}
	if got := formatDetails(" "); got != `""` {
		t.Fatalf("empty string details: %s", got)
	}
	if got := formatDetails([]byte("hi")); got != "hi" {
		t.Fatalf("byte details: %s", got)
	}
	if got := formatDetails(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer details: %s", got)
	}
}

func TestInitDiscard(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("discard")
	if buf.Len() != 0 {
		t.Fatalf("expected log output discarded, got: %s", buf.String())
	}
}
