package main

import "testing"

func TestMainWiring(t *testing.T) {
	origSetVersion := setVersionInfo
	origCloseLogging := closeLogging
	origExecute := executeCmd
	t.Cleanup(func() {
		setVersionInfo = origSetVersion
		closeLogging = origCloseLogging
		executeCmd = origExecute
	})

	calls := struct {
		version bool
		exec    bool
		close   bool
	}{}

	setVersionInfo = func(v, c, d string) {
		calls.version = true
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
	}
	executeCmd = func() {
		if !calls.version {
			t.Fatalf("version must be set before executing")
		}
		calls.exec = true
	}
	closeLogging = func() error {
		calls.close = true
		return nil
	}

	main()

	if !calls.version || !calls.exec || !calls.close {
		t.Fatalf("expected all wiring calls, got %+v", calls)
	}
}
