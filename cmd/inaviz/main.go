// cmd/inaviz/main.go
package main

import (
	cmd "github.com/mwiater/inaviz/internal/cli"
	"github.com/mwiater/inaviz/internal/logging"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Hooks swapped in tests.
var (
	setVersionInfo = cmd.SetVersionInfo
	closeLogging   = logging.Close
	executeCmd     = cmd.Execute
)

// main starts the inaviz CLI by delegating to the cobra root command, which
// loads the configuration and opens the log file before any subcommand runs.
func main() {
	setVersionInfo(version, commit, date)
	defer func() { _ = closeLogging() }()
	executeCmd()
}
