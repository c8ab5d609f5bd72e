// Command mdxor parses Markdown and MDX documents and checks them against goldmark.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdxor/internal/cli"
	"github.com/yaklabco/mdxor/internal/logging"
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.Execute()
	if err == nil {
		return cli.ExitSuccess
	}
	// Failures were already reported; only the exit code remains.
	if !errors.Is(err, cli.ErrFailuresFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
