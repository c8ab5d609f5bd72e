package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/yaklabco/mdxor/internal/configloader"
	"github.com/yaklabco/mdxor/pkg/analysis"
	"github.com/yaklabco/mdxor/pkg/fsutil"
	"github.com/yaklabco/mdxor/pkg/parser"
)

// Exit codes for mdxor.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitFailures indicates a document failed to parse, or diverged from
	// the reference parser in strict mode.
	ExitFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors returned by commands and mapped to exit codes by ExitCode.
var (
	// ErrFailuresFound is returned after results were reported but the run failed.
	// Callers should not print it.
	ErrFailuresFound = errors.New("failures found")

	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeFromTotals determines the exit code from aggregate results.
func ExitCodeFromTotals(totals analysis.Totals, strict bool) int {
	if totals.HasErrors() {
		return ExitFailures
	}
	if strict && totals.HasDivergence() {
		return ExitFailures
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrFailuresFound), errors.Is(err, parser.ErrInputEncoding):
		return ExitFailures
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	case errors.Is(err, context.Canceled):
		return ExitFailures
	default:
		return ExitInternalError
	}
}
