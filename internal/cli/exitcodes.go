package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/vellum/pkg/analysis"
	"github.com/yaklabco/vellum/pkg/editscript"
)

// Exit codes for vellum.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitParseErrors indicates strict analysis found parse errors.
	ExitParseErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromReports determines the exit code from analyzed documents.
func ExitCodeFromReports(reports []*analysis.Report) int {
	for _, report := range reports {
		if report != nil && report.Totals.HasErrors() {
			return ExitParseErrors
		}
	}
	return ExitSuccess
}

// ExitCodeFromError maps an execution error to a process exit code.
func ExitCodeFromError(err error) int {
	var validationErr *editscript.ValidationError
	var conflictErr *editscript.ConflictError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseErrors):
		return ExitParseErrors
	case errors.Is(err, errConfigLoad):
		return ExitConfigError
	case errors.As(err, &validationErr), errors.As(err, &conflictErr):
		return ExitInvalidUsage
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
