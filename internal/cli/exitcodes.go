package cli

import "github.com/yaklabco/mdtree/pkg/runner"

// Exit codes for mdtree.
const (
	// ExitSuccess indicates successful execution with clean parses.
	ExitSuccess = 0

	// ExitDiagnostics indicates parsing completed but produced
	// diagnostics (strict mode only).
	ExitDiagnostics = 1

	// ExitFileErrors indicates one or more files could not be
	// read or parsed.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and
// strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitFileErrors
	}
	if strict && result.HasDiagnostics() {
		return ExitDiagnostics
	}
	return ExitSuccess
}
