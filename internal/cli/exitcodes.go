package cli

import (
	"errors"

	"github.com/yaklabco/gxhighlight/pkg/fsutil"
	"github.com/yaklabco/gxhighlight/pkg/runner"
)

// Exit codes for gxhighlight.
const (
	// ExitSuccess indicates every input was highlighted.
	ExitSuccess = 0

	// ExitFilesFailed indicates some inputs could not be read.
	ExitFilesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or language table errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed is returned when some inputs could not be highlighted.
// The per-file errors have already been reported.
var ErrFilesFailed = errors.New("some files could not be highlighted")

// ExitError attaches a process exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a highlighting run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitFilesFailed
	}
	return ExitSuccess
}
