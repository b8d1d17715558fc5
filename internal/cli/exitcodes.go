package cli

import (
	"errors"

	"github.com/yaklabco/mdoutline/internal/configloader"
	"github.com/yaklabco/mdoutline/pkg/fsutil"
	"github.com/yaklabco/mdoutline/pkg/runner"
	"github.com/yaklabco/mdoutline/pkg/vault"
)

// Exit codes for mdoutline.
const (
	// ExitSuccess indicates every note was converted.
	ExitSuccess = 0

	// ExitFailure indicates some notes failed or the user aborted.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates bad configuration or vault data, such as
	// duplicate titles in title property mode.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks a configuration that could not be loaded.
	ErrConfig = errors.New("invalid configuration")

	// ErrAborted is returned when the user declines a confirmation prompt.
	ErrAborted = errors.New("aborted")

	// ErrConversionFailed is returned when at least one note failed.
	ErrConversionFailed = errors.New("some notes could not be converted")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrAborted), errors.Is(err, ErrConversionFailed):
		return ExitFailure
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation),
		errors.Is(err, vault.ErrDuplicateTitles), errors.Is(err, vault.ErrInvalidPattern):
		return ExitDataError
	case errors.Is(err, vault.ErrNotDirectory), errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory),
		runner.IsPipelineError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFailure
	}
	return ExitSuccess
}

// IsReported reports errors the command already explained to the user.
func IsReported(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, ErrConversionFailed)
}
