package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/thenoetrevino/tablero/internal/client"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: API unreachable, server errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, non-numeric IDs, unknown flags.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Tarea, comentario or responsable IDs the API answers 404 for.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Unreadable stdin, dates or numbers that do not parse.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Unknown estado or prioridad, or any 400 answer from the API.
	ExitValidation = 5
)

// Failure is a command error that has already been reported to the user.
// Code is the process exit status.
type Failure struct {
	Code int
	Err  error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// UsageError marks err as a command usage mistake
func UsageError(format string, args ...any) error {
	return &Failure{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// ValidationError marks err as rejected input
func ValidationError(format string, args ...any) error {
	return &Failure{Code: ExitValidation, Err: fmt.Errorf(format, args...)}
}

// DataError marks err as unreadable input
func DataError(format string, args ...any) error {
	return &Failure{Code: ExitDataErr, Err: fmt.Errorf(format, args...)}
}

// ExitCodeOf maps err to a process exit status. Errors that never went
// through the formatter come from flag and argument parsing.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Code
	}
	return ExitUsage
}

// classify picks the exit code and error code for err
func classify(err error) (int, string) {
	var f *Failure
	if errors.As(err, &f) {
		switch f.Code {
		case ExitUsage:
			return f.Code, "INVALID_ARGUMENT"
		case ExitValidation:
			return f.Code, "VALIDATION_ERROR"
		case ExitDataErr:
			return f.Code, "INVALID_DATA"
		case ExitNotFound:
			return f.Code, "NOT_FOUND"
		default:
			return f.Code, "ERROR"
		}
	}

	switch status := client.StatusOf(err); {
	case status == 0:
		return ExitError, "CONNECTION_ERROR"
	case status == http.StatusNotFound:
		return ExitNotFound, "NOT_FOUND"
	case status == http.StatusBadRequest:
		return ExitValidation, "VALIDATION_ERROR"
	default:
		return ExitError, "SERVER_ERROR"
	}
}
