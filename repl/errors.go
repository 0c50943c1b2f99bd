package repl

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrCodeExecution indicates an error while interpreting a submitted
	// snippet, such as a syntax error or a runtime failure.
	ErrCodeExecution = errors.New("code execution error")

	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrSessionClosed indicates an operation on a session after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrEngineClosed indicates an operation on an engine after Close.
	ErrEngineClosed = errors.New("engine closed")

	// ErrImportDenied indicates that a snippet imported a package on the
	// engine's denied list.
	ErrImportDenied = errors.New("import denied")
)

// EvalError represents an error that occurred while interpreting a
// submitted snippet. It includes optional source location information.
type EvalError struct {
	// Message describes the error.
	Message string

	// Line is the 1-based line number where the error occurred.
	// Zero indicates the line is unknown.
	Line int

	// Column is the 1-based column number where the error occurred.
	// Zero indicates the column is unknown.
	Column int

	// Err is the underlying error, if any.
	Err error
}

// Error returns the error message, including line and column if available.
func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, col %d)", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// EvalError matches ErrCodeExecution to allow sentinel-style error checking.
func (e *EvalError) Is(target error) bool {
	return target == ErrCodeExecution
}
