package types

import "fmt"

// ParseError reports a record line or numeric input that could not be
// converted into its typed value.
type ParseError struct {
	Input string // offending text
	Field string // field name, empty when the whole line is malformed
	Path  string // source file, empty for interactive input
	Line  int    // 1-based line number within Path, 0 if unknown
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var what string
	if e.Field != "" {
		what = fmt.Sprintf("invalid %s %q", e.Field, e.Input)
	} else {
		what = fmt.Sprintf("malformed record %q", e.Input)
	}
	if e.Err != nil {
		what += ": " + e.Err.Error()
	}
	if e.Path != "" && e.Line > 0 {
		return fmt.Sprintf("parse error at %s:%d: %s", e.Path, e.Line, what)
	}
	return "parse error: " + what
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a filesystem failure while loading or saving records.
type IOError struct {
	Op   string // "mkdir", "read", "write"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError wraps err as an IOError for the given operation and path.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}
