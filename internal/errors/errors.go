// Package errors holds the diagnostics the Jolt front end reports.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	SyntaxError ErrorType = "SyntaxError"
)

// SourceLocation represents a location in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// JoltError is a diagnostic with source location information.
type JoltError struct {
	Type     ErrorType
	Message  string
	Location SourceLocation
	Source   string // The source line where error occurred
}

func (e *JoltError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s", e.Type, e.Message))

	if e.Location.Line > 0 {
		if e.Location.File != "" {
			sb.WriteString(fmt.Sprintf("\n  at %s:%d:%d", e.Location.File, e.Location.Line, e.Location.Column))
		} else {
			sb.WriteString(fmt.Sprintf("\n  at line %d, column %d", e.Location.Line, e.Location.Column))
		}

		if e.Source != "" {
			gutter := fmt.Sprintf("  %d | ", e.Location.Line)
			sb.WriteString("\n\n" + gutter + e.Source + "\n")
			sb.WriteString(strings.Repeat(" ", len(gutter)))
			if e.Location.Column > 0 {
				sb.WriteString(strings.Repeat(" ", e.Location.Column-1))
			}
			sb.WriteString("^")
		}
	}

	return sb.String()
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string, line, column int) *JoltError {
	return &JoltError{
		Type:    SyntaxError,
		Message: message,
		Location: SourceLocation{
			Line:   line,
			Column: column,
		},
	}
}

// WithSource adds source code context to the error
func (e *JoltError) WithSource(source string) *JoltError {
	e.Source = source
	return e
}

// WithFile records the file the error was found in.
func (e *JoltError) WithFile(file string) *JoltError {
	e.Location.File = file
	return e
}

// IsSyntax reports whether err is a Jolt syntax error.
func IsSyntax(err error) bool {
	var je *JoltError
	return stderrors.As(err, &je) && je.Type == SyntaxError
}
