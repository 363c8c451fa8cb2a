package etiket

import "fmt"

// ErrorKind describes the type of an engine error.
//
// The engine distinguishes exactly two failure families: malformed
// expression syntax (reported by the parser with its own error type) and
// engine errors, which indicate a template-authoring defect. Everything
// else — missing paths, type-mismatched arithmetic, division by zero —
// degrades to null rather than erroring.
type ErrorKind int

const (
	// ErrSyntax wraps a parse error surfaced through the engine.
	ErrSyntax ErrorKind = iota

	// ErrUnknownFilter is raised when an expression references a filter
	// name that is not registered.
	ErrUnknownFilter

	// ErrInvalidProperty is raised when materializing a property's raw
	// text into its target type fails.
	ErrInvalidProperty
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnknownFilter:
		return "unknown filter"
	case ErrInvalidProperty:
		return "invalid property"
	default:
		return "error"
	}
}

// Error represents an error raised by the expression engine.
//
// Name identifies the offending filter or property; Detail carries the
// offending text for diagnostics.
type Error struct {
	Kind    ErrorKind
	Message string
	Name    string
	Detail  string
	cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = fmt.Sprintf("%s: %s", e.Name, msg)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Kind, msg, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a new engine error.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithName attaches the offending filter or property name.
func (e *Error) WithName(name string) *Error {
	e.Name = name
	return e
}

// WithDetail attaches the offending text.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithCause attaches an underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}
