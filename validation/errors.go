package validation

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/schemagraph/errors"
	"gopkg.in/yaml.v3"
)

// Severity is the level a diagnostic is reported at. Lower values are more severe.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ErrUnknownSeverity is returned when parsing a severity that is not error, warning or hint.
const ErrUnknownSeverity = errors.Error("unknown severity")

// ParseSeverity parses the textual form of a severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "hint", "info":
		return SeverityHint, nil
	default:
		return SeverityError, ErrUnknownSeverity.Wrapf(s)
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	return s.UnmarshalText([]byte(value.Value))
}

// Error represents a diagnostic and the snapshot node it was reported against.
type Error struct {
	UnderlyingError error
	Node            *yaml.Node
	Severity        Severity
	Rule            string
	// MessageID distinguishes the variants of a rule's message, empty for the default message.
	MessageID string
	// Target is the reported graph node. It is typed loosely so this package stays independent of the graph.
	Target any
	// DocumentLocation is a path to the reported node within the document, when known.
	DocumentLocation string
}

var _ error = (*Error)(nil)

// NewValidationError creates a diagnostic for the given rule.
func NewValidationError(severity Severity, rule string, err error, node *yaml.Node) *Error {
	return &Error{
		UnderlyingError: err,
		Node:            node,
		Severity:        severity,
		Rule:            rule,
	}
}

func (e Error) Error() string {
	return fmt.Sprintf("[%d:%d] %s", e.GetLineNumber(), e.GetColumnNumber(), e.UnderlyingError.Error())
}

func (e Error) Unwrap() error {
	return e.UnderlyingError
}

// GetLineNumber returns the 1-based line of the node, or -1 when the node is unknown.
func (e Error) GetLineNumber() int {
	if e.Node == nil {
		return -1
	}
	return e.Node.Line
}

// GetColumnNumber returns the 1-based column of the node, or -1 when the node is unknown.
func (e Error) GetColumnNumber() int {
	if e.Node == nil {
		return -1
	}
	return e.Node.Column
}

// WithMessageID sets the message variant and returns the error for chaining.
func (e *Error) WithMessageID(id string) *Error {
	e.MessageID = id
	return e
}

// WithTarget sets the reported graph node and returns the error for chaining.
func (e *Error) WithTarget(target any) *Error {
	e.Target = target
	return e
}

// WithDocumentLocation sets the document path and returns the error for chaining.
func (e *Error) WithDocumentLocation(location string) *Error {
	e.DocumentLocation = location
	return e
}

// TypeMismatchError is reported when a snapshot value has the wrong shape.
type TypeMismatchError struct {
	Msg string
}

func NewTypeMismatchError(msg string, args ...any) *TypeMismatchError {
	return &TypeMismatchError{Msg: fmt.Sprintf(msg, args...)}
}

func (e TypeMismatchError) Error() string {
	return e.Msg
}

// MissingFieldError is reported when a required snapshot field is absent.
type MissingFieldError struct {
	Msg string
}

func NewMissingFieldError(msg string, args ...any) *MissingFieldError {
	return &MissingFieldError{Msg: fmt.Sprintf(msg, args...)}
}

func (e MissingFieldError) Error() string {
	return e.Msg
}

// ValueValidationError is reported when a snapshot value is not allowed.
type ValueValidationError struct {
	Msg string
}

func NewValueValidationError(msg string, args ...any) *ValueValidationError {
	return &ValueValidationError{Msg: fmt.Sprintf(msg, args...)}
}

func (e ValueValidationError) Error() string {
	return e.Msg
}
