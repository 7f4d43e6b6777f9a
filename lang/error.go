package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidExpression is the root of every error reported while resolving
// expressions or rendering templates.
var ErrInvalidExpression = NewError("invalid expression")

// Error kinds. Each is a sentinel matched with [errors.Is].
var (
	ErrUnresolvedExpression  = ErrInvalidExpression.kindOf("unresolved expression")
	ErrNullField             = ErrInvalidExpression.kindOf("null field")
	ErrUnknownProperty       = ErrInvalidExpression.kindOf("unknown property")
	ErrUnknownVariable       = ErrInvalidExpression.kindOf("unknown variable")
	ErrUnknownFunction       = ErrInvalidExpression.kindOf("unknown function")
	ErrUnsupportedComparison = ErrInvalidExpression.kindOf("unsupported comparison")
	ErrInvalidFor            = ErrInvalidExpression.kindOf("invalid for expression")
	ErrTemplateNotFound      = ErrInvalidExpression.kindOf("template not found")
	ErrInvalidTemplatePath   = ErrInvalidExpression.kindOf("invalid template path")
	ErrMaxDepthExceeded      = ErrInvalidExpression.kindOf("maximum template depth exceeded")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	kind  *Error      // Sentinel this error is an instance of
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

func (e *Error) kindOf(msg string) *Error {
	return &Error{msg: msg, kind: e}
}

// Errorf returns a new instance of the receiver's kind whose message is
// formatted according to format.
func (e *Error) Errorf(format string, args ...any) *Error {
	return &Error{
		msg:   fmt.Sprintf(format, args...),
		kind:  e,
		attrs: e.attrs,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>" when both are set, otherwise whichever is set.
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Message returns the error's own message without its causes.
func (e *Error) Message() string { return e.msg }

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the receiver or one of the kinds the receiver
// is an instance of.
func (e *Error) Is(target error) bool {
	for k := e; k != nil; k = k.kind {
		if k == target {
			return true
		}
	}

	return false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
// The result is an instance of the receiver's kind.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		kind:  e,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		kind:  e,
		attrs: newAttrs,
	}
}

func unresolved(expr string) *Error {
	return ErrUnresolvedExpression.Errorf("Unresolved expression %s", expr).
		With(slog.String("expression", expr))
}
