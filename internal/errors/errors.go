package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Meta keys shared across packages.
const (
	MetaCandidates = "candidates"
	MetaQuery      = "query"
)

// Error is a coded error. Message is what a chat user gets to see; Cause
// stays in the logs.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

// WithMeta sets key on e and returns e for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap puts message in front of err. The code and metadata of a coded err
// carry over; anything else becomes CodeInternal. Wrap(nil, ...) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	code, meta := CodeInternal, map[string]any(nil)
	var inner *Error
	if errors.As(err, &inner) {
		code, meta = inner.Code, maps.Clone(inner.Meta)
	}
	return &Error{Code: code, Message: message, Cause: err, Meta: meta}
}

func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode is Wrap with the code replaced.
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

func NotFound(message string) *Error { return New(CodeNotFound, message) }

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// InvalidNotationf reports dice notation that cannot be rolled.
func InvalidNotationf(format string, args ...any) *Error {
	return Newf(CodeInvalidNotation, format, args...)
}

// AmbiguousMatch reports a query that fits more than one candidate.
func AmbiguousMatch(query string, candidates []string) *Error {
	return Newf(CodeAmbiguousMatch, "Unable to find unique match for '%s' in %v", query, candidates).
		WithMeta(MetaQuery, query).
		WithMeta(MetaCandidates, candidates)
}

// NoMatch reports a query that fits none of the candidates.
func NoMatch(query string, candidates []string) *Error {
	return Newf(CodeNoMatch, "No match for '%s' in %v", query, candidates).
		WithMeta(MetaQuery, query).
		WithMeta(MetaCandidates, candidates)
}
