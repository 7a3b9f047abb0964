// Package errors provides the api error type: a stable code, a message and
// an optional offending field, wrapped around an optional cause.
//
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing part of an error. Values go on the wire.
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable is for a dependency that is down or shedding load
	ErrorCodeUnavailable

	// ErrorCodeTooManyRequests is for rate limiting
	ErrorCodeTooManyRequests

	// ErrorCodeInvalidArgument is for well formed input the report cannot use
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for input that fails struct validation
	ErrorCodeValidation

	// ErrorCodeJSON is for unreadable request bodies
	ErrorCodeJSON

	// ErrorCodeNotFound is for unknown reports and routes
	ErrorCodeNotFound

	// ErrorCodeQuery is for a query executor that failed or timed out
	ErrorCodeQuery
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeQuery:           http.StatusBadGateway,
}

// HTTPStatusCode maps a code to its http status; anything unmapped is a 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is the structured api error
type Error struct {
	code  ErrorCode
	msg   string
	field string
	orig  error
}

// Wire is the JSON form of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// ToWire drops the cause; it stays in logs, not in responses
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error into a Wire. A nil error is the zero Wire.
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As unwraps err to the nearest *Error
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts the code from err, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped http status for err
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy of err naming the offending field. Foreign errors
// are returned unchanged.
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches code and msg to orig. A nil orig yields a plain error.
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func NotFoundf(format string, a ...any) error    { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error  { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error    { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
func Queryf(format string, a ...any) error       { return Newf(ErrorCodeQuery, format, a...) }
func Internalf(format string, a ...any) error    { return Newf(ErrorCodeUnknown, format, a...) }
