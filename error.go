package rawhttp

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Code is an error code that mirrors the http status codes the server emits. It can be used to create errors to pass
// around across middleware layers to handle errors structurally.
type Code int

const (
	CodeUnknown             Code = 0
	CodeOK                  Code = 200 // RFC 9110, 15.3.1
	CodeBadRequest          Code = 400 // RFC 9110, 15.5.1
	CodeNotFound            Code = 404 // RFC 9110, 15.5.5
	CodeInternalServerError Code = 500 // RFC 9110, 15.6.1
)

// Error describes an http error.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Error() string {
	status, ok := reasonPhrases[e.code]
	if !ok {
		status = "Unknown"
	}

	return fmt.Sprintf("%s: %s", status, e.err.Error())
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if codeErr, ok := asError(err); ok {
		return codeErr.Code()
	}
	return CodeUnknown
}

// asError uses errors.As to unwrap any error and look for an *Error.
func asError(err error) (*Error, bool) {
	var codeErr *Error
	ok := errors.As(err, &codeErr)
	return codeErr, ok
}
