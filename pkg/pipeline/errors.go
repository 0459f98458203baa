package pipeline

import (
	"fmt"
)

type Code string

const (
	CodeValidation    Code = "validation_error"
	CodeConfiguration Code = "configuration_error"
	CodeUpstream      Code = "upstream_error"
	CodeMedia         Code = "media_error"
	CodeGeneration    Code = "generation_failed"
)

// Error classifies a pipeline failure so the HTTP layer can map it to a
// status code and a machine-readable body without leaking internals.
type Error struct {
	Code    Code
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,

		cause: cause,
	}
}

func Validationf(format string, args ...any) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func Configurationf(format string, args ...any) *Error {
	return &Error{
		Code:    CodeConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

func Upstream(message string, cause error) *Error {
	return NewError(CodeUpstream, message, cause)
}

func Media(message string, cause error) *Error {
	return NewError(CodeMedia, message, cause)
}

func Generation(message string) *Error {
	return NewError(CodeGeneration, message, nil)
}
