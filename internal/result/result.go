// Package result holds the outcome type returned by every service call.
//
// A Result is either a success carrying data or a failure carrying an *Error
// whose Code is the HTTP status the failure maps to. Values are built only
// through Success and Fail, so a Result can never carry both.
package result

import (
	"fmt"
	"net/http"
)

// Error is the failure half of a Result.
type Error struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Result is the success/failure outcome of a service operation.
type Result[T any] struct {
	data T
	err  *Error
}

// Success wraps data in a successful Result.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Fail builds a failed Result. code defaults to 400.
func Fail[T any](message string, code ...int) Result[T] {
	c := http.StatusBadRequest
	if len(code) > 0 && code[0] != 0 {
		c = code[0]
	}
	return Result[T]{err: &Error{Message: message, Code: c}}
}

// FailWith builds a failed Result from an existing error value.
func FailWith[T any](e *Error) Result[T] {
	if e == nil {
		e = InternalError()
	}
	return Result[T]{err: e}
}

// Internal is shorthand for a 500 failure with the generic message.
func Internal[T any]() Result[T] {
	return FailWith[T](InternalError())
}

// OK reports whether the Result is a success.
func (r Result[T]) OK() bool { return r.err == nil }

// Data returns the payload; the zero value on failure.
func (r Result[T]) Data() T { return r.data }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *Error { return r.err }

// Unpack returns both halves so callers handle the failure branch explicitly.
func (r Result[T]) Unpack() (T, *Error) { return r.data, r.err }

// Forward re-types a failed Result. A successful r has no error to carry and
// becomes the generic internal failure.
func Forward[T, U any](r Result[U]) Result[T] {
	if r.err == nil {
		return Internal[T]()
	}
	return Result[T]{err: r.err}
}
