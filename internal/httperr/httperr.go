package httperr

import "net/http"

// failCode is the envelope code reported for any failed request; the envelope
// contract only distinguishes zero (success) from non-zero.
const failCode = 1

// Error is a typed request failure carrying the HTTP status to respond with
// and the message shown to the caller. Guards, handlers and the repository
// all produce these; the handlers' respond helper translates them exactly
// once at the dispatch boundary.
type Error struct {
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with an explicit status.
func New(status int, message string) *Error {
	return &Error{Status: status, Code: failCode, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func MethodNotAllowed(message string) *Error {
	return New(http.StatusMethodNotAllowed, message)
}
