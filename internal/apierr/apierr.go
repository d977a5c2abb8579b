// Package apierr defines the errors handlers return to the HTTP layer.
// Each carries the status code and the JSON body fields to render.
package apierr

import (
	"errors"
	"net/http"

	"calllog/internal/store"
)

// Error is an error with an HTTP status and a user-facing message.
// Code and Detail are filled from the storage layer when known.
type Error struct {
	Status  int
	Message string
	Code    string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Body is the JSON payload written for the error.
func (e *Error) Body() map[string]interface{} {
	body := map[string]interface{}{"message": e.Message}
	if e.Code != "" {
		body["code"] = e.Code
	}
	if e.Detail != "" {
		body["detail"] = e.Detail
	}
	return body
}

func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func InvalidInput(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// Storage wraps a storage failure as a 500, copying the driver code and
// detail string when err is a *store.StorageError.
func Storage(msg string, err error) *Error {
	e := &Error{Status: http.StatusInternalServerError, Message: msg, Err: err}
	var serr *store.StorageError
	if errors.As(err, &serr) {
		e.Code = serr.Code
		e.Detail = serr.Detail
	} else if err != nil {
		e.Detail = err.Error()
	}
	return e
}
