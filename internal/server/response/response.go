// Package response holds the JSON envelope every health endpoint answers
// with: a data field on success and an error field on failure.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/whitelink/pkg/errors"
)

// Response is the envelope written by every endpoint.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success wraps data in an envelope.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail builds an error envelope.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes resp with the given status.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes data with status 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// MethodNotAllowed writes a 405 naming the rejected method.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(
		"METHOD_NOT_ALLOWED",
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	))
}

// InternalError writes a 500 without exposing err to the client.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ServiceUnavailable writes a 503 carrying data alongside the error, so
// probes can still read the failing state.
func ServiceUnavailable(w http.ResponseWriter, message string, data any) {
	resp := Fail("SERVICE_UNAVAILABLE", "Service unavailable", message)
	resp.Data = data
	JSON(w, http.StatusServiceUnavailable, resp)
}

// ErrorFromType maps typed errors to responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	switch {
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	case errors.IsPersistence(err):
		ServiceUnavailable(w, err.Error(), nil)
	default:
		InternalError(w, err)
	}
}
