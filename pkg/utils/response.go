package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the {code, message, details?} error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type successEnvelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// BuildSuccessResponse writes a 2xx JSON body {message, data?}.
func BuildSuccessResponse(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Message: message, Data: data})
}

// BuildErrorResponse writes the caller-visible error envelope. code defaults
// to the HTTP status text when empty.
func BuildErrorResponse(w http.ResponseWriter, status int, message string, details any) {
	BuildErrorResponseWithCode(w, status, http.StatusText(status), message, details)
}

// BuildErrorResponseWithCode writes the error envelope with an explicit
// machine-readable code (e.g. "INSUFFICIENT_BALANCE").
func BuildErrorResponseWithCode(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: ErrorBody{Code: code, Message: message, Details: details}})
}
