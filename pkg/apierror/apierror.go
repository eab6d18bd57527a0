package apierror

import "fmt"

type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"errorMessage"`
	Cause      string `json:"cause,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Cause != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

// Forbidden is the credential/token mismatch outcome. The error names and
// messages are part of the wire contract: launchers match on them.
func Forbidden(message string) *APIError {
	return &APIError{Code: "ForbiddenOperationException", Message: message, HTTPStatus: 403}
}

// InvalidRequest is a protocol violation by an otherwise well-formed caller.
func InvalidRequest(message string) *APIError {
	return &APIError{Code: "IllegalArgumentException", Message: message, HTTPStatus: 400}
}
