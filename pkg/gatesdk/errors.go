package gatesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/herfa/gate/pkg/httpx"
)

// Error codes returned by the gate service.
const (
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeUserNotFound          = "user_not_found"
	ErrorCodeAccountDisabled       = "account_disabled"
	ErrorCodeInvalidCredentials    = "invalid_credentials"
	ErrorCodeInvalidSecondFactor   = "invalid_second_factor"
	ErrorCodeNoPendingSecondFactor = "no_pending_second_factor"
	ErrorCodeSecondFactorExpired   = "second_factor_expired"
	ErrorCodeOperationInFlight     = "operation_in_flight"
	ErrorCodeInvalidToken          = "invalid_token"
	ErrorCodeAccessDenied          = "access_denied"
	ErrorCodeSessionLoading        = "session_loading"
	ErrorCodeServerError           = "server_error"
)

// APIError is the wire-level error response. It implements the error
// interface and is used both by HTTP handlers to write responses and by the
// SDK client to surface failures.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// Predefined errors.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "no account matches this identifier",
	}

	ErrAccountDisabled = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccountDisabled,
		Description: "this account has been disabled",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	ErrInvalidSecondFactor = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidSecondFactor,
		Description: "the verification code is incorrect",
	}

	ErrNoPendingSecondFactor = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeNoPendingSecondFactor,
		Description: "no verification is pending for this session",
	}

	ErrSecondFactorExpired = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeSecondFactorExpired,
		Description: "the verification window has expired; sign in again",
	}

	ErrOperationInFlight = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeOperationInFlight,
		Description: "another authentication operation is already in progress",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrAccessDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates a custom APIError while keeping the standard shape.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// parseErrorResponse turns a non-2xx HTTP response into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
