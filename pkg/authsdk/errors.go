package authsdk

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/aussiebroadwan/tenantry/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

// Error codes carried in the "error" field of every error body. They are
// stable and safe to switch on.
const (
	ErrorCodeInvalidRequest            = "invalid_request"
	ErrorCodeValidation                = "validation_error"
	ErrorCodeServerError               = "server_error"
	ErrorCodeUserAlreadyExists         = "user_already_exists"
	ErrorCodeTenantSlugTaken           = "tenant_slug_taken"
	ErrorCodeTenantNotFound            = "tenant_not_found"
	ErrorCodeInvitationNotFound        = "invitation_not_found"
	ErrorCodeMemberNotFound            = "member_not_found"
	ErrorCodeItemNotFound              = "item_not_found"
	ErrorCodeNotFound                  = "not_found"
	ErrorCodeInvalidCredentials        = "invalid_credentials"
	ErrorCodeInvalidRefreshToken       = "invalid_refresh_token"
	ErrorCodeInvalidToken              = "invalid_token"
	ErrorCodeUnauthenticated           = "unauthenticated"
	ErrorCodeForbidden                 = "forbidden"
	ErrorCodeNoTenantAccess            = "no_tenant_access"
	ErrorCodeOwnerImmutable            = "owner_immutable"
	ErrorCodeInvitationExpired         = "invitation_expired"
	ErrorCodeInvitationAlreadyAccepted = "invitation_already_accepted"
	ErrorCodePasswordRequired          = "password_required"
	ErrorCodeInvalidRole               = "invalid_role"
	ErrorCodeInvalidPassword           = "invalid_password"
	ErrorCodeRateLimited               = "rate_limit_exceeded"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error body of every non-2xx response. It implements the
// error interface and is used both by the server (to write responses) and by
// the SDK client (to represent failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable error code (see the ErrorCode constants)
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details carries per-field validation failures
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code so callers can write errors.Is(err, authsdk.ErrInvalidToken).
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// NewAPIError creates an APIError with the given status, code and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// NewValidationError builds a 400 carrying per-field reasons.
func NewValidationError(details map[string]string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "request validation failed",
		Details:     details,
	}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the body is missing, malformed or
	// contains unknown fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrServerError hides unexpected failures behind a generic body.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrInvalidToken is returned when the access token is missing, invalid,
	// expired, or no longer backed by a user and membership.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "insufficient role for this operation",
	}

	// ErrNotFound is returned for unknown routes and resources.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}

	// ErrMethodNotAllowed is returned when the HTTP method is not allowed.
	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}

	// ErrInvalidCredentials is returned by login for any email/password mismatch.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrInvalidRefreshToken is returned by refresh for every failure.
	ErrInvalidRefreshToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidRefreshToken,
		Description: "refresh token is invalid, expired or revoked",
	}

	// ErrRateLimited is returned with a Retry-After header.
	ErrRateLimited = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimited,
		Description: "rate limit exceeded",
	}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response body into an *APIError.
// Returns nil if the response indicates success (2xx status code).
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
			Details:     errResp.Details,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
