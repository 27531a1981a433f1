package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

// statusOf maps a service error kind onto an HTTP status.
func statusOf(k service.Kind) int {
	switch k {
	case service.KindConflict:
		return http.StatusConflict
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case service.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an error body. Anything that is not a
// *service.Error is logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	status := statusOf(se.Kind)
	if status == http.StatusUnauthorized {
		if _, ok := httpx.BearerToken(r); ok {
			httpx.SetBearerChallenge(w, "invalid_token", se.Message)
		} else {
			httpx.SetBearerChallenge(w, "", "")
		}
	}
	authsdk.NewAPIError(status, se.Code, se.Message).WriteError(w)
}

type validator interface {
	Validate() map[string]string
}

// bind decodes the JSON body into v and runs its Validate method when it has
// one. On failure the error response is already written.
func bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		switch {
		case errors.Is(err, httpx.ErrBodyTooLarge):
			authsdk.NewAPIError(http.StatusRequestEntityTooLarge, authsdk.ErrorCodeInvalidRequest, "request body too large").WriteError(w)
		case errors.Is(err, httpx.ErrEmptyBody):
			authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, "request body is required").WriteError(w)
		default:
			authsdk.ErrInvalidRequest.WriteError(w)
		}
		return false
	}

	if val, ok := v.(validator); ok {
		if details := val.Validate(); details != nil {
			authsdk.NewValidationError(details).WriteError(w)
			return false
		}
	}
	return true
}

// page reads pagination query parameters, writing a 400 when they are bad.
func page(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	n, limit, err := httpx.ParsePage(r)
	if err != nil {
		authsdk.NewValidationError(map[string]string{
			"page": "must be a positive integer",
		}).WriteError(w)
		return 0, 0, false
	}
	return n, limit, true
}
