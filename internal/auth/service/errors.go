package service

import (
	"errors"

	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
)

// Kind classifies a service error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindPreconditionFailed
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// Error is an expected, typed failure. Code is stable and shared with the SDK.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// Is matches any *Error with the same Code, so a copy carrying a more
// specific message still matches its sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of e with msg.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: msg}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrUserAlreadyExists = &Error{KindConflict, authsdk.ErrorCodeUserAlreadyExists, "a user with this email already exists"}
	ErrTenantSlugTaken   = &Error{KindConflict, authsdk.ErrorCodeTenantSlugTaken, "tenant slug is already taken"}

	ErrTenantNotFound     = &Error{KindNotFound, authsdk.ErrorCodeTenantNotFound, "tenant not found"}
	ErrInvitationNotFound = &Error{KindNotFound, authsdk.ErrorCodeInvitationNotFound, "invitation not found"}
	ErrMemberNotFound     = &Error{KindNotFound, authsdk.ErrorCodeMemberNotFound, "member not found"}
	ErrItemNotFound       = &Error{KindNotFound, authsdk.ErrorCodeItemNotFound, "item not found"}

	ErrInvalidCredentials  = &Error{KindUnauthenticated, authsdk.ErrorCodeInvalidCredentials, "invalid email or password"}
	ErrInvalidRefreshToken = &Error{KindUnauthenticated, authsdk.ErrorCodeInvalidRefreshToken, "refresh token is invalid, expired or revoked"}
	ErrInvalidToken        = &Error{KindUnauthenticated, authsdk.ErrorCodeInvalidToken, "token is invalid or expired"}
	ErrUnauthenticated     = &Error{KindUnauthenticated, authsdk.ErrorCodeUnauthenticated, "authentication required"}

	ErrForbidden      = &Error{KindForbidden, authsdk.ErrorCodeForbidden, "insufficient role for this operation"}
	ErrNoTenantAccess = &Error{KindForbidden, authsdk.ErrorCodeNoTenantAccess, "user has no access to this tenant"}
	ErrOwnerImmutable = &Error{KindForbidden, authsdk.ErrorCodeOwnerImmutable, "the tenant owner cannot be changed or removed"}

	ErrInvitationExpired         = &Error{KindPreconditionFailed, authsdk.ErrorCodeInvitationExpired, "invitation has expired"}
	ErrInvitationAlreadyAccepted = &Error{KindPreconditionFailed, authsdk.ErrorCodeInvitationAlreadyAccepted, "invitation has already been accepted"}
	ErrPasswordRequired          = &Error{KindPreconditionFailed, authsdk.ErrorCodePasswordRequired, "a password is required to create the invited account"}

	ErrInvalidRole     = &Error{KindInvalidArgument, authsdk.ErrorCodeInvalidRole, "role must be ADMIN or MEMBER"}
	ErrInvalidPassword = &Error{KindInvalidArgument, authsdk.ErrorCodeInvalidPassword, "password does not meet the policy"}
	ErrInvalidRequest  = &Error{KindInvalidArgument, authsdk.ErrorCodeValidation, "invalid request"}
)
