package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateInvitation invites an email address into the active tenant. The
// returned Token is shown once and must be passed on to the invitee.
// Requires OWNER or ADMIN.
func (s *Session) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*InvitationResponse, error) {
	var out InvitationResponse
	if err := s.call(ctx, http.MethodPost, "/v1/invitations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations lists pending invitations of the active tenant.
func (s *Session) ListInvitations(ctx context.Context) (*ListInvitationsResponse, error) {
	var out ListInvitationsResponse
	if err := s.call(ctx, http.MethodGet, "/v1/invitations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeInvitation deletes a pending invitation.
func (s *Session) RevokeInvitation(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/v1/invitations/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}
