package domain

import "time"

// InvitationTTL is how long an invitation stays redeemable.
const InvitationTTL = 24 * time.Hour

type Invitation struct {
	ID         string
	TenantID   string
	Email      string
	TokenHash  string
	Role       Role
	InvitedBy  string
	AcceptedBy string // empty until accepted
	Accepted   bool
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the invitation can no longer be accepted at now.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
