package domain

import (
	"slices"
	"time"
)

// Role is the permission level a user holds inside a single tenant.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Assignable reports whether r may be granted through invitations or role
// updates. OWNER is only ever set when a tenant is created.
func (r Role) Assignable() bool {
	return r == RoleAdmin || r == RoleMember
}

// In reports whether r is contained in set.
func (r Role) In(set []Role) bool {
	return slices.Contains(set, r)
}

func (r Role) String() string { return string(r) }

// Membership is the (user, tenant) -> role relation. At most one row exists
// per pair.
type Membership struct {
	UserID    string
	TenantID  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is a membership joined with the member's profile, used for listings.
type Member struct {
	User     User
	Role     Role
	JoinedAt time.Time
}
