package domain

import "time"

type Tenant struct {
	ID        string
	Slug      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenantUpdate is a partial tenant update. Nil fields are left untouched.
type TenantUpdate struct {
	Name *string
}

// TenantWithRole is a tenant as seen by one of its members.
type TenantWithRole struct {
	Tenant
	Role     Role
	JoinedAt time.Time
}
