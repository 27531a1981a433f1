package domain

import "time"

// Item is the reference tenant-scoped resource. Every read and write is
// filtered by TenantID.
type Item struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemUpdate is a partial item update. Nil fields are left untouched.
type ItemUpdate struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the update changes nothing.
func (u ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil
}
