package domain

import "time"

type User struct {
	ID           string
	Email        string // stored lower-cased
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName joins the name fields, falling back to the email address.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// UserUpdate is a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	FirstName *string
	LastName  *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil
}
