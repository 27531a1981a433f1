package authsdk

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72 // bcrypt ignores anything past this
	MaxEmailLength    = 254
	MaxNameLength     = 64
	MaxTenantName     = 100
	MaxItemName       = 200
	MaxDescription    = 2000

	requiredReason = "required"
)

var (
	ErrPasswordTooShort  = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong   = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	ErrPasswordNoUpper   = errors.New("password must contain an upper case letter")
	ErrPasswordNoLower   = errors.New("password must contain a lower case letter")
	ErrPasswordNoDigit   = errors.New("password must contain a digit")
	ErrPasswordNoSymbol  = errors.New("password must contain a symbol")
	ErrEmailInvalid      = errors.New("invalid email address")
	ErrEmailTooLong      = fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	ErrRoleNotAssignable = errors.New("role must be ADMIN or MEMBER")
)

// ValidatePassword applies the password policy: at least 8 characters, at
// most 72 bytes, and one each of upper case, lower case, digit and symbol.
func ValidatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(pw) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r), unicode.IsSpace(r):
			symbol = true
		}
	}

	switch {
	case !upper:
		return ErrPasswordNoUpper
	case !lower:
		return ErrPasswordNoLower
	case !digit:
		return ErrPasswordNoDigit
	case !symbol:
		return ErrPasswordNoSymbol
	}
	return nil
}

// ValidateEmail accepts a bare RFC 5322 address of at most 254 characters.
// Display-name forms like "Ada <ada@example.com>" are rejected.
func ValidateEmail(email string) error {
	if len(email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrEmailInvalid
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address. Emails are stored and
// compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmailField(errs map[string]string, field, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs[field] = requiredReason
		return
	}
	if err := ValidateEmail(email); err != nil {
		errs[field] = err.Error()
	}
}

func validatePasswordField(errs map[string]string, field, pw string) {
	if pw == "" {
		errs[field] = requiredReason
		return
	}
	if err := ValidatePassword(pw); err != nil {
		errs[field] = err.Error()
	}
}

func validateNameField(errs map[string]string, field, name string) {
	if utf8.RuneCountInString(name) > MaxNameLength {
		errs[field] = fmt.Sprintf("too long (max %d)", MaxNameLength)
	}
}

func validateTenantName(errs map[string]string, field, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs[field] = requiredReason
	case utf8.RuneCountInString(name) > MaxTenantName:
		errs[field] = fmt.Sprintf("too long (max %d)", MaxTenantName)
	}
}

func validateItemName(errs map[string]string, field, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs[field] = requiredReason
	case utf8.RuneCountInString(name) > MaxItemName:
		errs[field] = fmt.Sprintf("too long (max %d)", MaxItemName)
	}
}

func validateDescription(errs map[string]string, field, desc string) {
	if utf8.RuneCountInString(desc) > MaxDescription {
		errs[field] = fmt.Sprintf("too long (max %d)", MaxDescription)
	}
}

func validateAssignableRole(errs map[string]string, field, role string) {
	switch role {
	case "":
		errs[field] = requiredReason
	case "ADMIN", "MEMBER":
	default:
		errs[field] = ErrRoleNotAssignable.Error()
	}
}

func nilIfEmpty(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
