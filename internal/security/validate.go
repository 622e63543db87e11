package security

import (
	"strings"
	"unicode"
)

// Registration carries the sign-up form fields.
type Registration struct {
	Phone           string
	Email           string
	Name            string
	Location        string
	FarmSize        string
	UserType        string
	Password        string
	ConfirmPassword string
}

// ValidateRegistration checks form-level rules and returns the message
// shown to the user on the first failure.
func ValidateRegistration(r *Registration) (string, bool) {
	if r.Phone == "" || r.Name == "" || r.UserType == "" || r.Password == "" {
		return "Please fill all required fields.", false
	}
	if !ValidPhone(r.Phone) {
		return "Phone number must be 10 digits.", false
	}
	if r.Password != r.ConfirmPassword {
		return "Passwords do not match.", false
	}
	return "", true
}

// ValidPhone reports whether phone is exactly 10 digits.
func ValidPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// NormalizeEmail trims the address, returning "" for blank input so the
// unique index ignores users without email.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
