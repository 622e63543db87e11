// Package security implements password storage, session management and
// route protection for the web interface.
package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/adikemitra/adike-go/internal/errors"
)

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New(err).
			Component("security").
			Category(errors.CategoryAuth).
			Build()
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
