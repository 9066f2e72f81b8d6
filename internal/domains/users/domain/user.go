package domain

import (
	"strings"
	"unicode"

	"github.com/avalder/go-bookstore-api/internal/shared/validator"
)

const (
	MinNameLen     = 2
	MaxNameLen     = 255
	MinEmailLen    = 5
	MaxEmailLen    = 255
	MinPasswordLen = 8
	MaxPasswordLen = 255
)

// User is an API operator account. PasswordHash holds a bcrypt digest;
// the raw password never reaches persistence.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// Validate checks the stored-account invariants. Password policy is
// enforced separately on the raw credential via ValidatePassword.
func (u *User) Validate() *validator.Validator {
	v := validator.New()
	v.Check(len(u.Name) >= MinNameLen && len(u.Name) <= MaxNameLen &&
		validator.Matches(u.Name, validator.FullNameRX),
		"name", "Invalid name.")
	v.Check(len(u.Email) >= MinEmailLen && len(u.Email) <= MaxEmailLen &&
		validator.Matches(u.Email, validator.EmailRX),
		"email", "Invalid email address.")
	v.Check(strings.TrimSpace(u.PasswordHash) != "", "password", "Invalid password.")
	return v
}

// ValidatePassword enforces the raw credential policy: at least 8
// alphanumeric characters including one letter and one digit.
func ValidatePassword(password string) *validator.Validator {
	v := validator.New()
	v.Check(acceptablePassword(password), "password", "Invalid password.")
	return v
}

func acceptablePassword(password string) bool {
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}
