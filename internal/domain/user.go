package domain

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// User represents an account holder. PasswordHash is never serialized.
type User struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// UserFilter is the allow-listed equality filter for listing users
type UserFilter struct {
	ID    *int32
	Email *string
}

// UserFilterFields lists the query keys accepted by UserFilter
var UserFilterFields = []string{"id", "email"}

const (
	MinPasswordLength = 8
	MaxNameLength     = 255
	MaxEmailLength    = 255
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateProfileLengths rejects a name or email longer than its column allows.
// Lengths are counted in characters, matching VARCHAR semantics.
func ValidateProfileLengths(name, email string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	return nil
}

// ValidEmail checks the address against the accepted email shape
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePasswordStrength enforces the minimum password policy: at least
// MinPasswordLength characters with at least one letter and one digit.
func ValidatePasswordStrength(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int32) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, error)
	UpdateProfile(ctx context.Context, id int32, name, email string) (*User, error)
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
}
