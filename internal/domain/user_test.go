package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a.b+c@sub.example.co", true},
		{"alice@example", false},
		{"alice example@x.com", false},
		{"@example.com", false},
		{"alice@", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "secret123", nil},
		{"valid with symbols", "s3cret!pass", nil},
		{"empty", "", ErrPasswordRequired},
		{"whitespace", "        ", ErrPasswordRequired},
		{"too short", "abc1234", ErrWeakPassword},
		{"letters only", "abcdefghij", ErrWeakPassword},
		{"digits only", "1234567890", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePasswordStrength(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	if !IsValidationError(ErrInvalidDate) {
		t.Error("ErrInvalidDate should be a validation error")
	}
	if !IsAuthError(ErrInvalidCredentials) {
		t.Error("ErrInvalidCredentials should be an auth error")
	}
	if !IsNotFoundError(ErrTransactionNotFound) {
		t.Error("ErrTransactionNotFound should be a not found error")
	}
	if !IsConflictError(ErrEmailAlreadyExists) {
		t.Error("ErrEmailAlreadyExists should be a conflict error")
	}
	if IsValidationError(errors.New("connection refused")) {
		t.Error("arbitrary errors must not be classified")
	}
}

func TestValidateProfileLengths(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		wantErr  error
	}{
		{"at limit", strings.Repeat("n", MaxNameLength), "ada@example.com", nil},
		{"multibyte at limit", strings.Repeat("é", MaxNameLength), "ada@example.com", nil},
		{"name too long", strings.Repeat("n", MaxNameLength+1), "ada@example.com", ErrNameTooLong},
		{"email too long", "Ada", strings.Repeat("e", MaxEmailLength-11) + "@example.com", ErrEmailTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateProfileLengths(tt.userName, tt.email); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfileLengths() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
