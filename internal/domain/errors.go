package domain

import "errors"

// Validation errors (400)
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrEmailRequired          = errors.New("email is required")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrEmailTooLong           = errors.New("email exceeds maximum length")
	ErrPasswordRequired       = errors.New("password is required")
	ErrWeakPassword           = errors.New("password must be at least 8 characters long and contain at least one letter and one number")
	ErrInvalidUserID          = errors.New("userId is required")
	ErrInvalidAmount          = errors.New("amount must be a positive number")
	ErrInvalidTransactionType = errors.New("transaction type must be either 'income' or 'expense'")
	ErrInvalidDate            = errors.New("invalid date format, use YYYY-MM-DD")
	ErrIncompleteDateRange    = errors.New("startDate and endDate must be provided together")
	ErrCategoryRequired       = errors.New("category is required")
	ErrCategoryNameTooLong    = errors.New("category name exceeds maximum length")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrUnsupportedFilter      = errors.New("unsupported filter field")
)

// Authentication errors (401)
var (
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
)

// Not found errors (404)
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
)

// Conflict errors (409)
var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

var validationErrors = []error{
	ErrInvalidInput, ErrNameRequired, ErrNameTooLong, ErrEmailRequired, ErrInvalidEmail,
	ErrEmailTooLong, ErrPasswordRequired,
	ErrWeakPassword, ErrInvalidUserID, ErrInvalidAmount, ErrInvalidTransactionType,
	ErrInvalidDate, ErrIncompleteDateRange, ErrCategoryRequired, ErrCategoryNameTooLong,
	ErrDescriptionTooLong, ErrUnsupportedFilter,
}

// IsValidationError reports whether err is caused by malformed or missing input
func IsValidationError(err error) bool {
	return isAny(err, validationErrors...)
}

// IsAuthError reports whether err is a credential failure
func IsAuthError(err error) bool {
	return isAny(err, ErrInvalidCredentials, ErrCurrentPasswordIncorrect)
}

// IsNotFoundError reports whether err means the resource is missing or not owned by the caller
func IsNotFoundError(err error) bool {
	return isAny(err, ErrNotFound, ErrUserNotFound, ErrTransactionNotFound, ErrCategoryNotFound)
}

// IsConflictError reports whether err is a uniqueness violation
func IsConflictError(err error) bool {
	return isAny(err, ErrEmailAlreadyExists, ErrCategoryAlreadyExists)
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
