package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://ledger.local/errors/validation"
	ErrorTypeNotFound     = "https://ledger.local/errors/not-found"
	ErrorTypeUnauthorized = "https://ledger.local/errors/unauthorized"
	ErrorTypeConflict     = "https://ledger.local/errors/conflict"
	ErrorTypeInternal     = "https://ledger.local/errors/internal"
)

// MessageResponse is the acknowledgement body of write endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldOf names the request field a validation sentinel refers to
var fieldOf = map[error]string{
	domain.ErrNameRequired:           "name",
	domain.ErrNameTooLong:            "name",
	domain.ErrEmailTooLong:           "email",
	domain.ErrEmailRequired:          "email",
	domain.ErrInvalidEmail:           "email",
	domain.ErrPasswordRequired:       "password",
	domain.ErrWeakPassword:           "password",
	domain.ErrInvalidUserID:          "userId",
	domain.ErrInvalidAmount:          "amount",
	domain.ErrInvalidTransactionType: "type",
	domain.ErrInvalidDate:            "date",
	domain.ErrIncompleteDateRange:    "startDate",
	domain.ErrCategoryRequired:       "category",
	domain.ErrCategoryNameTooLong:    "category",
	domain.ErrDescriptionTooLong:     "description",
}

// respondError translates a service error into a problem response. Errors
// outside the domain taxonomy are logged and reported as a generic 500 with
// fallback as detail.
func respondError(c echo.Context, err error, fallback string) error {
	switch {
	case domain.IsValidationError(err):
		var fields []ValidationError
		for sentinel, field := range fieldOf {
			if errors.Is(err, sentinel) {
				fields = append(fields, ValidationError{Field: field, Message: sentinel.Error()})
				break
			}
		}
		return NewValidationError(c, err.Error(), fields)
	case domain.IsAuthError(err):
		return NewUnauthorizedError(c, err.Error())
	case domain.IsNotFoundError(err):
		return NewNotFoundError(c, err.Error())
	case domain.IsConflictError(err):
		return NewConflictError(c, err.Error())
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(fallback)
	return NewInternalError(c, fallback)
}

// money renders a decimal amount as a JSON number literal with two decimals
func money(d decimal.Decimal) json.Number {
	return json.Number(domain.FormatAmount(d))
}

// SummaryResponse is the derived aggregate over a listing
type SummaryResponse struct {
	Count        int         `json:"count"`
	TotalIncome  json.Number `json:"totalIncome" swaggertype:"number"`
	TotalExpense json.Number `json:"totalExpense" swaggertype:"number"`
	Balance      json.Number `json:"balance" swaggertype:"number"`
}

func toSummaryResponse(s domain.LedgerSummary) SummaryResponse {
	return SummaryResponse{
		Count:        s.Count,
		TotalIncome:  money(s.TotalIncome),
		TotalExpense: money(s.TotalExpense),
		Balance:      money(s.Balance),
	}
}
