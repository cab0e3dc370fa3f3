package handler

import (
	"net/http"
	"strconv"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/ashecone/expense-tracker-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// UserHandler handles account HTTP requests
type UserHandler struct {
	accountService *service.AccountService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(accountService *service.AccountService) *UserHandler {
	return &UserHandler{accountService: accountService}
}

// UserResponse represents a user in API responses. The password hash is never included.
type UserResponse struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignUpRequest represents the signup request body
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest represents the signin request body
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword,omitempty"`
}

// UserEnvelope wraps a user with an optional message
type UserEnvelope struct {
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}

// PasswordChangedResponse acknowledges a password change
type PasswordChangedResponse struct {
	Message string `json:"message"`
	UserID  int32  `json:"userId"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ListUsers godoc
// @Summary List users
// @Description List users, optionally filtered by exact id or email
// @Tags users
// @Produce json
// @Param id query int false "User ID"
// @Param email query string false "Email address"
// @Success 200 {array} UserResponse
// @Failure 400 {object} ProblemDetails
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	params := make(map[string]string)
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	users, err := h.accountService.ListUsers(c.Request().Context(), params)
	if err != nil {
		return respondError(c, err, "Failed to list users")
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, resp)
}

// SignUp godoc
// @Summary Register
// @Description Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Signup request"
// @Success 201 {object} UserEnvelope
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /users/signup [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.accountService.SignUp(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Failed to create user")
	}

	log.Info().Int32("user_id", user.ID).Msg("User signed up")

	return c.JSON(http.StatusCreated, UserEnvelope{
		Message: "User created successfully",
		User:    toUserResponse(user),
	})
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticate with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Signin request"
// @Success 200 {object} UserEnvelope
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /users/signin [post]
func (h *UserHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.accountService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if domain.IsAuthError(err) {
			log.Info().Str("client_ip", c.RealIP()).Msg("Failed sign in")
		}
		return respondError(c, err, "Failed to sign in")
	}

	return c.JSON(http.StatusOK, UserEnvelope{User: toUserResponse(user)})
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Replace a user's name and email
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateProfileRequest true "Profile"
// @Success 200 {object} UserEnvelope
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /users/{id} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := parsePathID(c)
	if !ok {
		return NewValidationError(c, "Invalid user ID", nil)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.accountService.UpdateProfile(c.Request().Context(), userID, req.Name, req.Email)
	if err != nil {
		return respondError(c, err, "Failed to update profile")
	}

	log.Info().Int32("user_id", user.ID).Msg("Profile updated")

	return c.JSON(http.StatusOK, UserEnvelope{
		Message: "Profile updated successfully",
		User:    toUserResponse(user),
	})
}

// ChangePassword godoc
// @Summary Change password
// @Description Store a new password; currentPassword is verified when supplied
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} PasswordChangedResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /users/{id}/change-password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := parsePathID(c)
	if !ok {
		return NewValidationError(c, "Invalid user ID", nil)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.accountService.ChangePassword(c.Request().Context(), userID, req.Password, req.CurrentPassword); err != nil {
		return respondError(c, err, "Failed to change password")
	}

	log.Info().Int32("user_id", userID).Msg("Password changed")

	return c.JSON(http.StatusOK, PasswordChangedResponse{
		Message: "Password updated successfully",
		UserID:  userID,
	})
}

// parsePathID reads the positive int32 :id path parameter
func parsePathID(c echo.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}
