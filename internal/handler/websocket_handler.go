package handler

import (
	"context"
	"net/http"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/ashecone/expense-tracker-api/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// UserLookup resolves the user a subscription is opened for
type UserLookup interface {
	GetUser(ctx context.Context, id int32) (*domain.User, error)
}

// WebSocketHandler upgrades connections that subscribe to a user's ledger events
type WebSocketHandler struct {
	hub            *websocket.Hub
	users          UserLookup
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, users UserLookup, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		users:          users,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// non-browser clients send no Origin
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS godoc
// @Summary Subscribe to ledger events
// @Description Upgrade to a WebSocket that receives transaction.created, transaction.updated, transaction.deleted and category.created events for userId
// @Tags transactions
// @Param userId query int true "User ID"
// @Success 101
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /users/transactions/ws [get]
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	userID, ok := parseUserIDQuery(c)
	if !ok || userID == 0 {
		log.Debug().Str("user_id", c.QueryParam("userId")).Msg("WebSocket connection rejected: invalid userId")
		return NewValidationError(c, "userId is required", []ValidationError{
			{Field: "userId", Message: "Must be a positive integer"},
		})
	}

	if _, err := h.users.GetUser(c.Request().Context(), userID); err != nil {
		return respondError(c, err, "Failed to open subscription")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("WebSocket upgrade failed")
		return err
	}

	subscriber := websocket.NewSubscriber(conn, userID, h.hub)
	h.hub.Register(subscriber)

	log.Info().
		Int32("user_id", userID).
		Str("client_id", subscriber.ID()).
		Msg("Ledger subscriber connected")

	subscriber.Serve()

	return nil
}
