package handler

import (
	"github.com/ashecone/expense-tracker-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authLimiter *middleware.RateLimiter, userHandler *UserHandler, transactionHandler *TransactionHandler, wsHandler *WebSocketHandler) {
	users := e.Group("/users")

	// Account routes; credential endpoints are rate limited per client IP
	users.GET("", userHandler.ListUsers)
	users.POST("/signup", userHandler.SignUp, middleware.RateLimitMiddleware(authLimiter))
	users.POST("/signin", userHandler.SignIn, middleware.RateLimitMiddleware(authLimiter))
	users.PUT("/:id", userHandler.UpdateProfile)
	users.PUT("/:id/change-password", userHandler.ChangePassword)

	// Ledger routes
	transactions := users.Group("/transactions")
	transactions.GET("", transactionHandler.ListRecentTransactions)
	transactions.GET("/all", transactionHandler.ListAllTransactions)
	transactions.GET("/filter", transactionHandler.FilterTransactions)
	transactions.GET("/ws", wsHandler.HandleWS)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.POST("", transactionHandler.AddTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
}
