package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ashecone/expense-tracker-api/docs"
	"github.com/ashecone/expense-tracker-api/internal/config"
	"github.com/ashecone/expense-tracker-api/internal/handler"
	"github.com/ashecone/expense-tracker-api/internal/middleware"
	"github.com/ashecone/expense-tracker-api/internal/repository/postgres"
	"github.com/ashecone/expense-tracker-api/internal/service"
	"github.com/ashecone/expense-tracker-api/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title          Ledger API
// @version        1.0
// @description    Personal finance ledger: users, income and expense transactions, categories and balances.
// @BasePath       /
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// .env is only read by config.Load, so output format is chosen afterwards
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Logger = newLogger(cfg, os.Stderr)

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)

	accountService := service.NewAccountService(userRepo, service.NewBcryptHasher(cfg.BcryptCost))
	categoryService := service.NewCategoryService(categoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, categoryService)

	hub := websocket.NewHub()
	transactionService.SetEventPublisher(hub)

	authLimiter := middleware.NewRateLimiterWithConfig(cfg.AuthRateLimit, cfg.AuthRateBurst)
	defer authLimiter.Stop()

	userHandler := handler.NewUserHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	wsHandler := handler.NewWebSocketHandler(hub, accountService, cfg.CORSOrigins)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)

	handler.RegisterRoutes(e, authLimiter, userHandler, transactionHandler, wsHandler)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// newLogger writes JSON in production and human-readable console output elsewhere
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	if cfg.IsProduction() {
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}
