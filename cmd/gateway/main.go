package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"notification-gateway/internal/api/handlers"
	"notification-gateway/internal/auth"
	"notification-gateway/internal/config"
	"notification-gateway/internal/gateway"
	"notification-gateway/internal/infrastructure/redis"
	"notification-gateway/pkg/logger"
)

func main() {
	log := logger.New()
	log.Info("Starting notification gateway")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize Redis
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to Redis", "address", cfg.Redis.Address)

	// Wire the gateway
	verifier := auth.NewVerifier([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer)
	gw := gateway.New(verifier, log)
	wsHandler := gateway.NewHandler(gw, cfg.Server.FrontendOrigin, log)
	presenceHandler := handlers.NewPresenceHandler(gw, log)
	subscriber := redis.NewEventSubscriber(rdb, cfg.Events.Channel, log)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Server.FrontendOrigin},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Routes
	e.GET("/ws/notifications", wsHandler.HandleConnection)

	api := e.Group("/api/v1")
	api.GET("/presence", presenceHandler.GetOnlineCount)
	api.GET("/presence/:userID", presenceHandler.GetUserPresence)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "notification-gateway",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Consume domain events for the lifetime of the process
	subscriberCtx, stopSubscriber := context.WithCancel(context.Background())
	defer stopSubscriber()
	go func() {
		if err := subscriber.Subscribe(subscriberCtx, gw.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Event subscriber exited", "error", err)
		}
	}()

	// Periodic presence stats
	statsCron := cron.New()
	if _, err := statsCron.AddFunc(cfg.Stats.Schedule, func() {
		log.Info("Presence stats",
			"online_users", gw.OnlineUsersCount(),
			"connections", gw.ConnectionCount())
	}); err != nil {
		log.Error("Failed to schedule stats report", "error", err)
		os.Exit(1)
	}
	statsCron.Start()

	serverAddr := cfg.ServerAddr()
	log.Info("Starting gateway server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down notification gateway...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	statsCron.Stop()
	stopSubscriber()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Notification gateway stopped")
}
