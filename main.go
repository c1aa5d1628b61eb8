package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"krishi-market/cache"
	"krishi-market/config"
	"krishi-market/controllers"
	"krishi-market/database"
	"krishi-market/repository"
	"krishi-market/routes"
	"krishi-market/services"
	"krishi-market/utils"
	"krishi-market/utils/logger"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// run owns every resource so its defers complete before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	defer func() { _ = logger.Close() }()
	zlog := logger.Get()

	client, err := db.Connect(context.Background(), cfg.MongoURI, zlog)
	if err != nil {
		zlog.Error("Failed to connect to MongoDB", zap.Error(err))
		return err
	}
	defer db.Disconnect(client, zlog)

	users := repository.NewUserRepository(db.Users(client, cfg.MongoDatabase), cfg.DBTimeout)
	if err := users.EnsureIndexes(context.Background()); err != nil {
		// Existing duplicate emails block the index; registration still pre-checks.
		zlog.Warn("Failed to ensure user indexes", zap.Error(err))
	}

	profileCache := newProfileCache(cfg, zlog)
	if closer, ok := profileCache.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	profiles := services.NewProfileService(users, profileCache, zlog)
	userController := controllers.NewUserController(users, utils.NewHasher(cfg.BcryptCost), profiles, zlog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.SetupRoutes(r, userController, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Ping:           func(ctx context.Context) error { return db.Ping(ctx, client) },
		Log:            zlog,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case err := <-serverErr:
		zlog.Error("Server failed", zap.Error(err))
		return err
	}

	zlog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

// newProfileCache returns a Redis-backed cache when REDIS_ADDR is set and
// reachable, and a no-op cache otherwise.
func newProfileCache(cfg *config.Config, zlog *zap.Logger) cache.ProfileCache {
	if cfg.RedisAddr == "" {
		zlog.Info("Profile cache disabled")
		return cache.Noop{}
	}
	rdb, err := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Warn("Profile cache unavailable, continuing without it", zap.Error(err))
		return cache.Noop{}
	}
	zlog.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedisProfileCache(rdb, cfg.ProfileCacheTTL, zlog)
}
