package routes

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"krishi-market/controllers"
	middlewares "krishi-market/middleware"
)

type Options struct {
	// AllowedOrigins empty means any origin.
	AllowedOrigins []string
	Ping           func(ctx context.Context) error
	Log            *zap.Logger
}

func SetupRoutes(r *gin.Engine, uc *controllers.UserController, opts Options) {
	r.Use(middlewares.RequestID(), middlewares.Logger(opts.Log), middlewares.Recovery(opts.Log))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	if opts.Ping != nil {
		r.GET("/health", controllers.Health(opts.Ping))
	}
	SetupAuthRoutes(r, uc)
	SetupUserRoutes(r, uc)
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}
