package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"grantboard/internal/config"
	"grantboard/internal/database"
	"grantboard/internal/handlers"
	"grantboard/internal/middlewares"
	"grantboard/internal/repositories"
	"grantboard/internal/routes"
	"grantboard/internal/services"
)

// New loads configuration, prepares the store (connect, migrate, seed)
// and assembles the HTTP server. The returned pool must be closed by
// the caller on shutdown.
func New(logger *slog.Logger) (*http.Server, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Database.CreateIfMissing {
		if err := database.EnsureDatabaseExists(cfg.Database, logger); err != nil {
			return nil, nil, err
		}
	}

	pool, err := database.Connect(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.RunMigrations(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, nil, err
	}

	if err := database.Seed(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, nil, err
	}

	// Dependency injection
	foundationRepo := repositories.NewFoundationRepository(pool)
	foundationService := services.NewFoundationService(foundationRepo)
	outreachService := services.NewOutreachService(cfg.Outreach)
	foundationHandler := handlers.NewFoundationHandler(foundationService, outreachService, logger)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, foundationHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return srv, pool, nil
}
