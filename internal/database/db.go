package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"grantboard/internal/config"
)

// EnsureDatabaseExists connects to the maintenance database with admin
// credentials and creates the application database if it is missing.
func EnsureDatabaseExists(cfg config.DatabaseConfig, logger *slog.Logger) error {
	if cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("database admin credentials are required to create the database")
	}

	userInfo := url.UserPassword(cfg.AdminUser, cfg.AdminPassword)
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/postgres?sslmode=%s",
		userInfo.String(),
		cfg.Host,
		cfg.Port,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := pool.QueryRow(ctx, query, cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		logger.Info("database already exists", "database", cfg.DBName)
		return nil
	}

	logger.Info("creating database", "database", cfg.DBName)

	// CREATE DATABASE cannot run inside a transaction; quote the name to
	// handle special characters.
	quotedDBName := pgx.Identifier{cfg.DBName}.Sanitize()
	if _, err := pool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", quotedDBName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	return nil
}

// Connect builds the application connection pool and verifies it with a
// ping before returning.
func Connect(cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.User == "" {
		return nil, fmt.Errorf("database user is required (set DB_USERNAME)")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("database password is required (set DB_PASSWORD)")
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("database name is required (set DB_DATABASE)")
	}

	userInfo := url.UserPassword(cfg.User, cfg.Password)
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		userInfo.String(),
		cfg.Host,
		cfg.Port,
		url.PathEscape(cfg.DBName),
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your .env file): %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = time.Duration(cfg.ConnMaxLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleTime) * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection pool established",
		"host", cfg.Host,
		"database", cfg.DBName,
		"max_conns", cfg.MaxConns,
	)
	return pool, nil
}
