package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger: JSON output for deployed environments
// so logs are machine-parseable, plain text for local development.
func New(env string) *slog.Logger {
	var handler slog.Handler
	if env == "prod" || env == "dev" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

func NewWithServiceContext(env, serviceName, version string) *slog.Logger {
	return New(env).With(
		slog.String("service", serviceName),
		slog.String("version", version),
		slog.String("environment", env),
	)
}
