package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grantboard/internal/logger"
	"grantboard/internal/server"
)

func main() {
	log := logger.NewWithServiceContext(os.Getenv("ENV"), "grantboard", "1.0.0")

	srv, pool, err := server.New(log)
	if err != nil {
		log.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("server exiting")
}
