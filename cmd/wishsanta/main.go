package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wishlist-santa/backend/internal/api"
	"github.com/wishlist-santa/backend/internal/config"
	"github.com/wishlist-santa/backend/internal/repository/postgres"
	"github.com/wishlist-santa/backend/internal/service"
	"github.com/wishlist-santa/backend/internal/session"
	"github.com/wishlist-santa/backend/pkg/logger"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting wishlist-santa backend...")

	// Database
	db, err := config.NewDatabase(cfg.DatabaseURL, l)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate("migrations"); err != nil {
		l.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db.DB)
	eventRepo := postgres.NewEventRepository(db.DB)
	wishRepo := postgres.NewWishRepository(db.DB)
	reservationRepo := postgres.NewReservationRepository(db.DB)

	// Service layer
	svc := service.New(l, userRepo, eventRepo, wishRepo, reservationRepo)

	// Sessions + HTTP server
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	apiServer := api.NewServer(svc, sessions, l, cfg.CORSOrigin)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()

	l.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.Errorf("HTTP server shutdown error: %v", err)
	}

	l.Info("Server stopped")
}
