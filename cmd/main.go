// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
//
// Usage:
//
//	court-booking [serve]   migrate, then serve the API
//	court-booking migrate   apply pending migrations and exit
//	court-booking seed      migrate, insert the default courts and slots, and exit
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

	"github.com/Shivanand-hulikatti/court-booking/internal/auth"
	"github.com/Shivanand-hulikatti/court-booking/internal/config"
	"github.com/Shivanand-hulikatti/court-booking/internal/database"
	"github.com/Shivanand-hulikatti/court-booking/internal/events"
	"github.com/Shivanand-hulikatti/court-booking/internal/handler"
	"github.com/Shivanand-hulikatti/court-booking/internal/logger"
	"github.com/Shivanand-hulikatti/court-booking/internal/repository"
	"github.com/Shivanand-hulikatti/court-booking/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cmd, cfg, zl); err != nil {
		zl.Fatal("exit", zap.String("command", cmd), zap.Error(err))
	}
}

func run(ctx context.Context, cmd string, cfg *config.Config, zl *zap.Logger) error {
	switch cmd {
	case "serve", "migrate", "seed":
	default:
		return fmt.Errorf("unknown command %q (want serve, migrate or seed)", cmd)
	}

	// ── 1. Connect to PostgreSQL and migrate ─────────────────────────────
	pool, err := database.NewPool(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	zl.Info("connected to PostgreSQL")

	if err := database.Migrate(ctx, pool, zl); err != nil {
		return err
	}

	switch cmd {
	case "migrate":
		return nil
	case "seed":
		return database.Seed(ctx, pool, zl)
	}
	return serve(ctx, cfg, pool, zl)
}

func serve(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, zl *zap.Logger) error {
	// ── 2. Event publisher ───────────────────────────────────────────────
	var publisher service.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		np, err := events.NewNatsPublisher(cfg.NATSURL, zl)
		if err != nil {
			return err
		}
		defer np.Close()
		publisher = np
		zl.Info("publishing booking events", zap.String("nats_url", cfg.NATSURL))
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	courtRepo := repository.NewCourtRepository(pool)
	slotRepo := repository.NewTimeSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := handler.NewRouter(handler.RouterConfig{
		Courts:     service.NewCourtService(courtRepo, slotRepo, bookingRepo),
		TimeSlots:  service.NewTimeSlotService(slotRepo, bookingRepo),
		Bookings:   service.NewBookingService(bookingRepo, userRepo, publisher, zl),
		Auth:       service.NewAuthService(userRepo, tokens),
		Tokens:     tokens,
		Log:        zl,
		CORSOrigin: cfg.CORSAllowedOrigin,
		Registry:   registry,
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", "http://localhost:"+cfg.Port), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	zl.Info("server stopped")
	return nil
}
