package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/mealplanner/internal/auth"
	"github.com/mmynk/mealplanner/internal/config"
	"github.com/mmynk/mealplanner/internal/handler"
	"github.com/mmynk/mealplanner/internal/metrics"
	"github.com/mmynk/mealplanner/internal/middleware"
	"github.com/mmynk/mealplanner/internal/rpc"
	"github.com/mmynk/mealplanner/internal/service"
	"github.com/mmynk/mealplanner/internal/storage"
	"github.com/mmynk/mealplanner/internal/storage/postgres"
	"github.com/mmynk/mealplanner/internal/storage/sqlite"
	"github.com/mmynk/mealplanner/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

type store interface {
	storage.Store
	Ping(ctx context.Context) error
}

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := slog.Default()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(db)

	planSvc := service.NewMealPlanService(db, logger)
	authSvc := service.NewAuthService(authenticator, jwtManager, db, logger)

	mux := http.NewServeMux()
	handler.New(planSvc, authSvc, db, logger).Register(mux)

	rpcPath, rpcHandler := rpc.NewMealPlanServiceHandler(rpc.NewMealPlanServer(planSvc),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor()),
	)
	mux.Handle(rpcPath, rpcHandler)

	m := metrics.New()
	mux.Handle("GET /metrics", m.Handler())

	// Metrics wrap the mux directly so they observe the matched pattern.
	var h http.Handler = m.Middleware(mux)
	h = middleware.RequestLogger(h)
	h = middleware.Authenticate(jwtManager, rpcPath)(h)
	h = middleware.CORS(h)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(h, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
		}
		slog.Info("Storage initialized", "backend", "postgres")
		return db, nil
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
	}
	slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
	return db, nil
}
