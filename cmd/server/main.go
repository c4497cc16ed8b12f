package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"booking_backend/internal/app/di"
	"booking_backend/internal/app/router"
	identityhandler "booking_backend/internal/feature/identity/transport/handler"
	identityusecase "booking_backend/internal/feature/identity/usecase"
	"booking_backend/internal/platform/config"
	"booking_backend/internal/platform/errreport"
	"booking_backend/internal/platform/http/handler"
	"booking_backend/internal/platform/logger"
	"booking_backend/internal/platform/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, "booking-identity", cfg.Environment)
	gin.SetMode(cfg.GinMode)

	if err := errreport.Init(cfg.SentryDSN, cfg.Environment); err != nil {
		slog.Warn("sentry disabled", "error", err)
	}
	defer errreport.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store
	store, closeStore, err := di.NewUserStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open user store", "store", cfg.UserStore, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("failed to close user store", "error", err)
		}
	}()

	// Notifications
	dispatcher, err := di.NewWelcomeDispatcher(cfg)
	if err != nil {
		slog.Error("failed to configure notifier", "error", err)
		os.Exit(1)
	}

	// Usecase / Handler
	identityUC := identityusecase.NewIdentityUsecase(store, dispatcher)
	identityH := identityhandler.NewIdentityHandler(identityUC)

	r := router.NewRouter(identityH, handler.NewHealth(store), middleware.NewHTTPMetrics("booking-identity"), cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("identity service listening", "addr", srv.Addr, "store", cfg.UserStore, "notifier", cfg.Notifier)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	waitCtx, cancelWait := context.WithTimeout(context.Background(), cfg.NotifyTimeout)
	defer cancelWait()
	if err := dispatcher.Wait(waitCtx); err != nil {
		slog.Warn("pending welcome notifications abandoned", "error", err)
	}
	slog.Info("server stopped")
}
