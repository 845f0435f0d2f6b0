// Package main запускает BFF панели бронирований.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/booking-cms/internal/bookingapi"
	"github.com/mmeshcher/booking-cms/internal/config"
	"github.com/mmeshcher/booking-cms/internal/handler"
	"github.com/mmeshcher/booking-cms/internal/middleware"
	"github.com/mmeshcher/booking-cms/internal/places"
	"github.com/mmeshcher/booking-cms/internal/querycache"
	"github.com/mmeshcher/booking-cms/internal/repository"
	"github.com/mmeshcher/booking-cms/internal/service"
	"github.com/mmeshcher/booking-cms/internal/session"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	var (
		store  session.Store
		purger service.SessionPurger
	)
	if cfg.DatabaseURI != "" {
		repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
		if err != nil {
			sugar.Fatalw("database initialization error", "error", err.Error())
		}
		defer repo.Close()
		store, purger = repo, repo
	} else {
		sugar.Warn("DATABASE_URI is not set, sessions are kept in memory")
		store = session.NewMemoryStore()
	}

	if cfg.BookingAPIURL == "" {
		sugar.Warn("BOOKING_API_URL is not set, booking API calls will fail")
	}

	sessions := session.NewManager(store, logger)
	cache := querycache.New(
		querycache.WithTTL(cfg.CacheTTL),
		querycache.WithPermanent(bookingapi.IsUnauthorized),
		querycache.WithLogger(logger),
	)

	var svc *service.Service
	api := bookingapi.NewClient(cfg.BookingAPIURL, cfg.BookingAPIKey,
		bookingapi.WithTimeout(cfg.RequestTimeout),
		bookingapi.WithLogger(logger),
		bookingapi.WithUnauthorizedHandler(func(ctx context.Context, s *session.Session) {
			svc.OnSessionExpired(ctx, s)
		}),
	)
	goong := places.NewClient(cfg.GoongBaseURL, cfg.GoongAPIKey, logger)

	svc = service.NewService(api, cache, goong, sessions, purger, logger)

	sessionMiddleware := middleware.NewSessionMiddleware(cfg.SessionSecret, sessions, logger).
		WithSecureCookie(cfg.SecureCookie)
	h := handler.NewHandler(svc, logger, sessionMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Очистка устаревших сессий по расписанию
	g.Go(func() error {
		return svc.StartSessionCleanup(ctx, cfg.SessionCleanup, cfg.SessionMaxAge)
	})

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting booking cms server", "addr", cfg.RunAddress, "api", cfg.BookingAPIURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
