package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/estate-listings/config"
	"github.com/ErlanBelekov/estate-listings/internal/auth"
	"github.com/ErlanBelekov/estate-listings/internal/email"
	"github.com/ErlanBelekov/estate-listings/internal/health"
	"github.com/ErlanBelekov/estate-listings/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/estate-listings/internal/log"
	"github.com/ErlanBelekov/estate-listings/internal/metrics"
	httptransport "github.com/ErlanBelekov/estate-listings/internal/transport/http"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/handler"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.MigrateOnStart {
		if err := migrateUp(cfg.DatabaseURL, logger); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, auth.NewArgon2idHasher(), tokens, emailSender, logger)

	// Listings
	listingRepo := postgres.NewListingRepository(pool)
	listingUsecase := usecase.NewListingUsecase(listingRepo, logger)
	propertyUsecase := usecase.NewPropertyUsecase(postgres.NewPropertyRepository(pool))
	photoUsecase := usecase.NewPhotoUsecase(postgres.NewPhotoRepository(pool), listingRepo)

	// Locations
	locationUsecase := usecase.NewLocationUsecase(
		postgres.NewCityRepository(pool),
		postgres.NewDistrictRepository(pool),
		postgres.NewMicrodistrictRepository(pool),
		postgres.NewCategoryRepository(pool),
	)

	handlers := httptransport.Handlers{
		Auth:     handler.NewAuthHandler(authUsecase, logger),
		Listing:  handler.NewListingHandler(listingUsecase, logger),
		Property: handler.NewPropertyHandler(propertyUsecase, logger),
		Photo:    handler.NewPhotoHandler(photoUsecase, logger),
		Location: handler.NewLocationHandler(locationUsecase, logger),
	}
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimitPerMinute, logger)

	schemaCheck, err := postgres.NewSchemaCheck(pool)
	if err != nil {
		stop()
		log.Fatalf("schema check: %v", err)
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer,
		health.Dependency{Name: "postgres", Pinger: pool},
		health.Dependency{Name: "schema", Pinger: schemaCheck},
	)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, handlers, authUsecase, authLimiter, cfg.Env != "local"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func migrateUp(databaseURL string, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	if err := m.Up(); err != nil {
		return err
	}
	version, _, err := m.Version()
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "version", version)
	return nil
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
