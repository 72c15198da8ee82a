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

	"github.com/joho/godotenv"

	"github.com/joemocode/cakewalk-skill/internal/config"
	"github.com/joemocode/cakewalk-skill/internal/handler"
	"github.com/joemocode/cakewalk-skill/internal/service/assets"
	"github.com/joemocode/cakewalk-skill/internal/service/skill"
	"github.com/joemocode/cakewalk-skill/internal/service/timezone"
	"github.com/joemocode/cakewalk-skill/internal/store"
	"github.com/joemocode/cakewalk-skill/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, continuing with system environment", "error", err)
	}

	logger, err := telemetry.InitLogger()
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	tracer, meter, telemetryShutdown, err := telemetry.InitTelemetry(ctx)
	if err != nil {
		logger.Warn("failed to initialize telemetry, continuing without it", "error", err)
	} else {
		defer telemetryShutdown()
	}

	// Attribute store: durable when a path is configured, in-memory otherwise.
	var attributes store.Store
	if cfg.Store.Path != "" {
		sqliteStore, err := store.OpenSQLite(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open attribute store", "path", cfg.Store.Path, "error", err)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		attributes = sqliteStore
		logger.Info("attribute store opened", "path", cfg.Store.Path)
	} else {
		attributes = store.NewMemoryStore()
		logger.Warn("ATTRIBUTES_DB_PATH not set, birthdays will not survive a restart")
	}

	defaultZone, err := time.LoadLocation(cfg.Skill.DefaultTimeZone)
	if err != nil {
		logger.Warn("invalid DEFAULT_TIMEZONE, falling back to UTC",
			"zone", cfg.Skill.DefaultTimeZone, "error", err)
		defaultZone = time.UTC
	}

	var timeZones timezone.Client
	if cfg.TimeZone.BaseURL != "" {
		timeZones = timezone.NewHTTPClient(cfg.TimeZone.BaseURL, cfg.TimeZone.Token, cfg.TimeZone.Timeout)
		logger.Info("device settings service configured", "baseUrl", cfg.TimeZone.BaseURL)
	} else {
		timeZones = timezone.StaticClient(cfg.Skill.DefaultTimeZone)
		logger.Info("no device settings service configured, using default time zone",
			"zone", cfg.Skill.DefaultTimeZone)
	}

	resolver := assets.NewSignedResolver(cfg.Media.BaseURL, cfg.Media.SigningKey, cfg.Media.URLTTL)

	skillService := skill.NewService(skill.Deps{
		Store:       attributes,
		TimeZones:   timeZones,
		Assets:      resolver,
		DefaultZone: defaultZone,
		Logger:      logger,
		Tracer:      tracer,
		Meter:       meter,
	})

	router := handler.NewRouter(skillService)

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *slog.Logger, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("cakewalk skill backend listening", "addr", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
