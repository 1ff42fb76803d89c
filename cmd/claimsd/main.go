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

	"claims-assistant/internal/common"
	"claims-assistant/internal/export"
	"claims-assistant/internal/extract"
	"claims-assistant/internal/llm/gemini"
	"claims-assistant/internal/ocr"
	"claims-assistant/internal/repository"
	"claims-assistant/internal/rules"
	"claims-assistant/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	if err := repository.EnsureSchema(ctx, pool); err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	// Collaborators are constructed here and injected; none of them are
	// package-level singletons.
	generator := gemini.NewClient(gemini.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	reader := ocr.NewGeminiReader(cfg.LLM.APIKey, cfg.LLM.OCRModel, cfg.LLM.Timeout, logger)
	orchestrator := extract.NewOrchestrator(generator, logger)
	claims := repository.NewClaimRepository(pool, logger)
	validator := rules.NewValidator(cfg.Rules.AmountThreshold, logger)
	exporter := export.NewService(claims, logger)

	handler := server.NewClaimsHandler(orchestrator, generator, reader, claims, validator, exporter, logger)
	router := server.NewRouter(handler, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("stopped")
}
