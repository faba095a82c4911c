package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/api"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/audit"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/config"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/gateway"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/logging"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/notify"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/payments"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/stats"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	// optional migration: run migrations/001_create_audit_log.sql if requested
	if cfg.PGDSN != "" && cfg.RunMigrations {
		if db, err := sql.Open("postgres", cfg.PGDSN); err == nil {
			if b, err := os.ReadFile(filepath.Join("migrations", "001_create_audit_log.sql")); err == nil {
				if _, err := db.Exec(string(b)); err != nil {
					logger.Error("migration exec error", "error", err)
				} else {
					logger.Info("migration applied", "file", "001_create_audit_log.sql")
				}
			}
			_ = db.Close()
		} else {
			logger.Error("migration db open error", "error", err)
		}
	}

	client := api.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, logging.ForComponent(logger, "api"))

	var recorder audit.Recorder
	if cfg.PGDSN != "" {
		if pg, err := audit.NewPostgresRecorder(cfg.PGDSN); err == nil {
			recorder = pg
		} else {
			logger.Error("postgres audit unavailable, falling back to memory", "error", err)
		}
	}
	if recorder == nil {
		recorder = audit.NewMemoryRecorder()
	}

	registry := notify.NewRegistry(logging.ForComponent(logger, "notify"))

	ctrl := &workflow.Controller{
		Backend: client,
		Notify:  registry,
		Audit:   recorder,
		Logger:  logging.ForComponent(logger, "workflow"),
	}
	if len(cfg.KafkaBrokers) > 0 {
		pub := audit.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer pub.Close()
		ctrl.Events = pub
	}
	if cfg.StripeAPIKey != "" {
		ctrl.Payments = payments.NewStripeClient(cfg.StripeAPIKey)
	}

	var cache stats.Cache
	if cfg.RedisAddr != "" {
		cache = stats.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.StatsCacheKey, cfg.StatsCacheTTL)
	} else {
		cache = stats.NewMemoryCache(cfg.StatsCacheTTL)
	}
	statsSvc := &stats.Service{Backend: client, Cache: cache, Logger: logging.ForComponent(logger, "stats")}

	srv := gateway.NewServer(client, ctrl, statsSvc, registry, recorder, logging.ForComponent(logger, "gateway"))

	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("admin gateway listening", "addr", cfg.HTTPAddr, "backend", cfg.BackendBaseURL)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
