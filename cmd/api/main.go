package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/sentinelos/engine/internal/api"
	"github.com/sentinelos/engine/internal/api/handlers"
	"github.com/sentinelos/engine/internal/bootstrap"
	"github.com/sentinelos/engine/internal/queue/tasks"
	"github.com/sentinelos/engine/pkg/config"
	"github.com/sentinelos/engine/pkg/database"
	"github.com/sentinelos/engine/pkg/logger"

	_ "github.com/sentinelos/engine/docs"
)

// @title           SentinelOS API
// @version         1.0
// @description     Turns free-form status updates into versioned truths, action items, risk and briefings.

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting SentinelOS engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_driver", cfg.DBDriver),
	)

	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, cfg.AutoMigrate)
	if err != nil {
		log.Fatal("Failed to initialize runtime", zap.Error(err))
	}
	defer rt.Close()
	log.Info("Database connected successfully")

	var queue handlers.IngestEnqueuer
	if cfg.QueueEnabled() {
		client := tasks.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()
		queue = client
		log.Info("async ingestion enabled", zap.String("redis", cfg.RedisAddr))
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, /api/v1 is unauthenticated")
	}

	router := api.NewRouter(api.Dependencies{
		JWTSecret:      []byte(cfg.JWTSecret),
		CORSOrigins:    cfg.AllowedOrigins(),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		HealthHandler:  handlers.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, rt.DB) }),
		OrgsHandler:    handlers.NewOrgsHandler(rt.Ingest, rt.State, queue),
		GraphsHandler:  handlers.NewGraphsHandler(rt.State),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
