package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sentinelos/engine/internal/bootstrap"
	"github.com/sentinelos/engine/internal/queue/tasks"
	"github.com/sentinelos/engine/pkg/config"
	"github.com/sentinelos/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if !cfg.QueueEnabled() {
		log.Fatal("REDIS_ADDR is required for the worker")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = rdb.Ping(pingCtx).Err()
	cancel()
	_ = rdb.Close()
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	rt, err := bootstrap.Open(context.Background(), cfg, cfg.AutoMigrate)
	if err != nil {
		log.Fatal("failed to initialize runtime", zap.Error(err))
	}
	defer rt.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.AsynqConcurrency,
		Logger:      log.Sugar(),
	})

	mux := asynq.NewServeMux()
	tasks.Register(mux, tasks.NewIngestTaskHandler(rt.Ingest), tasks.NewDigestTaskHandler(rt.State))

	var scheduler *asynq.Scheduler
	if cfg.DigestCron != "" {
		scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Logger: log.Sugar()})
		entryID, err := scheduler.Register(cfg.DigestCron, tasks.NewDigestTask())
		if err != nil {
			log.Fatal("invalid DIGEST_CRON", zap.String("cron", cfg.DigestCron), zap.Error(err))
		}
		if err := scheduler.Start(); err != nil {
			log.Fatal("scheduler start failed", zap.Error(err))
		}
		log.Info("digest scheduled", zap.String("cron", cfg.DigestCron), zap.String("entry_id", entryID))
	}

	log.Info("asynq worker starting", zap.Int("concurrency", cfg.AsynqConcurrency))
	if err := srv.Start(mux); err != nil {
		log.Fatal("worker start failed", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", zap.String("signal", sig.String()))

	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()
}
