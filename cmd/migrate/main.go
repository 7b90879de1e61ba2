package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sentinelos/engine/internal/repository"
	"github.com/sentinelos/engine/pkg/config"
	"github.com/sentinelos/engine/pkg/database"
	"github.com/sentinelos/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.Open(context.Background(), database.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("schema migrated",
		zap.String("driver", cfg.DBDriver),
		zap.Int("tables", len(repository.Models())),
	)
	fmt.Fprintln(os.Stdout, "migrations completed")
}
