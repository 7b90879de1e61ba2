// Package bootstrap assembles the database, analyzer and services shared by
// the api, worker and sentinelctl binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sentinelos/engine/internal/intelligence"
	"github.com/sentinelos/engine/internal/repository"
	"github.com/sentinelos/engine/internal/services"
	"github.com/sentinelos/engine/pkg/config"
	"github.com/sentinelos/engine/pkg/database"
	"github.com/sentinelos/engine/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Runtime struct {
	DB       *gorm.DB
	Store    *repository.Store
	Analyzer *intelligence.Analyzer
	Ingest   services.IngestService
	State    services.StateService
}

// LoadRules returns the default rules, overridden by cfg.RulesFile when set.
func LoadRules(cfg *config.Config) (intelligence.Rules, error) {
	if cfg.RulesFile == "" {
		return intelligence.DefaultRules(), nil
	}
	rules, err := intelligence.LoadRules(cfg.RulesFile)
	if err != nil {
		return intelligence.Rules{}, err
	}
	logger.L().Info("rules loaded", zap.String("path", cfg.RulesFile), zap.Int("team_roles", len(rules.TeamRoles)))
	return rules, nil
}

// Open connects to the configured database, migrates it when migrate is
// true, and builds the services.
func Open(ctx context.Context, cfg *config.Config, migrate bool) (*Runtime, error) {
	rules, err := LoadRules(cfg)
	if err != nil {
		return nil, err
	}
	analyzer, err := intelligence.NewAnalyzer(rules)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	db, err := database.Open(ctx, database.Options{
		Driver:  cfg.DBDriver,
		DSN:     cfg.DatabaseURL,
		Verbose: cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := repository.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		logger.L().Info("schema migrated", zap.String("driver", cfg.DBDriver))
	}

	store := repository.NewStore(db)
	return &Runtime{
		DB:       db,
		Store:    store,
		Analyzer: analyzer,
		Ingest:   services.NewIngestService(store, analyzer, services.NewTruthStore()),
		State:    services.NewStateService(store, analyzer, services.WithLimits(cfg.StateConflictLimit, cfg.StateHistoryLimit)),
	}, nil
}

func (r *Runtime) Close() error { return database.Close(r.DB) }
