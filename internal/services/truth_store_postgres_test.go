package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sentinelos/engine/internal/intelligence"
	"github.com/sentinelos/engine/internal/repository"
	"github.com/sentinelos/engine/pkg/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestTruthVersionsUnderPostgresAdvisoryLock runs concurrent ingests against a
// pooled PostgreSQL connection, where only the advisory lock keeps versions
// gap-free and conflict detection exact.
func TestTruthVersionsUnderPostgresAdvisoryLock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pg, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sentinel"),
		postgres.WithUsername("sentinel"),
		postgres.WithPassword("sentinel"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if pg != nil {
			if terr := pg.Terminate(context.Background()); terr != nil {
				t.Errorf("terminate container: %v", terr)
			}
		}
	})
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	db, err := database.Open(openCtx, database.Options{Driver: database.DriverPostgres, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, repository.AutoMigrate(db))

	store := repository.NewStore(db)
	analyzer := intelligence.MustNewAnalyzer(intelligence.DefaultRules())
	ingest := NewIngestService(store, analyzer, NewTruthStore())
	state := NewStateService(store, analyzer)

	days := []string{"Monday", "Tuesday", "Monday", "Tuesday", "Monday", "Tuesday", "Monday", "Tuesday",
		"Monday", "Tuesday", "Monday", "Tuesday", "Monday", "Tuesday", "Monday", "Tuesday"}

	var wg sync.WaitGroup
	errs := make(chan error, len(days))
	var mu sync.Mutex
	conflicts := 0
	for _, day := range days {
		wg.Add(1)
		go func(day string) {
			defer wg.Done()
			res, err := ingest.Ingest(ctx, "acme", "Launch "+day+".", "load test")
			if err != nil {
				errs <- err
				return
			}
			mu.Lock()
			conflicts += len(res.Conflicts)
			mu.Unlock()
		}(day)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	st, err := state.GetOrgState(ctx, "acme")
	require.NoError(t, err)

	timeline := st.TruthTimeline["launch_date"]
	require.Len(t, timeline, len(days))
	for i, e := range timeline {
		require.Equal(t, len(days)-i, e.Version)
	}

	// Every version whose value differs from its predecessor must have raised
	// exactly one conflict.
	expected := 0
	for i := 0; i+1 < len(timeline); i++ {
		if timeline[i].Value != timeline[i+1].Value {
			expected++
		}
	}
	require.Equal(t, expected, conflicts)
}
