package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sentinelos/engine/internal/models"
	"github.com/sentinelos/engine/pkg/database"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"github.com/sentinelos/engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "sentinel.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, AutoMigrate(db))
	return NewStore(db)
}

func TestTruthLatestAndListing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ingestID := uuid.New()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	latest, err := s.Truths.Latest(ctx, "acme", "launch_date")
	require.NoError(t, err)
	assert.Nil(t, latest)

	for i, v := range []string{"Friday", "Monday"} {
		require.NoError(t, s.Truths.Create(ctx, &models.Truth{
			OrgID: "acme", Key: "launch_date", Value: v, Version: i + 1, IngestID: ingestID, CreatedAt: now,
		}))
	}
	require.NoError(t, s.Truths.Create(ctx, &models.Truth{
		OrgID: "acme", Key: "priority", Value: "P0", Version: 1, IngestID: ingestID, CreatedAt: now,
	}))
	require.NoError(t, s.Truths.Create(ctx, &models.Truth{
		OrgID: "other", Key: "priority", Value: "P2", Version: 1, IngestID: ingestID, CreatedAt: now,
	}))

	latest, err = s.Truths.Latest(ctx, "acme", "launch_date")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "Monday", latest.Value)
	assert.Equal(t, 2, latest.Version)

	all, err := s.Truths.ListByOrg(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "launch_date", all[0].Key)
	assert.Equal(t, 2, all[0].Version)
	assert.Equal(t, 1, all[1].Version)
	assert.Equal(t, "priority", all[2].Key)
}

func TestTruthVersionIsUnique(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tr := func() *models.Truth {
		return &models.Truth{OrgID: "acme", Key: "scope", Value: "CHANGED", Version: 1, IngestID: uuid.New(), CreatedAt: time.Now()}
	}
	require.NoError(t, s.Truths.Create(ctx, tr()))

	err := s.Truths.Create(ctx, tr())
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInternal))
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx *Store) error {
		require.NoError(t, tx.Ingests.Create(ctx, &models.Ingest{OrgID: "acme", Source: "test", Text: "hi", CreatedAt: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	history, err := s.Ingests.ListRecent(ctx, "acme", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestIngestQueries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	var last models.Ingest
	err := s.Ingests.GetLatest(ctx, "acme", &last)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	for i, org := range []string{"beta", "acme", "acme"} {
		require.NoError(t, s.Ingests.Create(ctx, &models.Ingest{
			OrgID: org, Source: "chat", Text: org, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	history, err := s.Ingests.ListRecent(ctx, "acme", 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, base.Add(2*time.Minute), history[0].CreatedAt.UTC())

	require.NoError(t, s.Ingests.GetLatest(ctx, "acme", &last))
	assert.Equal(t, history[0].ID, last.ID)

	orgs, err := s.Ingests.ListOrgs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "beta"}, orgs)
}

func TestTasksKeepPosition(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ingestID := uuid.New()
	now := time.Now()

	for i, label := range []string{"b", "a", "c"} {
		require.NoError(t, s.Tasks.Create(ctx, &models.Task{OrgID: "acme", IngestID: ingestID, Position: i, Label: label, CreatedAt: now}))
	}
	tasks, err := s.Tasks.ListByIngest(ctx, ingestID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "b", tasks[0].Label)
	assert.Equal(t, "a", tasks[1].Label)
	assert.Equal(t, "c", tasks[2].Label)
}
