package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sentinelos/engine/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func TestBackoffCapsDelay(t *testing.T) {
	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}
	require.Equal(t, 500*time.Millisecond, b.nextDelay(0))
	require.Equal(t, time.Second, b.nextDelay(1))
	require.Equal(t, 4*time.Second, b.nextDelay(3))
	require.Equal(t, 5*time.Second, b.nextDelay(4))
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Options{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "sentinel.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Ping(ctx, db))
	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	require.Equal(t, 1, one)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
}
