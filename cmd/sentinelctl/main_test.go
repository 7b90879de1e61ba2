package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelos/engine/internal/bootstrap"
	"github.com/sentinelos/engine/internal/services"
	"github.com/sentinelos/engine/pkg/config"
)

func testOpener(t *testing.T) opener {
	dsn := filepath.Join(t.TempDir(), "cli.db")
	return func(ctx context.Context) (*bootstrap.Runtime, error) {
		return bootstrap.Open(ctx, &config.Config{
			DBDriver:           "sqlite",
			DatabaseURL:        dsn,
			StateConflictLimit: 10,
			StateHistoryLimit:  50,
		}, true)
	}
}

func run(t *testing.T, open opener, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(open)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestIngestPrintsBriefing(t *testing.T) {
	open := testOpener(t)

	out, err := run(t, open, "", "ingest", "--org", "acme", "Launch Friday.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Chief of Staff Briefing\n"))
	assert.Contains(t, out, "- launch_date = Friday")
}

func TestIngestFromStdinAsJSON(t *testing.T) {
	open := testOpener(t)

	out, err := run(t, open, "Launch Monday.\n", "ingest", "--org", "acme", "--json", "-")
	require.NoError(t, err)

	var res services.IngestResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Monday", res.TruthsUpdated[0].Value)
}

func TestIngestRequiresOrg(t *testing.T) {
	_, err := run(t, testOpener(t), "", "ingest", "Launch Friday.")
	require.Error(t, err)
}

func TestStateAndAsk(t *testing.T) {
	open := testOpener(t)
	_, err := run(t, open, "", "ingest", "--org", "acme", "Launch Friday.")
	require.NoError(t, err)
	_, err = run(t, open, "", "ingest", "--org", "acme", "Launch Monday, assigned to Sana.")
	require.NoError(t, err)

	out, err := run(t, open, "", "state", "--org", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "launch_date = Monday (v2)")
	assert.Contains(t, out, "Launch readiness (Sana)")
	assert.Contains(t, out, "Which is correct for launch_date: 'Friday' or 'Monday'?")

	out, err = run(t, open, "", "ask", "--org", "acme", "digest please")
	require.NoError(t, err)
	assert.Contains(t, out, `"digest"`)
}

func TestMigrate(t *testing.T) {
	out, err := run(t, testOpener(t), "", "migrate")
	require.NoError(t, err)
	assert.Equal(t, "migrations completed\n", out)
}
