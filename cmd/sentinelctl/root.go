package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sentinelos/engine/internal/bootstrap"
	"github.com/sentinelos/engine/pkg/config"
	"github.com/sentinelos/engine/pkg/logger"
)

// opener builds the runtime a command works against.
type opener func(ctx context.Context) (*bootstrap.Runtime, error)

// defaultOpener uses the same configuration as the server and migrates the
// schema, so a fresh SQLite file works without a separate migrate step.
func defaultOpener(ctx context.Context) (*bootstrap.Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return bootstrap.Open(ctx, cfg, true)
}

func newRootCmd(open opener) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "sentinelctl",
		Short:         "Feed status updates to SentinelOS and inspect org state",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			_, err := logger.InitWriter(cmd.ErrOrStderr(), level, "console")
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(ingestCmd(open))
	root.AddCommand(stateCmd(open))
	root.AddCommand(askCmd(open))
	root.AddCommand(migrateCmd(open))
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
