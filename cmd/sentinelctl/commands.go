package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sentinelos/engine/internal/services"
)

func ingestCmd(open opener) *cobra.Command {
	var org, source string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ingest [text|-]",
		Short: "Ingest a status update and print its briefing",
		Long: `Ingest a status update for an org. The text is read from the argument,
or from stdin when the argument is "-" or missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			rt, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.Ingest.Ingest(cmd.Context(), org, text, source)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Briefing)
			return nil
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Org ID")
	cmd.Flags().StringVar(&source, "source", services.DefaultSource, "Where the update came from")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func stateCmd(open opener) *cobra.Command {
	var org string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the current truths, risk, tasks and conflicts of an org",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			state, err := rt.State.GetOrgState(cmd.Context(), org)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), state)
			}
			printState(cmd, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Org ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func printState(cmd *cobra.Command, s *services.OrgState) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Org %s\n", s.OrgID)
	fmt.Fprintln(w, strings.Repeat("=", 40))

	if s.LatestRisk != nil {
		fmt.Fprintf(w, "Risk: %s (%d)\n", s.LatestRisk.Level, s.LatestRisk.Score)
	} else {
		fmt.Fprintln(w, "Risk: -")
	}

	keys := make([]string, 0, len(s.LatestTruths))
	for k := range s.LatestTruths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(w, "\nTruths:")
	for _, k := range keys {
		e := s.LatestTruths[k]
		fmt.Fprintf(w, "  %s = %s (v%d)\n", k, e.Value, e.Version)
	}

	fmt.Fprintln(w, "\nLatest tasks:")
	for _, t := range s.LatestTasks {
		owner := "Unassigned"
		if t.Owner != nil {
			owner = *t.Owner
		}
		fmt.Fprintf(w, "  %s (%s)\n", t.Label, owner)
	}

	fmt.Fprintln(w, "\nConflicts:")
	for _, c := range s.Conflicts {
		fmt.Fprintf(w, "  %s\n", c.Question)
	}
	fmt.Fprintf(w, "\nUpdates: %d\n", len(s.History))
}

func askCmd(open opener) *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: `Ask about an org, e.g. "What changed today?"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			ans, err := rt.State.Ask(cmd.Context(), org, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ans)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Org ID")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func migrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations completed")
			return nil
		},
	}
}
