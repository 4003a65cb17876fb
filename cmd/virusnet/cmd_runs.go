package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgraziano/virusnet/internal/collector"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in a SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}

			rec, err := collector.NewSQLiteRecorder(dbPath)
			if err != nil {
				return fmt.Errorf("open run database: %w", err)
			}
			defer rec.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			runs, err := rec.Runs(ctx)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "run %d: seed %d, recorded %s\n",
					r.ID, r.Seed, r.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().String("db", "", "Path to the run database")

	return cmd
}
