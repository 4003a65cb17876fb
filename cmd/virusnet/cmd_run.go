package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgraziano/virusnet/internal/collector"
	"github.com/mgraziano/virusnet/internal/config"
	"github.com/mgraziano/virusnet/internal/logging"
	"github.com/mgraziano/virusnet/internal/sim"
)

// traceCollector bridges per-tick snapshots into the JSONL trace log.
type traceCollector struct {
	tl *logging.TraceLogger
}

func (t traceCollector) Collect(s sim.Snapshot) {
	t.tl.Log(map[string]any{
		"tick":        s.Tick,
		"infected":    s.Infected,
		"resistant":   s.Resistant,
		"susceptible": s.Susceptible,
	})
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the epidemic simulation",
		Long: `Run the simulation for the configured number of ticks (or until the
epidemic dies out) and print a per-run summary. The collected per-tick
series can be exported to CSV and/or recorded to a SQLite database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				cfg.Simulation.Seed = &seed
			}
			if cmd.Flags().Changed("ticks") {
				cfg.Simulation.Ticks, _ = cmd.Flags().GetInt("ticks")
			}
			if cmd.Flags().Changed("population") {
				cfg.Simulation.PopulationSize, _ = cmd.Flags().GetInt("population")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
			tracer := logging.NewTraceLogger(traceDir(cfg), cfg.Logging.Level)
			defer tracer.Close()

			s, err := sim.New(cfg.Simulation)
			if err != nil {
				return err
			}
			s.SetLogger(logger)

			mem := collector.NewMemory()
			s.AttachCollector(mem)
			if tracer != nil {
				s.AttachCollector(traceCollector{tl: tracer})
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				rec, err := collector.NewSQLiteRecorder(dbPath)
				if err != nil {
					return fmt.Errorf("open run database: %w", err)
				}
				defer rec.Close()
				if err := rec.BeginRun(ctx, s.Seed(), cfg.Simulation); err != nil {
					return fmt.Errorf("record run: %w", err)
				}
				s.AttachCollector(rec)
				defer func() {
					if err := rec.Err(); err != nil {
						logger.Warn("run recording incomplete", "error", err)
					}
				}()
			}

			final, err := s.Run(ctx, cfg.Simulation.Ticks)
			if err != nil {
				return err
			}

			if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
				if err := collector.ExportCSV(csvPath, mem.Series()); err != nil {
					return fmt.Errorf("export csv: %w", err)
				}
				logger.Info("series exported", "path", csvPath, "ticks", mem.Len())
			}

			return printSummary(cmd, s, final)
		},
	}

	cmd.Flags().Int64("seed", 0, "Random seed (default: derived from OS entropy)")
	cmd.Flags().Int("ticks", 0, "Tick budget (default: from config)")
	cmd.Flags().Int("population", 0, "Population size (default: from config)")
	cmd.Flags().String("csv", "", "Export the per-tick series to a CSV file")
	cmd.Flags().String("db", "", "Record the run to a SQLite database")

	return cmd
}

func printSummary(cmd *cobra.Command, s *sim.Simulation, final sim.Snapshot) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"seed":        s.Seed(),
			"state":       s.State().String(),
			"tick":        final.Tick,
			"infected":    final.Infected,
			"resistant":   final.Resistant,
			"susceptible": final.Susceptible,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"seed %d: stopped at tick %d (%s) with %d infected, %d resistant, %d susceptible\n",
		s.Seed(), final.Tick, s.State(), final.Infected, final.Resistant, final.Susceptible)
	return nil
}

// loadConfig resolves configuration from the --config flag or default
// locations.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func traceDir(cfg *config.Config) string {
	if cfg.Logging.TraceDir != "" {
		return cfg.Logging.TraceDir
	}
	return "."
}
