package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgraziano/virusnet/internal/sim"
	"github.com/mgraziano/virusnet/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Visualize the contact network",
		Long: `Build the contact network for the configured population and output it
in DOT (Graphviz) or JSON format, colored by health state. Only setup
runs; use 'run' to step the epidemic.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				cfg.Simulation.Seed = &seed
			}
			format, _ := cmd.Flags().GetString("format")

			s, err := sim.New(cfg.Simulation)
			if err != nil {
				return err
			}
			if err := s.Setup(); err != nil {
				return fmt.Errorf("build network: %w", err)
			}

			snap, nodes := s.Snapshot(), s.NodeStates()

			switch visualization.Format(format) {
			case visualization.FormatDOT:
				dot, err := visualization.RenderDOT(snap, nodes)
				if err != nil {
					return fmt.Errorf("render DOT: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), dot)

			case visualization.FormatJSON:
				result, err := visualization.RenderJSON(snap, nodes)
				if err != nil {
					return fmt.Errorf("render JSON: %w", err)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}

			default:
				return fmt.Errorf("unsupported format %q (use 'dot' or 'json')", format)
			}
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot or json")
	cmd.Flags().Int64("seed", 0, "Random seed (default: derived from OS entropy)")

	return cmd
}
