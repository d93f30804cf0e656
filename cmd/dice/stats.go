package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/stats"
)

func newStatsCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "stats [-n N] expr",
		Short: "Estimate the distribution of an expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if n <= 0 {
				n = cfg.Stats.Iterations
			}
			src := strings.Join(args, " ")
			e, err := dice.Parse(src, append(cfg.ParseOptions(), dice.Logger(logger))...)
			if err != nil {
				return err
			}
			if err := cfg.CheckDice(e); err != nil {
				return err
			}
			seed, _ := cmd.Flags().GetUint64("seed")
			s, err := stats.Simulate(cmd.Context(), e, n, source(seed))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Expression: %v\n", e)
			fmt.Fprintf(w, "Rolls: %d\n", s.N)
			fmt.Fprintf(w, "Min: %d\nMax: %d\n", s.Min, s.Max)
			fmt.Fprintf(w, "Mean: %.3f\nStdDev: %.3f\n", s.Mean, s.StdDev)
			for i, p := range stats.Quantiles {
				fmt.Fprintf(w, "P%02.0f: %g\n", p*100, s.Quantiles[i])
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "iterations", "n", 0, "number of rolls (default from stats.iterations)")
	return cmd
}
