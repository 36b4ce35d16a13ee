package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"sportiq/internal/cfg"
	"sportiq/internal/metrics"
	"sportiq/internal/predict"
	"sportiq/internal/sports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newPredictCmd() *cobra.Command {
	var (
		sportName string
		seed      uint64
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fetch live matches for one sport and print predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sport, err := sports.ParseSport(sportName)
			if err != nil {
				return err
			}

			c, err := cfg.Load()
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			setupLogging(c.LogLevel)
			if cmd.Flags().Changed("seed") {
				c.OddsSeed = seed
			}

			a, err := newApp(c, metrics.NewWithRegistry(prometheus.NewRegistry()))
			if err != nil {
				return err
			}
			defer a.Close()

			out := a.session.Run(cmd.Context(), sport)
			if err := writeOutcome(cmd.OutOrStdout(), out, asJSON); err != nil {
				return err
			}
			if out.Err != nil {
				return fmt.Errorf("fetch %s: %w", sport, out.Err)
			}
			return nil
		},
	}

	names := make([]string, 0, len(sports.AllSports()))
	for _, s := range sports.AllSports() {
		names = append(names, s.String())
	}
	cmd.Flags().StringVar(&sportName, "sport", sports.Soccer.String(), "sport to fetch ("+strings.Join(names, ", ")+")")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "odds sampler seed (0 draws a random seed)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome as JSON")

	return cmd
}

// writeOutcome prints notices first, then one block per match.
func writeOutcome(w io.Writer, out predict.Outcome, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, n := range out.Notices {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Text); err != nil {
			return err
		}
	}
	if len(out.Notices) > 0 && len(out.Blocks) > 0 {
		fmt.Fprintln(w)
	}

	for _, b := range out.Blocks {
		_, err := fmt.Fprintf(w, "### %s vs %s\nPrediction: %s\nHome Odds: %s\nAway Odds: %s\n---\n",
			b.HomeTeam, b.AwayTeam, b.Label, b.HomeOddsText(), b.AwayOddsText())
		if err != nil {
			return err
		}
	}
	return nil
}
