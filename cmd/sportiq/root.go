package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sportiq/internal/cfg"
	"sportiq/internal/metrics"
	"sportiq/internal/ml"
	"sportiq/internal/odds"
	"sportiq/internal/predict"
	"sportiq/internal/sports"
	"sportiq/internal/storage"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sportiq",
		Short:         "Live multi-sport match predictor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd(), newPredictCmd())
	return cmd
}

// setupLogging configures the global zerolog logger. Console output is used
// when stderr is a terminal.
func setupLogging(levelName string) {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// app holds the long-lived components shared by every command.
type app struct {
	settings cfg.Settings
	metrics  *metrics.Wrapper
	client   *sports.Client
	model    ml.ProbabilityClassifier
	sampler  *odds.Sampler
	store    *storage.Store
	session  *predict.Session
}

// newApp wires the fetcher, classifier, sampler and optional history.
func newApp(c cfg.Settings, m *metrics.Metrics) (*app, error) {
	mw := metrics.NewWrapper(m)

	client, err := sports.NewClient(sports.ClientConfig{
		APIKey:    c.APIKey,
		Vendor:    c.Vendor,
		Timeout:   c.RESTTimeout,
		Endpoints: c.Endpoints,
		Metrics:   mw,
	})
	if err != nil {
		return nil, err
	}

	model, err := ml.BuildClassifierOrFallback()
	if err != nil {
		log.Warn().Err(err).Msg("classifier fit failed, using favourite heuristic")
	}

	a := &app{
		settings: c,
		metrics:  mw,
		client:   client,
		model:    model,
		sampler:  odds.NewSampler(c.OddsSeed),
	}

	var history predict.History
	if c.DataPath != "" {
		store, err := storage.New(c.DataPath)
		if err != nil {
			log.Warn().Err(err).Str("path", c.DataPath).Msg("prediction history disabled")
		} else {
			a.store = store
			history = store
		}
	}

	renderer := predict.NewRenderer(model, a.sampler, mw)
	a.session = predict.NewSession(client, renderer, history)

	log.Info().
		Str("vendor", c.Vendor).
		Uint64("odds_seed", a.sampler.Seed()).
		Bool("history", a.store != nil).
		Msg("sportiq initialized")

	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close history store")
		}
	}
}
