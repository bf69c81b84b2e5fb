package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-fuzzy-search/config"
	"github.com/gcbaptista/go-fuzzy-search/internal/engine"
	"github.com/gcbaptista/go-fuzzy-search/internal/loader"
	"github.com/gcbaptista/go-fuzzy-search/internal/logger"
	"github.com/gcbaptista/go-fuzzy-search/internal/metrics"
)

const version = "1.0.0"

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	dataPath   string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "fuzzysearch",
		Short: "Typo-tolerant search over a record dataset",
		Long: `fuzzysearch - typo-tolerant search over a record dataset
  - fuzzy matching with configurable similarity algorithms
  - synonyms and "did you mean" suggestions when nothing matches`,
		Version:      version,
		SilenceUsage: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetLevel(logger.ParseLevel(opts.logLevel))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "settings file (YAML or TOML); FUZZY_* variables override it")
	flags.StringVarP(&opts.dataPath, "data", "d", "", "dataset file with records, synonyms and usage (YAML, JSON or TOML)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	_ = root.MarkPersistentFlagRequired("data")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newQueryCmd(opts))
	return root
}

// buildEngine loads the settings and dataset named by opts and builds an engine
// over them. reg may be nil to disable metrics.
func buildEngine(opts *globalOptions, reg prometheus.Registerer) (*engine.Engine, error) {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	dataset, err := loader.Load(opts.dataPath)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	return engine.New(dataset.Records, dataset.Synonyms, dataset.Usage, settings,
		engine.WithLogger(logger.New("engine")),
		engine.WithRegisterer(reg),
		engine.WithQueryStats(metrics.NewQueryStats()),
	)
}
