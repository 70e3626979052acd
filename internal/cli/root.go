// Package cli is the campusnews command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deusflow/campusnews/internal/app"
	"github.com/deusflow/campusnews/internal/config"
	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/news"
)

var (
	catalogPath string
	debug       bool
)

// queryService is the part of app.Service the run command needs.
type queryService interface {
	Query(ctx context.Context, q news.QuerySpec, opts app.Options) (*app.Result, error)
}

// openService builds the query service and its cleanup. Tests replace it.
var openService = func(ctx context.Context) (queryService, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a.Service, a.Close, nil
}

var rootCmd = &cobra.Command{
	Use:   "campusnews",
	Short: "Aggregate Korean university news",
	Long: `Collects university news from RSS feeds, Google News and the Naver search API,
merges duplicates, classifies and scores them, and prints or serves the ranked result.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "source catalog YAML (overrides CATALOG_PATH)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the environment, applies persistent flags and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if debug {
		cfg.Debug = true
	}
	logger.Init(cfg.LogOptions())
	return cfg, nil
}
