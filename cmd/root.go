// Package cmd defines the CLI commands for the ffd-crawler executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/config"
	"github.com/flagfootballdirectory/crawler/internal/fetch"
	"github.com/flagfootballdirectory/crawler/internal/logging"
)

var cfgFile string

// runtimeKeyType is the key for storing the runtime in the command context.
type runtimeKeyType string

const runtimeKey runtimeKeyType = "runtime"

// runtime carries the dependencies every subcommand needs.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
}

func (rt *runtime) close() {
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

// newRuntime is a variable so tests can swap in a stub factory.
var newRuntime = func() (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ffd-crawler",
		Short: "Scrapes youth flag football directory sites into the catalog.",
		Long: `ffd-crawler walks configured directory sites, extracts league, team,
and event records from their pages, and loads the results into the
catalog database. Discovery, scraping, and ingestion run as separate
stages so each run can be reviewed before anything is written.`,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime()
			if err != nil {
				return fmt.Errorf("initialize runtime: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey, rt))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if rt, ok := cmd.Context().Value(runtimeKey).(*runtime); ok && rt != nil {
				rt.close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	cmd.AddCommand(newDiscoverCmd())
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newIngestCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ffd-crawler: %v\n", err)
		os.Exit(1)
	}
}

func resolveRuntime(ctx context.Context) (*runtime, error) {
	rt, ok := ctx.Value(runtimeKey).(*runtime)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

// buildFetcher assembles the paced fetcher, with headless escalation when
// the config enables it.
func buildFetcher(cfg config.Config, logger *zap.Logger) (*fetch.Client, func()) {
	var (
		detector *fetch.Detector
		renderer *fetch.Renderer
	)
	cleanup := func() {}
	if cfg.Headless.Enabled {
		detector = fetch.NewDetector(
			cfg.Headless.MinHTMLBytes,
			cfg.Headless.Selectors,
			cfg.Headless.Keywords,
		)
		renderer = fetch.NewRenderer(fetch.RendererConfig{
			UserAgent:         cfg.Fetch.UserAgent,
			NavigationTimeout: time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
			ScrollPasses:      cfg.Headless.ScrollPasses,
		})
		cleanup = renderer.Close
	}
	client := fetch.NewClient(fetch.Config{
		UserAgent:     cfg.Fetch.UserAgent,
		Timeout:       cfg.FetchTimeout(),
		Delay:         cfg.FetchDelay(),
		RespectRobots: cfg.Fetch.RespectRobots,
	}, detector, renderer, logger)
	return client, cleanup
}
