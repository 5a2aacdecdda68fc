package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/catalog"
	"github.com/flagfootballdirectory/crawler/internal/export"
	"github.com/flagfootballdirectory/crawler/internal/ingest"
)

func newIngestCmd() *cobra.Command {
	var (
		inPath string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Loads scraped candidate records into the catalog database",
		Long: `Reads candidates produced by the scrape command and inserts them into
the catalog, resolving localities and slugs along the way. With
--dry-run the run is fully simulated and nothing is written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := resolveRuntime(cmd.Context())
			if err != nil {
				return err
			}

			candidates, err := export.LoadJSON(inPath)
			if err != nil {
				return err
			}

			store, err := catalog.NewPostgres(cmd.Context(), catalog.PostgresConfig{
				DSN:             rt.cfg.DB.DSN,
				MaxConns:        int32(rt.cfg.DB.MaxConns),
				MinConns:        int32(rt.cfg.DB.MinConns),
				MaxConnLifetime: time.Duration(rt.cfg.DB.MaxConnLifetimeMin) * time.Minute,
			})
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			orch := ingest.New(store, rt.logger)
			stats := orch.Ingest(cmd.Context(), candidates, dryRun)

			rt.logger.Info("ingest finished",
				zap.String("run_id", orch.RunID()),
				zap.Bool("dry_run", dryRun),
				zap.Int("success", stats.Success),
				zap.Int("failed", stats.Failed),
				zap.Int("skipped", stats.Skipped))
			cmd.Printf("run %s: %d succeeded, %d failed, %d skipped\n",
				orch.RunID(), stats.Success, stats.Failed, stats.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "candidates.json", "candidate JSON path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "simulate the run without writing")
	return cmd
}
