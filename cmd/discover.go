package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/discover"
)

func newDiscoverCmd() *cobra.Command {
	var (
		sourceTag string
		outPath   string
	)
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Collects detail-page URLs from the configured directory sites",
		Long: `Walks each configured source's index pages and writes the detail-page
URLs found there, one per line. Pass --source to restrict the walk to a
single source tag.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := resolveRuntime(cmd.Context())
			if err != nil {
				return err
			}
			if len(rt.cfg.Sources) == 0 {
				return fmt.Errorf("no sources configured")
			}

			fetcher, cleanup := buildFetcher(rt.cfg, rt.logger)
			defer cleanup()
			d := discover.New(fetcher, rt.logger)

			var urls []string
			for tag, src := range rt.cfg.Sources {
				if sourceTag != "" && tag != sourceTag {
					continue
				}
				found, err := d.Discover(cmd.Context(), discover.Source{
					BaseURL:       src.BaseURL,
					Patterns:      src.Patterns,
					IndexPatterns: src.IndexPatterns,
					MaxPages:      src.MaxPages,
				})
				if err != nil {
					return fmt.Errorf("discover %s: %w", tag, err)
				}
				rt.logger.Info("source discovered",
					zap.String("source", tag), zap.Int("urls", len(found)))
				urls = append(urls, found...)
			}
			if sourceTag != "" && len(urls) == 0 {
				if _, ok := rt.cfg.Sources[sourceTag]; !ok {
					return fmt.Errorf("unknown source %q", sourceTag)
				}
			}

			out := strings.Join(urls, "\n") + "\n"
			if outPath == "" {
				cmd.Print(out)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(out), 0o600); err != nil {
				return fmt.Errorf("write url list %s: %w", outPath, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceTag, "source", "", "restrict to one source tag")
	cmd.Flags().StringVar(&outPath, "out", "", "file to write URLs to (default stdout)")
	return cmd
}
