package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/export"
	"github.com/flagfootballdirectory/crawler/internal/record"
)

func newScrapeCmd() *cobra.Command {
	var (
		sourceTag string
		urlsFile  string
		outPath   string
		csvPath   string
	)
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetches detail pages and extracts candidate records",
		Long: `Fetches each URL from the --urls-file list, runs the field extractors
over the page, and writes the resulting candidate records as JSON.
Pages that do not yield the source kind's required fields are dropped
with a warning.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := resolveRuntime(cmd.Context())
			if err != nil {
				return err
			}
			src, ok := rt.cfg.Sources[sourceTag]
			if !ok {
				return fmt.Errorf("unknown source %q", sourceTag)
			}
			kind := record.Kind(src.Kind)
			if !kind.Valid() {
				return fmt.Errorf("source %q has invalid kind %q", sourceTag, src.Kind)
			}

			urls, err := readURLList(urlsFile)
			if err != nil {
				return err
			}

			fetcher, cleanup := buildFetcher(rt.cfg, rt.logger)
			defer cleanup()
			builder := record.NewBuilder(rt.logger, nil)

			var candidates []record.Candidate
			for _, url := range urls {
				page, err := fetcher.Fetch(cmd.Context(), url)
				if err != nil {
					rt.logger.Warn("page fetch failed",
						zap.String("url", url), zap.Error(err))
					continue
				}
				candidate := builder.Build(page.Body, record.PageMeta{
					Kind:           kind,
					Source:         sourceTag,
					URL:            page.URL,
					DefaultFormats: src.DefaultFormats,
				})
				if candidate == nil {
					continue
				}
				candidates = append(candidates, *candidate)
			}

			rt.logger.Info("scrape finished",
				zap.String("source", sourceTag),
				zap.Int("pages", len(urls)),
				zap.Int("candidates", len(candidates)))

			if err := export.SaveJSON(outPath, candidates); err != nil {
				return err
			}
			if csvPath != "" {
				if err := export.SaveCSV(csvPath, candidates); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceTag, "source", "", "source tag the URLs belong to")
	cmd.Flags().StringVar(&urlsFile, "urls-file", "", "file of URLs, one per line")
	cmd.Flags().StringVar(&outPath, "out", "candidates.json", "JSON output path")
	cmd.Flags().StringVar(&csvPath, "csv", "", "optional CSV review sheet path")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("urls-file")
	return cmd
}

func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list %s: %w", path, err)
	}
	return urls, nil
}
