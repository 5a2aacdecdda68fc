// Package discover walks directory index pages and collects the detail-page
// URLs worth scraping, filtered by per-site path patterns.
package discover

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/fetch"
)

// Source describes one directory site to walk.
type Source struct {
	// BaseURL is the index page discovery starts from.
	BaseURL string
	// Patterns are path substrings that mark a link as a detail page,
	// e.g. "/leagues/" or "/events/".
	Patterns []string
	// IndexPatterns mark links to further index pages (pagination and
	// section pages) that should themselves be walked.
	IndexPatterns []string
	// MaxPages caps the number of index pages fetched for the source.
	MaxPages int
}

// Discoverer fetches index pages and harvests matching detail links.
type Discoverer struct {
	fetcher fetch.Fetcher
	logger  *zap.Logger
}

func New(fetcher fetch.Fetcher, logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{fetcher: fetcher, logger: logger}
}

// Discover walks the source's index pages breadth-first and returns the
// deduplicated detail URLs, in first-seen order. Index pages that fail to
// fetch are logged and skipped so one bad page cannot sink the run.
func (d *Discoverer) Discover(ctx context.Context, src Source) ([]string, error) {
	base, err := url.Parse(src.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	maxPages := src.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}

	queue := []string{src.BaseURL}
	visited := make(map[string]bool)
	seen := make(map[string]bool)
	var found []string

	for len(queue) > 0 && len(visited) < maxPages {
		if err := ctx.Err(); err != nil {
			return found, fmt.Errorf("discovery canceled: %w", err)
		}
		indexURL := queue[0]
		queue = queue[1:]
		if visited[indexURL] {
			continue
		}
		visited[indexURL] = true

		page, err := d.fetcher.Fetch(ctx, indexURL)
		if err != nil {
			d.logger.Warn("index page fetch failed",
				zap.String("url", indexURL), zap.Error(err))
			continue
		}

		for _, link := range page.Links {
			normalized, err := NormalizeURL(link)
			if err != nil {
				continue
			}
			linkURL, err := url.Parse(normalized)
			if err != nil || linkURL.Host != strings.ToLower(base.Host) {
				continue
			}
			switch {
			case matchesAny(linkURL.Path, src.Patterns):
				if !seen[normalized] {
					seen[normalized] = true
					found = append(found, normalized)
				}
			case matchesAny(linkURL.Path, src.IndexPatterns):
				if !visited[normalized] {
					queue = append(queue, normalized)
				}
			}
		}
	}

	d.logger.Info("discovery finished",
		zap.String("base", src.BaseURL),
		zap.Int("index_pages", len(visited)),
		zap.Int("detail_urls", len(found)))
	return found, nil
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// NormalizeURL standardizes a URL so the same page never gets scraped
// twice. It lowercases the scheme and host, removes default ports and
// fragments, and sorts query parameters.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}
