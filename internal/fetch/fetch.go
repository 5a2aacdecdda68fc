// Package fetch retrieves directory pages strictly one at a time, with a
// mandatory pacing delay between consecutive fetches to respect remote-site
// load limits.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Page is the text and link content of one fetched URL.
type Page struct {
	URL       string
	Body      []byte
	Links     []string
	FetchedAt time.Time
	Rendered  bool
}

// Fetcher retrieves a single page. Implementations apply their own timeout
// policy; callers treat a nil page as a skippable failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Config controls the HTTP fetching client.
type Config struct {
	UserAgent     string
	Timeout       time.Duration
	Delay         time.Duration
	RespectRobots bool
}

// Client implements Fetcher using a Colly collector, optionally escalating
// to a headless renderer when the detector flags a JS-dependent page.
type Client struct {
	cfg      Config
	base     *colly.Collector
	detector *Detector
	renderer *Renderer
	logger   *zap.Logger
	last     time.Time
}

// NewClient builds a paced Colly-backed fetcher. detector and renderer may
// be nil, in which case pages are never escalated to headless rendering.
func NewClient(cfg Config, detector *Detector, renderer *Renderer, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = !cfg.RespectRobots
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	c.SetRequestTimeout(cfg.Timeout)
	return &Client{
		cfg:      cfg,
		base:     c,
		detector: detector,
		renderer: renderer,
		logger:   logger,
	}
}

// Fetch retrieves one page, waiting out the pacing delay first. When the
// plain fetch looks JS-rendered and a renderer is configured, the page is
// re-fetched headlessly and its body replaced.
func (c *Client) Fetch(ctx context.Context, url string) (*Page, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	page, err := c.fetchPlain(ctx, url)
	if err != nil {
		return nil, err
	}

	if c.renderer != nil && c.detector != nil && c.detector.NeedsJS(page.Body) {
		c.logger.Debug("escalating to headless render", zap.String("url", url))
		body, renderErr := c.renderer.Render(ctx, url)
		if renderErr != nil {
			c.logger.Warn("headless render failed, keeping plain body",
				zap.String("url", url), zap.Error(renderErr))
			return page, nil
		}
		page.Body = body
		page.Links = ExtractLinks(body, url)
		page.Rendered = true
	}
	return page, nil
}

func (c *Client) fetchPlain(ctx context.Context, url string) (*Page, error) {
	collector := c.base.Clone()
	page := &Page{URL: url}
	var fetchErr error

	collector.OnResponse(func(r *colly.Response) {
		page.URL = r.Request.URL.String()
		page.Body = append([]byte(nil), r.Body...)
		page.FetchedAt = time.Now().UTC()
	})
	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if link := e.Request.AbsoluteURL(e.Attr("href")); link != "" {
			page.Links = append(page.Links, link)
		}
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("visit %s: %w", url, err)
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, fetchErr)
		}
	}
	return page, nil
}

// pace blocks until the configured delay since the previous fetch has
// elapsed. The wait is context-aware so termination is not held up.
func (c *Client) pace(ctx context.Context) error {
	if c.cfg.Delay <= 0 || c.last.IsZero() {
		c.last = time.Now()
		return nil
	}
	remaining := c.cfg.Delay - time.Since(c.last)
	if remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("pacing interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}
	c.last = time.Now()
	return nil
}
