package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// RendererConfig controls the headless rendering subsystem.
type RendererConfig struct {
	UserAgent         string
	NavigationTimeout time.Duration
	ScrollPasses      int
	ScrollPause       time.Duration
}

// Renderer fetches JS-dependent pages with headless Chrome. Directory
// sites that populate listings client-side (or behind infinite scroll)
// only expose their content after rendering.
type Renderer struct {
	cfg         RendererConfig
	allocator   context.Context
	allocCancel context.CancelFunc
}

// NewRenderer creates a headless renderer backed by chromedp.
func NewRenderer(cfg RendererConfig) *Renderer {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 25 * time.Second
	}
	if cfg.ScrollPause <= 0 {
		cfg.ScrollPause = 500 * time.Millisecond
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Renderer{
		cfg:         cfg,
		allocator:   allocCtx,
		allocCancel: allocCancel,
	}
}

// Render navigates to url, scrolls to force lazily-loaded listings onto
// the page, and returns the final serialized document.
func (r *Renderer) Render(ctx context.Context, url string) ([]byte, error) {
	tabCtx, tabCancel := chromedp.NewContext(r.allocator)
	defer tabCancel()

	// The tab context must descend from the allocator, so the caller's
	// cancellation is forwarded instead of inherited.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	runCtx, cancel := context.WithTimeout(tabCtx, r.cfg.NavigationTimeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			if r.cfg.UserAgent == "" {
				return nil
			}
			return emulation.SetUserAgentOverride(r.cfg.UserAgent).Do(ctx)
		}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}
	for range r.cfg.ScrollPasses {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(r.cfg.ScrollPause),
		)
	}
	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(runCtx, actions...); err != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("render canceled: %w", ctx.Err())
		default:
		}
		return nil, fmt.Errorf("render %s: %w", url, err)
	}
	return []byte(html), nil
}

// Close releases the browser allocator.
func (r *Renderer) Close() {
	if r == nil || r.allocCancel == nil {
		return
	}
	r.allocCancel()
}
