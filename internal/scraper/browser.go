package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserClient renders the stock page in headless Chrome before extracting
// fragments, for when the page fills its spans client-side.
type BrowserClient struct {
	pageURL   string
	selector  string
	timeout   time.Duration
	allocOpts []chromedp.ExecAllocatorOption
}

func NewBrowserClient(pageURL, selector string, timeout time.Duration) *BrowserClient {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.UserAgent(userAgent),
	)
	return &BrowserClient{
		pageURL:   pageURL,
		selector:  selector,
		timeout:   timeout,
		allocOpts: opts,
	}
}

func (c *BrowserClient) FetchFragments(ctx context.Context) ([]string, error) {
	slog.Info("Rendering stock page in headless browser", "url", c.pageURL, "selector", c.selector)
	script, err := selectorScript(c.selector)
	if err != nil {
		return nil, malformedError("build selector script: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocOpts...)
	defer cancelAlloc()
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var texts []string
	err = chromedp.Run(taskCtx,
		chromedp.Navigate(c.pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(script, &texts),
	)
	if err != nil {
		var fe *FetchError
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			fe = &FetchError{Kind: FailureTimeout, Err: err}
		} else {
			fe = transportError(err)
		}
		slog.Warn("Headless render failed", "kind", fe.Kind, "error", err)
		return nil, fe
	}
	if len(texts) == 0 {
		return nil, malformedError("no %q elements found on rendered %s", c.selector, c.pageURL)
	}
	slog.Info("Retrieved span elements", "count", len(texts))
	return texts, nil
}

// selectorScript builds the page script returning the text of every match.
func selectorScript(selector string) (string, error) {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%s), el => el.textContent || "")`, quoted), nil
}
