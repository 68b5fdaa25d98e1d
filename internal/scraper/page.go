package scraper

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/pauljones0/garden-stock-bot/internal/util"
)

// PageClient fetches the stock page itself and extracts the text of every
// element matching selector.
type PageClient struct {
	httpClient *http.Client
	pageURL    string
	selector   string
}

func NewPageClient(pageURL, selector string, timeout time.Duration) *PageClient {
	return &PageClient{
		httpClient: &http.Client{Timeout: timeout},
		pageURL:    pageURL,
		selector:   selector,
	}
}

func (c *PageClient) FetchFragments(ctx context.Context) ([]string, error) {
	slog.Info("Fetching stock page", "url", c.pageURL, "selector", c.selector)
	doc, err := c.fetchHTMLContent(ctx)
	if err != nil {
		return nil, err
	}

	sel := doc.Find(c.selector)
	if sel.Length() == 0 {
		fe := malformedError("no %q elements found on %s, potential block or page structure change", c.selector, c.pageURL)
		slog.Warn("Stock page had no matching elements", "kind", fe.Kind, "selector", c.selector)
		return nil, fe
	}
	fragments := sel.Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	slog.Info("Retrieved span elements", "count", len(fragments))
	return fragments, nil
}

func (c *PageClient) fetchHTMLContent(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: FailureNetwork, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		fe := transportError(err)
		slog.Warn("Stock page fetch failed", "kind", fe.Kind, "error", err)
		return nil, fe
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		fe := statusError(res.StatusCode, body)
		slog.Warn("HTTP error while fetching stock page", "status", res.Status, "kind", fe.Kind)
		return nil, fe
	}

	reader, err := charset.NewReader(res.Body, res.Header.Get("Content-Type"))
	if err != nil {
		return nil, malformedError("decode charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		if ctx.Err() != nil || util.IsTimeout(err) {
			return nil, transportError(err)
		}
		return nil, malformedError("parse html: %w", err)
	}
	return doc, nil
}
