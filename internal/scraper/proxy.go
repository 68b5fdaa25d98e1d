package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// proxyEnvelope is the scrape proxy's response: {"result": {"span": ["...", ...]}}.
type proxyEnvelope struct {
	Result *struct {
		Span json.RawMessage `json:"span"`
	} `json:"result"`
}

// ProxyClient fetches fragments from a text-extraction proxy that wraps the stock page.
type ProxyClient struct {
	client *resty.Client
	apiURL string
}

func NewProxyClient(apiURL string, timeout time.Duration) *ProxyClient {
	return &ProxyClient{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
		apiURL: apiURL,
	}
}

func (c *ProxyClient) FetchFragments(ctx context.Context) ([]string, error) {
	slog.Info("Fetching stock data from scrape proxy...")
	resp, err := c.client.R().SetContext(ctx).Get(c.apiURL)
	if err != nil {
		fe := transportError(err)
		slog.Warn("Stock fetch failed", "kind", fe.Kind, "error", err)
		return nil, fe
	}

	if resp.StatusCode() != http.StatusOK {
		fe := statusError(resp.StatusCode(), resp.Body())
		slog.Warn("HTTP error while fetching stock data", "status", resp.Status(), "kind", fe.Kind)
		return nil, fe
	}

	fragments, fe := decodeProxyBody(resp.Body())
	if fe != nil {
		slog.Warn("Invalid scrape proxy response structure", "kind", fe.Kind, "error", fe.Err)
		return nil, fe
	}
	slog.Info("Retrieved span elements", "count", len(fragments))
	return fragments, nil
}

func decodeProxyBody(body []byte) ([]string, *FetchError) {
	var env proxyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, malformedError("decode body: %w", err)
	}
	if env.Result == nil {
		return nil, malformedError("missing result field")
	}
	raw := bytes.TrimSpace(env.Result.Span)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, malformedError("result.span is not an array")
	}

	// Null entries decode to nil and become empty fragments.
	var spans []*string
	if err := json.Unmarshal(raw, &spans); err != nil {
		return nil, malformedError("result.span is not an array of strings: %w", err)
	}
	fragments := make([]string, len(spans))
	for i, s := range spans {
		if s != nil {
			fragments[i] = *s
		}
	}
	return fragments, nil
}

// DecodeFragments reads a saved fragment file: either a bare JSON array of
// strings or a full scrape proxy response.
func DecodeFragments(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var fragments []string
		if err := json.Unmarshal(trimmed, &fragments); err != nil {
			return nil, malformedError("decode fragment array: %w", err)
		}
		return fragments, nil
	}
	fragments, fe := decodeProxyBody(trimmed)
	if fe != nil {
		return nil, fe
	}
	return fragments, nil
}
