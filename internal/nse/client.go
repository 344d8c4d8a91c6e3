// Package nse fetches option-chain snapshots from the NSE public API.
//
// The endpoint rejects non-browser-looking traffic: every fetch first hits
// the human-facing option-chain page with browser headers to pick up
// session cookies, waits out the upstream's rate sensitivity, then calls
// the JSON API with the same session.
package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/openquant/nsechain/internal/retry"
)

const (
	// DefaultHomepageURL is the session-bootstrapping page.
	DefaultHomepageURL = "https://www.nseindia.com/option-chain"

	// DefaultAPIURL is the JSON endpoint template; %s is the index symbol.
	DefaultAPIURL = "https://www.nseindia.com/api/option-chain-indices?symbol=%s"

	maxLoggedBody = 1000
)

// browserHeaders is the realistic header set the upstream expects.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Accept":           "application/json, text/javascript, */*; q=0.01",
	"Accept-Language":  "en-US,en;q=0.9",
	"Referer":          "https://www.nseindia.com/option-chain",
	"X-Requested-With": "XMLHttpRequest",
	"Connection":       "keep-alive",
}

// FetchError is the terminal failure after all fetch attempts are
// exhausted. It carries the attempt count and the last underlying cause.
type FetchError struct {
	Symbol   string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch option chain for %s after %d attempts: %v", e.Symbol, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ClientConfig holds fetch settings.
type ClientConfig struct {
	HomepageURL    string
	APIURL         string
	RequestTimeout time.Duration

	// BootstrapDelay is the fixed wait between the cookie-acquiring page
	// visit and the API call.
	BootstrapDelay time.Duration

	// Retries is the total number of attempts per fetch.
	Retries int

	// BackoffBase grows the inter-attempt sleep as base^0, base^1, ...
	BackoffBase float64

	// RateLimiter throttles attempts across fetches. Nil disables it.
	RateLimiter *rate.Limiter

	// Sleep overrides all waits, for tests. Nil uses time.Sleep.
	Sleep func(time.Duration)
}

// DefaultClientConfig returns production settings: 3 attempts, base-2
// backoff, 2s bootstrap delay and at most one request burst per second.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		HomepageURL:    DefaultHomepageURL,
		APIURL:         DefaultAPIURL,
		RequestTimeout: 10 * time.Second,
		BootstrapDelay: 2 * time.Second,
		Retries:        3,
		BackoffBase:    2,
		RateLimiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Client fetches option chains with session bootstrapping and retries.
type Client struct {
	cfg     *ClientConfig
	logger  *logrus.Logger
	retryer *retry.Retryer
}

// NewClient creates a Client from the given config. A nil config uses
// DefaultClientConfig.
func NewClient(cfg *ClientConfig, logger *logrus.Logger) *Client {
	if cfg == nil {
		cfg = DefaultClientConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	retryer := retry.NewRetryer(retry.Config{
		MaxAttempts: cfg.Retries,
		BaseDelay:   1 * time.Second,
		Multiplier:  cfg.BackoffBase,
		Name:        "nse-fetch",
		Sleep:       cfg.Sleep,
	}, logger)

	return &Client{cfg: cfg, logger: logger, retryer: retryer}
}

// FetchOptionChain retrieves the full option chain for one index symbol.
// All-or-nothing: it returns the three payload projections or a terminal
// *FetchError wrapping the last cause. A network error, non-200 status,
// non-JSON content type or malformed body each fail the attempt.
func (c *Client) FetchOptionChain(ctx context.Context, symbol string) (*OptionChain, error) {
	var (
		chain   *OptionChain
		lastErr error
	)

	err := c.retryer.Execute(ctx, func() error {
		fetched, attemptErr := c.fetchOnce(ctx, symbol)
		if attemptErr != nil {
			lastErr = attemptErr
			return attemptErr
		}
		chain = fetched
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FetchError{Symbol: symbol, Attempts: c.cfg.Retries, Err: lastErr}
	}

	return chain, nil
}

// fetchOnce performs one complete attempt: bootstrap, delay, API call,
// validation and decode. Each attempt uses a fresh cookie jar so a stale
// session never poisons the retries that follow.
func (c *Client) fetchOnce(ctx context.Context, symbol string) (*OptionChain, error) {
	if c.cfg.RateLimiter != nil {
		if err := c.cfg.RateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	httpClient := &http.Client{Jar: jar, Timeout: c.cfg.RequestTimeout}

	c.logger.Debugf("Visiting homepage to set cookies for %s", symbol)
	homeResp, err := c.get(ctx, httpClient, c.cfg.HomepageURL)
	if err != nil {
		return nil, fmt.Errorf("homepage request: %w", err)
	}
	io.Copy(io.Discard, homeResp.Body)
	homeResp.Body.Close()
	c.logger.Debugf("Homepage status: %d", homeResp.StatusCode)

	c.wait(c.cfg.BootstrapDelay)

	apiURL := fmt.Sprintf(c.cfg.APIURL, url.QueryEscape(symbol))
	resp, err := c.get(ctx, httpClient, apiURL)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK || !strings.Contains(contentType, "application/json") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		c.logger.Warnf("Unexpected response for %s: status=%d content-type=%q body=%q",
			symbol, resp.StatusCode, contentType, string(body))
		return nil, fmt.Errorf("unexpected response: status %d, content-type %q", resp.StatusCode, contentType)
	}

	var decoded optionChainResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode option chain JSON: %w", err)
	}

	return &OptionChain{
		Data:            decoded.Records.Data,
		ExpiryDates:     decoded.Records.ExpiryDates,
		UnderlyingValue: decoded.Records.UnderlyingValue,
	}, nil
}

func (c *Client) get(ctx context.Context, httpClient *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	return httpClient.Do(req)
}

func (c *Client) wait(d time.Duration) {
	if d <= 0 {
		return
	}
	if c.cfg.Sleep != nil {
		c.cfg.Sleep(d)
		return
	}
	time.Sleep(d)
}
