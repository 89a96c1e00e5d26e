// Package fetcher retrieves raw storefront page content over HTTP with
// bounded timeouts, retry of transient failures, and per-host politeness
// limits. It has no knowledge of extraction semantics.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/logger"
)

// Status code boundaries used for retry classification.
const (
	statusTooManyReqs  = 429
	statusServerErrLow = 500
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// limiterBurst is the token bucket burst size for per-host limiting.
const limiterBurst = 2

// Config configures the fetcher.
type Config struct {
	// Timeout bounds a single request attempt
	Timeout time.Duration
	// MaxRetries bounds retries of transient failures
	MaxRetries int
	// BackoffInitial is the first retry delay; it doubles per attempt
	BackoffInitial time.Duration
	// RatePerHost limits requests per second to a single host
	RatePerHost float64
	// UserAgent is sent on every request
	UserAgent string
}

// Fetcher retrieves page content for storefront URLs.
type Fetcher struct {
	httpClient     *http.Client
	log            logger.Interface
	userAgent      string
	maxRetries     int
	backoffInitial time.Duration
	ratePerHost    rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a fetcher with the given configuration.
func New(cfg Config, log logger.Interface) *Fetcher {
	return &Fetcher{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		log:            log.WithComponent("fetcher"),
		userAgent:      cfg.UserAgent,
		maxRetries:     cfg.MaxRetries,
		backoffInitial: cfg.BackoffInitial,
		ratePerHost:    rate.Limit(cfg.RatePerHost),
		limiters:       make(map[string]*rate.Limiter),
	}
}

// Fetch retrieves the raw page content for the given URL. Transient
// failures (timeout, connection error, 429, 5xx) are retried with
// exponential backoff up to MaxRetries; other 4xx responses and invalid
// URLs fail immediately. Context cancellation aborts retries.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidURL, rawURL)
	}

	if waitErr := f.limiter(parsed.Host).Wait(ctx); waitErr != nil {
		return nil, fmt.Errorf("rate limit wait: %w", waitErr)
	}

	backoff := f.backoffInitial
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch cancelled: %w", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		body, fetchErr := f.fetchOnce(ctx, rawURL)
		if fetchErr == nil {
			return body, nil
		}

		lastErr = fetchErr
		if !isTransient(fetchErr) || ctx.Err() != nil {
			break
		}

		f.log.Warn("retrying fetch",
			"url", rawURL,
			"attempt", attempt+1,
			"error", fetchErr.Error(),
		)
	}

	return nil, lastErr
}

// fetchOnce performs a single HTTP GET attempt.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if reqErr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidURL, rawURL)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, doErr := f.httpClient.Do(req)
	if doErr != nil {
		return nil, classifyTransportError(ctx, doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)
	body, readErr := io.ReadAll(limited)
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	return body, nil
}

// limiter returns the rate limiter for a host, creating it on first use.
func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(f.ratePerHost, limiterBurst)
		f.limiters[host] = lim
	}
	return lim
}

// classifyTransportError maps a transport failure to the fetch error
// taxonomy. Caller cancellation is kept distinct so it propagates as-is.
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("fetch cancelled: %w", ctx.Err())
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s", ErrTimeout, err.Error())
	}

	return fmt.Errorf("%w: %s", ErrConnection, err.Error())
}

// isTransient reports whether the fetch error warrants a retry.
func isTransient(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrConnection) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Transient()
	}

	return false
}
