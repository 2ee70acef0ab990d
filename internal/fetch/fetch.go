// ABOUTME: Polite HTTP fetcher with rate limiting, retries, and response size caps
// ABOUTME: Classifies upstream failures so callers can tell missing pages from throttling

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const MaxResponseSize = 10 * 1024 * 1024 // 10MB

const (
	defaultTimeout   = 10 * time.Second
	defaultInterval  = 1500 * time.Millisecond
	defaultAttempts  = 3
	defaultUserAgent = "fictrack/1.0 (fiction metrics tracker)"

	backoffStep = 2 * time.Second
)

var (
	// ErrNotFound means the page does not exist. Not retried.
	ErrNotFound = errors.New("page not found")
	// ErrRateLimited means the server answered 429.
	ErrRateLimited = errors.New("rate limited by server")
	// ErrServer means the server answered with a 5xx status.
	ErrServer = errors.New("server error")
)

// Fetcher retrieves pages with a minimum spacing between requests.
// All methods are safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	attempts  int
}

// Options configures a Fetcher. Zero values select the defaults.
type Options struct {
	Timeout   time.Duration // per-request timeout
	Interval  time.Duration // minimum spacing between requests
	Attempts  int           // total tries per URL
	UserAgent string
}

// New creates a Fetcher with default politeness settings.
func New() *Fetcher {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Fetcher with explicit settings.
func NewWithOptions(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Attempts <= 0 {
		opts.Attempts = defaultAttempts
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(rate.Every(opts.Interval), 1),
		userAgent: opts.UserAgent,
		attempts:  opts.Attempts,
	}
}

// Get fetches a URL and returns its body. Transient failures (network
// errors, 429, 5xx) are retried with a linear backoff; 404 and other
// client errors fail immediately.
func (f *Fetcher) Get(ctx context.Context, urlStr string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= f.attempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, time.Duration(attempt-1)*backoffStep); err != nil {
				return nil, err
			}
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}

		body, err := f.fetchOnce(ctx, urlStr)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", f.attempts, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to body read
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", urlStr, ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%s: %w", urlStr, ErrRateLimited)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%s: status %d: %w", urlStr, resp.StatusCode, ErrServer)
	default:
		return nil, fmt.Errorf("%s: unexpected status code %d", urlStr, resp.StatusCode)
	}

	// Read response body with size limit
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}
	return body, nil
}

// retryable reports whether the failure is worth another attempt.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServer) {
		return true
	}
	// Network-level failures surface as url.Error
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
