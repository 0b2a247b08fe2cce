// Package fetch downloads pages for the command line tool. Every failure is
// reported as an error and means "no document" to the caller.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Defaults used when a Config field is zero.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "htmldate/0.4 (+https://github.com/mrjoshuak/htmldate)"
	DefaultCacheTTL  = 10 * time.Minute
	maxRedirects     = 3
)

var (
	ErrDisallowed = errors.New("disallowed by robots.txt")
	ErrStatus     = errors.New("unexpected status")
	ErrTooLarge   = errors.New("response too large")
)

// Config configures a Fetcher.
type Config struct {
	Timeout       time.Duration
	UserAgent     string
	MaxBytes      int64
	CacheTTL      time.Duration // negative disables the page cache
	RespectRobots bool
	Rate          float64 // requests per second and host, 0 for no limit
	Burst         int
}

// Fetcher fetches HTML pages over HTTP.
type Fetcher struct {
	httpClient *http.Client
	cfg        Config
	pages      *PageCache
	robots     *RobotsChecker
	limiter    *Limiter
	logger     *zap.Logger
}

// NewFetcher creates a Fetcher, filling unset Config fields with defaults.
func NewFetcher(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 20_000_000
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		cfg:    cfg,
		logger: logger,
	}
	if cfg.CacheTTL > 0 {
		f.pages = NewPageCache(cfg.CacheTTL)
	}
	if cfg.RespectRobots {
		f.robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	if cfg.Rate > 0 {
		f.limiter = NewLimiter(cfg.Rate, cfg.Burst)
	}
	return f
}

// Result is a fetched page.
type Result struct {
	HTML     string
	FinalURL string
	Cached   bool
}

// Fetch retrieves the page at rawURL. The context bounds the whole
// operation, including the robots.txt lookup and rate limit wait.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	if page, ok := f.pages.Get(rawURL); ok {
		return &Result{HTML: page, FinalURL: rawURL, Cached: true}, nil
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
		if delay > 0 && f.limiter != nil {
			f.limiter.SetCrawlDelay(rawURL, delay)
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.cfg.MaxBytes)
	}

	page := string(body)
	f.pages.Set(rawURL, page)
	f.logger.Debug("fetched page",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return &Result{HTML: page, FinalURL: resp.Request.URL.String()}, nil
}
