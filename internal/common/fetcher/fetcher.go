package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// Config holds the request headers and timeout for page fetches. The
// listings site varies its response for non-browser clients, so all
// three headers should carry browser-like values.
type Config struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
	Timeout        time.Duration
}

// Fetcher retrieves raw search-results markup over HTTP
type Fetcher struct {
	collector *colly.Collector
	config    Config
}

// NewFetcher creates a Colly-backed page fetcher
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(cfg.Timeout)

	return &Fetcher{
		collector: c,
		config:    cfg,
	}
}

// Fetch performs a single GET against url and returns the raw response
// body. Transport failures and non-2xx statuses are returned as errors;
// there are no retries, the next scheduled run is the retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	var fetchErr error

	collector := f.collector.Clone()

	collector.OnRequest(func(r *colly.Request) {
		if f.config.Accept != "" {
			r.Headers.Set("Accept", f.config.Accept)
		}
		if f.config.AcceptLanguage != "" {
			r.Headers.Set("Accept-Language", f.config.AcceptLanguage)
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetch %s: %w (status: %d)", url, err, r.StatusCode)
	})

	err := collector.Visit(url)
	if fetchErr != nil {
		return nil, fetchErr
	}
	if err != nil {
		return nil, fmt.Errorf("visit url: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("no response body from %s", url)
	}

	return body, nil
}
